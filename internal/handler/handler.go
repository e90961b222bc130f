// Package handler is the HTTP layer. Handlers bind and validate requests,
// call the service layer and write the response; errors go back to the
// global error handler untouched.
package handler
