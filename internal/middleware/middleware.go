// Package middleware holds the global and route-level echo middleware:
// request ids, request logging, CORS, bearer-token auth, rate limiting,
// timeouts and the global error handler.
package middleware
