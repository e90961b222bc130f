package errs

import "fmt"

// Names of the managed collaborators used in UpstreamError.Service.
const (
	ServiceStore    = "document store"
	ServiceIdentity = "identity provider"
	ServiceMedia    = "asset host"
	ServiceQueue    = "job queue"
)

// UpstreamError wraps a failed call to a managed collaborator.
//
// The global error handler renders it as 502 and echoes the upstream message,
// unless the wrapped error is a context deadline (503) or a database
// constraint violation (400).
type UpstreamError struct {
	Service string
	Err     error
}

// NewUpstreamError wraps err. A nil err yields nil so adapters can write
// `return errs.NewUpstreamError(svc, err)` unconditionally.
func NewUpstreamError(service string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Service: service, Err: err}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
