package api

import (
	"errors"
	"fmt"
)

// StatusError indicates the service answered with a non-2xx status.
// Auth failures (401) never reach this type; the auth-aware transport
// converts them before the response is visible here.
type StatusError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Is supports errors.Is matching by type.
func (e *StatusError) Is(target error) bool {
	_, ok := target.(*StatusError)
	return ok
}

// ShapeError indicates the service answered 2xx but the payload did not
// decode into the expected shape. Callers degrade to a "no data" rendering
// rather than propagating it as a failure.
type ShapeError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("unexpected payload from %s: %v", e.Endpoint, e.Err)
}

// Unwrap exposes the underlying decode error.
func (e *ShapeError) Unwrap() error { return e.Err }

// Is supports errors.Is matching by type.
func (e *ShapeError) Is(target error) bool {
	_, ok := target.(*ShapeError)
	return ok
}

// IsShapeError reports whether any error in the chain is a ShapeError.
func IsShapeError(err error) bool {
	return errors.Is(err, &ShapeError{})
}
