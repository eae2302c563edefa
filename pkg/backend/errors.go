package backend

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrUnsupportedOperation marks an operation that is permanently
	// unavailable on the active backend. Never worth retrying.
	ErrUnsupportedOperation = errors.New("operation not supported by this backend")

	// ErrUnsupportedDevice marks a generic-device identifier that is not on
	// the recognized device list.
	ErrUnsupportedDevice = errors.New("device not recognized")

	// ErrInvalidState marks a call made outside its legal lifecycle window,
	// e.g. an effect call before Initialize or after Close.
	ErrInvalidState = errors.New("backend not in a valid state for this call")
)

// InitError reports a failed Initialize: the handshake did not succeed or
// returned no usable session data.
type InitError struct {
	// Endpoint is the handshake endpoint, if the failure was wire-level.
	Endpoint string

	// Reason describes what was wrong when there is no underlying error.
	Reason string

	// Err is the underlying transport or call failure, if any.
	Err error
}

// Error implements error.
func (e *InitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend initialize failed: %v", e.Err)
	}
	return fmt.Sprintf("backend initialize failed: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error { return e.Err }

// CallError reports a call that failed at the transport layer or that the
// backend answered with a non-success status.
type CallError struct {
	// Endpoint is the endpoint or native entry point that failed.
	Endpoint string

	// Op is the operation being performed.
	Op Operation

	// HTTPStatus is the HTTP status code, or 0 for native calls.
	HTTPStatus int

	// Result is the backend's result code, or 0 when the failure happened
	// before a result was read.
	Result int64

	// Err is the underlying transport error, if any.
	Err error
}

// Error implements error.
func (e *CallError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Endpoint, e.Err)
	case e.HTTPStatus != 0:
		return fmt.Sprintf("%s %s: http status %d (result %d)", e.Op, e.Endpoint, e.HTTPStatus, e.Result)
	default:
		return fmt.Sprintf("%s %s: result %d", e.Op, e.Endpoint, e.Result)
	}
}

// Unwrap returns the underlying error.
func (e *CallError) Unwrap() error { return e.Err }

// CreateError reports a create call the backend accepted at the transport
// layer but answered with a logical failure: a failure result code, an empty
// body, or a missing effect id.
type CreateError struct {
	// Endpoint is the endpoint that produced the response.
	Endpoint string

	// Result is the backend's result code.
	Result int64

	// Reason describes the logical failure.
	Reason string
}

// Error implements error.
func (e *CreateError) Error() string {
	return fmt.Sprintf("create effect %s: %s (result %d)", e.Endpoint, e.Reason, e.Result)
}
