package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches failures to deliver a submission: connection
	// errors, timeouts, cancellation and unavailable (5xx) endpoints
	ErrTransport = errors.New("transport error")

	// ErrRejected matches submissions the endpoint refused (4xx), such as an
	// invalid credential or a malformed payload
	ErrRejected = errors.New("submission rejected")
)

// TransportError is returned when a submission could not be delivered
type TransportError struct {
	// StatusCode is set when the endpoint answered with a server error
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// RejectedError is returned when the endpoint refused a submission
type RejectedError struct {
	StatusCode int
	// Body is a bounded excerpt of the response body
	Body string
}

func (e *RejectedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: request failed with status %d", ErrRejected, e.StatusCode)
	}
	return fmt.Sprintf("%v: request failed with status %d: %s", ErrRejected, e.StatusCode, e.Body)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}
