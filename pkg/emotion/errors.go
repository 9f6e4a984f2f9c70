package emotion

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrCanceled marks a call whose context ended before the exchange completed.
	ErrCanceled = errors.New("emotion: request canceled")

	// ErrClosed is returned by calls issued after Client.Close.
	ErrClosed = errors.New("emotion: client closed")

	// ErrGetBodyNotAllowed is returned for a GET with a body sent through a
	// borrowed client that has not enabled GET payloads.
	ErrGetBodyNotAllowed = errors.New("emotion: borrowed HTTP client does not allow a GET request body")
)

// ServiceError is a failure reported by the service through its JSON error envelope.
type ServiceError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *ServiceError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code != "" {
		return fmt.Sprintf("emotion: %s (%s, status %d)", e.Message, e.Code, e.StatusCode)
	}
	return fmt.Sprintf("emotion: %s (status %d)", e.Message, e.StatusCode)
}

// TransportError is a failure without structured detail: either a non-2xx
// response with no decodable envelope, or a network-layer fault.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("emotion: transport: %v", e.Err)
	}
	return fmt.Sprintf("emotion: response status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// MalformedResponseError is returned when a 2xx body does not decode into
// the expected result type.
type MalformedResponseError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *MalformedResponseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("emotion: malformed response (status %d): %v", e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func canceled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCanceled, cause)
}
