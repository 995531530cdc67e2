package api

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Common errors. Every *Error matches exactly one of the kind sentinels with
// errors.Is.
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid adkit configuration")
	// ErrMissingCredential indicates an empty API key
	ErrMissingCredential = errors.New("adkit API key is required")

	// ErrTransport indicates a connection level failure
	ErrTransport = errors.New("adkit: transport failure")
	// ErrTimeout indicates the call was aborted after the configured timeout
	ErrTimeout = errors.New("adkit: request timeout")
	// ErrMalformedResponse indicates a response body that is not valid JSON
	ErrMalformedResponse = errors.New("adkit: malformed response")
	// ErrAPIFailure indicates a well formed response with a failed status
	ErrAPIFailure = errors.New("adkit: API returned failure status")
	// ErrInvalidRequest indicates the request could not be built
	ErrInvalidRequest = errors.New("adkit: invalid request")
)

// ErrorKind classifies an Error
type ErrorKind string

const (
	KindTransport   ErrorKind = "transport"
	KindTimeout     ErrorKind = "timeout"
	KindMalformed   ErrorKind = "malformed_response"
	KindApplication ErrorKind = "application"
	KindRequest     ErrorKind = "invalid_request"
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindTimeout:
		return ErrTimeout
	case KindMalformed:
		return ErrMalformedResponse
	case KindApplication:
		return ErrAPIFailure
	case KindRequest:
		return ErrInvalidRequest
	default:
		return nil
	}
}

// Error is the single failure shape returned by every API call, whether the
// cause is the network, a timeout, an unparsable body or the API itself.
type Error struct {
	// Status is the vendor's code for application failures, 408 for timeouts
	// and 500 for everything else.
	Status int
	// Messages maps a field or category name to human readable messages.
	Messages  map[string][]string
	Kind      ErrorKind
	RequestID string
	Cause     error
}

func newError(kind ErrorKind, status int, field, message string, cause error) *Error {
	return &Error{
		Status:   status,
		Messages: map[string][]string{field: {message}},
		Kind:     kind,
		Cause:    cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("adkit API error: status %d: %s", e.Status, e.summary())
}

func (e *Error) summary() string {
	if len(e.Messages) == 0 {
		return http.StatusText(e.Status)
	}

	fields := make([]string, 0, len(e.Messages))
	for field := range e.Messages {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Messages[field], "; "))
	}
	return strings.Join(parts, ", ")
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel for the error's kind
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// IsNotFound checks if the error indicates a not found response
func (e *Error) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *Error) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsTimeout checks if the call was aborted by the timeout
func (e *Error) IsTimeout() bool {
	return e.Kind == KindTimeout
}
