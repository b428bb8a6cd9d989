package monoapi

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction is returned when a client is built without a required
	// collaborator or configuration.
	ErrConstruction = errors.New("mono: invalid client construction")

	// ErrInvalidArgument matches every *ArgumentError via errors.Is.
	ErrInvalidArgument = errors.New("mono: invalid argument")
)

// ArgumentError reports a caller-supplied value that failed local validation.
// It is always returned before any request is sent.
type ArgumentError struct {
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidArgument) match.
func (e *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewArgumentError builds an ArgumentError for field.
func NewArgumentError(field, reason string) *ArgumentError {
	return &ArgumentError{Field: field, Reason: reason}
}

// APIError is a non-2xx answer from the Mono API.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, string(e.Body))
}

// TransportError wraps a network or decoding failure for a single request.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
