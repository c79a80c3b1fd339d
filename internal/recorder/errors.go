package recorder

import (
	"errors"
	"fmt"
)

// ErrAuthExpired marks a 401/403 from any backend call. It is never retried
// internally; the remedy is re-running authentication.
var ErrAuthExpired = errors.New("authentication expired")

// APIError is any non-200 response other than an auth rejection.
type APIError struct {
	Status  int
	Snippet string
}

func (e *APIError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("backend returned %d", e.Status)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Snippet)
}

// ParseError is a response body that is not valid JSON or does not match the
// expected positional shape.
type ParseError struct {
	Method string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response: %v", e.Method, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
