// Package apperr classifies errors into the categories the HTTP boundary
// understands. Stores and handlers return these; httpjson maps them to
// status codes. Anything unclassified is treated as a backend failure.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated means no valid credential was presented.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden means a valid identity that does not own the resource.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation means required input was missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means no matching resource, including malformed ids.
	ErrNotFound = errors.New("not found")
)

// Error carries a category sentinel plus a client-safe message.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Unauthenticated builds a 401-class error.
func Unauthenticated(message string) *Error {
	return &Error{Err: ErrUnauthenticated, Message: message}
}

// Forbidden builds a 403-class error.
func Forbidden(message string) *Error {
	return &Error{Err: ErrForbidden, Message: message}
}

// Validation builds a 400-class error.
func Validation(message string) *Error {
	return &Error{Err: ErrValidation, Message: message}
}

// NotFound builds a 404-class error for the named resource.
func NotFound(resource string) *Error {
	return &Error{Err: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// Status maps an error to its HTTP status code. Unclassified errors are
// backend failures and map to 500.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
