// Package apperror defines the application's domain error taxonomy.
//
// Services return these errors; the HTTP layer maps them to status codes
// (or redirects) without the services ever knowing about HTTP. Checking is
// done with errors.Is against the sentinel values below, which works through
// arbitrary fmt.Errorf("%w") wrapping because AppError implements Unwrap.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// AppError carries a sentinel error plus a human-readable message and,
// for validation errors, the offending field.
type AppError struct {
	Err     error  // sentinel, for errors.Is checks
	Message string // human-readable error message
	Field   string // optional: form field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no record of the given type exists with the given id.
// HTTP handlers map this to 404.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %d", resource, id),
	}
}

// ValidationFailed reports a malformed or missing input value.
// HTTP handlers map this to 400 and re-render the originating form.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation (duplicate username or email).
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Unauthorized reports a failed credential check. Handlers re-render the
// login form without exposing the message, so the response never reveals
// whether the email exists or the password was wrong.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
