package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing or invalid identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller's role or ownership check failed.
var ErrForbidden = errors.New("forbidden")

// ErrImmutable indicates a write was attempted against a record that can no
// longer be modified (a paid invoice, an applied credit note).
var ErrImmutable = errors.New("record is immutable")

// ErrConflict indicates the operation conflicts with the current state of the
// resource (e.g. an invalid status transition).
var ErrConflict = errors.New("conflict with current state")

// ErrRateNotConfigured indicates no charge rate exists for the billing context.
// This is a configuration gap, distinct from ErrNotFound for missing entities.
var ErrRateNotConfigured = errors.New("rate not configured")

// ErrInternal indicates an unexpected internal failure; callers must not see
// any partial-success implication.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and a wrapped cause.
// The repository layer uses it to report infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
