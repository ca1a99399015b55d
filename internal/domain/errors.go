package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by store and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, rental longer than 7 days).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ValidationError is an ErrValidation carrying the human-readable detail of
// the rejected input. Handlers surface Detail as the response message instead
// of the full wrapped error chain.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return "validation error: " + e.Detail }

// Unwrap makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// ErrUnauthenticated is returned when an operation that requires a signed-in
// identity is called without one.
// Handlers should map this to HTTP 401.
var ErrUnauthenticated = errors.New("authentication required")

// ErrUnauthorized is returned when the caller is neither the owner of the
// resource nor an administrator.
// Handlers should map this to HTTP 403.
var ErrUnauthorized = errors.New("not authorized")

// ErrUnavailable is returned when a booking request violates the availability
// invariant: the vehicle is already booked for an overlapping period, or the
// start date is inside the minimum lead time.
// Handlers should map this to HTTP 409 Conflict.
var ErrUnavailable = errors.New("vehicle unavailable")

// ErrDuplicateEmail is returned by registration when the email is already
// taken. Handlers should map this to HTTP 409 Conflict.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrInvalidCredentials is returned by login for both an unknown email and a
// wrong password, deliberately not distinguishing the two.
// Handlers should map this to HTTP 401.
var ErrInvalidCredentials = errors.New("invalid credentials")
