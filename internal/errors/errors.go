package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies a failure; every kind maps to a default HTTP status.
type Kind int

const (
	// Validation is returned when input shape or field constraints fail.
	Validation Kind = iota
	// Unauthenticated is returned when no valid identity accompanies the request.
	Unauthenticated
	// Forbidden is returned when the identity is valid but not allowed.
	Forbidden
	// NotFound is returned when a referenced entity does not resolve.
	NotFound
	// Conflict is returned when a uniqueness constraint is violated.
	Conflict
	// Internal is returned for hashing, persistence and other infrastructure failures.
	Internal
)

func statusFor(kind Kind) int {
	switch kind {
	case Validation:
		return http.StatusUnprocessableEntity
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a tagged failure carrying an explicit kind and HTTP status.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Details    []string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with the kind's default status code.
func New(kind Kind, message string, details ...string) *Error {
	return &Error{
		Kind:       kind,
		StatusCode: statusFor(kind),
		Message:    message,
		Details:    details,
	}
}

// WithStatus creates an Error whose status code differs from the kind's default.
func WithStatus(kind Kind, statusCode int, message string) *Error {
	return &Error{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
	}
}

// From returns err as *Error, wrapping unknown errors as Internal.
func From(err error) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return New(Internal, "internal server error")
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return stderrors.As(err, &appErr) && appErr.Kind == kind
}
