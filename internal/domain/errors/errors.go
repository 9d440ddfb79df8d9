package errors

import (
	"errors"
	"strings"
)

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("missing or invalid authorization")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access denied")
	ErrTodoNotFound       = errors.New("todo not found")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError carries every violation found in a request's input.
type ValidationError struct {
	Violations []string
}

// NewValidationError returns nil when violations is empty.
func NewValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// IsUnauthorized reports whether err is any of the token failures.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrMissingToken) || errors.Is(err, ErrInvalidToken)
}
