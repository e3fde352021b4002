package core

import (
	"errors"
	"fmt"
)

// ErrNotFound covers both "does not exist" and "belongs to another user".
// Callers must not be able to tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned on any login failure, whether the email
// is unknown or the password is wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError marks caller-fixable input problems (bad operation name,
// empty items, malformed counts, missing CSV columns). The message carries
// the row number and field so the caller can correct the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InsufficientStockError is a domain precondition failure: the request was
// well-formed but the warehouse does not hold enough of the type.
type InsufficientStockError struct {
	TypeName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient quantity for type %q: have %d, requested %d",
		e.TypeName, e.Available, e.Requested)
}
