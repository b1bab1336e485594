package store

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a well-formed identifier that matches no record. It is
// distinct from a malformed identifier, which fails in models.Parse*ID before
// any store call is made.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateUsername reports a username uniqueness violation. The message
// deliberately contains the word "unique" because API clients match on it.
var ErrDuplicateUsername = errors.New("expected username to be unique")

// ErrReadOnly reports a write rejected because the application is in
// read-only maintenance mode.
var ErrReadOnly = errors.New("operation denied: application is in read-only mode")

// ValidationError reports a malformed or missing required field on an entity
// given to a write operation. It maps to a 400 at the HTTP layer.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid wraps err as a ValidationError.
func Invalid(err error) error {
	return &ValidationError{Err: err}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
