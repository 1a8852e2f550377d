package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInternal = errors.New("internal error")

	// * Value errors.
	ErrValidation = errors.New("invalid value")

	// * Aggregate errors.
	ErrInvariantViolation  = errors.New("order invariant violated")
	ErrInvalidTransition   = errors.New("invalid order status transition")
	ErrNotFound            = errors.New("not found")
	ErrConcurrencyConflict = errors.New("order was modified concurrently")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func invariantError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
