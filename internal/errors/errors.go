package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Antigravity credential service
var (
	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrResultAlreadySet = errors.New("session result already set")

	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrNilCredentials  = errors.New("credentials cannot be nil")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
