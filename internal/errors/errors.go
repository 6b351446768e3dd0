package errors

import (
	"errors"
	"fmt"
)

// Common error types for the session server
var (
	// Configuration errors
	ErrMissingCredentials = errors.New("IDENTIFIER and PASSWORD must be set")
	ErrInvalidAppPassword = errors.New("PASSWORD must contain a Bluesky app password")
	ErrInvalidConfig      = errors.New("invalid configuration")

	// Provider errors
	ErrLoginFailed  = errors.New("login failed")
	ErrResumeFailed = errors.New("session resume failed")

	// Cookie errors
	ErrIncompleteSession = errors.New("incomplete session cookies")
	ErrCookieTampered    = errors.New("session cookie failed verification")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// WithCause wraps err under the sentinel so both match with Is.
func WithCause(sentinel, err error) error {
	if err == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
