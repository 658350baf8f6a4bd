package resolve

import (
	"errors"
	"fmt"
)

// ErrorType represents why a path could not be resolved to an asset.
// Callers treat every type as "not found"; the type only feeds logging.
type ErrorType int

const (
	// ErrTypePathRejected indicates a malformed or unsupported path form
	ErrTypePathRejected ErrorType = iota
	// ErrTypeHidden indicates a client path whose final segment is a dotfile
	ErrTypeHidden
	// ErrTypeOutsideRoot indicates a target that canonicalized outside the root
	ErrTypeOutsideRoot
	// ErrTypeNotFound indicates no readable regular file at the location
	ErrTypeNotFound
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypePathRejected:
		return "Path Rejected"
	case ErrTypeHidden:
		return "Hidden File"
	case ErrTypeOutsideRoot:
		return "Outside Root"
	case ErrTypeNotFound:
		return "Not Found"
	default:
		return fmt.Sprintf("ErrorType(%d)", int(et))
	}
}

// Error is returned by Normalize and Resolver.Resolve.
type Error struct {
	Type    ErrorType // Category of failure
	Path    string    // Request path as given
	Message string    // Human-readable detail
	Err     error     // Underlying filesystem error, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %q", e.Type, e.Path)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

func typeOf(err error) (ErrorType, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Type, true
	}
	return 0, false
}

// IsPathRejected checks if an error is a rejected path form
func IsPathRejected(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypePathRejected
}

// IsHidden checks if an error is a hidden-file rejection
func IsHidden(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeHidden
}

// IsOutsideRoot checks if an error is a root-escape rejection
func IsOutsideRoot(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeOutsideRoot
}

// IsNotFound checks if an error is a missing or non-regular file
func IsNotFound(err error) bool {
	t, ok := typeOf(err)
	return ok && t == ErrTypeNotFound
}
