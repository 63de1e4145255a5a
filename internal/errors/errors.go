// Package errors provides structured error types for blobposter.
//
// Every failure that crosses a component boundary carries a Code so the
// HTTP shell and the CLI can react to it without string matching:
//
//	err := errors.New(errors.ErrCodeLookup, "unknown theme %q", name)
//	if errors.Is(err, errors.ErrCodeLookup) {
//	    // 404
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// ErrCodeData marks a missing, unreadable or malformed color table.
	ErrCodeData Code = "DATA_ERROR"
	// ErrCodeLookup marks a theme name that is not in the palette.
	ErrCodeLookup Code = "LOOKUP_ERROR"
	// ErrCodeInvalidParameter marks an out-of-range generation parameter.
	ErrCodeInvalidParameter Code = "INVALID_PARAMETER"
	// ErrCodeInvalidFormat marks an unsupported output format.
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	// ErrCodeInvalidConfig marks a bad configuration file or value.
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	// ErrCodeInternal marks an unexpected failure.
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns an empty string if the chain holds no *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message chain without code prefixes.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
