// Package errors provides structured error types for the expression parser.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and the library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNKNOWN_LABEL: A symbol label without size metrics
//   - ARITY, NO_RELATION, NO_ROOT, DISCONNECTED: Structural failures while
//     turning symbols into an expression
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownLabel, "no default size for %q", label)
//	if errors.Is(err, errors.ErrCodeUnknownLabel) {
//	    // Handle unsupported symbol
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidLabel      Code = "INVALID_LABEL"
	ErrCodeInvalidBox        Code = "INVALID_BOX"
	ErrCodeInvalidPath       Code = "INVALID_PATH"
	ErrCodeInvalidConnection Code = "INVALID_CONNECTION"

	// Symbol table errors
	ErrCodeUnknownLabel Code = "UNKNOWN_LABEL"

	// Structural errors raised while building or rendering an expression
	ErrCodeArity        Code = "ARITY"
	ErrCodeNoRelation   Code = "NO_RELATION"
	ErrCodeNoRoot       Code = "NO_ROOT"
	ErrCodeDisconnected Code = "DISCONNECTED"

	// Resource errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeUnavailable  Code = "UNAVAILABLE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
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
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Structural reports whether err means the symbols could not be assembled
// into a single expression. Such errors point at mis-segmentation or
// mis-classification upstream and are not worth retrying.
func Structural(err error) bool {
	switch GetCode(err) {
	case ErrCodeArity, ErrCodeNoRoot, ErrCodeDisconnected, ErrCodeUnknownLabel:
		return true
	}
	return false
}
