// Package errors provides structured error types for the cabinet designer.
//
// Every validated mutation on a cabinet either applies fully or fails with an
// *Error carrying a machine-readable [Code]. Collaborators (CLI, web server)
// switch on the code or show [UserMessage] and keep the previous valid state.
//
// # Error Codes
//
// Model validation codes mirror the cabinet's mutation contract:
//   - INVALID_WIDTH, INDEX_OUT_OF_RANGE, HEIGHT_TOO_SMALL, HEIGHT_OUT_OF_RANGE
//   - PLINTH_OUT_OF_RANGE, DUPLICATE_SHELF, CAPACITY_EXCEEDED, COLLISION_BLOCKED
//
// Persistence uses LOAD_FAILED, wrapping the triggering cause. The remaining
// codes cover the ambient surfaces (CLI arguments, store names, formats).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidWidth, "invalid width %d", w)
//	if errors.Is(err, errors.ErrCodeInvalidWidth) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLoadFailed, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Cabinet model validation errors.
const (
	ErrCodeInvalidWidth     Code = "INVALID_WIDTH"
	ErrCodeIndexOutOfRange  Code = "INDEX_OUT_OF_RANGE"
	ErrCodeHeightTooSmall   Code = "HEIGHT_TOO_SMALL"
	ErrCodeHeightOutOfRange Code = "HEIGHT_OUT_OF_RANGE"
	ErrCodePlinthOutOfRange Code = "PLINTH_OUT_OF_RANGE"
	ErrCodeDuplicateShelf   Code = "DUPLICATE_SHELF"
	ErrCodeCapacityExceeded Code = "CAPACITY_EXCEEDED"
	ErrCodeCollisionBlocked Code = "COLLISION_BLOCKED"
	ErrCodeLoadFailed       Code = "LOAD_FAILED"
)

// Ambient errors.
const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
	ErrCodeUnsupported   Code = "UNSUPPORTED"
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
