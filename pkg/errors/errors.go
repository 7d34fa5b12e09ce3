// Package errors provides structured error types for pypin.
//
// Every failure pypin reports carries a machine-readable [Code] so callers
// can branch on the kind of failure rather than on message text:
//
//   - Per-package failures ([Local]): PACKAGE_NOT_FOUND, FETCH_ERROR,
//     INVALID_RESPONSE, NETWORK_ERROR, NO_QUALIFYING_RELEASE. These are
//     reported and the run continues with the next package.
//   - Structural failures: INVALID_DATE_FORMAT, FILE_NOT_FOUND,
//     PERMISSION_DENIED, INTERRUPTED. These end the run with a non-zero exit.
//
// # Usage
//
//	err := errors.New(errors.ErrCodePackageNotFound, "package %s not found on PyPI", name)
//	if errors.Is(err, errors.ErrCodePackageNotFound) {
//	    // report and continue
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch %s", url)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidDateFormat Code = "INVALID_DATE_FORMAT"
	ErrCodeInvalidPackage    Code = "INVALID_PACKAGE"

	// Per-package resolution errors
	ErrCodePackageNotFound     Code = "PACKAGE_NOT_FOUND"
	ErrCodeFetch               Code = "FETCH_ERROR"
	ErrCodeInvalidResponse     Code = "INVALID_RESPONSE"
	ErrCodeNetwork             Code = "NETWORK_ERROR"
	ErrCodeNoQualifyingRelease Code = "NO_QUALIFYING_RELEASE"

	// File system errors
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"
	ErrCodePermissionDenied Code = "PERMISSION_DENIED"

	// Run control
	ErrCodeInterrupted Code = "INTERRUPTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Status  int    // HTTP status for FETCH_ERROR, zero otherwise
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

// FetchError creates a FETCH_ERROR for an unexpected HTTP status.
func FetchError(status int, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeFetch,
		Message: fmt.Sprintf(format, args...),
		Status:  status,
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
// Context cancellation maps to ErrCodeInterrupted. Returns empty string
// for any other error that is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	if errors.Is(err, context.Canceled) {
		return ErrCodeInterrupted
	}
	return ""
}

// StatusOf returns the HTTP status recorded on a FETCH_ERROR, or 0.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
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

// Local reports whether err is a per-package failure that should be reported
// without aborting the run.
func Local(err error) bool {
	switch GetCode(err) {
	case ErrCodePackageNotFound, ErrCodeFetch, ErrCodeInvalidResponse,
		ErrCodeNetwork, ErrCodeNoQualifyingRelease, ErrCodeInvalidPackage:
		return true
	}
	return false
}
