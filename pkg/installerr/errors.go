// Package installerr defines the structured error type used across the
// installer, with stable codes for testing and exit-code mapping.
package installerr

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes, grouped by the taxonomy the front-end maps to exit codes.
const (
	ErrUnknown ErrorCode = "UNKNOWN"

	// Configuration errors: fatal before any filesystem mutation.
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrShellUnknown  ErrorCode = "SHELL_UNKNOWN"

	// Selection errors: a requested script name is not in the manifest.
	ErrSelectionNotFound ErrorCode = "SELECTION_NOT_FOUND"

	// Scan errors: the repository itself cannot be read.
	ErrRepoRead ErrorCode = "REPO_READ"

	// I/O errors during execution: fatal, abort the remaining plan.
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrLinkRemove    ErrorCode = "LINK_REMOVE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
)

// InstallError represents a structured error with code and details
type InstallError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *InstallError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *InstallError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *InstallError) Is(target error) bool {
	var targetErr *InstallError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new InstallError with the given code and message
func New(code ErrorCode, message string) *InstallError {
	return &InstallError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new InstallError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *InstallError {
	return &InstallError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an InstallError
func Wrap(err error, code ErrorCode, message string) *InstallError {
	if err == nil {
		return nil
	}
	return &InstallError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *InstallError {
	if err == nil {
		return nil
	}
	return &InstallError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *InstallError) WithDetail(key string, value interface{}) *InstallError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var instErr *InstallError
	if errors.As(err, &instErr) {
		return instErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if
// the error is not an InstallError
func GetErrorCode(err error) ErrorCode {
	var instErr *InstallError
	if errors.As(err, &instErr) {
		return instErr.Code
	}
	return ErrUnknown
}
