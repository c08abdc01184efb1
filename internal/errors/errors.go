// Package errors defines stable error codes for archview's failure modes.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ConfigInvalid indicates the configuration file could not be used
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// TreeUnreadable indicates a source tree root could not be walked
	TreeUnreadable ErrorCode = "TREE_UNREADABLE"
	// OutputWriteFailed indicates the diagram document could not be written
	OutputWriteFailed ErrorCode = "OUTPUT_WRITE_FAILED"
	// HistoryUnavailable indicates the run history store could not be opened
	HistoryUnavailable ErrorCode = "HISTORY_UNAVAILABLE"
	// RunNotFound indicates no stored run matches the requested id
	RunNotFound ErrorCode = "RUN_NOT_FOUND"
	// RunAmbiguous indicates a run id prefix matches more than one run
	RunAmbiguous ErrorCode = "RUN_AMBIGUOUS"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// Error carries a stable code, a human message, and an optional cause.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	cause   error
}

// New creates a coded error.
func New(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf returns the code carried by err, or InternalError for plain errors.
func CodeOf(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return InternalError
}
