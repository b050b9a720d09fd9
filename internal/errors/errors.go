// Package errors carries the dashboard's error codes. Every error that reaches a
// handler or the CLI is either an *AppError or is reported as INTERNAL_ERROR.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeDatabaseError = "DATABASE_ERROR"
	CodeDatasetLoad   = "DATASET_LOAD"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError is an error with a code the web layer and CLI can act on
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func newError(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// Wrap adds context to err. The code of a wrapped AppError is kept; anything else
// becomes INTERNAL_ERROR.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return newError(GetCode(err), message, err)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the outermost AppError in err's chain
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternalError
}

// HasCode reports whether any AppError in err's chain carries code
func HasCode(err error, code string) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.Code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// HTTPStatus maps err's code to a response status
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func ConfigInvalid(message string) *AppError {
	return newError(CodeConfigInvalid, message, nil)
}

func DatabaseError(message string, cause error) *AppError {
	return newError(CodeDatabaseError, message, cause)
}

// DatasetLoad marks a missing or malformed input dataset. It is fatal at startup.
func DatasetLoad(message string, cause error) *AppError {
	return newError(CodeDatasetLoad, message, cause)
}

// InvalidInput rejects a UI event, query or flag; the view-state is left unchanged
func InvalidInput(message string) *AppError {
	return newError(CodeInvalidInput, message, nil)
}

func NotFound(resource string) *AppError {
	return newError(CodeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

func InternalError(message string) *AppError {
	return newError(CodeInternalError, message, nil)
}
