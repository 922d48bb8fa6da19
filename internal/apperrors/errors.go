package apperrors

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies the class of failure.
type ErrorCode string

const (
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodePersistenceError   ErrorCode = "PERSISTENCE_ERROR"
	CodeStorageError       ErrorCode = "STORAGE_ERROR"
	CodePreconditionFailed ErrorCode = "PRECONDITION_FAILED"

	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// AppError carries a stable code, a short user-facing message and the
// wrapped cause.
type AppError struct {
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
	Err      error     `json:"-"`
	HTTPCode int       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError without a cause.
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap builds an AppError around a cause.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// Validation flags bad user input caught before any I/O.
func Validation(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

// Persistence flags a failed structured-store operation.
func Persistence(err error, message string) *AppError {
	return Wrap(err, CodePersistenceError, message, http.StatusInternalServerError)
}

// Storage flags a failed object-store operation.
func Storage(err error, message string) *AppError {
	return Wrap(err, CodeStorageError, message, http.StatusBadGateway)
}

// Precondition flags an operation invoked without required state.
func Precondition(message string) *AppError {
	return New(CodePreconditionFailed, message, http.StatusConflict)
}
