// Package apperrors holds the errors the API reports to clients, each bound to an HTTP status.
package apperrors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError is an error that knows how it is rendered to the client.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing message
	Details() string   // Optional detail, e.g. the underlying store error
}

// BaseError is the basic AppError implementation.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	if e.details != "" {
		return e.message + ": " + e.details
	}
	return e.message
}

func (e *BaseError) HTTPCode() int     { return e.httpCode }
func (e *BaseError) ErrorCode() string { return e.errorCode }
func (e *BaseError) Message() string   { return e.message }
func (e *BaseError) Details() string   { return e.details }

// Is matches any BaseError carrying the same error code, so copies made by
// WithDetails and WithMessage still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}
	return t.errorCode == e.errorCode
}

// WithDetails returns a copy carrying details.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage returns a copy with a different user-facing message.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

var (
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_ERROR",
		"Invalid request",
		"",
	)

	ErrTooManyValues = NewBaseError(
		http.StatusBadRequest,
		"TOO_MANY_VALUES",
		"Too many values for filter",
		"",
	)

	ErrNoFile = NewBaseError(
		http.StatusBadRequest,
		"NO_FILE",
		"No file uploaded.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"No animal found with the given ID.",
		"",
	)

	ErrInvalidCursor = NewBaseError(
		http.StatusNotFound,
		"INVALID_CURSOR",
		"Invalid startAfter ID",
		"",
	)

	ErrStoreFailure = NewBaseError(
		http.StatusInternalServerError,
		"STORE_FAILURE",
		"Record store request failed",
		"",
	)

	ErrStorageFailure = NewBaseError(
		http.StatusInternalServerError,
		"STORAGE_FAILURE",
		"An error occurred uploading the file",
		"",
	)
)

// Validation builds a validation error with a specific message.
func Validation(message string) error {
	return ErrValidation.WithMessage(message)
}

// StoreFailure wraps a record store error, surfacing its message to the client.
func StoreFailure(message string, err error) error {
	return errors.WithStack(ErrStoreFailure.WithMessage(message).WithDetails(err.Error()))
}

// StorageFailure wraps an object storage error.
func StorageFailure(err error) error {
	return errors.WithStack(ErrStorageFailure.WithDetails(err.Error()))
}

// From extracts the AppError from err's chain.
func From(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
