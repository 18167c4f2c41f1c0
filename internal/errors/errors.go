// Package errors provides the error kinds shared by the Continuum core and
// its outer surfaces. Every service-layer failure is an *AppError so callers
// can branch on Code without parsing messages, and HTTP responses never leak
// storage internals.
package errors

import (
	stderrors "errors"
	"net/http"
)

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches on Code so wrapped copies compare equal to their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WrapWithMessage combines WithMessage and Wrap.
func WrapWithMessage(sentinel *AppError, message string, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrValidation     = &AppError{Code: "VALIDATION_FAILED", Message: "Validation failed", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Storage errors. Never retried.
var (
	ErrPersistence = &AppError{Code: "PERSISTENCE_ERROR", Message: "The data store could not complete the operation", StatusCode: http.StatusInternalServerError}
)

// Subscription errors.
var (
	ErrSubscriptionNotFound = &AppError{Code: "SUBSCRIPTION_NOT_FOUND", Message: "Subscription not found", StatusCode: http.StatusNotFound}
)

// Asset errors.
var (
	ErrAssetNotFound = &AppError{Code: "ASSET_NOT_FOUND", Message: "Asset not found", StatusCode: http.StatusNotFound}
)

// Warranty errors.
var (
	ErrWarrantyNotFound = &AppError{Code: "WARRANTY_NOT_FOUND", Message: "Warranty not found", StatusCode: http.StatusNotFound}
)

// Backup errors.
var (
	ErrInvalidSnapshot            = &AppError{Code: "INVALID_SNAPSHOT", Message: "The backup file could not be read", StatusCode: http.StatusBadRequest}
	ErrUnsupportedSnapshotVersion = &AppError{Code: "UNSUPPORTED_SNAPSHOT_VERSION", Message: "The backup file was created by a newer version", StatusCode: http.StatusBadRequest}
	ErrSnapshotTooLarge           = &AppError{Code: "SNAPSHOT_TOO_LARGE", Message: "The backup file is too large", StatusCode: http.StatusRequestEntityTooLarge}
)
