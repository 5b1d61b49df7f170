package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindNotFound          Kind = "NOT_FOUND"
	KindInvalidOperation  Kind = "INVALID_OPERATION"
	KindPrintFailed       Kind = "PRINT_FAILED"
	KindInternal          Kind = "INTERNAL"
)

// AppError represents an application error. Code is the HTTP status an
// inbound boundary should answer with.
type AppError struct {
	Kind     Kind         `json:"kind"`
	Code     int          `json:"code"`
	Message  string       `json:"message"`
	Errors   []FieldError `json:"errors,omitempty"`
	Shortage *Shortage    `json:"shortage,omitempty"`
	cause    error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Shortage describes the product that could not be reserved.
type Shortage struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches any AppError of the same kind, so callers can write
// errors.Is(err, apperror.ErrNotFound).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is matching
var (
	ErrValidation        = &AppError{Kind: KindValidation, Code: http.StatusUnprocessableEntity, Message: "Validation failed"}
	ErrInsufficientStock = &AppError{Kind: KindInsufficientStock, Code: http.StatusConflict, Message: "Insufficient stock"}
	ErrNotFound          = &AppError{Kind: KindNotFound, Code: http.StatusNotFound, Message: "Resource not found"}
	ErrInvalidOperation  = &AppError{Kind: KindInvalidOperation, Code: http.StatusConflict, Message: "Invalid operation"}
	ErrPrintFailed       = &AppError{Kind: KindPrintFailed, Code: http.StatusInternalServerError, Message: "Print failed"}
	ErrInternal          = &AppError{Kind: KindInternal, Code: http.StatusInternalServerError, Message: "Internal error"}
)

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewInsufficientStockError names the product whose reservation failed.
func NewInsufficientStockError(s Shortage) *AppError {
	return &AppError{
		Kind: KindInsufficientStock,
		Code: http.StatusConflict,
		Message: fmt.Sprintf("Insufficient stock for %s: requested %d, available %d",
			s.ProductName, s.Requested, s.Available),
		Shortage: &s,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewInvalidOperationError creates an invalid operation error
func NewInvalidOperationError(message string) *AppError {
	return &AppError{
		Kind:    KindInvalidOperation,
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewPrintFailedError wraps the error that exhausted the last output backend.
func NewPrintFailedError(cause error) *AppError {
	return &AppError{
		Kind:    KindPrintFailed,
		Code:    http.StatusInternalServerError,
		Message: "Failed to print receipt",
		cause:   cause,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: "Internal error",
		cause:   err,
	}
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	return GetAppError(err).Kind
}
