package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorsMatchByKind(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target *AppError
		kind   Kind
		code   int
	}{
		{"validation", NewValidationError([]FieldError{{Field: "items", Message: "required"}}), ErrValidation, KindValidation, http.StatusUnprocessableEntity},
		{"insufficient stock", NewInsufficientStockError(Shortage{ProductName: "Widget", Requested: 5, Available: 2}), ErrInsufficientStock, KindInsufficientStock, http.StatusConflict},
		{"not found", NewNotFoundError("Sale"), ErrNotFound, KindNotFound, http.StatusNotFound},
		{"invalid operation", NewInvalidOperationError("Quotes cannot be cancelled"), ErrInvalidOperation, KindInvalidOperation, http.StatusConflict},
		{"print failed", NewPrintFailedError(errors.New("no font")), ErrPrintFailed, KindPrintFailed, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("emit: %w", tt.err)
			if !errors.Is(wrapped, tt.target) {
				t.Errorf("errors.Is(%v, %s) = false", wrapped, tt.target.Kind)
			}
			if errors.Is(wrapped, ErrInternal) {
				t.Error("should not match a different kind")
			}
			if got := KindOf(wrapped); got != tt.kind {
				t.Errorf("KindOf() = %s, want %s", got, tt.kind)
			}
			if got := GetAppError(wrapped).Code; got != tt.code {
				t.Errorf("Code = %d, want %d", got, tt.code)
			}
		})
	}
}

func TestInsufficientStockMessage(t *testing.T) {
	err := NewInsufficientStockError(Shortage{ProductID: "p1", ProductName: "Widget", Requested: 5, Available: 2})
	want := "Insufficient stock for Widget: requested 5, available 2"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestForeignErrorsAreInternal(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := GetAppError(cause)

	if appErr.Kind != KindInternal {
		t.Errorf("Kind = %s, want INTERNAL", appErr.Kind)
	}
	if !errors.Is(appErr, cause) {
		t.Error("internal error should unwrap to its cause")
	}
	if IsAppError(cause) {
		t.Error("IsAppError() = true for a plain error")
	}
}
