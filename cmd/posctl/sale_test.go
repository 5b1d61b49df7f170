package main

import (
	"errors"
	"testing"

	"github.com/eyeroniq/poslite/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestParseItem(t *testing.T) {
	id := uuid.MustParse("3f2c1b0a-9e8d-4c7b-a6f5-e4d3c2b1a090")

	tests := []struct {
		raw       string
		wantQty   int
		wantPrice string
		wantErr   bool
	}{
		{raw: id.String() + ":3", wantQty: 3},
		{raw: id.String() + ":1:8.50", wantQty: 1, wantPrice: "8.5"},
		{raw: id.String(), wantErr: true},
		{raw: "widget:3", wantErr: true},
		{raw: id.String() + ":three", wantErr: true},
		{raw: id.String() + ":1:cheap", wantErr: true},
		{raw: id.String() + ":1:2:3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			item, err := parseItem(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseItem() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if item.ProductID != id || item.Quantity != tt.wantQty {
				t.Errorf("parseItem() = %+v", item)
			}
			switch {
			case tt.wantPrice == "" && item.UnitPrice != nil:
				t.Errorf("UnitPrice = %s, want catalogue price", item.UnitPrice)
			case tt.wantPrice != "" && (item.UnitPrice == nil || !item.UnitPrice.Equal(decimal.RequireFromString(tt.wantPrice))):
				t.Errorf("UnitPrice = %v, want %s", item.UnitPrice, tt.wantPrice)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	err := describe(apperror.NewValidationError([]apperror.FieldError{
		{Field: "items", Message: "at least one item is required"},
		{Field: "total", Message: "must not be negative"},
	}))
	want := "Validation failed: items at least one item is required; total must not be negative"
	if err.Error() != want {
		t.Errorf("describe() = %q, want %q", err.Error(), want)
	}

	plain := errors.New("connection refused")
	if got := describe(plain); got != plain {
		t.Errorf("describe() = %v, want the original error", got)
	}

	notFound := apperror.NewNotFoundError("Sale")
	if got := describe(notFound); !errors.Is(got, apperror.ErrNotFound) {
		t.Errorf("describe() = %v, want not found", got)
	}
}
