package repository

import (
	"context"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/google/uuid"
)

// StockPolicy controls whether reservations may drive stock below zero.
type StockPolicy struct {
	AllowBackorder bool
}

// StockLedger tracks quantity-on-hand for goods.
//
// Both operations are no-ops for services. Reserve is a compare-and-decrement
// and fails with an InsufficientStock error when the decrement would go
// below zero (unless the policy allows backorders). Restore has no upper
// bound: callers must only restore quantities they previously reserved.
type StockLedger interface {
	Reserve(ctx context.Context, productID uuid.UUID, qty int, saleID *uuid.UUID) error
	Restore(ctx context.Context, productID uuid.UUID, qty int, saleID *uuid.UUID) error
	// Movements returns the journal for a product, oldest first.
	Movements(ctx context.Context, productID uuid.UUID) ([]entity.StockMovement, error)
}
