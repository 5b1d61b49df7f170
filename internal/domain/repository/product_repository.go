package repository

import (
	"context"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/google/uuid"
)

// ProductRepository defines the read side of the catalogue used by the sale
// ledger. Product maintenance itself lives in the inventory screens.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products by their IDs in a single query (prevents N+1)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
}
