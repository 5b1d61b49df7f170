package repository

import (
	"context"
	"time"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/eyeroniq/poslite/pkg/pagination"
	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create persists the sale header together with its items.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetWithItems loads the sale, its items (with products) and its client.
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// MarkCancelled flips a completed sale to cancelled. It reports false when
	// the sale was not in a state this call could transition.
	MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Kind       *enum.SaleKind
	Status     *enum.SaleStatus
	UserID     *uuid.UUID
	ClientID   *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
}
