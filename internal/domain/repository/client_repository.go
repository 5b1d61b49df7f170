package repository

import (
	"context"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client lookups
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
}
