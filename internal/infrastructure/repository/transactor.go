package repository

import (
	"context"

	domainRepo "github.com/eyeroniq/poslite/internal/domain/repository"
	"gorm.io/gorm"
)

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a gorm-backed unit of work
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

// WithinTransaction joins the caller's transaction when one is already open,
// so nested units of work commit or roll back together.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
