package repository

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key carrying the active unit of work
const txKey ctxKey = "gorm_tx"

// withTx stores the active transaction in the context
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// txFromContext extracts the active transaction, if any
func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	return tx, ok
}

// conn returns the transaction carried by ctx, or the base handle when the
// caller is not inside a unit of work.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// inTx runs fn inside the caller's transaction, or opens one when there is none
func inTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if tx, ok := txFromContext(ctx); ok {
		return fn(tx.WithContext(ctx))
	}
	return db.WithContext(ctx).Transaction(fn)
}
