package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	domainRepo "github.com/eyeroniq/poslite/internal/domain/repository"
	"github.com/eyeroniq/poslite/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stockLedger struct {
	db     *gorm.DB
	policy domainRepo.StockPolicy
}

// NewStockLedger creates a stock ledger over the products table
func NewStockLedger(db *gorm.DB, policy domainRepo.StockPolicy) domainRepo.StockLedger {
	return &stockLedger{db: db, policy: policy}
}

// Reserve atomically decrements stock only if sufficient quantity exists.
// Uses: UPDATE products SET quantity = quantity - qty WHERE id = ? AND kind = 'GOOD' AND quantity >= qty
func (l *stockLedger) Reserve(ctx context.Context, productID uuid.UUID, qty int, saleID *uuid.UUID) error {
	if qty <= 0 {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "must be greater than zero"},
		})
	}

	return inTx(ctx, l.db, func(tx *gorm.DB) error {
		query := tx.Model(&entity.Product{}).
			Where("id = ? AND kind = ?", productID, enum.ProductKindGood)
		if !l.policy.AllowBackorder {
			query = query.Where("quantity >= ?", qty)
		}

		result := query.Update("quantity", gorm.Expr("quantity - ?", qty))
		if result.Error != nil {
			return fmt.Errorf("reserve stock for %s: %w", productID, result.Error)
		}

		if result.RowsAffected == 0 {
			// Either a service, an unknown product, or not enough on hand
			product, err := l.lookup(tx, productID, false)
			if err != nil {
				return err
			}
			if !product.TracksStock() {
				return nil
			}
			return apperror.NewInsufficientStockError(apperror.Shortage{
				ProductID:   product.ID.String(),
				ProductName: product.Name,
				Requested:   qty,
				Available:   product.Quantity,
			})
		}

		return l.journal(tx, productID, -qty, entity.MovementReasonSale, saleID)
	})
}

// Restore atomically increments stock for a good (for cancellations/returns).
// Soft-deleted products are still restored so historical sales stay reversible.
func (l *stockLedger) Restore(ctx context.Context, productID uuid.UUID, qty int, saleID *uuid.UUID) error {
	if qty <= 0 {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "quantity", Message: "must be greater than zero"},
		})
	}

	return inTx(ctx, l.db, func(tx *gorm.DB) error {
		result := tx.Unscoped().Model(&entity.Product{}).
			Where("id = ? AND kind = ?", productID, enum.ProductKindGood).
			Update("quantity", gorm.Expr("quantity + ?", qty))
		if result.Error != nil {
			return fmt.Errorf("restore stock for %s: %w", productID, result.Error)
		}

		if result.RowsAffected == 0 {
			// Services have nothing to restore
			if _, err := l.lookup(tx, productID, true); err != nil {
				return err
			}
			return nil
		}

		return l.journal(tx, productID, qty, entity.MovementReasonRestore, saleID)
	})
}

func (l *stockLedger) Movements(ctx context.Context, productID uuid.UUID) ([]entity.StockMovement, error) {
	var movements []entity.StockMovement
	err := conn(ctx, l.db).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}

func (l *stockLedger) lookup(tx *gorm.DB, productID uuid.UUID, unscoped bool) (*entity.Product, error) {
	if unscoped {
		tx = tx.Unscoped()
	}
	var product entity.Product
	err := tx.First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", productID))
	}
	if err != nil {
		return nil, fmt.Errorf("load product %s: %w", productID, err)
	}
	return &product, nil
}

// journal records the movement just applied. The row was locked by the
// preceding update, so the quantity read here is the post-update value.
func (l *stockLedger) journal(tx *gorm.DB, productID uuid.UUID, delta int, reason string, saleID *uuid.UUID) error {
	var after int
	err := tx.Unscoped().Model(&entity.Product{}).
		Select("quantity").
		Where("id = ?", productID).
		Scan(&after).Error
	if err != nil {
		return fmt.Errorf("read stock for %s: %w", productID, err)
	}

	movement := &entity.StockMovement{
		ProductID: productID,
		SaleID:    saleID,
		Reason:    reason,
		Delta:     delta,
		Before:    after - delta,
		After:     after,
	}
	if err := tx.Create(movement).Error; err != nil {
		return fmt.Errorf("journal stock movement for %s: %w", productID, err)
	}
	return nil
}
