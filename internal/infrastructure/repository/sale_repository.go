package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	domainRepo "github.com/eyeroniq/poslite/internal/domain/repository"
	"github.com/eyeroniq/poslite/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Create inserts the header and then the items. Associations are omitted so
// the snapshot item rows never upsert the products they reference.
func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return inTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(sale).Error; err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		if len(sale.Items) == 0 {
			return nil
		}

		for i := range sale.Items {
			sale.Items[i].SaleID = sale.ID
			sale.Items[i].Position = i
		}
		if err := tx.Omit(clause.Associations).Create(&sale.Items).Error; err != nil {
			return fmt.Errorf("create sale items: %w", err)
		}
		return nil
	})
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).
		Preload("Client", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

// MarkCancelled is a compare-and-set on the status column. Concurrent callers
// serialize on the row; only the first sees a completed sale.
func (r *saleRepository) MarkCancelled(ctx context.Context, id uuid.UUID) (bool, error) {
	result := conn(ctx, r.db).Model(&entity.Sale{}).
		Where("id = ? AND kind = ? AND status = ?", id, enum.SaleKindSale, enum.SaleStatusCompleted).
		Update("status", enum.SaleStatusCancelled)
	if result.Error != nil {
		return false, fmt.Errorf("cancel sale %s: %w", id, result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := conn(ctx, r.db).Model(&entity.Sale{})

	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("created_at DESC").
		Find(&sales).Error

	return sales, total, err
}
