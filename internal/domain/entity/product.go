package entity

import (
	"time"

	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a sellable good or service.
// Quantity is only meaningful for goods; services are never decremented.
type Product struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Name      string           `gorm:"size:255;not null" json:"name"`
	Kind      enum.ProductKind `gorm:"size:20;not null;default:GOOD;index" json:"kind"`
	Price     decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Cost      decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"cost"`
	Quantity  int              `gorm:"not null;default:0" json:"quantity"`
	Barcode   *string          `gorm:"size:100;uniqueIndex" json:"barcode,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// TracksStock reports whether sales of this product move the stock ledger
func (p *Product) TracksStock() bool {
	return p.Kind.TracksStock()
}
