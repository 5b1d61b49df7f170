package entity

import (
	"time"

	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale represents a completed sale or a quote.
// A sale is immutable once created except for the Completed -> Cancelled
// status transition.
type Sale struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Kind          enum.SaleKind      `gorm:"size:20;not null;index" json:"kind"`
	Status        enum.SaleStatus    `gorm:"size:20;not null;index" json:"status"`
	Total         decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"total"`
	PaymentMethod enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	UserID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	UserName      string             `gorm:"size:255" json:"user_name"` // display name at sale time
	ClientID      *uuid.UUID         `gorm:"type:uuid;index" json:"client_id,omitempty"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Client *Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Items  []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// IsCancelled reports whether the sale reached its terminal state
func (s *Sale) IsCancelled() bool {
	return s.Status == enum.SaleStatusCancelled
}

// SaleItem represents a line item in a sale. UnitPrice and ProductName are
// captured at sale time and never follow later catalogue changes.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string          `gorm:"size:255" json:"product_name"`
	Position    int             `gorm:"not null;default:0" json:"position"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// Extension returns quantity x unit price
func (i *SaleItem) Extension() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// DisplayName returns the name to print for this line
func (i *SaleItem) DisplayName() string {
	if i.ProductName != "" {
		return i.ProductName
	}
	if i.Product.Name != "" {
		return i.Product.Name
	}
	return "Product"
}
