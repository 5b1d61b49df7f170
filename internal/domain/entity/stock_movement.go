package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Stock movement reasons
const (
	MovementReasonSale    = "sale"
	MovementReasonRestore = "cancel_restore"
)

// StockMovement journals every change the stock ledger applies to a product.
// Delta is negative for reservations and positive for restorations.
type StockMovement struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	SaleID    *uuid.UUID `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	Reason    string     `gorm:"size:50;not null" json:"reason"`
	Delta     int        `gorm:"not null" json:"delta"`
	Before    int        `gorm:"not null" json:"before"`
	After     int        `gorm:"not null" json:"after"`
	CreatedAt time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new movement
func (m *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
