package entity

import (
	"time"

	"github.com/eyeroniq/poslite/internal/domain/enum"
)

// SettingsID is the primary key of the singleton settings row
const SettingsID = "default"

// DefaultStoreName is printed when no store name was configured
const DefaultStoreName = "PoS Lite"

// Settings holds the store identity and receipt printer configuration.
// It is owned by the settings screens; the sale ledger only reads it.
type Settings struct {
	ID            string             `gorm:"size:20;primary_key" json:"id"`
	StoreName     string             `gorm:"size:255" json:"store_name"`
	StoreAddress  string             `gorm:"type:text" json:"store_address"`
	StorePhone    string             `gorm:"size:50" json:"store_phone"`
	StoreLogoURL  string             `gorm:"size:255" json:"store_logo_url"`
	ReceiptFooter string             `gorm:"type:text" json:"receipt_footer"`
	PrinterFamily enum.PrinterFamily `gorm:"size:20;default:THERMAL" json:"printer_family"`
	PrinterWidth  int                `gorm:"default:80" json:"printer_width"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// TableName returns the table name for the Settings model
func (Settings) TableName() string {
	return "settings"
}

// DefaultSettings returns the settings used before any were saved
func DefaultSettings() *Settings {
	return &Settings{
		ID:            SettingsID,
		StoreName:     DefaultStoreName,
		PrinterFamily: enum.PrinterFamilyThermal,
		PrinterWidth:  enum.PaperWidth80,
	}
}

// Normalize fills in defaults for unset or invalid fields
func (s *Settings) Normalize() {
	if s.StoreName == "" {
		s.StoreName = DefaultStoreName
	}
	if !s.PrinterFamily.Valid() {
		s.PrinterFamily = enum.PrinterFamilyThermal
	}
	if s.PrinterWidth != enum.PaperWidth58 && s.PrinterWidth != enum.PaperWidth80 {
		s.PrinterWidth = enum.PaperWidth80
	}
}
