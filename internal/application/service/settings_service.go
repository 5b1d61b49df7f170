package service

import (
	"context"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/eyeroniq/poslite/internal/domain/repository"
	"github.com/eyeroniq/poslite/pkg/apperror"
)

// SettingsService handles the store identity and printer settings
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves the store settings, or the defaults if none were saved
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// UpdateSettingsInput represents the input for updating settings.
// Nil fields are left unchanged.
type UpdateSettingsInput struct {
	StoreName     *string
	StoreAddress  *string
	StorePhone    *string
	StoreLogoURL  *string
	ReceiptFooter *string
	PrinterFamily *enum.PrinterFamily
	PrinterWidth  *int
}

// UpdateSettings updates the store settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.Settings, error) {
	var fieldErrors []apperror.FieldError
	if input.PrinterFamily != nil && !input.PrinterFamily.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "printer_family", Message: "must be THERMAL or PDF_ONLY"})
	}
	if input.PrinterWidth != nil && *input.PrinterWidth != enum.PaperWidth58 && *input.PrinterWidth != enum.PaperWidth80 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "printer_width", Message: "must be 58 or 80"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	// Update fields
	if input.StoreName != nil {
		settings.StoreName = *input.StoreName
	}
	if input.StoreAddress != nil {
		settings.StoreAddress = *input.StoreAddress
	}
	if input.StorePhone != nil {
		settings.StorePhone = *input.StorePhone
	}
	if input.StoreLogoURL != nil {
		settings.StoreLogoURL = *input.StoreLogoURL
	}
	if input.ReceiptFooter != nil {
		settings.ReceiptFooter = *input.ReceiptFooter
	}
	if input.PrinterFamily != nil {
		settings.PrinterFamily = *input.PrinterFamily
	}
	if input.PrinterWidth != nil {
		settings.PrinterWidth = *input.PrinterWidth
	}
	settings.Normalize()

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}
