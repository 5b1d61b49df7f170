package repository

import (
	"context"
	"errors"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	domainRepo "github.com/eyeroniq/poslite/internal/domain/repository"
	"gorm.io/gorm"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get retrieves the singleton settings row. Missing settings are not
// created here; the defaults are returned instead.
func (r *settingsRepository) Get(ctx context.Context) (*entity.Settings, error) {
	var settings entity.Settings
	err := conn(ctx, r.db).First(&settings, "id = ?", entity.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	settings.Normalize()
	return &settings, nil
}

// Save upserts the singleton settings row
func (r *settingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	settings.ID = entity.SettingsID
	return conn(ctx, r.db).Save(settings).Error
}
