package repository

import (
	"context"

	"github.com/eyeroniq/poslite/internal/domain/entity"
)

// SettingsRepository defines the interface for settings data access
type SettingsRepository interface {
	// Get returns the stored settings, or the defaults when none were saved.
	Get(ctx context.Context) (*entity.Settings, error)
	Save(ctx context.Context, settings *entity.Settings) error
}
