package database

import (
	"fmt"

	"github.com/eyeroniq/poslite/internal/config"
	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database selected by cfg.Driver
func Open(cfg *config.DatabaseConfig, env string) (*gorm.DB, error) {
	switch cfg.Driver {
	case "postgres", "":
		return NewPostgresDB(cfg, env)
	case "sqlite":
		return NewSQLiteDB(cfg.SQLitePath, env)
	default:
		return nil, fmt.Errorf("unknown database driver %q (use postgres or sqlite)", cfg.Driver)
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, env string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(env)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	zap.L().Info("connected to PostgreSQL database", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// NewSQLiteDB opens an embedded database file, used by single-till
// installations and by tests. SQLite allows one writer at a time, so the pool
// is limited to a single connection and transactions queue on it.
func NewSQLiteDB(path, env string) (*gorm.DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(env)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	zap.L().Info("opened SQLite database", zap.String("path", path))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	zap.L().Info("running database migrations")

	err := db.AutoMigrate(
		// Catalogue and parties
		&entity.Product{},
		&entity.Client{},

		// Ledger
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.StockMovement{},

		// System
		&entity.Settings{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	zap.L().Info("database migrations completed")
	return nil
}

// SeedDefaultData creates the settings row when none exists
func SeedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Settings{}).Where("id = ?", entity.SettingsID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check settings: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(entity.DefaultSettings()).Error; err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	zap.L().Info("seeded default settings")
	return nil
}

func logLevel(env string) logger.LogLevel {
	switch env {
	case "production":
		return logger.Warn
	case "test":
		return logger.Silent
	default:
		return logger.Info
	}
}
