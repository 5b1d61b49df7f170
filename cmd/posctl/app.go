package main

import (
	"github.com/eyeroniq/poslite/internal/application/service"
	"github.com/eyeroniq/poslite/internal/config"
	domainRepo "github.com/eyeroniq/poslite/internal/domain/repository"
	"github.com/eyeroniq/poslite/internal/infrastructure/database"
	"github.com/eyeroniq/poslite/internal/infrastructure/repository"
	"github.com/eyeroniq/poslite/pkg/printer"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the wired services for one command invocation
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	sales    *service.SaleService
	products *service.ProductService
	clients  *service.ClientService
	settings *service.SettingsService
	receipts *service.ReceiptService
}

func newApp(cfg *config.Config) (*app, error) {
	// Connect to database
	db, err := database.Open(&cfg.Database, cfg.App.Env)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	saleRepo := repository.NewSaleRepository(db)
	productRepo := repository.NewProductRepository(db)
	clientRepo := repository.NewClientRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	ledger := repository.NewStockLedger(db, domainRepo.StockPolicy{AllowBackorder: cfg.Stock.AllowBackorder})
	transactor := repository.NewTransactor(db)

	// Initialize printer
	locator, err := printer.NewLocatorFromConfig(cfg.Printer.Transport, cfg.Printer.DevicePaths, cfg.Printer.Address)
	if err != nil {
		return nil, err
	}
	var chainOpts []printer.ChainOption
	if cfg.Printer.Transport == "network" {
		// TCP printers do not depend on host device files
		chainOpts = append(chainOpts, printer.WithRawIO(true))
	}
	chain := printer.NewChain(locator, chainOpts...)

	// Initialize services
	return &app{
		cfg:      cfg,
		db:       db,
		sales:    service.NewSaleService(transactor, saleRepo, productRepo, clientRepo, ledger),
		products: service.NewProductService(productRepo, ledger),
		clients:  service.NewClientService(clientRepo),
		settings: service.NewSettingsService(settingsRepo),
		receipts: service.NewReceiptService(saleRepo, settingsRepo, chain, service.ReceiptConfig{
			CurrencySymbol: cfg.Receipt.CurrencySymbol,
			AssetsDir:      cfg.Printer.AssetsDir,
		}),
	}, nil
}

// Close releases the database pool
func (a *app) Close() {
	sqlDB, err := a.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		zap.L().Warn("failed to close database", zap.Error(err))
	}
}
