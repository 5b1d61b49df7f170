package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/eyeroniq/poslite/internal/domain/repository"
	"github.com/eyeroniq/poslite/pkg/apperror"
	"github.com/eyeroniq/poslite/pkg/printer"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceiptContentType is the content type of PDF receipts
const ReceiptContentType = "application/pdf"

// ReceiptEmitter delivers a formatted receipt
type ReceiptEmitter interface {
	Emit(ctx context.Context, l *printer.Layout, opts printer.Options) (*printer.Result, error)
}

// ReceiptConfig holds receipt presentation settings from the environment
type ReceiptConfig struct {
	CurrencySymbol string
	AssetsDir      string // logos referenced by settings resolve under here
	Location       *time.Location
}

// ReceiptOutput is what the caller gets back from EmitReceipt. Document,
// ContentType and Filename are only set for PDF output.
type ReceiptOutput struct {
	Kind        printer.OutputKind
	Device      string
	Document    []byte
	ContentType string
	Filename    string
}

// ReceiptService prints sale receipts
type ReceiptService struct {
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
	emitter      ReceiptEmitter
	cfg          ReceiptConfig
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	saleRepo repository.SaleRepository,
	settingsRepo repository.SettingsRepository,
	emitter ReceiptEmitter,
	cfg ReceiptConfig,
) *ReceiptService {
	return &ReceiptService{
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
		emitter:      emitter,
		cfg:          cfg,
	}
}

// EmitReceipt formats the receipt of a sale and sends it to the thermal
// printer, or renders it as a PDF when no printer takes it.
func (s *ReceiptService) EmitReceipt(ctx context.Context, saleID uuid.UUID) (*ReceiptOutput, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	layout := FormatReceipt(sale, settings, FormatOptions{
		CurrencySymbol: s.cfg.CurrencySymbol,
		LogoPath:       s.resolveLogo(settings.StoreLogoURL),
		Location:       s.cfg.Location,
	})

	result, err := s.emitter.Emit(ctx, layout, printer.Options{
		PDFOnly: settings.PrinterFamily == enum.PrinterFamilyPDFOnly,
	})
	if err != nil {
		zap.L().Error("receipt emission failed", zap.String("sale_id", saleID.String()), zap.Error(err))
		return nil, err
	}

	out := &ReceiptOutput{Kind: result.Kind, Device: result.Device}
	if result.Kind == printer.OutputPDF {
		out.Document = result.Document
		out.ContentType = ReceiptContentType
		out.Filename = ReceiptFilename(saleID)
	}
	return out, nil
}

// ReceiptFilename is the download name of a PDF receipt
func ReceiptFilename(saleID uuid.UUID) string {
	return "ticket-" + saleID.String() + ".pdf"
}

// resolveLogo maps the settings logo reference to a local file. Remote URLs
// and missing files yield no logo.
func (s *ReceiptService) resolveLogo(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.Contains(ref, "://") {
		zap.L().Debug("remote logos are not fetched", zap.String("logo", ref))
		return ""
	}

	path := filepath.Join(s.cfg.AssetsDir, filepath.FromSlash(strings.TrimPrefix(ref, "/")))
	if _, err := os.Stat(path); err != nil {
		zap.L().Warn("store logo not found", zap.String("path", path), zap.Error(err))
		return ""
	}
	return path
}
