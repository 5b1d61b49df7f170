package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	domainRepo "github.com/eyeroniq/poslite/internal/domain/repository"
	infraRepo "github.com/eyeroniq/poslite/internal/infrastructure/repository"
	"github.com/eyeroniq/poslite/pkg/apperror"
	"github.com/eyeroniq/poslite/pkg/printer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func sampleSale() *entity.Sale {
	return &entity.Sale{
		ID:            uuid.MustParse("0f8b7c2e-5d4a-4c1b-9e3f-2a1b0c9d8e7f"),
		Kind:          enum.SaleKindSale,
		Status:        enum.SaleStatusCompleted,
		Total:         decimal.RequireFromString("37.5"),
		PaymentMethod: enum.PaymentMethodCard,
		UserName:      "Ana",
		CreatedAt:     time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Items: []entity.SaleItem{
			{ProductName: "Widget", Quantity: 3, UnitPrice: decimal.NewFromInt(10)},
			{ProductName: "Extra large ceramic coffee mug", Quantity: 1, UnitPrice: decimal.RequireFromString("7.5")},
		},
	}
}

func TestFormatReceipt(t *testing.T) {
	settings := entity.DefaultSettings()
	settings.StoreName = "Corner Shop"
	settings.StorePhone = "555-0100"
	settings.PrinterWidth = enum.PaperWidth58

	l := FormatReceipt(sampleSale(), settings, FormatOptions{CurrencySymbol: "$", Location: time.UTC})

	if l.Geometry.Chars != 32 {
		t.Errorf("Chars = %d, want 32 for 58mm paper", l.Geometry.Chars)
	}
	if l.Header.StoreName != "Corner Shop" || l.Header.Phone != "555-0100" {
		t.Errorf("Header = %+v", l.Header)
	}

	wantMeta := []printer.Field{
		{Label: "Ticket:", Value: "0f8b7c2e-5d4a-4c1b-9e3f-2a1b0c9d8e7f"},
		{Label: "Date:", Value: "2026-03-14 09:26"},
		{Label: "Cashier:", Value: "Ana"},
		{Label: "Client:", Value: WalkInClientLabel},
	}
	if len(l.Meta) != len(wantMeta) {
		t.Fatalf("Meta = %+v", l.Meta)
	}
	for i, f := range wantMeta {
		if l.Meta[i] != f {
			t.Errorf("Meta[%d] = %+v, want %+v", i, l.Meta[i], f)
		}
	}

	wantItems := []printer.Row{
		{Quantity: "3", Description: "Widget", Amount: "$30.00"},
		{Quantity: "1", Description: "Extra large cera", Amount: "$7.50"},
	}
	for i, r := range wantItems {
		if l.Items[i] != r {
			t.Errorf("Items[%d] = %+v, want %+v", i, l.Items[i], r)
		}
	}

	if l.Totals.Total != "$37.50" || l.Totals.Payment != "Card" {
		t.Errorf("Totals = %+v", l.Totals)
	}
	if l.Footer != DefaultReceiptFooter {
		t.Errorf("Footer = %q, want default", l.Footer)
	}
	if l.Banner != "" {
		t.Errorf("Banner = %q, want none", l.Banner)
	}
}

func TestFormatReceiptVariants(t *testing.T) {
	settings := entity.DefaultSettings()
	settings.ReceiptFooter = "See you soon"

	quote := sampleSale()
	quote.Kind = enum.SaleKindQuote
	quote.Client = &entity.Client{Name: "Bea Ortiz"}
	quote.UserName = ""
	quote.Total = decimal.RequireFromString("1234567.891")

	l := FormatReceipt(quote, settings, FormatOptions{CurrencySymbol: "€"})
	if l.Banner != "QUOTE" {
		t.Errorf("Banner = %q, want QUOTE", l.Banner)
	}
	if l.Meta[2].Value != "Cashier" || l.Meta[3].Value != "Bea Ortiz" {
		t.Errorf("Meta = %+v", l.Meta)
	}
	if l.Footer != "See you soon" {
		t.Errorf("Footer = %q", l.Footer)
	}
	if l.Totals.Total != "€1234567.89" {
		t.Errorf("Total = %q, want no grouping and two decimals", l.Totals.Total)
	}
	if l.Geometry.Chars != 48 {
		t.Errorf("Chars = %d, want 48 for 80mm paper", l.Geometry.Chars)
	}

	cancelled := sampleSale()
	cancelled.Status = enum.SaleStatusCancelled
	if l := FormatReceipt(cancelled, settings, FormatOptions{}); l.Banner != "CANCELLED" {
		t.Errorf("Banner = %q, want CANCELLED", l.Banner)
	}
}

type captureEmitter struct {
	layout *printer.Layout
	opts   printer.Options
	result *printer.Result
	err    error
}

func (e *captureEmitter) Emit(_ context.Context, l *printer.Layout, opts printer.Options) (*printer.Result, error) {
	e.layout = l
	e.opts = opts
	return e.result, e.err
}

func newReceiptEnv(t *testing.T, emitter ReceiptEmitter, assetsDir string) (*testEnv, *ReceiptService) {
	t.Helper()
	env := newTestEnv(t, domainRepo.StockPolicy{})
	receipts := NewReceiptService(
		infraRepo.NewSaleRepository(env.db),
		infraRepo.NewSettingsRepository(env.db),
		emitter,
		ReceiptConfig{CurrencySymbol: "$", AssetsDir: assetsDir, Location: time.UTC},
	)
	return env, receipts
}

func TestEmitReceiptFallsBackToPDF(t *testing.T) {
	chain := printer.NewChain(printer.NoDevice{},
		printer.WithRawIO(true),
		printer.WithPDFRenderer(&printer.PDFRenderer{MarginMM: 3}))
	env, receipts := newReceiptEnv(t, chain, t.TempDir())
	ctx := context.Background()

	widget := env.addProduct(t, "Widget", enum.ProductKindGood, "10.00", 5)
	sale, err := env.sales.CreateSale(ctx, saleInput("30", SaleItemInput{ProductID: widget.ID, Quantity: 3}))
	if err != nil {
		t.Fatalf("CreateSale() error = %v", err)
	}

	out, err := receipts.EmitReceipt(ctx, sale.ID)
	if err != nil {
		t.Fatalf("EmitReceipt() error = %v", err)
	}
	if out.Kind != printer.OutputPDF {
		t.Fatalf("Kind = %s, want PDF", out.Kind)
	}
	if out.ContentType != "application/pdf" {
		t.Errorf("ContentType = %q", out.ContentType)
	}
	if out.Filename != "ticket-"+sale.ID.String()+".pdf" {
		t.Errorf("Filename = %q", out.Filename)
	}
	for _, want := range []string{"TOTAL: $30.00", "Payment: Cash", DefaultReceiptFooter, "Widget"} {
		if !bytes.Contains(out.Document, []byte(want)) {
			t.Errorf("PDF does not contain %q", want)
		}
	}
}

func TestEmitReceiptHonoursPDFOnly(t *testing.T) {
	emitter := &captureEmitter{result: &printer.Result{Kind: printer.OutputPDF, Document: []byte("%PDF")}}
	env, receipts := newReceiptEnv(t, emitter, t.TempDir())
	ctx := context.Background()

	family := enum.PrinterFamilyPDFOnly
	if _, err := env.settings.UpdateSettings(ctx, &UpdateSettingsInput{PrinterFamily: &family}); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}

	widget := env.addProduct(t, "Widget", enum.ProductKindGood, "10.00", 5)
	sale, err := env.sales.CreateSale(ctx, saleInput("10", SaleItemInput{ProductID: widget.ID, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := receipts.EmitReceipt(ctx, sale.ID); err != nil {
		t.Fatalf("EmitReceipt() error = %v", err)
	}
	if !emitter.opts.PDFOnly {
		t.Error("PDF_ONLY settings should skip the thermal printer")
	}
}

func TestEmitReceiptPhysical(t *testing.T) {
	emitter := &captureEmitter{result: &printer.Result{Kind: printer.OutputPhysical, Device: "/dev/usb/lp0"}}
	env, receipts := newReceiptEnv(t, emitter, t.TempDir())
	ctx := context.Background()

	widget := env.addProduct(t, "Widget", enum.ProductKindGood, "10.00", 5)
	sale, err := env.sales.CreateSale(ctx, saleInput("10", SaleItemInput{ProductID: widget.ID, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	out, err := receipts.EmitReceipt(ctx, sale.ID)
	if err != nil {
		t.Fatalf("EmitReceipt() error = %v", err)
	}
	if out.Kind != printer.OutputPhysical || out.Device != "/dev/usb/lp0" {
		t.Errorf("output = %+v", out)
	}
	if out.Document != nil || out.Filename != "" {
		t.Error("physical output should not carry a document")
	}
}

func TestEmitReceiptResolvesLogo(t *testing.T) {
	assets := t.TempDir()
	if err := os.MkdirAll(filepath.Join(assets, "uploads"), 0o755); err != nil {
		t.Fatal(err)
	}
	logo := filepath.Join(assets, "uploads", "logo.png")
	if err := os.WriteFile(logo, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}

	emitter := &captureEmitter{result: &printer.Result{Kind: printer.OutputPDF}}
	env, receipts := newReceiptEnv(t, emitter, assets)
	ctx := context.Background()
	widget := env.addProduct(t, "Widget", enum.ProductKindGood, "10.00", 5)
	sale, err := env.sales.CreateSale(ctx, saleInput("10", SaleItemInput{ProductID: widget.ID, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		ref  string
		want string
	}{
		{"/uploads/logo.png", logo},
		{"/uploads/missing.png", ""},
		{"https://cdn.example.com/logo.png", ""},
		{"", ""},
	}
	for _, tt := range tests {
		ref := tt.ref
		if _, err := env.settings.UpdateSettings(ctx, &UpdateSettingsInput{StoreLogoURL: &ref}); err != nil {
			t.Fatal(err)
		}
		if _, err := receipts.EmitReceipt(ctx, sale.ID); err != nil {
			t.Fatalf("EmitReceipt() error = %v", err)
		}
		if got := emitter.layout.Header.LogoPath; got != tt.want {
			t.Errorf("logo %q resolved to %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestEmitReceiptErrors(t *testing.T) {
	emitter := &captureEmitter{err: apperror.NewPrintFailedError(errors.New("disk full"))}
	env, receipts := newReceiptEnv(t, emitter, t.TempDir())
	ctx := context.Background()

	if _, err := receipts.EmitReceipt(ctx, uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("EmitReceipt(unknown) error = %v, want not found", err)
	}

	widget := env.addProduct(t, "Widget", enum.ProductKindGood, "10.00", 5)
	sale, err := env.sales.CreateSale(ctx, saleInput("10", SaleItemInput{ProductID: widget.ID, Quantity: 1}))
	if err != nil {
		t.Fatal(err)
	}
	_, err = receipts.EmitReceipt(ctx, sale.ID)
	if !errors.Is(err, apperror.ErrPrintFailed) {
		t.Errorf("EmitReceipt() error = %v, want print failed", err)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("error %q should carry its cause", err)
	}
}
