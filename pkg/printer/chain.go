package printer

import (
	"context"
	"runtime"

	"github.com/eyeroniq/poslite/pkg/apperror"
	"go.uber.org/zap"
)

// OutputKind tells how a ticket was delivered
type OutputKind string

const (
	OutputPhysical OutputKind = "PHYSICAL"
	OutputPDF      OutputKind = "PDF"
)

// Options controls one emission
type Options struct {
	// PDFOnly skips device discovery entirely
	PDFOnly bool
}

// Result describes the delivered ticket. Document is set for PDF output only.
type Result struct {
	Kind     OutputKind
	Device   string
	Document []byte
}

// Chain delivers a ticket to a thermal printer when one is available and
// falls back to a PDF document otherwise.
type Chain struct {
	locator DeviceLocator
	pdf     *PDFRenderer
	rawIO   bool
}

// ChainOption configures a Chain
type ChainOption func(*Chain)

// WithRawIO overrides whether the host can write to raw devices. It defaults
// to true on Linux only.
func WithRawIO(enabled bool) ChainOption {
	return func(c *Chain) { c.rawIO = enabled }
}

// WithPDFRenderer replaces the default renderer
func WithPDFRenderer(r *PDFRenderer) ChainOption {
	return func(c *Chain) { c.pdf = r }
}

// NewChain creates a chain over the given locator.
func NewChain(locator DeviceLocator, opts ...ChainOption) *Chain {
	if locator == nil {
		locator = NoDevice{}
	}
	c := &Chain{
		locator: locator,
		pdf:     NewPDFRenderer(),
		rawIO:   runtime.GOOS == "linux",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Emit prints the ticket or renders it as PDF. Physical failures are logged
// and never reach the caller; only a failed PDF render is an error.
func (c *Chain) Emit(ctx context.Context, l *Layout, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !opts.PDFOnly && c.rawIO {
		res, err := c.emitPhysical(l)
		if err != nil {
			zap.L().Warn("thermal printing failed, falling back to PDF", zap.Error(err))
		} else if res != nil {
			return res, nil
		}
	}

	doc, err := c.pdf.Render(l)
	if err != nil {
		return nil, apperror.NewPrintFailedError(err)
	}
	return &Result{Kind: OutputPDF, Document: doc}, nil
}

func (c *Chain) emitPhysical(l *Layout) (*Result, error) {
	dev, ok := c.locator.Locate()
	if !ok {
		zap.L().Debug("no thermal printer found")
		return nil, nil
	}
	defer dev.Close()

	if err := dev.Print(EncodeTicket(l)); err != nil {
		return nil, err
	}

	zap.L().Info("ticket printed", zap.String("device", dev.Name()))
	return &Result{Kind: OutputPhysical, Device: dev.Name()}, nil
}
