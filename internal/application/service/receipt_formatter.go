package service

import (
	"strconv"
	"time"

	"github.com/eyeroniq/poslite/internal/domain/entity"
	"github.com/eyeroniq/poslite/internal/domain/enum"
	"github.com/eyeroniq/poslite/pkg/printer"
	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

// Receipt labels and defaults
const (
	DefaultReceiptFooter = "THANK YOU FOR YOUR PURCHASE"
	WalkInClientLabel    = "Walk-in customer"
	defaultCashierLabel  = "Cashier"
	receiptDateLayout    = "2006-01-02 15:04"
)

// FormatOptions carries the presentation settings that do not live on the
// settings row.
type FormatOptions struct {
	CurrencySymbol string
	LogoPath       string
	Location       *time.Location
}

// FormatReceipt builds the backend-neutral layout of a sale's receipt.
// The paper width comes from the settings; amounts always carry two decimals.
func FormatReceipt(sale *entity.Sale, settings *entity.Settings, opts FormatOptions) *printer.Layout {
	geometry := printer.GeometryFor(settings.PrinterWidth)
	money := func(d decimal.Decimal) string {
		return opts.CurrencySymbol + d.StringFixed(2)
	}

	storeName := settings.StoreName
	if storeName == "" {
		storeName = entity.DefaultStoreName
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	cashier := sale.UserName
	if cashier == "" {
		cashier = defaultCashierLabel
	}

	client := WalkInClientLabel
	if sale.Client != nil && sale.Client.Name != "" {
		client = sale.Client.Name
	}

	layout := &printer.Layout{
		Geometry: geometry,
		Header: printer.Header{
			StoreName: storeName,
			Address:   settings.StoreAddress,
			Phone:     settings.StorePhone,
			LogoPath:  opts.LogoPath,
		},
		Meta: []printer.Field{
			{Label: "Ticket:", Value: sale.ID.String()},
			{Label: "Date:", Value: sale.CreatedAt.In(loc).Format(receiptDateLayout)},
			{Label: "Cashier:", Value: cashier},
			{Label: "Client:", Value: client},
		},
		Totals: printer.Totals{
			Total:   money(sale.Total),
			Payment: sale.PaymentMethod.Label(),
		},
		Footer: settings.ReceiptFooter,
	}

	switch {
	case sale.Kind == enum.SaleKindQuote:
		layout.Banner = "QUOTE"
	case sale.IsCancelled():
		layout.Banner = "CANCELLED"
	}

	if layout.Footer == "" {
		layout.Footer = DefaultReceiptFooter
	}

	budget := geometry.DescriptionBudget()
	layout.Items = make([]printer.Row, 0, len(sale.Items))
	for i := range sale.Items {
		item := &sale.Items[i]
		layout.Items = append(layout.Items, printer.Row{
			Quantity:    strconv.Itoa(item.Quantity),
			Description: runewidth.Truncate(item.DisplayName(), budget, ""),
			Amount:      money(item.Extension()),
		})
	}

	return layout
}
