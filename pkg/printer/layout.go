package printer

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Paper widths in millimetres
const (
	Paper58mm = 58
	Paper80mm = 80
)

// Column shares of the item table, in percent of the line width. Both
// backends derive their columns from these so printed and PDF tickets match.
const (
	quantityShare    = 15
	descriptionShare = 55
)

// Columns holds the item table widths in characters
type Columns struct {
	Quantity    int
	Description int
	Amount      int
}

// Geometry is the character grid a backend reports for a paper width.
type Geometry struct {
	PaperWidthMM int
	Chars        int // characters per line at normal size
	DotWidth     int // printable raster width in dots
	Columns      Columns
}

// GeometryFor returns the grid for 58mm or 80mm paper. Any other width is
// treated as 80mm.
func GeometryFor(paperWidthMM int) Geometry {
	if paperWidthMM == Paper58mm {
		return Geometry{PaperWidthMM: Paper58mm, Chars: 32, DotWidth: 384, Columns: SplitColumns(32)}
	}
	return Geometry{PaperWidthMM: Paper80mm, Chars: 48, DotWidth: 576, Columns: SplitColumns(48)}
}

// SplitColumns divides a line into the 15/55/30 item table. The first two
// columns are floored; the amount column takes the remainder.
func SplitColumns(chars int) Columns {
	q := chars * quantityShare / 100
	d := chars * descriptionShare / 100
	return Columns{Quantity: q, Description: d, Amount: chars - q - d}
}

// DescriptionBudget is the number of characters a description may use,
// leaving one blank before the amount column.
func (g Geometry) DescriptionBudget() int {
	return g.Columns.Description - 1
}

// Header is the store identity block
type Header struct {
	StoreName string
	Address   string
	Phone     string
	LogoPath  string // empty when there is no usable logo
}

// Field is one metadata line
type Field struct {
	Label string
	Value string
}

// Row is one item table row; values are already formatted
type Row struct {
	Quantity    string
	Description string
	Amount      string
}

// Totals is the totals block
type Totals struct {
	Total   string
	Payment string
}

// Layout is the backend-neutral representation of a receipt
type Layout struct {
	Geometry Geometry
	Header   Header
	Banner   string
	Meta     []Field
	Items    []Row
	Totals   Totals
	Footer   string
}

// The helpers below produce the exact text both backends print.

// PhoneLine returns the phone line of the header
func (l *Layout) PhoneLine() string {
	return "Tel: " + l.Header.Phone
}

// MetaLine renders one metadata field
func (l *Layout) MetaLine(f Field) string {
	return f.Label + " " + f.Value
}

// Rule returns a full-width horizontal rule
func (l *Layout) Rule() string {
	return strings.Repeat("-", l.Geometry.Chars)
}

// TableHeader returns the column titles of the item table
func (l *Layout) TableHeader() string {
	return FormatRow(l.Geometry.Columns, Row{Quantity: "Qty", Description: "Item", Amount: "Amount"})
}

// ItemLine renders one item row
func (l *Layout) ItemLine(r Row) string {
	return FormatRow(l.Geometry.Columns, r)
}

// TotalLine returns the grand total line
func (l *Layout) TotalLine() string {
	return "TOTAL: " + l.Totals.Total
}

// PaymentLine returns the payment method line
func (l *Layout) PaymentLine() string {
	return "Payment: " + l.Totals.Payment
}

// FormatRow lays a row out as fixed-width text. Only the description is ever
// truncated. Quantity (left aligned) and amount (right aligned) are printed in
// full, borrowing from the description when they outgrow their columns.
func FormatRow(cols Columns, r Row) string {
	qtyWidth := cols.Quantity
	if w := runewidth.StringWidth(r.Quantity) + 1; w > qtyWidth {
		qtyWidth = w
	}
	amountWidth := cols.Amount
	if w := runewidth.StringWidth(r.Amount); w > amountWidth {
		amountWidth = w
	}
	descWidth := cols.Quantity + cols.Description + cols.Amount - qtyWidth - amountWidth
	if descWidth < 0 {
		descWidth = 0
	}

	var b strings.Builder
	b.WriteString(runewidth.FillRight(r.Quantity, qtyWidth))
	b.WriteString(cell(r.Description, descWidth))
	b.WriteString(runewidth.FillLeft(r.Amount, amountWidth))
	return b.String()
}

// cell truncates s so at least one blank separates it from the next column,
// then pads it to width.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(runewidth.Truncate(s, width-1, ""), width)
}
