package printer

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestGeometryFor(t *testing.T) {
	tests := []struct {
		paper    int
		chars    int
		dots     int
		wantCols Columns
	}{
		{Paper58mm, 32, 384, Columns{Quantity: 4, Description: 17, Amount: 11}},
		{Paper80mm, 48, 576, Columns{Quantity: 7, Description: 26, Amount: 15}},
		{0, 48, 576, Columns{Quantity: 7, Description: 26, Amount: 15}},
	}

	for _, tt := range tests {
		g := GeometryFor(tt.paper)
		if g.Chars != tt.chars || g.DotWidth != tt.dots {
			t.Errorf("GeometryFor(%d) = %d chars/%d dots, want %d/%d", tt.paper, g.Chars, g.DotWidth, tt.chars, tt.dots)
		}
		if g.Columns != tt.wantCols {
			t.Errorf("GeometryFor(%d).Columns = %+v, want %+v", tt.paper, g.Columns, tt.wantCols)
		}
		if sum := g.Columns.Quantity + g.Columns.Description + g.Columns.Amount; sum != g.Chars {
			t.Errorf("columns for %dmm add up to %d, want %d", tt.paper, sum, g.Chars)
		}
	}
}

func TestFormatRow(t *testing.T) {
	tests := []struct {
		name  string
		paper int
		row   Row
		want  string
	}{
		{
			name:  "fits",
			paper: Paper58mm,
			row:   Row{Quantity: "2", Description: "Widget", Amount: "$20.00"},
			want:  "2   Widget                $20.00",
		},
		{
			name:  "long description is truncated",
			paper: Paper58mm,
			row:   Row{Quantity: "1", Description: "Extra large ceramic coffee mug", Amount: "$9.50"},
			want:  "1   Extra large cera       $9.50",
		},
		{
			name:  "wide amount borrows from description",
			paper: Paper58mm,
			row:   Row{Quantity: "1", Description: "Espresso machine", Amount: "$123456789.00"},
			want:  "1   Espresso machi $123456789.00",
		},
		{
			name:  "three digit quantity fills its column",
			paper: Paper58mm,
			row:   Row{Quantity: "999", Description: "Widget", Amount: "$1.00"},
			want:  "999 Widget                 $1.00",
		},
		{
			name:  "four digit quantity borrows from description",
			paper: Paper58mm,
			row:   Row{Quantity: "1000", Description: "Widget", Amount: "$1.00"},
			want:  "1000 Widget                $1.00",
		},
		{
			name:  "five digit quantity with long description",
			paper: Paper58mm,
			row:   Row{Quantity: "12345", Description: "Extra large ceramic coffee mug", Amount: "$61725.00"},
			want:  "12345 Extra large ce   $61725.00",
		},
		{
			name:  "seven digit quantity on 80mm",
			paper: Paper80mm,
			row:   Row{Quantity: "1234567", Description: "Paper cup", Amount: "$617283.50"},
			want:  "1234567 Paper cup                     $617283.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GeometryFor(tt.paper)
			got := FormatRow(g.Columns, tt.row)
			if got != tt.want {
				t.Errorf("FormatRow() = %q, want %q", got, tt.want)
			}
			if w := runewidth.StringWidth(got); w != g.Chars {
				t.Errorf("row width = %d, want %d", w, g.Chars)
			}
		})
	}
}

func TestLayoutLines(t *testing.T) {
	l := &Layout{
		Geometry: GeometryFor(Paper80mm),
		Header:   Header{Phone: "555-0100"},
		Totals:   Totals{Total: "$30.00", Payment: "Cash"},
	}

	if got := l.TotalLine(); got != "TOTAL: $30.00" {
		t.Errorf("TotalLine() = %q", got)
	}
	if got := l.PaymentLine(); got != "Payment: Cash" {
		t.Errorf("PaymentLine() = %q", got)
	}
	if got := l.PhoneLine(); got != "Tel: 555-0100" {
		t.Errorf("PhoneLine() = %q", got)
	}
	if got := l.Rule(); got != strings.Repeat("-", 48) {
		t.Errorf("Rule() = %q", got)
	}
	if got := l.MetaLine(Field{Label: "Client:", Value: "Ana"}); got != "Client: Ana" {
		t.Errorf("MetaLine() = %q", got)
	}
	if !strings.HasPrefix(l.TableHeader(), "Qty    Item") {
		t.Errorf("TableHeader() = %q", l.TableHeader())
	}
}
