package printer

import (
	"bytes"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	pointsPerMM    = 72.0 / 25.4
	courierAdvance = 0.6 // em fraction of every Courier glyph
	lineSpacing    = 1.2
	logoShare      = 0.45 // logo width as a share of the paper width
)

// PDFRenderer lays a ticket out as a single narrow PDF page in Courier, so
// the character grid matches the thermal output.
type PDFRenderer struct {
	MarginMM float64
	Compress bool
}

// NewPDFRenderer returns a renderer with compressed streams and 3mm margins.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{MarginMM: 3, Compress: true}
}

type pdfLine struct {
	text  string
	align string
	bold  bool
	scale float64
}

// Render produces the PDF document for the layout.
func (r *PDFRenderer) Render(l *Layout) ([]byte, error) {
	paperW := float64(l.Geometry.PaperWidthMM)
	usable := paperW - 2*r.MarginMM
	chars := l.Geometry.Chars
	if usable <= 0 || chars <= 0 {
		return nil, errors.Errorf("pdf: invalid geometry %+v", l.Geometry)
	}

	fontPt := usable * pointsPerMM / (courierAdvance * float64(chars))
	lineH := fontPt / pointsPerMM * lineSpacing

	lines := pdfLines(l)

	// Page height follows the content
	height := 2*r.MarginMM + lineH
	for _, ln := range lines {
		height += float64(wrapCount(ln, chars)) * lineH * ln.scale
	}

	logoW, logoH := 0.0, 0.0
	if l.Header.LogoPath != "" {
		if aspect, ok := logoAspect(l.Header.LogoPath); ok {
			logoW = math.Min(usable, paperW*logoShare)
			logoH = logoW * aspect
			height += logoH + lineH
		}
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: paperW, Ht: height},
	})
	pdf.SetCompression(r.Compress)
	pdf.SetMargins(r.MarginMM, r.MarginMM, r.MarginMM)
	pdf.SetCellMargin(0)
	pdf.SetAutoPageBreak(false, r.MarginMM)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if logoH > 0 {
		pdf.ImageOptions(l.Header.LogoPath, (paperW-logoW)/2, r.MarginMM, logoW, logoH,
			false, fpdf.ImageOptions{}, 0, "")
		pdf.SetY(r.MarginMM + logoH + lineH/2)
	}

	for _, ln := range lines {
		style := ""
		if ln.bold {
			style = "B"
		}
		pdf.SetFont("Courier", style, fontPt*ln.scale)
		pdf.MultiCell(usable, lineH*ln.scale, tr(ln.text), "", ln.align, false)
	}

	if pdf.Err() {
		return nil, errors.Wrap(pdf.Error(), "pdf: render ticket")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "pdf: write ticket")
	}
	return buf.Bytes(), nil
}

// logoAspect reports height/width of an image fpdf can embed. Unsupported
// or unreadable files are logged and reported as unusable.
func logoAspect(path string) (float64, bool) {
	probe := fpdf.New("P", "mm", "A4", "")
	info := probe.RegisterImageOptions(path, fpdf.ImageOptions{})
	if probe.Err() || info == nil || info.Width() <= 0 {
		zap.L().Warn("rendering PDF ticket without logo",
			zap.String("logo", path), zap.Error(probe.Error()))
		return 0, false
	}
	return info.Height() / info.Width(), true
}

func pdfLines(l *Layout) []pdfLine {
	rule := pdfLine{text: l.Rule(), align: "L", scale: 1}

	lines := []pdfLine{{text: l.Header.StoreName, align: "C", bold: true, scale: 2}}
	if l.Header.Address != "" {
		lines = append(lines, pdfLine{text: l.Header.Address, align: "C", scale: 1})
	}
	if l.Header.Phone != "" {
		lines = append(lines, pdfLine{text: l.PhoneLine(), align: "C", scale: 1})
	}
	if l.Banner != "" {
		lines = append(lines, pdfLine{text: l.Banner, align: "C", bold: true, scale: 1})
	}
	lines = append(lines, rule)

	for _, f := range l.Meta {
		lines = append(lines, pdfLine{text: l.MetaLine(f), align: "L", scale: 1})
	}
	lines = append(lines, rule)

	lines = append(lines, pdfLine{text: l.TableHeader(), align: "L", bold: true, scale: 1})
	for _, row := range l.Items {
		lines = append(lines, pdfLine{text: l.ItemLine(row), align: "L", scale: 1})
	}
	lines = append(lines, rule)

	lines = append(lines,
		pdfLine{text: l.TotalLine(), align: "R", bold: true, scale: 1},
		pdfLine{text: l.PaymentLine(), align: "R", scale: 1},
		pdfLine{text: "", align: "C", scale: 1},
		pdfLine{text: l.Footer, align: "C", scale: 1},
	)
	return lines
}

// wrapCount estimates how many printed lines a text takes
func wrapCount(ln pdfLine, chars int) int {
	w := float64(runewidth.StringWidth(ln.text)) * ln.scale
	n := int(math.Ceil(w / float64(chars)))
	if n < 1 {
		return 1
	}
	return n
}
