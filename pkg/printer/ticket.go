package printer

import (
	"go.uber.org/zap"
)

// EncodeTicket renders a layout as an ESC/POS stream. A logo that cannot be
// read or decoded is logged and left out; the ticket still prints.
func EncodeTicket(l *Layout) []byte {
	doc := NewDocument(l.Geometry.Chars)

	// --- Header ---
	doc.SetAlign(AlignCenter)
	if l.Header.LogoPath != "" {
		img, err := RasterizeLogo(l.Header.LogoPath, l.Geometry.DotWidth)
		if err != nil {
			zap.L().Warn("printing ticket without logo",
				zap.String("logo", l.Header.LogoPath), zap.Error(err))
		} else {
			doc.Raster(img)
		}
	}
	doc.SetBold(true).SetFontSize(FontDouble)
	doc.Text(l.Header.StoreName)
	doc.SetFontSize(FontNormal).SetBold(false)
	if l.Header.Address != "" {
		doc.Text(l.Header.Address)
	}
	if l.Header.Phone != "" {
		doc.Text(l.PhoneLine())
	}
	if l.Banner != "" {
		doc.SetBold(true).Text(l.Banner).SetBold(false)
	}
	doc.Separator('-')

	// --- Metadata ---
	doc.SetAlign(AlignLeft)
	for _, f := range l.Meta {
		doc.Text(l.MetaLine(f))
	}
	doc.Separator('-')

	// --- Items ---
	doc.SetBold(true).Text(l.TableHeader()).SetBold(false)
	for _, row := range l.Items {
		doc.Text(l.ItemLine(row))
	}
	doc.Separator('-')

	// --- Totals ---
	doc.SetAlign(AlignRight)
	doc.SetBold(true).Text(l.TotalLine()).SetBold(false)
	doc.Text(l.PaymentLine())

	// --- Footer ---
	doc.SetAlign(AlignCenter)
	doc.LineFeed()
	doc.Text(l.Footer)

	doc.FeedLines(4)
	doc.PartialCut()

	return doc.Bytes()
}
