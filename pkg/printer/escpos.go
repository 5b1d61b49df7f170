package printer

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // Double width + double height
)

// codePagePC858 is the ESC t table number of PC858 (Latin-1 with euro) on
// Epson compatible printers.
const codePagePC858 = 19

// Document builds an ESC/POS byte stream for thermal printers.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (32 for 58mm, 48 for 80mm)
	enc   *encoding.Encoder
}

// NewDocument creates a new ESC/POS document with the given character width.
// Text is transcoded to PC858; characters outside it print as '?'.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{
		width: charWidth,
		enc:   encoding.ReplaceUnsupported(charmap.CodePage858.NewEncoder()),
	}
	d.Init()
	return d
}

// Init sends ESC @ (initialize printer) and selects the code page.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	d.buf.Write([]byte{ESC, 't', codePagePC858})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size. Use FontNormal or FontDouble.
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	encoded, err := d.enc.String(s)
	if err != nil {
		encoded = s
	}
	d.buf.WriteString(encoded)
	d.buf.WriteByte(LF)
	return d
}

// Separator prints a full-width separator line (e.g. "--------------------------------").
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// Raster prints a monochrome bitmap with GS v 0.
func (d *Document) Raster(img *RasterImage) *Document {
	d.buf.Write([]byte{
		GS, 'v', '0', 0x00,
		byte(img.WidthBytes), byte(img.WidthBytes >> 8),
		byte(img.Height), byte(img.Height >> 8),
	})
	d.buf.Write(img.Data)
	d.buf.WriteByte(LF)
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
