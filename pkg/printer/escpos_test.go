package printer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestDocumentText(t *testing.T) {
	doc := NewDocument(32)
	doc.Text("Café")

	// é is 0x82 in PC858
	want := []byte{ESC, '@', ESC, 't', codePagePC858, 'C', 'a', 'f', 0x82, LF}
	if got := doc.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("Bytes() = % x, want % x", got, want)
	}
}

func TestDocumentSeparator(t *testing.T) {
	doc := NewDocument(48)
	doc.Separator('-')

	if !bytes.Contains(doc.Bytes(), append(bytes.Repeat([]byte("-"), 48), LF)) {
		t.Error("separator should span the full width")
	}
}

func TestEncodeTicketOrder(t *testing.T) {
	out := EncodeTicket(sampleLayout())

	order := []string{"Corner Shop", "1 Main St", "Ticket: abc", "Qty", "Widget", "Gadget", "TOTAL: $30.00", "Payment: Cash", "THANK YOU FOR YOUR PURCHASE"}
	pos := 0
	for _, s := range order {
		i := bytes.Index(out[pos:], []byte(s))
		if i < 0 {
			t.Fatalf("%q missing or out of order", s)
		}
		pos += i + len(s)
	}
}

func TestEncodeTicketBanner(t *testing.T) {
	l := sampleLayout()
	l.Banner = "CANCELLED"
	if !bytes.Contains(EncodeTicket(l), []byte("CANCELLED")) {
		t.Error("banner missing from ticket")
	}
}

func TestEncodeTicketSkipsBrokenLogo(t *testing.T) {
	logo := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(logo, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}

	l := sampleLayout()
	l.Header.LogoPath = logo
	out := EncodeTicket(l)

	if bytes.Contains(out, []byte{GS, 'v', '0'}) {
		t.Error("broken logo should not produce a raster")
	}
	if !bytes.Contains(out, []byte("TOTAL: $30.00")) {
		t.Error("ticket should still print without the logo")
	}
}

func writeLogo(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.Black)
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRasterizeLogo(t *testing.T) {
	path := writeLogo(t, 100, 20)

	img, err := RasterizeLogo(path, 48)
	if err != nil {
		t.Fatalf("RasterizeLogo() error = %v", err)
	}
	if img.WidthBytes != 6 || img.Height != 9 {
		t.Fatalf("raster = %d bytes x %d rows, want 6 x 9", img.WidthBytes, img.Height)
	}
	if len(img.Data) != 6*9 {
		t.Fatalf("len(Data) = %d, want 54", len(img.Data))
	}
	for i, b := range img.Data {
		if b != 0xFF {
			t.Fatalf("Data[%d] = %#x, want solid black", i, b)
		}
	}
}

func TestEncodeTicketWithLogo(t *testing.T) {
	l := sampleLayout()
	l.Header.LogoPath = writeLogo(t, 40, 10)

	out := EncodeTicket(l)
	i := bytes.Index(out, []byte{GS, 'v', '0', 0x00})
	if i < 0 {
		t.Fatal("logo raster missing")
	}
	if j := bytes.Index(out, []byte("Corner Shop")); j < i {
		t.Error("logo should precede the store name")
	}
}

func TestRasterizeLogoMissingFile(t *testing.T) {
	if _, err := RasterizeLogo(filepath.Join(t.TempDir(), "nope.png"), 384); err == nil {
		t.Error("expected an error for a missing logo")
	}
}

func TestRenderPDFWithLogo(t *testing.T) {
	l := sampleLayout()
	l.Header.LogoPath = writeLogo(t, 40, 10)

	doc, err := (&PDFRenderer{MarginMM: 3}).Render(l)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Contains(doc, []byte("/Subtype /Image")) {
		t.Error("PDF should embed the logo")
	}
}

func TestRenderPDFSkipsBrokenLogo(t *testing.T) {
	logo := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(logo, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	l := sampleLayout()
	l.Header.LogoPath = logo

	doc, err := (&PDFRenderer{MarginMM: 3}).Render(l)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.Contains(doc, []byte("TOTAL: $30.00")) {
		t.Error("PDF should still carry the ticket text")
	}
}
