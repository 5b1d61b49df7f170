package printer

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// maxRasterHeight bounds logo height in dots
const maxRasterHeight = 480

// RasterImage is a 1-bit bitmap in GS v 0 layout: rows of WidthBytes bytes,
// most significant bit first, a set bit prints a dot.
type RasterImage struct {
	WidthBytes int
	Height     int
	Data       []byte
}

// RasterizeLogo decodes a PNG, JPEG or GIF file, scales it down to fit
// maxDots and thresholds it to black and white. Transparent pixels print as
// paper.
func RasterizeLogo(path string, maxDots int) (*RasterImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open logo")
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode logo %s", path)
	}

	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, errors.Errorf("logo %s is empty", path)
	}

	w, h := b.Dx(), b.Dy()
	if w > maxDots {
		h = h * maxDots / w
		w = maxDots
	}
	if h > maxRasterHeight {
		w = w * maxRasterHeight / h
		h = maxRasterHeight
	}
	if w < 1 || h < 1 {
		return nil, errors.Errorf("logo %s scales to nothing", path)
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	widthBytes := (w + 7) / 8
	data := make([]byte, widthBytes*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if dst.GrayAt(x, y).Y < 128 {
				data[y*widthBytes+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}

	return &RasterImage{WidthBytes: widthBytes, Height: h, Data: data}, nil
}
