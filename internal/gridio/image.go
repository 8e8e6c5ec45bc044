package gridio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/cwbudde/stencilbench/internal/grid"
)

// ReadImage decodes a PNG (or other registered format) into a grid of luma
// values in [0, 255], one cell per pixel.
func ReadImage(r io.Reader) (*grid.Grid, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	g, err := grid.New(bounds.Dy(), bounds.Dx())
	if err != nil {
		return nil, err
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			g.Set(y-bounds.Min.Y, x-bounds.Min.X, float64(gray.Y))
		}
	}
	return g, nil
}

// WriteImage encodes g as an 8-bit grayscale PNG. Values are rounded and
// clamped to [0, 255].
func WriteImage(w io.Writer, g *grid.Grid) error {
	img := image.NewGray(image.Rect(0, 0, g.Cols, g.Rows))
	for i := 0; i < g.Rows; i++ {
		for j, v := range g.Row(i) {
			img.Pix[img.PixOffset(j, i)] = toByte(v)
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// LoadImageFile reads an image file into a luma grid.
func LoadImageFile(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}
	defer f.Close()
	return ReadImage(f)
}

// SaveImageFile writes g as a grayscale PNG to path.
func SaveImageFile(path string, g *grid.Grid) error {
	var buf bytes.Buffer
	if err := WriteImage(&buf, g); err != nil {
		return err
	}
	return writeAtomic(path, buf.Bytes())
}

func toByte(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(math.Round(v))
	}
}
