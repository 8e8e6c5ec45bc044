package gridio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cwbudde/stencilbench/internal/grid"
)

func TestReadParsesRowMajor(t *testing.T) {
	input := "1 2 3\n4.5 -6 7e2\n"
	g, err := Read(strings.NewReader(input), 2, 3)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	want := []float64{1, 2, 3, 4.5, -6, 700}
	for i, v := range want {
		if g.Data[i] != v {
			t.Errorf("Value %d: expected %v, got %v", i, v, g.Data[i])
		}
	}
}

func TestReadAcceptsArbitraryWhitespace(t *testing.T) {
	g, err := Read(strings.NewReader("  1\t2\n\n3   4  extra"), 2, 2)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if g.At(1, 1) != 4 {
		t.Errorf("Expected 4 at (1,1), got %v", g.At(1, 1))
	}
}

func TestReadShortInput(t *testing.T) {
	_, err := Read(strings.NewReader("1 2 3"), 2, 2)
	if !errors.Is(err, ErrShortInput) {
		t.Errorf("Expected ErrShortInput, got %v", err)
	}
}

func TestReadBadToken(t *testing.T) {
	_, err := Read(strings.NewReader("1 2 x 4"), 2, 2)
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("Expected syntax error, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "row 1, col 0") {
		t.Errorf("Error should name the position: %v", err)
	}
}

func TestReadInvalidDimensions(t *testing.T) {
	if _, err := Read(strings.NewReader("1"), 0, 1); !errors.Is(err, grid.ErrInvalidDimension) {
		t.Errorf("Expected ErrInvalidDimension, got %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	g := grid.MustNew(7, 5)
	rng := rand.New(rand.NewSource(3))
	for i := range g.Data {
		g.Data[i] = rng.NormFloat64() * 1e6
	}
	g.Data[0] = math.Inf(-1)
	g.Data[1] = 0.1

	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("Expected 7 lines, got %d", len(lines))
	}

	back, err := Read(&buf, 7, 5)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	for i := range g.Data {
		if g.Data[i] != back.Data[i] {
			t.Errorf("Value %d: wrote %v, read %v", i, g.Data[i], back.Data[i])
		}
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.txt")

	g := grid.MustNew(3, 4)
	g.Randomize(rand.New(rand.NewSource(9)))

	if err := SaveFile(path, g); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	back, err := LoadFile(path, 3, 4)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !grid.EqualWithin(g, back, grid.Tolerance{}) {
		t.Error("Loaded grid differs from saved grid")
	}

	// No temp files left behind
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("Expected exactly one file in %s, found %d", dir, len(entries))
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"), 2, 2)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}
}

func TestSaveFileUnwritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	if err := SaveFile(path, grid.MustNew(2, 2)); err == nil {
		t.Error("Expected error writing into a missing directory")
	}
}

func TestImageRoundTrip(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 6, 4))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 10)
	}
	var in bytes.Buffer
	if err := png.Encode(&in, src); err != nil {
		t.Fatal(err)
	}

	g, err := ReadImage(&in)
	if err != nil {
		t.Fatalf("ReadImage failed: %v", err)
	}
	if g.Rows != 4 || g.Cols != 6 {
		t.Fatalf("Expected 4x6 grid, got %dx%d", g.Rows, g.Cols)
	}
	if g.At(1, 2) != 80 {
		t.Errorf("Expected luma 80 at (1,2), got %v", g.At(1, 2))
	}

	g.Set(0, 0, -30)
	g.Set(0, 1, 900)
	g.Set(0, 2, math.NaN())

	var out bytes.Buffer
	if err := WriteImage(&out, g); err != nil {
		t.Fatalf("WriteImage failed: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatal(err)
	}

	checks := map[[2]int]uint8{{0, 0}: 0, {1, 0}: 255, {2, 0}: 0, {2, 1}: 80}
	for xy, want := range checks {
		got := color.GrayModel.Convert(img.At(xy[0], xy[1])).(color.Gray).Y
		if got != want {
			t.Errorf("Pixel %v: expected %d, got %d", xy, want, got)
		}
	}
}

func TestReadImageRejectsGarbage(t *testing.T) {
	if _, err := ReadImage(strings.NewReader("not an image")); err == nil {
		t.Error("Expected decode error")
	}
}
