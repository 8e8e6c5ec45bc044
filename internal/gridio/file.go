package gridio

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cwbudde/stencilbench/internal/grid"
)

// LoadFile reads a rows x cols text grid from path.
func LoadFile(path string, rows, cols int) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file: %w", err)
	}
	defer f.Close()

	g, err := Read(f, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("Grid loaded", "path", path, "rows", rows, "cols", cols)
	return g, nil
}

// SaveFile writes g as text to path.
func SaveFile(path string, g *grid.Grid) error {
	var buf bytes.Buffer
	if err := Write(&buf, g); err != nil {
		return err
	}
	if err := writeAtomic(path, buf.Bytes()); err != nil {
		return err
	}

	slog.Debug("Grid saved", "path", path, "rows", g.Rows, "cols", g.Cols)
	return nil
}

// writeAtomic writes data to a temporary file in the target directory and
// renames it into place, so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot open output file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		// Clean up temp file on failure
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename output file: %w", err)
	}
	return nil
}
