// Package gridio loads and saves grids for the CLI. The text format is a
// whitespace-separated sequence of float64 values in row-major order; PNG
// images are converted to and from 8-bit luma.
package gridio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/stencilbench/internal/grid"
)

// ErrShortInput is returned when the input holds fewer values than rows*cols.
var ErrShortInput = errors.New("grid input ended early")

// Read parses rows*cols whitespace-separated values. Trailing data after the
// last value is ignored.
func Read(r io.Reader, rows, cols int) (*grid.Grid, error) {
	g, err := grid.New(rows, cols)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	for k := range g.Data {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, fmt.Errorf("failed to read grid: %w", err)
			}
			return nil, fmt.Errorf("%w: got %d of %d values", ErrShortInput, k, len(g.Data))
		}
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d (row %d, col %d): %w", k, k/cols, k%cols, err)
		}
		g.Data[k] = v
	}

	return g, nil
}

// Write emits one grid row per line with space-separated values. Values are
// formatted with the shortest representation that round-trips exactly.
func Write(w io.Writer, g *grid.Grid) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)

	for i := 0; i < g.Rows; i++ {
		for j, v := range g.Row(i) {
			if j > 0 {
				bw.WriteByte(' ')
			}
			buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
			bw.Write(buf)
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write grid: %w", err)
	}
	return nil
}
