package grid

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidDimension is returned when a grid is created with a non-positive size.
var ErrInvalidDimension = errors.New("invalid grid dimension")

// Grid is a dense row-major buffer of float64 values with fixed dimensions.
type Grid struct {
	Rows int
	Cols int
	Data []float64 // Data[i*Cols+j]
}

// New allocates a zeroed rows x cols grid.
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, rows, cols)
	}
	return &Grid{
		Rows: rows,
		Cols: cols,
		Data: make([]float64, rows*cols),
	}, nil
}

// NewSquare allocates a zeroed n x n grid.
func NewSquare(n int) (*Grid, error) {
	return New(n, n)
}

// MustNew is like New but panics on invalid dimensions. Intended for tests
// and fixed-size setups.
func MustNew(rows, cols int) *Grid {
	g, err := New(rows, cols)
	if err != nil {
		panic(err)
	}
	return g
}

// At returns the value at row i, column j.
func (g *Grid) At(i, j int) float64 {
	return g.Data[i*g.Cols+j]
}

// Set stores v at row i, column j.
func (g *Grid) Set(i, j int, v float64) {
	g.Data[i*g.Cols+j] = v
}

// Row returns the backing slice of row i.
func (g *Grid) Row(i int) []float64 {
	return g.Data[i*g.Cols : (i+1)*g.Cols]
}

// SameShape reports whether g and other have identical dimensions.
func (g *Grid) SameShape(other *Grid) bool {
	return g.Rows == other.Rows && g.Cols == other.Cols
}

// Interior returns the number of cells that have a full 3x3 neighborhood.
func (g *Grid) Interior() int {
	return max(0, g.Rows-2) * max(0, g.Cols-2)
}

// Fill sets every cell to v.
func (g *Grid) Fill(v float64) {
	for i := range g.Data {
		g.Data[i] = v
	}
}

// Randomize fills the grid with non-negative 31-bit integers, matching the
// range of C rand() so benchmark magnitudes are comparable.
func (g *Grid) Randomize(rng *rand.Rand) {
	for i := range g.Data {
		g.Data[i] = float64(rng.Int31())
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.Data))
	copy(data, g.Data)
	return &Grid{Rows: g.Rows, Cols: g.Cols, Data: data}
}
