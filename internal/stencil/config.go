package stencil

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
)

var (
	// ErrInvalidThreads is returned when Threads < 1.
	ErrInvalidThreads = errors.New("thread count must be at least 1")
	// ErrInvalidIterations is returned when Iterations < 0.
	ErrInvalidIterations = errors.New("iteration count must not be negative")
	// ErrInvalidTileSize is returned by the tiled strategy when TileSize < 1.
	ErrInvalidTileSize = errors.New("tile size must be at least 1")
	// ErrInvalidLaneWidth is returned by the vectorized strategy for unsupported lane widths.
	ErrInvalidLaneWidth = errors.New("lane width must be 4 or 8")
	// ErrShapeMismatch is returned when input and output grids differ in size.
	ErrShapeMismatch = errors.New("input and output grids must have the same shape")
	// ErrAliasedGrids is returned when input and output share storage.
	ErrAliasedGrids = errors.New("input and output grids must be distinct buffers")
)

// DefaultTileSize is the tile side length used by the tiled strategy.
const DefaultTileSize = 16

// Config carries everything an executor needs besides the grids.
type Config struct {
	Threads    int
	Iterations int
	TileSize   int // tiled strategy only
	LaneWidth  int // vectorized strategy only: 4 or 8
	Weights    Weights
}

// DefaultConfig returns a single-iteration Laplacian configuration sized to
// the machine.
func DefaultConfig() Config {
	return Config{
		Threads:    runtime.NumCPU(),
		Iterations: 1,
		TileSize:   DefaultTileSize,
		LaneWidth:  PreferredLaneWidth(),
		Weights:    Laplacian9,
	}
}

// Validate checks the fields shared by every strategy. Strategy-specific
// fields are checked by the executor that uses them.
func (c Config) Validate() error {
	if c.Threads < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreads, c.Threads)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, c.Iterations)
	}
	return c.Weights.Validate()
}

// ValidateFor checks the shared fields plus the ones strategy s reads.
func (c Config) ValidateFor(s Strategy) error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch s {
	case StrategyTiled:
		if c.TileSize < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidTileSize, c.TileSize)
		}
	case StrategyVectorized:
		if !slices.Contains(SupportedLaneWidths(), c.LaneWidth) {
			return fmt.Errorf("%w: got %d", ErrInvalidLaneWidth, c.LaneWidth)
		}
	}
	return nil
}
