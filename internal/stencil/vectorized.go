package stencil

import (
	"fmt"

	"github.com/cwbudde/stencilbench/internal/grid"
	"github.com/cwbudde/stencilbench/internal/workerpool"
)

// vectorRowsPerClaim is the smallest number of rows a worker claims at once.
const vectorRowsPerClaim = 1

// VectorizedExecutor processes each interior row in steps of cfg.LaneWidth
// columns using lane-wide loads, broadcast-weight multiplies and lane-wide
// stores, with rows distributed across workers. Columns that do not fill a
// whole step fall back to the scalar kernel.
type VectorizedExecutor struct{}

// NewVectorized returns the lane-parallel executor.
func NewVectorized() *VectorizedExecutor {
	return &VectorizedExecutor{}
}

// Strategy implements Executor.
func (e *VectorizedExecutor) Strategy() Strategy {
	return StrategyVectorized
}

// VectorSplit returns the first column handled by the scalar remainder for a
// grid with cols columns at the given lane width. Columns [1, split) are
// covered by full vector steps and [split, cols-1) by scalar fallback.
func VectorSplit(cols, lanes int) int {
	if cols < 3 {
		return 1
	}
	interior := cols - 2
	return 1 + interior - interior%lanes
}

// Run implements Executor.
func (e *VectorizedExecutor) Run(in, out *grid.Grid, cfg Config) error {
	if err := cfg.ValidateFor(StrategyVectorized); err != nil {
		return err
	}

	var step func(w Weights, up, mid, down, dst []float64, j int)
	switch cfg.LaneWidth {
	case 4:
		step = Weights.step4
	case 8:
		step = Weights.step8
	default:
		return fmt.Errorf("%w: got %d", ErrInvalidLaneWidth, cfg.LaneWidth)
	}

	if err := checkGrids(in, out); err != nil {
		return err
	}
	if cfg.Iterations == 0 || !hasInterior(in) {
		return nil
	}
	logRun(e.Strategy(), in, cfg)

	pool := workerpool.New(min(cfg.Threads, in.Rows-2))
	defer pool.Close()

	w := cfg.Weights
	lanes := cfg.LaneWidth
	split := VectorSplit(in.Cols, lanes)

	iterate(in, out, cfg.Iterations, func(src, dst *grid.Grid) {
		pool.ParallelForGuided(src.Rows-2, vectorRowsPerClaim, func(start, end int) {
			for i := start + 1; i < end+1; i++ {
				up, mid, down := src.Row(i-1), src.Row(i), src.Row(i+1)
				row := dst.Row(i)
				for j := 1; j < split; j += lanes {
					step(w, up, mid, down, row, j)
				}
				sweepRowRange(w, src, dst, i, split, src.Cols-1)
			}
		})
	})
	return nil
}
