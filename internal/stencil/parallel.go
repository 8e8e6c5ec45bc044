package stencil

import (
	"github.com/cwbudde/stencilbench/internal/grid"
	"github.com/cwbudde/stencilbench/internal/workerpool"
)

// parallelMinChunk is the smallest number of cells a worker claims at once.
const parallelMinChunk = 256

// ParallelExecutor collapses the interior (i, j) loops into one flat index
// space and hands out contiguous ranges of it with guided scheduling.
type ParallelExecutor struct{}

// NewParallel returns the collapsed-loop parallel executor.
func NewParallel() *ParallelExecutor {
	return &ParallelExecutor{}
}

// Strategy implements Executor.
func (e *ParallelExecutor) Strategy() Strategy {
	return StrategyParallel
}

// Run implements Executor. A pool of cfg.Threads workers, capped at the
// number of interior cells, lives for the duration of the call; each
// iteration is one join-terminated region.
func (e *ParallelExecutor) Run(in, out *grid.Grid, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkGrids(in, out); err != nil {
		return err
	}
	if cfg.Iterations == 0 || !hasInterior(in) {
		return nil
	}
	logRun(e.Strategy(), in, cfg)

	w := cfg.Weights
	width := in.Cols - 2
	cells := (in.Rows - 2) * width

	pool := workerpool.New(min(cfg.Threads, cells))
	defer pool.Close()

	iterate(in, out, cfg.Iterations, func(src, dst *grid.Grid) {
		pool.ParallelForGuided(cells, parallelMinChunk, func(start, end int) {
			// Flat index f maps to interior cell (f/width+1, f%width+1).
			for f := start; f < end; {
				r := f / width
				rowEnd := min(end, (r+1)*width)
				j0 := f - r*width + 1
				sweepRowRange(w, src, dst, r+1, j0, j0+(rowEnd-f))
				f = rowEnd
			}
		})
	})
	return nil
}
