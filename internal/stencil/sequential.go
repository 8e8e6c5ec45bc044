package stencil

import "github.com/cwbudde/stencilbench/internal/grid"

// SequentialExecutor visits interior cells row-major on the calling goroutine.
type SequentialExecutor struct{}

// NewSequential returns the single-threaded baseline executor.
func NewSequential() *SequentialExecutor {
	return &SequentialExecutor{}
}

// Strategy implements Executor.
func (e *SequentialExecutor) Strategy() Strategy {
	return StrategySequential
}

// Run implements Executor. cfg.Threads is validated but not used.
func (e *SequentialExecutor) Run(in, out *grid.Grid, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := checkGrids(in, out); err != nil {
		return err
	}
	logRun(e.Strategy(), in, cfg)

	w := cfg.Weights
	iterate(in, out, cfg.Iterations, func(src, dst *grid.Grid) {
		for i := 1; i < src.Rows-1; i++ {
			sweepRowRange(w, src, dst, i, 1, src.Cols-1)
		}
	})
	return nil
}
