package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/stencilbench/internal/grid"
	"github.com/cwbudde/stencilbench/internal/stencil"
)

const (
	// DefaultBudget is the total number of cell updates per strategy run;
	// larger grids get proportionally fewer iterations.
	DefaultBudget = 100_000_000

	// DefaultSmallGridThreshold is the grid side below which parallel
	// strategies are skipped. It is a fixed heuristic, not a measured
	// break-even point.
	DefaultSmallGridThreshold = 50
)

// SmallGridReason is reported when parallel strategies are skipped.
const SmallGridReason = "grid too small: parallelization overhead outweighs the benefit, sequential execution is faster"

// ErrNilInput is returned when the harness is given no input grid.
var ErrNilInput = errors.New("input grid is nil")

// Harness times every strategy on the same input.
type Harness struct {
	Threads            int
	Budget             int // cell updates per run; used when Iterations == 0
	Iterations         int // fixed iteration count; overrides Budget when > 0
	SmallGridThreshold int
	TileSize           int
	LaneWidth          int
	Weights            stencil.Weights

	// Now is the clock used for timing. Defaults to time.Now.
	Now func() time.Time
}

// NewHarness returns a harness with the default budget, threshold, tile size
// and lane width for the host.
func NewHarness(threads int) *Harness {
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	return &Harness{
		Threads:            threads,
		Budget:             DefaultBudget,
		SmallGridThreshold: DefaultSmallGridThreshold,
		TileSize:           stencil.DefaultTileSize,
		LaneWidth:          stencil.PreferredLaneWidth(),
		Weights:            stencil.Laplacian9,
	}
}

// IterationsFor spreads budget cell updates over an n x n grid, with at
// least one iteration.
func IterationsFor(n, budget int) int {
	if n <= 0 {
		return 1
	}
	return max(1, budget/(n*n))
}

// Speedup returns baseline/elapsed, or 0 when elapsed is not positive.
func Speedup(baseline, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(baseline) / float64(elapsed)
}

func (h *Harness) iterations(g *grid.Grid) int {
	if h.Iterations > 0 {
		return h.Iterations
	}
	return IterationsFor(max(g.Rows, g.Cols), h.Budget)
}

// Config returns the executor configuration the harness uses for g.
func (h *Harness) Config(g *grid.Grid) stencil.Config {
	return stencil.Config{
		Threads:    h.Threads,
		Iterations: h.iterations(g),
		TileSize:   h.TileSize,
		LaneWidth:  h.LaneWidth,
		Weights:    h.Weights,
	}
}

func (h *Harness) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// measure runs e once into a fresh zeroed output grid.
func (h *Harness) measure(e stencil.Executor, in *grid.Grid, cfg stencil.Config) (*grid.Grid, time.Duration, error) {
	out, err := grid.New(in.Rows, in.Cols)
	if err != nil {
		return nil, 0, err
	}

	start := h.now()
	err = e.Run(in, out, cfg)
	elapsed := h.now().Sub(start)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", e.Strategy(), err)
	}
	return out, elapsed, nil
}

// Run times the sequential baseline and then each parallel strategy once.
// The configuration is checked for every strategy before anything runs.
// Grids smaller than SmallGridThreshold only get the baseline. ctx is
// checked between strategies; a running executor is never interrupted.
func (h *Harness) Run(ctx context.Context, input *grid.Grid) (*Report, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	cfg := h.Config(input)
	for _, s := range stencil.SupportedStrategies() {
		if err := cfg.ValidateFor(s); err != nil {
			return nil, err
		}
	}

	report := &Report{
		ID:          uuid.NewString(),
		StartedAt:   h.now(),
		Rows:        input.Rows,
		Cols:        input.Cols,
		Iterations:  cfg.Iterations,
		Threads:     cfg.Threads,
		TileSize:    cfg.TileSize,
		LaneWidth:   cfg.LaneWidth,
		LaneBackend: stencil.ActiveLaneBackend.String(),
		Weights:     cfg.Weights.Name,
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Info("Running sequential baseline", "rows", input.Rows, "cols", input.Cols, "iterations", cfg.Iterations)
	baseOut, baseElapsed, err := h.measure(stencil.NewSequential(), input, cfg)
	if err != nil {
		return nil, err
	}
	report.Baseline = Result{
		Strategy: stencil.StrategySequential,
		Threads:  1,
		Elapsed:  baseElapsed,
		Speedup:  1,
	}
	slog.Info("Sequential baseline complete", "elapsed", baseElapsed)

	if min(input.Rows, input.Cols) < h.SmallGridThreshold {
		report.Skipped = true
		report.SkipReason = SmallGridReason
		slog.Info("Skipping parallel strategies", "threshold", h.SmallGridThreshold)
		return report, nil
	}

	for _, s := range stencil.ParallelStrategies() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e, err := stencil.NewExecutor(string(s))
		if err != nil {
			return nil, err
		}
		out, elapsed, err := h.measure(e, input, cfg)
		if err != nil {
			return nil, err
		}

		res := Result{
			Strategy:   s,
			Threads:    cfg.Threads,
			Elapsed:    elapsed,
			Speedup:    Speedup(baseElapsed, elapsed),
			MaxRelDiff: grid.MaxRelDiff(baseOut, out),
		}
		report.Results = append(report.Results, res)

		slog.Info("Strategy complete",
			"strategy", s,
			"threads", cfg.Threads,
			"elapsed", elapsed,
			"speedup", fmt.Sprintf("%.2f", res.Speedup),
		)
	}

	return report, nil
}
