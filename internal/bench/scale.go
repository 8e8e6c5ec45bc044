package bench

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cwbudde/stencilbench/internal/grid"
	"github.com/cwbudde/stencilbench/internal/stencil"
)

// DefaultThreadCounts is the sweep used when none is given.
var DefaultThreadCounts = []int{1, 2, 4, 8}

// ScalingReport holds one strategy timed at several thread counts against a
// single sequential baseline.
type ScalingReport struct {
	Strategy   stencil.Strategy
	Rows, Cols int
	Iterations int
	Baseline   Result
	Points     []Result
}

// ScaleThreads runs strategy once for each thread count.
func (h *Harness) ScaleThreads(ctx context.Context, input *grid.Grid, strategy string, threadCounts []int) (*ScalingReport, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if len(threadCounts) == 0 {
		threadCounts = DefaultThreadCounts
	}
	e, err := stencil.NewExecutor(strategy)
	if err != nil {
		return nil, err
	}

	cfg := h.Config(input)
	for _, n := range threadCounts {
		c := cfg
		c.Threads = n
		if err := c.ValidateFor(e.Strategy()); err != nil {
			return nil, err
		}
	}

	report := &ScalingReport{
		Strategy:   e.Strategy(),
		Rows:       input.Rows,
		Cols:       input.Cols,
		Iterations: cfg.Iterations,
	}

	_, baseElapsed, err := h.measure(stencil.NewSequential(), input, cfg)
	if err != nil {
		return nil, err
	}
	report.Baseline = Result{Strategy: stencil.StrategySequential, Threads: 1, Elapsed: baseElapsed, Speedup: 1}

	for _, n := range threadCounts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c := cfg
		c.Threads = n

		_, elapsed, err := h.measure(e, input, c)
		if err != nil {
			return nil, err
		}
		report.Points = append(report.Points, Result{
			Strategy: e.Strategy(),
			Threads:  n,
			Elapsed:  elapsed,
			Speedup:  Speedup(baseElapsed, elapsed),
		})
		slog.Info("Scaling point", "strategy", e.Strategy(), "threads", n, "elapsed", elapsed)
	}

	return report, nil
}

// Regression is a thread count increase that made a run slower than allowed.
type Regression struct {
	From, To Result
	Ratio    float64 // To.Elapsed / From.Elapsed
}

func (r Regression) String() string {
	return fmt.Sprintf("%d -> %d threads: %.2fx slower", r.From.Threads, r.To.Threads, r.Ratio)
}

// Regressions compares every point with the point at half its thread count
// and reports those whose elapsed time grew by more than tolerance (e.g. 1.25
// allows a 25% slowdown).
func (s *ScalingReport) Regressions(tolerance float64) []Regression {
	byThreads := make(map[int]Result, len(s.Points))
	for _, p := range s.Points {
		byThreads[p.Threads] = p
	}

	var out []Regression
	for _, p := range s.Points {
		if p.Threads%2 != 0 {
			continue
		}
		half, ok := byThreads[p.Threads/2]
		if !ok || half.Elapsed <= 0 {
			continue
		}
		ratio := float64(p.Elapsed) / float64(half.Elapsed)
		if ratio > tolerance {
			out = append(out, Regression{From: half, To: p, Ratio: ratio})
		}
	}
	return out
}
