package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/cwbudde/stencilbench/internal/stencil"
)

// Result is the timing of one executor invocation.
type Result struct {
	Strategy   stencil.Strategy
	Threads    int
	Elapsed    time.Duration
	Speedup    float64 // baseline / Elapsed
	MaxRelDiff float64 // deviation from the sequential output
}

// Report collects one benchmark run. Each strategy is timed once, so
// results carry run-to-run noise.
type Report struct {
	ID          string
	StartedAt   time.Time
	Rows, Cols  int
	Iterations  int
	Threads     int
	TileSize    int
	LaneWidth   int
	LaneBackend string
	Weights     string
	Baseline    Result
	Results     []Result
	Skipped     bool
	SkipReason  string
}

// WriteText prints a human-readable summary.
func WriteText(w io.Writer, r *Report) error {
	var err error
	p := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	p("Benchmark %s\n", r.ID)
	p("Grid %dx%d, %d iterations, weights %s\n", r.Rows, r.Cols, r.Iterations, r.Weights)
	p("Sequential execution time: %.6f seconds\n", r.Baseline.Elapsed.Seconds())

	if r.Skipped {
		p("Parallel strategies skipped: %s\n", r.SkipReason)
		return err
	}

	for _, res := range r.Results {
		p("%-10s %2d threads: %.6f seconds, speedup %.2fx", res.Strategy, res.Threads, res.Elapsed.Seconds(), res.Speedup)
		switch res.Strategy {
		case stencil.StrategyTiled:
			p(" (tile %d)", r.TileSize)
		case stencil.StrategyVectorized:
			p(" (%d lanes, %s)", r.LaneWidth, r.LaneBackend)
		}
		p("\n")
	}
	return err
}

type jsonResult struct {
	Strategy   stencil.Strategy `json:"strategy"`
	Threads    int              `json:"threads"`
	ElapsedSec float64          `json:"elapsedSeconds"`
	Speedup    float64          `json:"speedup"`
	MaxRelDiff *float64         `json:"maxRelDiff,omitempty"`
}

type jsonReport struct {
	ID          string       `json:"id"`
	StartedAt   time.Time    `json:"startedAt"`
	Rows        int          `json:"rows"`
	Cols        int          `json:"cols"`
	Iterations  int          `json:"iterations"`
	Threads     int          `json:"threads"`
	TileSize    int          `json:"tileSize"`
	LaneWidth   int          `json:"laneWidth"`
	LaneBackend string       `json:"laneBackend"`
	Weights     string       `json:"weights"`
	Baseline    jsonResult   `json:"baseline"`
	Results     []jsonResult `json:"results"`
	Skipped     bool         `json:"skipped"`
	SkipReason  string       `json:"skipReason,omitempty"`
}

func toJSONResult(r Result) jsonResult {
	jr := jsonResult{
		Strategy:   r.Strategy,
		Threads:    r.Threads,
		ElapsedSec: r.Elapsed.Seconds(),
		Speedup:    r.Speedup,
	}
	// JSON has no encoding for NaN or Inf.
	if !math.IsNaN(r.MaxRelDiff) && !math.IsInf(r.MaxRelDiff, 0) {
		d := r.MaxRelDiff
		jr.MaxRelDiff = &d
	}
	return jr
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	out := jsonReport{
		ID:          r.ID,
		StartedAt:   r.StartedAt,
		Rows:        r.Rows,
		Cols:        r.Cols,
		Iterations:  r.Iterations,
		Threads:     r.Threads,
		TileSize:    r.TileSize,
		LaneWidth:   r.LaneWidth,
		LaneBackend: r.LaneBackend,
		Weights:     r.Weights,
		Baseline:    toJSONResult(r.Baseline),
		Results:     make([]jsonResult, 0, len(r.Results)),
		Skipped:     r.Skipped,
		SkipReason:  r.SkipReason,
	}
	for _, res := range r.Results {
		out.Results = append(out.Results, toJSONResult(res))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
