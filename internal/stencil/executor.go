package stencil

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/stencilbench/internal/grid"
)

// Executor applies a stencil to a grid using one execution strategy.
//
// Run reads in and writes only the interior cells of out. in is never
// modified. With Iterations > 1 the result of each iteration becomes the
// input of the next (ping-pong) and the final result lands in out. With
// Iterations == 0, or a grid smaller than 3 in either dimension, out is left
// untouched.
type Executor interface {
	Strategy() Strategy
	Run(in, out *grid.Grid, cfg Config) error
}

// sweepFunc computes one full iteration from src into dst.
type sweepFunc func(src, dst *grid.Grid)

// checkGrids validates the grid pair shared by all strategies.
func checkGrids(in, out *grid.Grid) error {
	if in == nil || out == nil {
		return fmt.Errorf("%w: nil grid", ErrShapeMismatch)
	}
	if !in.SameShape(out) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, in.Rows, in.Cols, out.Rows, out.Cols)
	}
	if len(in.Data) != in.Rows*in.Cols || len(out.Data) != out.Rows*out.Cols {
		return fmt.Errorf("%w: backing slice does not match dimensions", ErrShapeMismatch)
	}
	if len(in.Data) > 0 && &in.Data[0] == &out.Data[0] {
		return ErrAliasedGrids
	}
	return nil
}

// hasInterior reports whether g has at least one updatable cell.
func hasInterior(g *grid.Grid) bool {
	return g.Rows >= 3 && g.Cols >= 3
}

// iterate runs step cfg.Iterations times, alternating between out and a
// scratch buffer so that the last iteration writes into out. The scratch
// buffer starts as a copy of out, so later iterations see out's border
// cells exactly as a copy-back scheme would.
func iterate(in, out *grid.Grid, iterations int, step sweepFunc) {
	if iterations == 0 || !hasInterior(in) {
		return
	}
	if iterations == 1 {
		step(in, out)
		return
	}

	scratch := out.Clone()
	src := in
	for k := 0; k < iterations; k++ {
		dst := out
		if (iterations-1-k)%2 != 0 {
			dst = scratch
		}
		step(src, dst)
		src = dst
	}
}

// sweepRowRange updates cells (i, j0) .. (i, j1-1) of dst from src.
func sweepRowRange(w Weights, src, dst *grid.Grid, i, j0, j1 int) {
	up, mid, down := src.Row(i-1), src.Row(i), src.Row(i+1)
	row := dst.Row(i)
	for j := j0; j < j1; j++ {
		row[j] = w.applyAt(up, mid, down, j)
	}
}

func logRun(s Strategy, in *grid.Grid, cfg Config) {
	slog.Debug("Stencil run",
		"strategy", s,
		"rows", in.Rows,
		"cols", in.Cols,
		"iterations", cfg.Iterations,
		"threads", cfg.Threads,
		"weights", cfg.Weights.Name,
	)
}
