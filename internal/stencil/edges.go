package stencil

import (
	"fmt"
	"math"

	"github.com/cwbudde/stencilbench/internal/grid"
	"github.com/cwbudde/stencilbench/internal/workerpool"
)

// EdgeOffset is added to every edge response so flat regions map to mid gray.
const EdgeOffset = 128

// DetectEdges applies EdgeDetect once, shifts each interior response by
// EdgeOffset and clamps it to [0, 255]. Interior rows are split statically
// across threads workers. Border cells of the result are 0.
func DetectEdges(in *grid.Grid, threads int) (*grid.Grid, error) {
	if in == nil {
		return nil, ErrShapeMismatch
	}
	if threads < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreads, threads)
	}
	out, err := grid.New(in.Rows, in.Cols)
	if err != nil {
		return nil, err
	}
	if !hasInterior(in) {
		return out, nil
	}
	logRun(StrategyParallel, in, Config{Threads: threads, Iterations: 1, Weights: EdgeDetect})

	pool := workerpool.New(min(threads, in.Rows-2))
	defer pool.Close()

	pool.ParallelFor(in.Rows-2, func(start, end int) {
		for i := start + 1; i < end+1; i++ {
			sweepRowRange(EdgeDetect, in, out, i, 1, in.Cols-1)
			row := out.Row(i)
			for j := 1; j < in.Cols-1; j++ {
				row[j] = clampPixel(row[j] + EdgeOffset)
			}
		}
	})
	return out, nil
}

func clampPixel(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 255)
}
