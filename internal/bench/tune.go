package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/cwbudde/stencilbench/internal/grid"
	"github.com/cwbudde/stencilbench/internal/opt"
	"github.com/cwbudde/stencilbench/internal/stencil"
)

// TuneResult is the outcome of a tile-size search.
type TuneResult struct {
	TileSize int
	Elapsed  time.Duration
	Measured map[int]time.Duration // every tile size timed
}

// Sizes returns the measured tile sizes in ascending order.
func (t *TuneResult) Sizes() []int {
	sizes := make([]int, 0, len(t.Measured))
	for s := range t.Measured {
		sizes = append(sizes, s)
	}
	sort.Ints(sizes)
	return sizes
}

// TuneTileSize searches [lo, hi] for the tile side with the lowest tiled
// executor time on input. Each distinct size is timed once; the optimizer
// only decides which sizes to try. The result is a recommendation, the
// tiled executor still takes its tile size explicitly.
func (h *Harness) TuneTileSize(ctx context.Context, input *grid.Grid, optimizer opt.Optimizer, lo, hi int) (*TuneResult, error) {
	if input == nil {
		return nil, ErrNilInput
	}
	if lo < 1 || hi < lo {
		return nil, fmt.Errorf("%w: range [%d, %d]", stencil.ErrInvalidTileSize, lo, hi)
	}

	cfg := h.Config(input)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tiled := stencil.NewTiled()
	measured := make(map[int]time.Duration)
	var (
		mu     sync.Mutex
		runErr error
	)

	// Timings are taken one at a time even if the optimizer evaluates
	// candidates concurrently.
	eval := func(x []float64) float64 {
		mu.Lock()
		defer mu.Unlock()

		size := int(math.Round(x[0]))
		size = min(max(size, lo), hi)
		if d, ok := measured[size]; ok {
			return d.Seconds()
		}
		if runErr != nil {
			return math.Inf(1)
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			return math.Inf(1)
		}

		c := cfg
		c.TileSize = size
		_, elapsed, err := h.measure(tiled, input, c)
		if err != nil {
			runErr = err
			return math.Inf(1)
		}
		measured[size] = elapsed
		slog.Debug("Tile size measured", "tile", size, "elapsed", elapsed)
		return elapsed.Seconds()
	}

	optimizer.Run(eval, []float64{float64(lo)}, []float64{float64(hi)}, 1)
	if runErr != nil {
		return nil, runErr
	}
	if len(measured) == 0 {
		// The optimizer never called back; time the default.
		eval([]float64{float64(min(max(stencil.DefaultTileSize, lo), hi))})
		if runErr != nil {
			return nil, runErr
		}
	}

	res := &TuneResult{Measured: measured, Elapsed: time.Duration(math.MaxInt64)}
	for size, d := range measured {
		if d < res.Elapsed || (d == res.Elapsed && size < res.TileSize) {
			res.TileSize, res.Elapsed = size, d
		}
	}

	slog.Info("Tile tuning complete", "best_tile", res.TileSize, "elapsed", res.Elapsed, "sizes_tried", len(measured))
	return res, nil
}
