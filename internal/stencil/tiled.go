package stencil

import (
	"github.com/cwbudde/stencilbench/internal/grid"
	"github.com/cwbudde/stencilbench/internal/workerpool"
)

// TiledExecutor partitions the interior into square tiles of cfg.TileSize
// cells and schedules whole tiles across workers. Cells inside a tile are
// visited row-major so the three source rows of a tile stay cache resident.
type TiledExecutor struct{}

// NewTiled returns the cache-blocked parallel executor.
func NewTiled() *TiledExecutor {
	return &TiledExecutor{}
}

// Strategy implements Executor.
func (e *TiledExecutor) Strategy() Strategy {
	return StrategyTiled
}

// Tile is the half-open interior region [RowStart, RowEnd) x [ColStart, ColEnd).
type Tile struct {
	RowStart, RowEnd int
	ColStart, ColEnd int
}

// tiling describes how an interior is cut into tiles.
type tiling struct {
	size        int
	rows, cols  int // grid dimensions
	tilesPerRow int
	tilesPerCol int
}

func newTiling(rows, cols, size int) tiling {
	return tiling{
		size:        size,
		rows:        rows,
		cols:        cols,
		tilesPerRow: (cols - 2 + size - 1) / size,
		tilesPerCol: (rows - 2 + size - 1) / size,
	}
}

func (t tiling) count() int {
	return t.tilesPerRow * t.tilesPerCol
}

// tile returns tile k in row-major tile order, clipped to the interior.
func (t tiling) tile(k int) Tile {
	bi, bj := k/t.tilesPerRow, k%t.tilesPerRow
	i0 := 1 + bi*t.size
	j0 := 1 + bj*t.size
	return Tile{
		RowStart: i0,
		RowEnd:   min(i0+t.size, t.rows-1),
		ColStart: j0,
		ColEnd:   min(j0+t.size, t.cols-1),
	}
}

// Tiles lists the tiles covering the interior of a rows x cols grid.
func Tiles(rows, cols, size int) []Tile {
	if rows < 3 || cols < 3 || size < 1 {
		return nil
	}
	t := newTiling(rows, cols, size)
	tiles := make([]Tile, t.count())
	for k := range tiles {
		tiles[k] = t.tile(k)
	}
	return tiles
}

// Run implements Executor.
func (e *TiledExecutor) Run(in, out *grid.Grid, cfg Config) error {
	if err := cfg.ValidateFor(StrategyTiled); err != nil {
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
	t := newTiling(in.Rows, in.Cols, cfg.TileSize)

	pool := workerpool.New(min(cfg.Threads, t.count()))
	defer pool.Close()

	iterate(in, out, cfg.Iterations, func(src, dst *grid.Grid) {
		pool.ParallelForGuided(t.count(), 1, func(start, end int) {
			for k := start; k < end; k++ {
				tl := t.tile(k)
				for i := tl.RowStart; i < tl.RowEnd; i++ {
					sweepRowRange(w, src, dst, i, tl.ColStart, tl.ColEnd)
				}
			}
		})
	})
	return nil
}
