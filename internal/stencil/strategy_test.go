package stencil

import (
	"errors"
	"testing"
)

func TestNormalizeStrategy(t *testing.T) {
	cases := map[string]Strategy{
		"":           StrategySequential,
		"SEQ":        StrategySequential,
		"omp":        StrategyParallel,
		" parallel ": StrategyParallel,
		"tile":       StrategyTiled,
		"blocked":    StrategyTiled,
		"simd":       StrategyVectorized,
		"Vector":     StrategyVectorized,
		"gpu":        Strategy("gpu"),
	}
	for in, want := range cases {
		if got := NormalizeStrategy(in); got != want {
			t.Errorf("NormalizeStrategy(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewExecutorForEverySupportedStrategy(t *testing.T) {
	for _, s := range SupportedStrategies() {
		e, err := NewExecutor(string(s))
		if err != nil {
			t.Fatalf("NewExecutor(%q) failed: %v", s, err)
		}
		if e.Strategy() != s {
			t.Errorf("NewExecutor(%q) returned %q executor", s, e.Strategy())
		}
	}
}

func TestNewExecutorUnknown(t *testing.T) {
	e, err := NewExecutor("opencl")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("Expected ErrUnknownStrategy, got %v", err)
	}
	if e != nil {
		t.Error("Expected nil executor for unknown strategy")
	}
}

func TestParallelStrategiesExcludeBaseline(t *testing.T) {
	for _, s := range ParallelStrategies() {
		if s == StrategySequential {
			t.Error("ParallelStrategies must not include the sequential baseline")
		}
	}
	if len(ParallelStrategies()) != len(SupportedStrategies())-1 {
		t.Errorf("Expected %d parallel strategies, got %d", len(SupportedStrategies())-1, len(ParallelStrategies()))
	}
}

func TestTilesCoverInteriorExactlyOnce(t *testing.T) {
	cases := []struct{ rows, cols, size int }{
		{3, 3, 16},
		{18, 18, 16},
		{19, 19, 16},
		{50, 30, 7},
		{10, 10, 1},
	}
	for _, tc := range cases {
		seen := make(map[[2]int]int)
		for _, tl := range Tiles(tc.rows, tc.cols, tc.size) {
			if tl.RowEnd-tl.RowStart > tc.size || tl.ColEnd-tl.ColStart > tc.size {
				t.Errorf("%+v: tile %+v larger than %d", tc, tl, tc.size)
			}
			if tl.RowEnd > tc.rows-1 || tl.ColEnd > tc.cols-1 {
				t.Errorf("%+v: tile %+v extends past interior", tc, tl)
			}
			for i := tl.RowStart; i < tl.RowEnd; i++ {
				for j := tl.ColStart; j < tl.ColEnd; j++ {
					seen[[2]int{i, j}]++
				}
			}
		}
		if len(seen) != (tc.rows-2)*(tc.cols-2) {
			t.Errorf("%+v: covered %d cells, want %d", tc, len(seen), (tc.rows-2)*(tc.cols-2))
		}
		for cell, n := range seen {
			if n != 1 {
				t.Errorf("%+v: cell %v covered %d times", tc, cell, n)
			}
		}
	}

	if Tiles(2, 10, 4) != nil {
		t.Error("Expected no tiles for a grid without interior")
	}
}

func TestLaneBackendString(t *testing.T) {
	if ActiveLaneBackend.String() == "unknown" {
		t.Errorf("Active lane backend not recognised: %d", ActiveLaneBackend)
	}
	if w := PreferredLaneWidth(); w != 4 && w != 8 {
		t.Errorf("Unexpected preferred lane width %d", w)
	}
}
