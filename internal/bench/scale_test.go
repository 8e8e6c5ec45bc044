package bench

import (
	"context"
	"errors"
	"math"
	"runtime"
	"testing"
	"time"

	"github.com/cwbudde/stencilbench/internal/stencil"
)

func TestScaleThreadsPoints(t *testing.T) {
	h := smallHarness()
	report, err := h.ScaleThreads(context.Background(), randomInput(64, 1), "parallel", []int{1, 2, 4})
	if err != nil {
		t.Fatalf("ScaleThreads failed: %v", err)
	}

	if report.Strategy != stencil.StrategyParallel {
		t.Errorf("Expected parallel strategy, got %s", report.Strategy)
	}
	if len(report.Points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(report.Points))
	}
	for i, want := range []int{1, 2, 4} {
		if report.Points[i].Threads != want {
			t.Errorf("Point %d: expected %d threads, got %d", i, want, report.Points[i].Threads)
		}
	}
}

func TestScaleThreadsDefaults(t *testing.T) {
	report, err := smallHarness().ScaleThreads(context.Background(), randomInput(32, 2), "simd", nil)
	if err != nil {
		t.Fatalf("ScaleThreads failed: %v", err)
	}
	if len(report.Points) != len(DefaultThreadCounts) {
		t.Errorf("Expected %d points, got %d", len(DefaultThreadCounts), len(report.Points))
	}
}

func TestScaleThreadsErrors(t *testing.T) {
	h := smallHarness()
	ctx := context.Background()

	if _, err := h.ScaleThreads(ctx, randomInput(16, 3), "cuda", nil); !errors.Is(err, stencil.ErrUnknownStrategy) {
		t.Errorf("Expected ErrUnknownStrategy, got %v", err)
	}
	if _, err := h.ScaleThreads(ctx, randomInput(16, 3), "tiled", []int{2, 0}); !errors.Is(err, stencil.ErrInvalidThreads) {
		t.Errorf("Expected ErrInvalidThreads, got %v", err)
	}

	bad := smallHarness()
	bad.TileSize = 0
	bad.Now = func() time.Time {
		t.Error("clock read before configuration was rejected")
		return time.Time{}
	}
	if _, err := bad.ScaleThreads(ctx, randomInput(16, 3), "tiled", nil); !errors.Is(err, stencil.ErrInvalidTileSize) {
		t.Errorf("Expected ErrInvalidTileSize, got %v", err)
	}
	bad.Now = nil
	if _, err := bad.ScaleThreads(ctx, randomInput(16, 3), "parallel", []int{1}); err != nil {
		t.Errorf("Parallel sweep should ignore tile size, got %v", err)
	}
	if _, err := h.ScaleThreads(ctx, nil, "tiled", nil); !errors.Is(err, ErrNilInput) {
		t.Errorf("Expected ErrNilInput, got %v", err)
	}
}

func TestRegressions(t *testing.T) {
	s := &ScalingReport{
		Points: []Result{
			{Threads: 1, Elapsed: 8 * time.Second},
			{Threads: 2, Elapsed: 4 * time.Second},
			{Threads: 4, Elapsed: 5 * time.Second}, // 1.25x slower than 2 threads
			{Threads: 8, Elapsed: 7 * time.Second}, // 1.4x slower than 4 threads
			{Threads: 3, Elapsed: 9 * time.Second}, // odd, no half point
		},
	}

	regs := s.Regressions(1.3)
	if len(regs) != 1 {
		t.Fatalf("Expected 1 regression, got %d: %v", len(regs), regs)
	}
	if regs[0].From.Threads != 4 || regs[0].To.Threads != 8 {
		t.Errorf("Unexpected regression %v", regs[0])
	}
	if math.Abs(regs[0].Ratio-1.4) > 1e-12 {
		t.Errorf("Expected ratio 1.4, got %v", regs[0].Ratio)
	}

	if regs := s.Regressions(2); len(regs) != 0 {
		t.Errorf("Expected no regressions at tolerance 2, got %v", regs)
	}
}

// TestThreadScalingDoesNotRegress times the parallel strategy on a large grid
// and fails if doubling threads makes it more than 50% slower. It measures
// wall-clock time, so it only runs in long mode on machines with spare cores.
func TestThreadScalingDoesNotRegress(t *testing.T) {
	if testing.Short() {
		t.Skip("performance test skipped in short mode")
	}
	if runtime.NumCPU() < 4 {
		t.Skipf("need at least 4 CPUs, have %d", runtime.NumCPU())
	}

	const tolerance = 1.5
	h := NewHarness(1)
	h.Iterations = 5
	input := randomInput(1024, 7)

	// Keep the fastest of three sweeps to damp scheduler noise.
	var best *ScalingReport
	for range 3 {
		report, err := h.ScaleThreads(context.Background(), input, "parallel", []int{1, 2, 4})
		if err != nil {
			t.Fatalf("ScaleThreads failed: %v", err)
		}
		if best == nil {
			best = report
			continue
		}
		for i := range best.Points {
			if report.Points[i].Elapsed < best.Points[i].Elapsed {
				best.Points[i] = report.Points[i]
			}
		}
	}

	for _, r := range best.Regressions(tolerance) {
		t.Errorf("Thread scaling regression: %s", r)
	}
}
