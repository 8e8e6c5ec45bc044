package opt

import (
	"math"
	"testing"
)

// bowl has its minimum at x = 21 in every dimension, inside [4, 64].
func bowl(x []float64) float64 {
	var sum float64
	for _, v := range x {
		d := v - 21
		sum += d * d
	}
	return sum
}

func TestMayflyAdapterFindsBowlMinimum(t *testing.T) {
	optimizer := NewMayfly(100, 20, 42)

	best, cost := optimizer.Run(bowl, []float64{4}, []float64{64}, 1)

	if len(best) != 1 {
		t.Fatalf("Expected 1 parameter, got %d", len(best))
	}
	if cost > 1 {
		t.Errorf("Expected cost near 0, got %f", cost)
	}
	if math.Abs(best[0]-21) > 1.5 {
		t.Errorf("Expected minimum near 21, got %f", best[0])
	}
}

func TestMayflyAdapterDeterministic(t *testing.T) {
	lower := []float64{-5, -5}
	upper := []float64{5, 5}

	_, cost1 := NewMayfly(50, 20, 123).Run(bowl, lower, upper, 2)
	_, cost2 := NewMayfly(50, 20, 123).Run(bowl, lower, upper, 2)

	if cost1 != cost2 {
		t.Errorf("Non-deterministic: cost1=%f, cost2=%f", cost1, cost2)
	}
}

func TestNewMayflyRaisesSmallPopulation(t *testing.T) {
	m := NewMayfly(10, 3, 1).(*MayflyAdapter)
	if m.popSize != MinPopulation {
		t.Errorf("Expected population %d, got %d", MinPopulation, m.popSize)
	}
}
