package grid

import "math"

// Tolerance configures approximate comparison of grid values.
type Tolerance struct {
	// AbsTol is used for values near zero
	AbsTol float64
	// RelTol is a fraction of the larger magnitude
	RelTol float64
}

// DefaultTolerance is suitable for comparing strategies that differ only in
// floating-point summation order.
func DefaultTolerance() Tolerance {
	return Tolerance{AbsTol: 1e-12, RelTol: 1e-9}
}

// NearEqual compares two values. NaNs compare equal to each other, and
// infinities compare equal when they have the same sign.
func NearEqual(a, b float64, tol Tolerance) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}

	diff := math.Abs(a - b)
	if diff <= tol.AbsTol {
		return true
	}
	larger := math.Max(math.Abs(a), math.Abs(b))
	return diff <= larger*tol.RelTol
}

// EqualWithin reports whether every cell of a and b is NearEqual.
func EqualWithin(a, b *Grid, tol Tolerance) bool {
	if !a.SameShape(b) {
		return false
	}
	for i := range a.Data {
		if !NearEqual(a.Data[i], b.Data[i], tol) {
			return false
		}
	}
	return true
}

// MaxRelDiff returns the largest relative difference between a and b.
// Cells that are both NaN, or equal infinities, contribute zero; a cell where
// only one side is non-finite contributes +Inf. Shape mismatch yields +Inf.
func MaxRelDiff(a, b *Grid) float64 {
	if !a.SameShape(b) {
		return math.Inf(1)
	}

	var worst float64
	for i := range a.Data {
		x, y := a.Data[i], b.Data[i]
		if x == y || (math.IsNaN(x) && math.IsNaN(y)) {
			continue
		}
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			return math.Inf(1)
		}
		larger := math.Max(math.Abs(x), math.Abs(y))
		rel := math.Abs(x-y) / larger
		if rel > worst {
			worst = rel
		}
	}
	return worst
}
