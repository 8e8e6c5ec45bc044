package stencil

// Fixed-width lane types for the vectorized strategy. Each operation touches
// every lane with the same scalar instruction sequence Weights.Apply uses, so
// lane results round exactly like the scalar kernel.

type vec4 [4]float64

func load4(s []float64, j int) vec4 { return vec4(s[j : j+4]) }

func (a vec4) store(s []float64, j int) { copy(s[j:j+4], a[:]) }

func (a vec4) add(b vec4) vec4 {
	return vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a vec4) mul(k float64) vec4 {
	return vec4{float64(a[0] * k), float64(a[1] * k), float64(a[2] * k), float64(a[3] * k)}
}

func (a vec4) div(k float64) vec4 {
	return vec4{a[0] / k, a[1] / k, a[2] / k, a[3] / k}
}

type vec8 [8]float64

func load8(s []float64, j int) vec8 { return vec8(s[j : j+8]) }

func (a vec8) store(s []float64, j int) { copy(s[j:j+8], a[:]) }

func (a vec8) add(b vec8) vec8 {
	return vec8{
		a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3],
		a[4] + b[4], a[5] + b[5], a[6] + b[6], a[7] + b[7],
	}
}

func (a vec8) mul(k float64) vec8 {
	return vec8{
		float64(a[0] * k), float64(a[1] * k), float64(a[2] * k), float64(a[3] * k),
		float64(a[4] * k), float64(a[5] * k), float64(a[6] * k), float64(a[7] * k),
	}
}

func (a vec8) div(k float64) vec8 {
	return vec8{
		a[0] / k, a[1] / k, a[2] / k, a[3] / k,
		a[4] / k, a[5] / k, a[6] / k, a[7] / k,
	}
}

// step4 computes output columns j..j+3 of one row.
func (w Weights) step4(up, mid, down, dst []float64, j int) {
	corners := load4(up, j-1).add(load4(up, j+1)).add(load4(down, j-1).add(load4(down, j+1))).mul(w.Corner)
	edges := load4(up, j).add(load4(mid, j-1)).add(load4(mid, j+1).add(load4(down, j))).mul(w.Edge)
	center := load4(mid, j).mul(w.Center)
	corners.add(edges).add(center).div(w.Divisor).store(dst, j)
}

// step8 computes output columns j..j+7 of one row.
func (w Weights) step8(up, mid, down, dst []float64, j int) {
	corners := load8(up, j-1).add(load8(up, j+1)).add(load8(down, j-1).add(load8(down, j+1))).mul(w.Corner)
	edges := load8(up, j).add(load8(mid, j-1)).add(load8(mid, j+1).add(load8(down, j))).mul(w.Edge)
	center := load8(mid, j).mul(w.Center)
	corners.add(edges).add(center).div(w.Divisor).store(dst, j)
}
