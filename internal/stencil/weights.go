package stencil

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidWeights is returned for a weight table that cannot be applied.
var ErrInvalidWeights = errors.New("invalid stencil weights")

// Weights is a symmetric 3x3 stencil:
//
//	Corner Edge   Corner
//	Edge   Center Edge
//	Corner Edge   Corner
//
// normalised by Divisor. Values are copied into every executor call.
type Weights struct {
	Name    string
	Corner  float64
	Edge    float64
	Center  float64
	Divisor float64
}

var (
	// Laplacian9 is the 9-point Laplacian used by the benchmark.
	Laplacian9 = Weights{Name: "laplacian", Corner: 1, Edge: 2, Center: -12, Divisor: 4}

	// Smooth9 is the edge-weight-1, center-weight-4 variant. It is an
	// independent kernel, not a rescaling of Laplacian9.
	Smooth9 = Weights{Name: "smooth", Corner: 1, Edge: 1, Center: 4, Divisor: 4}

	// EdgeDetect is the image edge kernel. Callers apply the +128 offset
	// and 0..255 clamp to its output themselves.
	EdgeDetect = Weights{Name: "edge", Corner: 1, Edge: 4, Center: -20, Divisor: 1}
)

// LookupWeights returns the preset with the given name.
func LookupWeights(name string) (Weights, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "laplacian", "laplace":
		return Laplacian9, nil
	case "smooth":
		return Smooth9, nil
	case "edge", "edges":
		return EdgeDetect, nil
	default:
		return Weights{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidWeights, name)
	}
}

// Validate rejects a zero or non-finite divisor and non-finite weights.
func (w Weights) Validate() error {
	if w.Divisor == 0 || math.IsNaN(w.Divisor) || math.IsInf(w.Divisor, 0) {
		return fmt.Errorf("%w: divisor %v", ErrInvalidWeights, w.Divisor)
	}
	for _, v := range []float64{w.Corner, w.Edge, w.Center} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: weight %v", ErrInvalidWeights, v)
		}
	}
	return nil
}

// Apply evaluates the stencil for one cell given its 3x3 neighborhood.
//
// The summation order is fixed and the explicit conversions stop the
// compiler from fusing multiply-adds, so every scalar path (and each lane of
// the vectorized path) rounds identically.
func (w Weights) Apply(nw, n, ne, west, c, east, sw, s, se float64) float64 {
	corners := float64(w.Corner * float64(float64(nw+ne)+float64(sw+se)))
	edges := float64(w.Edge * float64(float64(n+west)+float64(east+s)))
	center := float64(w.Center * c)
	return float64(float64(corners+edges)+center) / w.Divisor
}

// applyAt evaluates the stencil at column j given the three source rows
// around the target row.
func (w Weights) applyAt(up, mid, down []float64, j int) float64 {
	return w.Apply(
		up[j-1], up[j], up[j+1],
		mid[j-1], mid[j], mid[j+1],
		down[j-1], down[j], down[j+1],
	)
}

func (w Weights) String() string {
	return fmt.Sprintf("%s{corner=%g edge=%g center=%g /%g}", w.Name, w.Corner, w.Edge, w.Center, w.Divisor)
}
