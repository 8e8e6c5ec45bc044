// Package stencil implements a fixed-weight 3x3 stencil over a dense grid
// with four interchangeable execution strategies:
//
//   - sequential: row-major, single goroutine (baseline)
//   - parallel:   collapsed (i, j) index space, guided chunks across workers
//   - tiled:      square cache tiles scheduled across workers
//   - vectorized: lane-wide column steps (4 or 8 float64) with scalar
//     remainder, rows scheduled across workers
//
// Every strategy evaluates the same Weights.Apply formula with the same
// rounding, reads only the source buffer of an iteration and writes a
// disjoint set of interior cells per worker. Border rows and columns of the
// output are never written.
package stencil
