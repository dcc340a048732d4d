package fusion

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoModalities is returned when the input stack is empty.
	ErrNoModalities = errors.New("fusion: no modality matrices supplied")

	// ErrNilMatrix is returned when a nil matrix appears in the stack.
	ErrNilMatrix = errors.New("fusion: nil similarity matrix")

	// ErrDimensionMismatch is returned when stacked matrices differ in order.
	ErrDimensionMismatch = errors.New("fusion: similarity matrices differ in order")

	// ErrNaNInf is returned when a similarity entry is NaN or ±Inf.
	ErrNaNInf = errors.New("fusion: NaN or Inf similarity value")

	// ErrZeroRowSum is returned when a sample carries no similarity mass;
	// kernel normalisation would divide by zero.
	ErrZeroRowSum = errors.New("fusion: zero row sum (isolated sample)")

	// ErrBadNeighbors is returned when Neighbors < 1.
	ErrBadNeighbors = errors.New("fusion: Neighbors must be >= 1")

	// ErrBadIterations is returned when Iterations < 1.
	ErrBadIterations = errors.New("fusion: Iterations must be >= 1")

	// ErrBadTol is returned when Tol is negative or non-finite.
	ErrBadTol = errors.New("fusion: Tol must be a non-negative finite number")
)

const (
	// DefaultNeighbors is the local-kernel neighbourhood size.
	DefaultNeighbors = 20

	// DefaultIterations is the fixed diffusion length of Network.
	DefaultIterations = 20

	// DefaultTol disables the optional Frobenius-delta early stop.
	DefaultTol = 0.0

	// diagonalWeight is the fixed diagonal of the global kernel; it pins
	// half of each row's probability mass on the sample itself.
	diagonalWeight = 0.5
)

// Options configures iterative network fusion.
//
// Fields:
//   - Neighbors — local-kernel neighbourhood size K (clamped to n−1).
//   - Iterations — diffusion length T; the iteration has no convergence
//     requirement, a fixed small T is the intended mode of use.
//   - Tol — optional early stop: when > 0, iteration halts once the largest
//     per-modality Frobenius-norm change drops below Tol.
type Options struct {
	Neighbors  int
	Iterations int
	Tol        float64
}

// DefaultOptions returns the documented defaults (Neighbors=20,
// Iterations=20, early stop disabled).
func DefaultOptions() Options {
	return Options{
		Neighbors:  DefaultNeighbors,
		Iterations: DefaultIterations,
		Tol:        DefaultTol,
	}
}

// validateStack checks the modality stack for nil entries, mismatched
// orders and non-finite values. Returns the common order n.
func validateStack(ws []*mat.SymDense) (int, error) {
	if len(ws) == 0 {
		return 0, ErrNoModalities
	}
	var n int
	for idx, w := range ws {
		if w == nil {
			return 0, ErrNilMatrix
		}
		order := w.SymmetricDim()
		if idx == 0 {
			n = order
		} else if order != n {
			return 0, ErrDimensionMismatch
		}
		for i := 0; i < order; i++ {
			for j := i; j < order; j++ {
				v := w.At(i, j)
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return 0, ErrNaNInf
				}
			}
		}
	}

	return n, nil
}
