package affinity

import "errors"

var (
	// ErrNilMatrix indicates a nil feature matrix was supplied.
	ErrNilMatrix = errors.New("affinity: feature matrix is nil")

	// ErrEmptyMatrix indicates the feature matrix has no rows or no columns.
	ErrEmptyMatrix = errors.New("affinity: feature matrix is empty")

	// ErrNaNInf indicates a NaN or ±Inf feature value was encountered.
	ErrNaNInf = errors.New("affinity: NaN or Inf feature value")

	// ErrBadNeighbors indicates Neighbors is below the minimum of 1.
	ErrBadNeighbors = errors.New("affinity: Neighbors must be >= 1")

	// ErrBadMu indicates Mu is not a positive finite number.
	ErrBadMu = errors.New("affinity: Mu must be positive and finite")
)

const (
	// DefaultNeighbors is the neighbourhood size used for the local
	// bandwidth estimate when the caller does not override it.
	DefaultNeighbors = 20

	// DefaultMu is the kernel bandwidth multiplier. Values in [0.3, 0.8]
	// are the usual working range for standardized omics data.
	DefaultMu = 0.5

	// selfSimilarity is the fixed diagonal value of every affinity matrix.
	selfSimilarity = 1.0
)

// Options configures the affinity kernel.
//
// Fields:
//   - Neighbors — number of nearest neighbours contributing to the local
//     bandwidth μᵢ. Clamped to n−1 for small cohorts.
//   - Mu — bandwidth multiplier applied to the averaged local distances.
//
// Example:
//
//	opts := affinity.DefaultOptions()
//	opts.Neighbors = 15
//	w, err := affinity.Matrix(x, &opts)
type Options struct {
	Neighbors int
	Mu        float64
}

// DefaultOptions returns the documented defaults (Neighbors=20, Mu=0.5).
func DefaultOptions() Options {
	return Options{Neighbors: DefaultNeighbors, Mu: DefaultMu}
}
