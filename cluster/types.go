package cluster

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("cluster: input matrix is nil")

	// ErrNaNInf indicates a NaN or ±Inf matrix entry.
	ErrNaNInf = errors.New("cluster: NaN or Inf matrix entry")

	// ErrBadClusterCount indicates k outside the valid range [1, n).
	ErrBadClusterCount = errors.New("cluster: k must be in [1, n)")

	// ErrIsolatedSample indicates a zero-degree sample: the normalised
	// Laplacian would divide by zero. Set Options.DegreeFloor to impute a
	// minimum degree instead.
	ErrIsolatedSample = errors.New("cluster: isolated sample (zero degree)")

	// ErrSwapCapExceeded indicates the defensive cap on PAM swap sweeps
	// fired. The swap phase decreases cost monotonically, so hitting the
	// cap signals an implementation bug rather than bad data.
	ErrSwapCapExceeded = errors.New("cluster: swap iteration cap exceeded")

	// ErrEigenFailed indicates the symmetric eigendecomposition did not
	// converge.
	ErrEigenFailed = errors.New("cluster: eigendecomposition failed")
)

const (
	// DefaultSeed feeds the deterministic RNG streams behind k-means++.
	DefaultSeed int64 = 1

	// DefaultKMeansIterations caps the Lloyd refinement of the spectral
	// embedding.
	DefaultKMeansIterations = 100

	// DefaultDegreeFloor of 0 treats zero-degree samples as fatal.
	DefaultDegreeFloor = 0.0
)

// Result is the outcome of a cluster assignment.
type Result struct {
	// Labels maps each sample index to a cluster label in [1, k].
	Labels []int

	// Medoids lists the sample indices chosen as cluster representatives,
	// ascending. Nil for spectral partitioning (centroids are synthetic).
	Medoids []int

	// Cost is the objective value at termination: total dissimilarity to
	// the nearest medoid for PAM, k-means inertia of the embedding for
	// spectral partitioning.
	Cost float64
}

// Options configures the cluster assigners.
//
// Fields:
//   - Seed — base seed for the k-means++ RNG stream (spectral only);
//     0 falls back to DefaultSeed.
//   - KMeansIterations — Lloyd iteration cap (spectral only).
//   - DegreeFloor — when > 0, degrees below the floor are raised to it
//     instead of failing with ErrIsolatedSample (spectral only).
type Options struct {
	Seed             int64
	KMeansIterations int
	DegreeFloor      float64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Seed:             DefaultSeed,
		KMeansIterations: DefaultKMeansIterations,
		DegreeFloor:      DefaultDegreeFloor,
	}
}

// validateSquare rejects nil matrices and non-finite entries, returning
// the matrix order.
func validateSquare(m *mat.SymDense) (int, error) {
	if m == nil {
		return 0, ErrNilMatrix
	}
	n := m.SymmetricDim()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, ErrNaNInf
			}
		}
	}

	return n, nil
}

// Dissimilarity converts a similarity matrix into a dissimilarity matrix:
// 1 − min-max-normalised similarity, diagonal forced to zero.
//
// A constant similarity matrix (max == min) normalises to zero
// dissimilarity everywhere, which downstream assigners treat as "all
// samples equivalent".
//
// Complexity: O(n²) time, O(n²) space.
func Dissimilarity(w *mat.SymDense) (*mat.SymDense, error) {
	n, err := validateSquare(w)
	if err != nil {
		return nil, err
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v := w.At(i, j)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	d := mat.NewSymDense(n, nil)
	span := hi - lo
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if span == 0 {
				continue // uniform similarity: zero dissimilarity
			}
			d.SetSym(i, j, 1-(w.At(i, j)-lo)/span)
		}
	}

	return d, nil
}
