package cluster

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Spectral partitions n samples into k clusters by embedding the
// similarity graph through its normalised Laplacian.
//
// Implementation:
//   - Stage 1: validate the similarity matrix, k ∈ [1, n) and options.
//   - Stage 2: compute degrees dᵢ = Σⱼ w(i,j). A non-positive degree is
//     fatal (ErrIsolatedSample) unless Options.DegreeFloor > 0, in which
//     case degrees below the floor are raised to it.
//   - Stage 3: build L = I − D^(−1/2)·W·D^(−1/2) and factorise it with
//     gonum's symmetric eigensolver.
//   - Stage 4: take the eigenvectors of the k smallest eigenvalues as an
//     n×k embedding and unit-normalise each row (zero rows stay zero).
//   - Stage 5: partition the embedded rows with seeded k-means++.
//
// Inputs:
//   - w: symmetric n×n similarity matrix with non-negative entries.
//     Not mutated.
//   - k: number of clusters, 1 ≤ k < n.
//   - opts: nil means DefaultOptions().
//
// Returns:
//   - *Result: 1-based labels, nil Medoids (spectral centroids are
//     synthetic points, not samples) and the final k-means inertia.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf, ErrBadClusterCount, ErrIsolatedSample,
//     ErrEigenFailed.
//
// Determinism:
//   - The eigendecomposition is deterministic; the only randomness is the
//     k-means++ seeding, pinned by Options.Seed.
//
// Complexity:
//   - O(n³) eigendecomposition dominates; k-means adds O(iters·n·k²).
func Spectral(w *mat.SymDense, k int, opts *Options) (*Result, error) {
	n, err := validateSquare(w)
	if err != nil {
		return nil, err
	}
	if k < 1 || k >= n {
		return nil, ErrBadClusterCount
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.KMeansIterations <= 0 {
		o.KMeansIterations = DefaultKMeansIterations
	}

	// Degrees with the optional floor for weakly connected samples.
	invSqrt := make([]float64, n)
	var i, j int
	for i = 0; i < n; i++ {
		var deg float64
		for j = 0; j < n; j++ {
			deg += w.At(i, j)
		}
		if deg < o.DegreeFloor {
			deg = o.DegreeFloor
		}
		if deg <= 0 {
			return nil, ErrIsolatedSample
		}
		invSqrt[i] = 1 / math.Sqrt(deg)
	}

	// Symmetric normalised Laplacian.
	lap := mat.NewSymDense(n, nil)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v := -w.At(i, j) * invSqrt[i] * invSqrt[j]
			if i == j {
				v++
			}
			lap.SetSym(i, j, v)
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(lap, true); !ok {
		return nil, ErrEigenFailed
	}

	// gonum orders eigenvalues ascending, so the first k eigenvector
	// columns span the target embedding.
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	embed := mat.NewDense(n, k, nil)
	for i = 0; i < n; i++ {
		var norm float64
		for j = 0; j < k; j++ {
			v := vecs.At(i, j)
			embed.Set(i, j, v)
			norm += v * v
		}
		if norm == 0 {
			continue // degenerate row: leave at the origin
		}
		norm = math.Sqrt(norm)
		for j = 0; j < k; j++ {
			embed.Set(i, j, embed.At(i, j)/norm)
		}
	}

	rng := rngFromSeed(o.Seed)
	labels, inertia := kMeans(embed, k, o.KMeansIterations, rng)
	for i = range labels {
		labels[i]++ // public labels live in [1, k]
	}

	return &Result{Labels: labels, Medoids: nil, Cost: inertia}, nil
}
