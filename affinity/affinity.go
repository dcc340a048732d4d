package affinity

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix converts an n×m feature matrix into an n×n similarity matrix using
// the locally-adaptive scaled exponential kernel.
//
// Implementation:
//   - Stage 1: validate the input (non-nil, non-empty, finite entries) and
//     the options (Neighbors ≥ 1, Mu > 0); clamp Neighbors to n−1.
//   - Stage 2: compute the full Euclidean distance matrix between sample
//     rows, then the mean distance μᵢ to each sample's Neighbors nearest
//     neighbours (excluding itself).
//   - Stage 3: map distances to similarities with
//     W(i,j) = exp(−d(i,j)² / σ(i,j)²), σ(i,j) = Mu·(μᵢ+μⱼ+d(i,j))/3,
//     mirroring each value so W is symmetric by construction; the diagonal
//     is fixed at 1.
//
// Inputs:
//   - x: n×m feature matrix, rows are samples. Not mutated.
//   - opts: kernel configuration; nil means DefaultOptions().
//
// Returns:
//   - *mat.SymDense: symmetric n×n affinity matrix, unit diagonal,
//     entries in (0, 1].
//
// Errors:
//   - ErrNilMatrix, ErrEmptyMatrix, ErrNaNInf, ErrBadNeighbors, ErrBadMu.
//
// Determinism:
//   - Fixed i→j loop orders and a stable neighbour sort; identical inputs
//     produce bit-identical outputs.
//
// Complexity:
//   - Time O(n²·m + n²·log n), Space O(n²).
func Matrix(x *mat.Dense, opts *Options) (*mat.SymDense, error) {
	if x == nil {
		return nil, ErrNilMatrix
	}
	n, m := x.Dims()
	if n == 0 || m == 0 {
		return nil, ErrEmptyMatrix
	}

	// Resolve options.
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Neighbors < 1 {
		return nil, ErrBadNeighbors
	}
	if o.Mu <= 0 || math.IsInf(o.Mu, 0) || math.IsNaN(o.Mu) {
		return nil, ErrBadMu
	}
	k := o.Neighbors
	if k > n-1 {
		k = n - 1 // small cohorts: every other sample is a neighbour
	}

	// Reject NaN/Inf before any arithmetic (fail fast, no partial results).
	var i, j int
	for i = 0; i < n; i++ {
		row := x.RawRowView(i)
		for j = 0; j < m; j++ {
			if math.IsNaN(row[j]) || math.IsInf(row[j], 0) {
				return nil, ErrNaNInf
			}
		}
	}

	// Full pairwise Euclidean distance matrix, symmetric with zero diagonal.
	dist := mat.NewSymDense(n, nil)
	var d float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = floats.Distance(x.RawRowView(i), x.RawRowView(j), 2)
			dist.SetSym(i, j, d)
		}
	}

	// Local bandwidth μᵢ: mean distance to the k nearest neighbours of i.
	// A single-sample matrix has no neighbours; k==0 never happens for n≥2.
	mu := make([]float64, n)
	if n > 1 {
		buf := make([]float64, 0, n-1)
		for i = 0; i < n; i++ {
			buf = buf[:0]
			for j = 0; j < n; j++ {
				if j == i {
					continue
				}
				buf = append(buf, dist.At(i, j))
			}
			sort.Float64s(buf)
			var sum float64
			for j = 0; j < k; j++ {
				sum += buf[j]
			}
			mu[i] = sum / float64(k)
		}
	}

	// Scaled exponential kernel with symmetric local bandwidth.
	w := mat.NewSymDense(n, nil)
	var sigma float64
	for i = 0; i < n; i++ {
		w.SetSym(i, i, selfSimilarity)
		for j = i + 1; j < n; j++ {
			d = dist.At(i, j)
			if d == 0 {
				// Identical samples: similarity 1 regardless of bandwidth.
				w.SetSym(i, j, selfSimilarity)
				continue
			}
			// σ > 0 is guaranteed here: Mu > 0 and d > 0.
			sigma = o.Mu * (mu[i] + mu[j] + d) / 3
			w.SetSym(i, j, math.Exp(-(d*d)/(sigma*sigma)))
		}
	}

	return w, nil
}
