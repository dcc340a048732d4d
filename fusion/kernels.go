package fusion

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// GlobalKernel derives the full transition kernel P from a similarity
// matrix W: off-diagonal P(i,j) = W(i,j)/(2·Σ_{k≠i}W(i,k)), diagonal 1/2.
//
// Every row of the result sums to exactly 1: the off-diagonal mass is half
// the row, the diagonal carries the other half. W is not mutated.
//
// Errors: ErrNilMatrix, ErrNaNInf, ErrZeroRowSum (a row with no
// off-diagonal similarity mass cannot be normalised).
//
// Complexity: O(n²) time, O(n²) space.
func GlobalKernel(w *mat.SymDense) (*mat.Dense, error) {
	n, err := validateStack([]*mat.SymDense{w})
	if err != nil {
		return nil, err
	}

	p := mat.NewDense(n, n, nil)
	var i, j int
	var sum float64
	for i = 0; i < n; i++ {
		sum = 0
		for j = 0; j < n; j++ {
			if j == i {
				continue
			}
			sum += w.At(i, j)
		}
		if sum <= 0 {
			return nil, ErrZeroRowSum
		}
		for j = 0; j < n; j++ {
			if j == i {
				p.Set(i, j, diagonalWeight)
				continue
			}
			p.Set(i, j, w.At(i, j)/(2*sum))
		}
	}

	return p, nil
}

// LocalKernel derives the sparse neighbourhood kernel S from a similarity
// matrix W: row i keeps only the k most similar samples, the sample itself
// included (ties broken by lower index), row-normalised to sum to 1; all
// other entries are zero.
//
// The neighbourhood must contain the sample itself: the diffusion step
// S·P·Sᵀ routes each sample's dominant diagonal transition mass through S,
// and a zero self-entry would force that mass through shared third parties,
// suppressing directly linked pairs instead of reinforcing them.
//
// k is clamped to n. W is not mutated.
//
// Errors: ErrNilMatrix, ErrNaNInf, ErrBadNeighbors, ErrZeroRowSum (the
// selected neighbourhood of some sample has no similarity mass).
//
// Complexity: O(n²·log n) time, O(n²) space.
func LocalKernel(w *mat.SymDense, k int) (*mat.Dense, error) {
	n, err := validateStack([]*mat.SymDense{w})
	if err != nil {
		return nil, err
	}
	if k < 1 {
		return nil, ErrBadNeighbors
	}
	if k > n {
		k = n
	}

	s := mat.NewDense(n, n, nil)
	order := make([]int, 0, n)
	var i, j int
	var sum float64
	for i = 0; i < n; i++ {
		// Rank the entries of row i by similarity, descending; equal
		// similarities keep ascending index order for determinism.
		order = order[:0]
		for j = 0; j < n; j++ {
			order = append(order, j)
		}
		row := i // capture for the closure below
		sort.SliceStable(order, func(a, b int) bool {
			return w.At(row, order[a]) > w.At(row, order[b])
		})

		sum = 0
		for j = 0; j < k; j++ {
			sum += w.At(i, order[j])
		}
		if sum <= 0 {
			return nil, ErrZeroRowSum
		}
		for j = 0; j < k; j++ {
			s.Set(i, order[j], w.At(i, order[j])/sum)
		}
	}

	return s, nil
}

// normalizeRows rescales every row of p in place so it sums to 1.
// Floating accumulation drifts across diffusion iterations; this keeps the
// row-stochastic invariant exact. Returns ErrZeroRowSum on a dead row.
func normalizeRows(p *mat.Dense) error {
	r, c := p.Dims()
	var i, j int
	var sum float64
	for i = 0; i < r; i++ {
		sum = 0
		for j = 0; j < c; j++ {
			sum += p.At(i, j)
		}
		if sum <= 0 {
			return ErrZeroRowSum
		}
		for j = 0; j < c; j++ {
			p.Set(i, j, p.At(i, j)/sum)
		}
	}

	return nil
}
