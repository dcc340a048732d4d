package fusion

import (
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Average fuses the modality stack by element-wise mean.
//
// The operation is commutative and idempotent under permutation of the
// input order: reordering ws yields the identical result. Inputs are not
// mutated.
//
// Errors: ErrNoModalities, ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf.
//
// Complexity: O(s·n²) time, O(n²) space (s = modality count).
func Average(ws []*mat.SymDense) (*mat.SymDense, error) {
	n, err := validateStack(ws)
	if err != nil {
		return nil, err
	}

	out := mat.NewSymDense(n, nil)
	inv := 1 / float64(len(ws))
	var i, j int
	var sum float64
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			sum = 0
			for _, w := range ws {
				sum += w.At(i, j)
			}
			out.SetSym(i, j, sum*inv)
		}
	}

	return out, nil
}

// Network fuses the modality stack by iterative cross-diffusion.
//
// Implementation:
//   - Stage 1: validate the stack and options; a single modality is
//     returned unchanged (nothing to fuse against).
//   - Stage 2: derive each modality's local kernel S⁽ˢ⁾ and global kernel
//     P⁽ˢ⁾₀; the per-modality derivations are independent and run
//     concurrently.
//   - Stage 3: iterate t = 1..T. Each modality is updated from the mean of
//     the other modalities' current state,
//     P⁽ˢ⁾ₜ = S⁽ˢ⁾ · mean_{r≠s}(P⁽ʳ⁾ₜ₋₁) · S⁽ˢ⁾ᵀ,
//     then row-renormalised to restore the row-stochastic invariant.
//     Updates within one iteration are independent and run concurrently,
//     synchronising at the iteration barrier.
//   - Stage 4: the consensus is the mean of the final P⁽ˢ⁾ₜ, symmetrised
//     as (C+Cᵀ)/2 so downstream cluster assigners receive a valid
//     similarity matrix.
//
// Inputs:
//   - ws: one symmetric n×n similarity matrix per modality. Not mutated.
//   - opts: fusion configuration; nil means DefaultOptions().
//
// Returns:
//   - *mat.SymDense: symmetric n×n consensus similarity matrix.
//
// Errors:
//   - ErrNoModalities, ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf,
//     ErrZeroRowSum, ErrBadNeighbors, ErrBadIterations, ErrBadTol.
//
// Determinism:
//   - Fully deterministic given Neighbors and Iterations: the concurrent
//     updates write disjoint outputs and join at a barrier, so scheduling
//     cannot change any value.
//
// Complexity:
//   - Time O(T·s·n³) dominated by the two dense products per update;
//     Space O(s·n²).
func Network(ws []*mat.SymDense, opts *Options) (*mat.SymDense, error) {
	n, err := validateStack(ws)
	if err != nil {
		return nil, err
	}

	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Neighbors < 1 {
		return nil, ErrBadNeighbors
	}
	if o.Iterations < 1 {
		return nil, ErrBadIterations
	}
	if o.Tol < 0 || math.IsNaN(o.Tol) || math.IsInf(o.Tol, 0) {
		return nil, ErrBadTol
	}

	s := len(ws)
	if s == 1 {
		// Degenerate case: one data source, nothing to fuse against.
		out := mat.NewSymDense(n, nil)
		out.CopySym(ws[0])

		return out, nil
	}

	// Per-modality kernels; derivations are independent across modalities.
	locals := make([]*mat.Dense, s)
	globals := make([]*mat.Dense, s)
	var g errgroup.Group
	for idx := range ws {
		g.Go(func() error {
			lk, kerr := LocalKernel(ws[idx], o.Neighbors)
			if kerr != nil {
				return kerr
			}
			gk, kerr := GlobalKernel(ws[idx])
			if kerr != nil {
				return kerr
			}
			locals[idx], globals[idx] = lk, gk

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	// Double-buffered iteration state: cur is read-only within an
	// iteration, next receives the disjoint per-modality writes.
	cur := globals
	next := make([]*mat.Dense, s)
	for idx := range next {
		next[idx] = mat.NewDense(n, n, nil)
	}

	deltas := make([]float64, s)
	invOthers := 1 / float64(s-1)
	var t int
	for t = 0; t < o.Iterations; t++ {
		var step errgroup.Group
		for idx := 0; idx < s; idx++ {
			step.Go(func() error {
				// Mean of the other modalities' current state.
				avg := mat.NewDense(n, n, nil)
				for r := 0; r < s; r++ {
					if r != idx {
						avg.Add(avg, cur[r])
					}
				}
				avg.Scale(invOthers, avg)

				// Similarity-preserving transform through the local kernel.
				var tmp mat.Dense
				tmp.Mul(locals[idx], avg)
				next[idx].Mul(&tmp, locals[idx].T())
				if nerr := normalizeRows(next[idx]); nerr != nil {
					return nerr
				}
				if o.Tol > 0 {
					deltas[idx] = frobeniusDelta(next[idx], cur[idx])
				}

				return nil
			})
		}
		if err = step.Wait(); err != nil {
			return nil, err
		}
		cur, next = next, cur

		if o.Tol > 0 && maxOf(deltas) < o.Tol {
			break
		}
	}

	// Consensus: mean over modalities, then explicit symmetrisation.
	c := mat.NewDense(n, n, nil)
	for idx := range cur {
		c.Add(c, cur[idx])
	}
	c.Scale(1/float64(s), c)

	out := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			out.SetSym(i, j, (c.At(i, j)+c.At(j, i))/2)
		}
	}

	return out, nil
}

// frobeniusDelta returns ‖a−b‖_F, the Frobenius norm of the difference.
func frobeniusDelta(a, b *mat.Dense) float64 {
	var d mat.Dense
	d.Sub(a, b)

	return mat.Norm(&d, 2)
}

// maxOf returns the maximum of a non-empty float64 slice.
func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, v := range xs[1:] {
		if v > m {
			m = v
		}
	}

	return m
}
