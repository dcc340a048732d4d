package standardize

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("standardize: input matrix is nil")

	// ErrEmptyMatrix indicates a matrix with zero rows or zero columns.
	ErrEmptyMatrix = errors.New("standardize: input matrix is empty")

	// ErrIncomplete indicates NaN or ±Inf entries; the pipeline requires
	// complete cases.
	ErrIncomplete = errors.New("standardize: matrix has missing or non-finite entries")

	// ErrBadFeatureCount indicates a TopVariance cut outside [1, features].
	ErrBadFeatureCount = errors.New("standardize: feature count out of range")
)

// CheckComplete verifies that every entry of x is finite.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrIncomplete.
//
// Complexity: O(n·f).
func CheckComplete(x *mat.Dense) error {
	n, f, err := dims(x)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		for j := 0; j < f; j++ {
			if math.IsNaN(row[j]) || math.IsInf(row[j], 0) {
				return ErrIncomplete
			}
		}
	}

	return nil
}

// ZScore returns a copy of x with every feature column centred to mean 0
// and scaled to unit standard deviation (the population estimate, n
// denominator). Constant columns are centred only.
//
// Inputs:
//   - x: n×f matrix, rows are samples, columns are features. Not mutated.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrIncomplete.
//
// Complexity: O(n·f) time, O(n·f) space.
func ZScore(x *mat.Dense) (*mat.Dense, error) {
	n, f, err := dims(x)
	if err != nil {
		return nil, err
	}
	if err = CheckComplete(x); err != nil {
		return nil, err
	}

	out := mat.DenseCopyOf(x)
	col := make([]float64, n)
	for j := 0; j < f; j++ {
		mat.Col(col, j, x)
		mean := stat.Mean(col, nil)
		variance := stat.MomentAbout(2, col, mean, nil)
		sd := math.Sqrt(variance)

		for i := 0; i < n; i++ {
			v := col[i] - mean
			if sd > 0 {
				v /= sd
			}
			out.Set(i, j, v)
		}
	}

	return out, nil
}

// TopVariance returns a copy of x restricted to the m feature columns
// with the highest variance, keeping the original column order. Ties on
// equal variance break towards the lower column index.
//
// Errors: ErrNilMatrix, ErrEmptyMatrix, ErrIncomplete, ErrBadFeatureCount.
//
// Complexity: O(n·f + f·log f) time, O(n·m) space.
func TopVariance(x *mat.Dense, m int) (*mat.Dense, error) {
	n, f, err := dims(x)
	if err != nil {
		return nil, err
	}
	if err = CheckComplete(x); err != nil {
		return nil, err
	}
	if m < 1 || m > f {
		return nil, ErrBadFeatureCount
	}
	if m == f {
		return mat.DenseCopyOf(x), nil
	}

	col := make([]float64, n)
	variances := make([]float64, f)
	for j := 0; j < f; j++ {
		mat.Col(col, j, x)
		variances[j] = stat.Variance(col, nil)
	}

	// Rank columns by variance descending, ties to the lower index, then
	// restore original order for the kept set.
	order := make([]int, f)
	for j := range order {
		order[j] = j
	}
	sort.SliceStable(order, func(a, b int) bool {
		return variances[order[a]] > variances[order[b]]
	})
	kept := append([]int(nil), order[:m]...)
	sort.Ints(kept)

	out := mat.NewDense(n, m, nil)
	for pos, j := range kept {
		mat.Col(col, j, x)
		out.SetCol(pos, col)
	}

	return out, nil
}

// dims validates the matrix shape and returns (rows, cols).
func dims(x *mat.Dense) (int, int, error) {
	if x == nil {
		return 0, 0, ErrNilMatrix
	}
	n, f := x.Dims()
	if n == 0 || f == 0 {
		return 0, 0, ErrEmptyMatrix
	}

	return n, f, nil
}
