package agreement

import (
	"errors"
	"math"
)

var (
	// ErrLengthMismatch indicates label slices of different lengths.
	ErrLengthMismatch = errors.New("agreement: label slices differ in length")

	// ErrEmptyLabels indicates fewer than two samples: pair counting needs
	// at least one pair.
	ErrEmptyLabels = errors.New("agreement: need at least two samples")

	// ErrBadLabel indicates a cluster label below 1.
	ErrBadLabel = errors.New("agreement: labels must be >= 1")
)

// Triple bundles the three agreement scores of one partition pair.
type Triple struct {
	// Rand is the plain Rand index in [0, 1].
	Rand float64

	// AdjustedRand is the chance-corrected Rand index, at most 1.
	AdjustedRand float64

	// NMI is the normalised mutual information in [0, 1].
	NMI float64
}

// Scores computes the Rand index, adjusted Rand index and normalised
// mutual information between two label assignments of the same samples.
//
// Implementation stages:
//   - Stage 1: validate lengths and label ranges.
//   - Stage 2: build the kx×ky contingency table plus marginals.
//   - Stage 3: derive all three scores from pair counts and entropies.
//
// Inputs:
//   - x, y: 1-based cluster labels, one entry per sample, equal length.
//
// Returns:
//   - Triple with the three scores.
//
// Errors:
//   - ErrLengthMismatch, ErrEmptyLabels, ErrBadLabel.
//
// Determinism:
//   - Pure arithmetic; identical inputs always yield identical scores.
//
// Complexity:
//   - O(n + kx·ky) time, O(kx·ky) space.
func Scores(x, y []int) (Triple, error) {
	if len(x) != len(y) {
		return Triple{}, ErrLengthMismatch
	}
	n := len(x)
	if n < 2 {
		return Triple{}, ErrEmptyLabels
	}

	kx, ky := 0, 0
	for i := 0; i < n; i++ {
		if x[i] < 1 || y[i] < 1 {
			return Triple{}, ErrBadLabel
		}
		if x[i] > kx {
			kx = x[i]
		}
		if y[i] > ky {
			ky = y[i]
		}
	}

	// Contingency table and marginals, 0-based internally.
	table := make([][]float64, kx)
	for i := range table {
		table[i] = make([]float64, ky)
	}
	rowSum := make([]float64, kx)
	colSum := make([]float64, ky)
	for i := 0; i < n; i++ {
		table[x[i]-1][y[i]-1]++
		rowSum[x[i]-1]++
		colSum[y[i]-1]++
	}

	// Pair counts: choose2 over cells and marginals drive Rand and ARI.
	var sumCells, sumRows, sumCols float64
	for i := 0; i < kx; i++ {
		sumRows += choose2(rowSum[i])
		for j := 0; j < ky; j++ {
			sumCells += choose2(table[i][j])
		}
	}
	for j := 0; j < ky; j++ {
		sumCols += choose2(colSum[j])
	}
	totalPairs := choose2(float64(n))

	// Rand: agreements are pairs together in both (sumCells) plus pairs
	// apart in both (totalPairs − sumRows − sumCols + sumCells).
	rand := (totalPairs - sumRows - sumCols + 2*sumCells) / totalPairs

	// ARI with the degenerate-denominator convention: two trivial
	// partitions in perfect agreement score 1, otherwise 0.
	expected := sumRows * sumCols / totalPairs
	denom := (sumRows+sumCols)/2 - expected
	var ari float64
	switch {
	case denom != 0:
		ari = (sumCells - expected) / denom
	case sumCells-expected == 0:
		ari = 1
	default:
		ari = 0
	}

	// NMI: mutual information over the geometric mean of the entropies.
	fn := float64(n)
	var hx, hy, mi float64
	for i := 0; i < kx; i++ {
		if rowSum[i] > 0 {
			p := rowSum[i] / fn
			hx -= p * math.Log2(p)
		}
	}
	for j := 0; j < ky; j++ {
		if colSum[j] > 0 {
			p := colSum[j] / fn
			hy -= p * math.Log2(p)
		}
	}
	for i := 0; i < kx; i++ {
		for j := 0; j < ky; j++ {
			if table[i][j] == 0 {
				continue
			}
			pxy := table[i][j] / fn
			mi += pxy * math.Log2(pxy*fn*fn/(rowSum[i]*colSum[j]))
		}
	}
	var nmi float64
	if hx > 0 && hy > 0 {
		nmi = mi / math.Sqrt(hx*hy)
	}

	return Triple{Rand: rand, AdjustedRand: ari, NMI: nmi}, nil
}

// Rand returns only the plain Rand index of the two assignments.
// Errors: same as Scores.
func Rand(x, y []int) (float64, error) {
	t, err := Scores(x, y)

	return t.Rand, err
}

// AdjustedRand returns only the chance-corrected Rand index.
// Errors: same as Scores.
func AdjustedRand(x, y []int) (float64, error) {
	t, err := Scores(x, y)

	return t.AdjustedRand, err
}

// NMI returns only the normalised mutual information.
// Errors: same as Scores.
func NMI(x, y []int) (float64, error) {
	t, err := Scores(x, y)

	return t.NMI, err
}

// choose2 returns m·(m−1)/2, the number of unordered pairs of m items.
func choose2(m float64) float64 {
	return m * (m - 1) / 2
}
