package affinity_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/GiuliaCuttone/omicsnf/affinity"
)

// TestMatrix_NilInput verifies that a nil feature matrix is rejected.
func TestMatrix_NilInput(t *testing.T) {
	opts := affinity.DefaultOptions()

	_, err := affinity.Matrix(nil, &opts)
	assert.ErrorIs(t, err, affinity.ErrNilMatrix, "nil matrix must error")
}

// TestMatrix_NaNInput verifies that NaN feature values are rejected
// before any kernel arithmetic happens.
func TestMatrix_NaNInput(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 2, math.NaN(), 4})
	opts := affinity.DefaultOptions()

	_, err := affinity.Matrix(x, &opts)
	assert.ErrorIs(t, err, affinity.ErrNaNInf, "NaN feature must error")
}

// TestMatrix_InfInput verifies that ±Inf feature values are rejected.
func TestMatrix_InfInput(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 2, math.Inf(-1), 4})
	opts := affinity.DefaultOptions()

	_, err := affinity.Matrix(x, &opts)
	assert.ErrorIs(t, err, affinity.ErrNaNInf, "Inf feature must error")
}

// TestMatrix_BadOptions verifies option validation for Neighbors and Mu.
func TestMatrix_BadOptions(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{0, 0, 1, 1, 2, 2})

	opts := affinity.DefaultOptions()
	opts.Neighbors = 0
	_, err := affinity.Matrix(x, &opts)
	assert.ErrorIs(t, err, affinity.ErrBadNeighbors, "Neighbors=0 must error")

	opts = affinity.DefaultOptions()
	opts.Mu = 0
	_, err = affinity.Matrix(x, &opts)
	assert.ErrorIs(t, err, affinity.ErrBadMu, "Mu=0 must error")

	opts.Mu = math.NaN()
	_, err = affinity.Matrix(x, &opts)
	assert.ErrorIs(t, err, affinity.ErrBadMu, "Mu=NaN must error")
}

// TestMatrix_UnitDiagonal verifies the self-similarity convention W(i,i)=1.
func TestMatrix_UnitDiagonal(t *testing.T) {
	x := mat.NewDense(4, 3, []float64{
		0, 0, 0,
		1, 0, 0,
		0, 2, 0,
		3, 3, 3,
	})
	opts := affinity.DefaultOptions()

	w, err := affinity.Matrix(x, &opts)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		assert.Equal(t, 1.0, w.At(i, i), "diagonal must be exactly 1")
	}
}

// TestMatrix_SymmetricBounded verifies symmetry and the (0,1] value range.
func TestMatrix_SymmetricBounded(t *testing.T) {
	x := mat.NewDense(5, 4, []float64{
		0.1, -1.2, 0.4, 2.0,
		1.7, 0.3, -0.8, 0.2,
		-0.5, 0.9, 1.1, -1.4,
		2.2, -0.7, 0.0, 0.6,
		-1.9, 1.5, -0.3, 1.0,
	})
	opts := affinity.DefaultOptions()

	w, err := affinity.Matrix(x, &opts)
	require.NoError(t, err)

	n, _ := w.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.Equal(t, w.At(i, j), w.At(j, i), "W must be symmetric")
			assert.Greater(t, w.At(i, j), 0.0, "similarities are strictly positive")
			assert.LessOrEqual(t, w.At(i, j), 1.0, "similarities are at most 1")
		}
	}
}

// TestMatrix_IdenticalSamples verifies that duplicated samples get
// similarity exactly 1.
func TestMatrix_IdenticalSamples(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		1, 2,
		1, 2,
		9, 9,
	})
	opts := affinity.DefaultOptions()

	w, err := affinity.Matrix(x, &opts)
	require.NoError(t, err)
	assert.Equal(t, 1.0, w.At(0, 1), "identical samples map to similarity 1")
	assert.Less(t, w.At(0, 2), 1.0, "distinct samples map below 1")
}

// TestMatrix_CloserMeansMoreSimilar verifies the kernel is monotone in
// distance: the nearer pair must score higher than the farther pair.
func TestMatrix_CloserMeansMoreSimilar(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{0, 1, 10})
	opts := affinity.DefaultOptions()

	w, err := affinity.Matrix(x, &opts)
	require.NoError(t, err)
	assert.Greater(t, w.At(0, 1), w.At(0, 2), "0 and 1 are closer than 0 and 10")
}

// TestMatrix_Deterministic verifies bit-identical output across calls.
func TestMatrix_Deterministic(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{0, 0, 1, 1, 2, 0, 0, 2})
	opts := affinity.DefaultOptions()

	w1, err := affinity.Matrix(x, &opts)
	require.NoError(t, err)
	w2, err := affinity.Matrix(x, &opts)
	require.NoError(t, err)
	assert.True(t, mat.Equal(w1, w2), "same input must yield identical output")
}
