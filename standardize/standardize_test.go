package standardize_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/GiuliaCuttone/omicsnf/standardize"
)

const statTol = 1e-12

// TestCheckComplete verifies the completeness gate.
func TestCheckComplete(t *testing.T) {
	ok := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	assert.NoError(t, standardize.CheckComplete(ok))

	withNaN := mat.NewDense(2, 2, []float64{1, math.NaN(), 3, 4})
	assert.ErrorIs(t, standardize.CheckComplete(withNaN), standardize.ErrIncomplete)

	withInf := mat.NewDense(2, 2, []float64{1, 2, math.Inf(1), 4})
	assert.ErrorIs(t, standardize.CheckComplete(withInf), standardize.ErrIncomplete)

	assert.ErrorIs(t, standardize.CheckComplete(nil), standardize.ErrNilMatrix)
}

// TestZScore_ColumnMoments verifies mean 0 and unit standard deviation
// per column after scaling.
func TestZScore_ColumnMoments(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 100,
		2, 200,
		3, 300,
		4, 400,
	})

	z, err := standardize.ZScore(x)
	require.NoError(t, err)

	n, f := z.Dims()
	col := make([]float64, n)
	for j := 0; j < f; j++ {
		mat.Col(col, j, z)
		var mean, sq float64
		for _, v := range col {
			mean += v
		}
		mean /= float64(n)
		for _, v := range col {
			sq += (v - mean) * (v - mean)
		}
		assert.InDelta(t, 0.0, mean, statTol, "column %d must centre to 0", j)
		assert.InDelta(t, 1.0, math.Sqrt(sq/float64(n)), statTol, "column %d must scale to unit sd", j)
	}

	// The input must stay untouched.
	assert.Equal(t, 1.0, x.At(0, 0))
}

// TestZScore_ConstantColumn verifies that a zero-variance feature is
// centred without dividing by zero.
func TestZScore_ConstantColumn(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{
		5, 1,
		5, 2,
		5, 3,
	})

	z, err := standardize.ZScore(x)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.Zero(t, z.At(i, 0), "constant column centres to exactly 0")
		assert.False(t, math.IsNaN(z.At(i, 1)))
	}
}

// TestTopVariance_KeepsOrder verifies the selection and the preserved
// column order.
func TestTopVariance_KeepsOrder(t *testing.T) {
	// Column variances: col0 tiny, col1 large, col2 medium.
	x := mat.NewDense(4, 3, []float64{
		1.0, 0, 10,
		1.1, 50, 20,
		0.9, -50, 30,
		1.0, 0, 40,
	})

	top, err := standardize.TopVariance(x, 2)
	require.NoError(t, err)

	n, f := top.Dims()
	require.Equal(t, 4, n)
	require.Equal(t, 2, f)

	// Kept columns are 1 and 2, in their original order.
	assert.Equal(t, 0.0, top.At(0, 0))
	assert.Equal(t, 10.0, top.At(0, 1))
}

// TestTopVariance_FullWidth verifies the m == f shortcut returns a copy.
func TestTopVariance_FullWidth(t *testing.T) {
	x := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	top, err := standardize.TopVariance(x, 2)
	require.NoError(t, err)
	assert.True(t, mat.Equal(x, top))

	top.Set(0, 0, 99)
	assert.Equal(t, 1.0, x.At(0, 0), "result must not alias the input")
}

// TestTopVariance_Validation verifies the range checks.
func TestTopVariance_Validation(t *testing.T) {
	x := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	_, err := standardize.TopVariance(x, 0)
	assert.ErrorIs(t, err, standardize.ErrBadFeatureCount)

	_, err = standardize.TopVariance(x, 4)
	assert.ErrorIs(t, err, standardize.ErrBadFeatureCount)

	_, err = standardize.TopVariance(nil, 1)
	assert.ErrorIs(t, err, standardize.ErrNilMatrix)
}
