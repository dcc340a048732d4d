package agreement_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GiuliaCuttone/omicsnf/agreement"
)

const scoreTol = 1e-12

// TestScores_IdenticalPartitions verifies that self-agreement is perfect
// on all three indices.
func TestScores_IdenticalPartitions(t *testing.T) {
	x := []int{1, 1, 2, 2, 3, 3}

	got, err := agreement.Scores(x, x)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Rand, scoreTol)
	assert.InDelta(t, 1.0, got.AdjustedRand, scoreTol)
	assert.InDelta(t, 1.0, got.NMI, scoreTol)
}

// TestScores_PermutationInvariant verifies that renaming cluster labels
// never changes a score.
func TestScores_PermutationInvariant(t *testing.T) {
	x := []int{1, 1, 2, 2}
	y := []int{2, 2, 1, 1} // same partition, swapped names

	got, err := agreement.Scores(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Rand, scoreTol)
	assert.InDelta(t, 1.0, got.AdjustedRand, scoreTol)
	assert.InDelta(t, 1.0, got.NMI, scoreTol)
}

// TestScores_KnownDisagreement pins the scores of a hand-checked pair.
func TestScores_KnownDisagreement(t *testing.T) {
	x := []int{1, 1, 2, 2}
	y := []int{1, 2, 1, 2}

	got, err := agreement.Scores(x, y)
	require.NoError(t, err)

	// Of the 6 pairs, 2 are together in exactly one partition each side:
	// agreements are the 2 cross-pairs apart in both. Rand = 2/6.
	assert.InDelta(t, 1.0/3.0, got.Rand, scoreTol)
	// Perfectly crossed partitions carry zero mutual information.
	assert.InDelta(t, 0.0, got.NMI, scoreTol)
	assert.LessOrEqual(t, got.AdjustedRand, 0.0, "crossed partitions cannot beat chance")
}

// TestScores_ZeroEntropySide verifies the single-cluster conventions: the
// degenerate ARI denominator and the zero-entropy NMI rule.
func TestScores_ZeroEntropySide(t *testing.T) {
	allOne := []int{1, 1, 1, 1}

	got, err := agreement.Scores(allOne, allOne)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got.Rand, scoreTol)
	assert.InDelta(t, 1.0, got.AdjustedRand, scoreTol, "identical trivial partitions agree perfectly")
	assert.InDelta(t, 0.0, got.NMI, scoreTol, "zero entropy pins NMI to 0")

	split := []int{1, 1, 2, 2}
	got, err = agreement.Scores(allOne, split)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got.AdjustedRand, scoreTol, "trivial vs non-trivial scores 0")
	assert.InDelta(t, 0.0, got.NMI, scoreTol)
}

// TestScores_RandomPartitionsNearZeroARI verifies the chance correction:
// averaged over many independent random partitions the ARI hovers near 0
// while the plain Rand index does not.
func TestScores_RandomPartitionsNearZeroARI(t *testing.T) {
	const (
		trials  = 200
		samples = 60
		k       = 3
	)
	rng := rand.New(rand.NewSource(7))

	var sumARI, sumRand float64
	for trial := 0; trial < trials; trial++ {
		x := make([]int, samples)
		y := make([]int, samples)
		for i := range x {
			x[i] = rng.Intn(k) + 1
			y[i] = rng.Intn(k) + 1
		}

		got, err := agreement.Scores(x, y)
		require.NoError(t, err)
		sumARI += got.AdjustedRand
		sumRand += got.Rand
	}

	assert.InDelta(t, 0.0, sumARI/trials, 0.02, "mean ARI of random pairs must sit near 0")
	assert.Greater(t, sumRand/trials, 0.4, "plain Rand stays inflated on random pairs")
}

// TestSingleScoreWrappers verifies that the per-index helpers agree with
// the bundled Scores result.
func TestSingleScoreWrappers(t *testing.T) {
	x := []int{1, 1, 2, 2, 3}
	y := []int{1, 2, 2, 2, 3}

	bundle, err := agreement.Scores(x, y)
	require.NoError(t, err)

	r, err := agreement.Rand(x, y)
	require.NoError(t, err)
	assert.Equal(t, bundle.Rand, r)

	ari, err := agreement.AdjustedRand(x, y)
	require.NoError(t, err)
	assert.Equal(t, bundle.AdjustedRand, ari)

	nmi, err := agreement.NMI(x, y)
	require.NoError(t, err)
	assert.Equal(t, bundle.NMI, nmi)

	_, err = agreement.Rand([]int{1}, []int{1, 2})
	assert.ErrorIs(t, err, agreement.ErrLengthMismatch)
}

// TestScores_Validation verifies the input checks.
func TestScores_Validation(t *testing.T) {
	_, err := agreement.Scores([]int{1, 2}, []int{1})
	assert.ErrorIs(t, err, agreement.ErrLengthMismatch)

	_, err = agreement.Scores([]int{1}, []int{1})
	assert.ErrorIs(t, err, agreement.ErrEmptyLabels)

	_, err = agreement.Scores([]int{1, 0}, []int{1, 1})
	assert.ErrorIs(t, err, agreement.ErrBadLabel)

	_, err = agreement.Scores([]int{1, 1}, []int{1, -3})
	assert.ErrorIs(t, err, agreement.ErrBadLabel)
}
