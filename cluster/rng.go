// Package cluster - RNG utilities for the seeded k-means++ stage.
//
// All randomness in this package flows through these helpers so that a
// fixed Options.Seed yields identical partitions across runs and platforms.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Callers create one stream per
//     clustering call; streams are never shared.
package cluster

import "math/rand"

// defaultRNGSeed is the fixed "zero" seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}
