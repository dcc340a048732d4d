package cluster

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// kMeans partitions the rows of the embedding into k groups with a
// k-means++ seeding followed by Lloyd refinement. Labels are 0-based;
// the spectral caller shifts them into [1, k].
//
// Determinism comes entirely from the injected RNG: the same seed and
// embedding always produce the same partition.
func kMeans(embed *mat.Dense, k, iterations int, rng *rand.Rand) ([]int, float64) {
	n, _ := embed.Dims()

	centroids := seedCentroids(embed, k, rng)
	labels := make([]int, n)
	dist := make([]float64, n) // squared distance to the assigned centroid

	for iter := 0; iter < iterations; iter++ {
		// Assignment step: nearest centroid, ties to the lowest index.
		changed := false
		for i := 0; i < n; i++ {
			row := embed.RawRowView(i)
			bestDist, bestC := math.Inf(1), 0
			for c := 0; c < k; c++ {
				if d := sqDistance(row, centroids[c]); d < bestDist {
					bestDist, bestC = d, c
				}
			}
			if labels[i] != bestC {
				labels[i], changed = bestC, true
			}
			dist[i] = bestDist
		}
		if !changed && iter > 0 {
			break
		}

		// Update step: centroid = mean of its members; an emptied cluster
		// steals the sample farthest from its centroid.
		counts := make([]int, k)
		for c := range centroids {
			zero(centroids[c])
		}
		for i := 0; i < n; i++ {
			floats.Add(centroids[labels[i]], embed.RawRowView(i))
			counts[labels[i]]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				floats.Scale(1/float64(counts[c]), centroids[c])

				continue
			}
			far := argMax(dist)
			copy(centroids[c], embed.RawRowView(far))
			labels[far], dist[far] = c, 0
		}
	}

	var inertia float64
	for i := 0; i < n; i++ {
		inertia += sqDistance(embed.RawRowView(i), centroids[labels[i]])
	}

	return labels, inertia
}

// seedCentroids runs the k-means++ initialisation: the first centroid is a
// uniformly random row, each further centroid is drawn with probability
// proportional to its squared distance to the nearest chosen centroid.
func seedCentroids(embed *mat.Dense, k int, rng *rand.Rand) [][]float64 {
	n, dim := embed.Dims()

	centroids := make([][]float64, 0, k)
	first := make([]float64, dim)
	copy(first, embed.RawRowView(rng.Intn(n)))
	centroids = append(centroids, first)

	d2 := make([]float64, n)
	for len(centroids) < k {
		var total float64
		for i := 0; i < n; i++ {
			best := math.Inf(1)
			for _, c := range centroids {
				if d := sqDistance(embed.RawRowView(i), c); d < best {
					best = d
				}
			}
			d2[i] = best
			total += best
		}

		// Degenerate embedding (all rows covered exactly): fall back to a
		// uniform draw so seeding always completes.
		pick := 0
		if total > 0 {
			target := rng.Float64() * total
			acc := 0.0
			for i := 0; i < n; i++ {
				acc += d2[i]
				if acc >= target {
					pick = i
					break
				}
			}
		} else {
			pick = rng.Intn(n)
		}

		next := make([]float64, dim)
		copy(next, embed.RawRowView(pick))
		centroids = append(centroids, next)
	}

	return centroids
}

// sqDistance returns the squared Euclidean distance between two vectors.
func sqDistance(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}

	return s
}

// zero clears a vector in place.
func zero(v []float64) {
	for i := range v {
		v[i] = 0
	}
}

// argMax returns the index of the largest element, ties to the lowest index.
func argMax(v []float64) int {
	best, bestIdx := math.Inf(-1), 0
	for i, x := range v {
		if x > best {
			best, bestIdx = x, i
		}
	}

	return bestIdx
}
