package cluster

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// swapImprovementTol is the strict-improvement threshold of the swap
// phase: a swap is accepted only when it lowers the total cost by more
// than this, which keeps floating noise from cycling the local search.
const swapImprovementTol = 1e-12

// PAM partitions n samples into k clusters around medoids.
//
// Implementation:
//   - Stage 1: validate the dissimilarity matrix and k ∈ [1, n).
//   - Stage 2 (build): greedily select k medoids. The first minimises the
//     total dissimilarity to all samples, each further medoid maximises
//     the total cost reduction. Ties break on the lowest sample index.
//   - Stage 3 (swap): repeatedly evaluate every (medoid, non-medoid)
//     exchange using cached nearest/second-nearest distances; apply the
//     best strictly-improving swap and repeat until none remains. The
//     monotone cost decrease bounds the iteration count; a defensive cap
//     still guards the loop and fails with ErrSwapCapExceeded.
//
// Inputs:
//   - d: symmetric n×n dissimilarity matrix with zero diagonal
//     (see Dissimilarity). Not mutated.
//   - k: number of clusters, 1 ≤ k < n.
//
// Returns:
//   - *Result: 1-based labels (nearest medoid, ties to the lowest medoid
//     index), the sorted medoid indices and the final total cost.
//
// Errors:
//   - ErrNilMatrix, ErrNaNInf, ErrBadClusterCount, ErrSwapCapExceeded.
//
// Determinism:
//   - No randomness anywhere; fixed scan orders make the local optimum
//     reproducible regardless of input permutation of equal choices.
//
// Complexity:
//   - Build O(k·n²); each swap sweep O(k·(n−k)·n); Space O(n).
func PAM(d *mat.SymDense, k int) (*Result, error) {
	n, err := validateSquare(d)
	if err != nil {
		return nil, err
	}
	if k < 1 || k >= n {
		return nil, ErrBadClusterCount
	}

	// Build phase: first medoid minimises total dissimilarity.
	var i, j int
	best, bestCost := -1, math.Inf(1)
	for j = 0; j < n; j++ {
		var total float64
		for i = 0; i < n; i++ {
			total += d.At(i, j)
		}
		if total < bestCost {
			best, bestCost = j, total
		}
	}
	medoids := []int{best}
	isMedoid := make([]bool, n)
	isMedoid[best] = true

	// d1 holds each sample's dissimilarity to its nearest medoid.
	d1 := make([]float64, n)
	for i = 0; i < n; i++ {
		d1[i] = d.At(i, best)
	}

	// Remaining medoids: maximise the total cost reduction.
	for len(medoids) < k {
		bestGain, bestIdx := math.Inf(-1), -1
		for j = 0; j < n; j++ {
			if isMedoid[j] {
				continue
			}
			var gain float64
			for i = 0; i < n; i++ {
				if diff := d1[i] - d.At(i, j); diff > 0 {
					gain += diff
				}
			}
			if gain > bestGain {
				bestGain, bestIdx = gain, j
			}
		}
		medoids = append(medoids, bestIdx)
		isMedoid[bestIdx] = true
		for i = 0; i < n; i++ {
			if v := d.At(i, bestIdx); v < d1[i] {
				d1[i] = v
			}
		}
	}

	// Swap phase state: nearest medoid and second-nearest dissimilarity.
	nearest := make([]int, n)  // medoid sample index, not position
	d2 := make([]float64, n)   // dissimilarity to the second-nearest medoid
	assign := func() float64 { // refresh nearest/d1/d2; returns total cost
		var cost float64
		for i = 0; i < n; i++ {
			firstDist, secondDist := math.Inf(1), math.Inf(1)
			firstMed := -1
			for _, m := range medoids {
				v := d.At(i, m)
				if v < firstDist {
					secondDist = firstDist
					firstDist, firstMed = v, m
				} else if v < secondDist {
					secondDist = v
				}
			}
			nearest[i], d1[i], d2[i] = firstMed, firstDist, secondDist
			cost += firstDist
		}

		return cost
	}
	cost := assign()

	// Defensive cap: each accepted swap strictly lowers the cost, so the
	// search terminates long before k·(n−k) sweeps. Hitting the cap means
	// a broken invariant, not bad data.
	maxSweeps := k * (n - k)
	var sweep int
	for sweep = 0; ; sweep++ {
		if sweep >= maxSweeps {
			return nil, ErrSwapCapExceeded
		}

		bestDelta := 0.0
		bestM, bestH := -1, -1
		for _, m := range medoids {
			for h := 0; h < n; h++ {
				if isMedoid[h] {
					continue
				}
				var delta float64
				for i = 0; i < n; i++ {
					dh := d.At(i, h)
					if nearest[i] == m {
						// i loses its medoid: rebind to h or second-nearest.
						delta += math.Min(dh, d2[i]) - d1[i]
					} else if dh < d1[i] {
						delta += dh - d1[i]
					}
				}
				if delta < bestDelta-swapImprovementTol {
					bestDelta, bestM, bestH = delta, m, h
				}
			}
		}
		if bestM < 0 {
			break // local optimum: no strictly improving swap remains
		}

		for idx, m := range medoids {
			if m == bestM {
				medoids[idx] = bestH
				break
			}
		}
		isMedoid[bestM], isMedoid[bestH] = false, true
		cost = assign()
	}

	// Final labelling: clusters follow ascending medoid order; ties on
	// equal dissimilarity go to the lowest medoid index.
	sort.Ints(medoids)
	labels := make([]int, n)
	for i = 0; i < n; i++ {
		bestDist, bestPos := math.Inf(1), 0
		for pos, m := range medoids {
			if v := d.At(i, m); v < bestDist {
				bestDist, bestPos = v, pos
			}
		}
		labels[i] = bestPos + 1
	}

	return &Result{Labels: labels, Medoids: medoids, Cost: cost}, nil
}
