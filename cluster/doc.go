// Package cluster partitions samples of a similarity (or dissimilarity)
// matrix into k groups with either medoid-based or spectral partitioning.
//
// What:
//
//   - Dissimilarity converts a similarity matrix into 1 − min-max-normalised
//     similarity with a zero diagonal, the input expected by PAM.
//   - PAM runs the classic build+swap medoid search: greedily seed k
//     medoids, then accept strictly-improving medoid↔non-medoid swaps until
//     a local optimum. Deterministic, no randomness.
//   - Spectral builds the symmetric normalised Laplacian
//     L = I − D^(−1/2)·W·D^(−1/2), takes the eigenvectors of the k smallest
//     eigenvalues (gonum's symmetric eigensolver), unit-normalises the
//     embedded rows and partitions them with seeded k-means++.
//
// Labels are 1-based: every sample maps to a cluster in [1, k].
//
// Why:
//
//   - Subtype discovery on fused multi-omics similarity networks.
//   - Any dense-graph partitioning task at cohort scale (n in the hundreds).
//
// Complexity:
//
//   - PAM: build O(k·n²), each swap sweep O(k·(n−k)·n); total swap count is
//     bounded by the monotone cost decrease and defensively capped.
//   - Spectral: O(n³) eigendecomposition + O(iters·n·k²) k-means.
//
// Errors:
//
//   - ErrNilMatrix / ErrNaNInf: malformed input matrix.
//   - ErrBadClusterCount: k outside [1, n).
//   - ErrIsolatedSample: zero-degree sample in spectral partitioning
//     (avoidable with Options.DegreeFloor).
//   - ErrSwapCapExceeded: the defensive PAM sweep cap fired, signalling an
//     implementation bug rather than a data issue.
package cluster
