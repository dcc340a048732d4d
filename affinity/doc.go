// Package affinity converts a sample×feature matrix into a sample×sample
// similarity matrix using a locally-adaptive scaled exponential kernel.
//
// What:
//
//   - Matrix computes Euclidean distances between all sample rows and maps
//     them to similarities W(i,j) = exp(−d(i,j)² / σ(i,j)²).
//   - σ(i,j) = Mu·(μᵢ + μⱼ + d(i,j))/3, where μᵢ is the mean distance from
//     sample i to its Neighbors nearest neighbours. The kernel therefore
//     adapts to local density instead of using one global bandwidth.
//   - The result is symmetric by construction with a unit diagonal.
//
// Why:
//
//   - Multi-omics integration: one affinity matrix per data modality
//     (mRNA, miRNA, protein, …) feeding the fusion package.
//   - Any similarity-graph workflow that needs a density-aware kernel.
//
// Complexity:
//
//   - Matrix: O(n²·m + n²·log n) time, O(n²) memory
//     (n = samples, m = features; the log n term is the neighbour sort).
//
// Errors:
//
//   - ErrNilMatrix: input matrix is nil.
//   - ErrEmptyMatrix: input has no rows or no columns.
//   - ErrNaNInf: a feature value is NaN or ±Inf.
//   - ErrBadNeighbors: Neighbors < 1.
//   - ErrBadMu: Mu is not a positive finite number.
package affinity
