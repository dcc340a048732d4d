// Package standardize prepares raw feature matrices for affinity
// computation.
//
// What:
//
//   - CheckComplete rejects matrices with missing (NaN) or infinite
//     entries. Upstream imputation is out of scope; the pipeline expects
//     complete cases.
//   - ZScore centres each feature column to mean 0 and scales it to unit
//     standard deviation. Constant columns are centred only, so they do
//     not blow up to NaN.
//   - TopVariance keeps the m most variable feature columns, preserving
//     their original order, a common pre-filter for very wide omics
//     matrices.
//
// Why:
//
//   - Euclidean distances across features of wildly different scales are
//     dominated by the widest feature; z-scoring restores comparability.
//   - Expression matrices routinely carry tens of thousands of features;
//     variance filtering keeps the informative ones and shrinks the
//     distance computation.
//
// Errors:
//
//   - ErrNilMatrix / ErrEmptyMatrix: missing or zero-sized input.
//   - ErrIncomplete: NaN or ±Inf entries.
//   - ErrBadFeatureCount: TopVariance m outside [1, features].
//
// Complexity: all operations are O(n·f) time over an n×f matrix;
// TopVariance adds an O(f·log f) sort of the per-column variances.
package standardize
