// Package omicsnf fuses multi-omics similarity networks and compares the
// resulting patient clusters against a reference subtype labeling.
//
// 🚀 What is omicsnf?
//
//	A small, deterministic library for disease-subtype discovery:
//		• Affinity: sample×feature matrix → locally-adaptive similarity matrix
//		• Fusion: per-modality similarities → one consensus network
//		  (element-wise averaging or iterative similarity-network fusion)
//		• Cluster: PAM-style medoid partitioning and normalized spectral clustering
//		• Agreement: Rand, Adjusted Rand and NMI against a reference labeling
//		• Standardize: z-score and variance-filter helpers for raw feature matrices
//
// ✨ Why choose omicsnf?
//
//   - Deterministic by construction – fixed loop orders, seeded RNG streams,
//     no hidden randomness anywhere in the pipeline
//   - Fail-fast validation – mismatched shapes, NaN/Inf values and degenerate
//     configurations surface as sentinel errors, never as silent NaN results
//   - Built on gonum – dense matrices and the symmetric eigensolver come from
//     a well-tested linear-algebra stack, not hand-rolled iteration
//
// Everything is organized under flat subpackages:
//
//	affinity/    — pairwise scaled-exponential kernel over feature rows
//	fusion/      — global/local kernels, averaging and iterative network fusion
//	cluster/     — PAM medoids, spectral partitioning, seeded k-means embedding
//	agreement/   — Rand / Adjusted Rand / Normalized Mutual Information
//	standardize/ — complete-case checks, z-scoring, top-variance filtering
//	pipeline/    — strategy-matrix runner wiring the stages together
//	cmd/omicsnf/ — CSV-in, table-out command line front end
//
// Typical flow:
//
//	feature matrices ──affinity──▶ W¹..Wˢ ──fusion──▶ consensus ──cluster──▶ labels ──agreement──▶ scores
//
// The algorithmic core operates on dense n×n matrices and targets cohorts of
// a few hundred samples; iterative fusion costs O(T·s·n³) and is not intended
// for n in the tens of thousands.
package omicsnf
