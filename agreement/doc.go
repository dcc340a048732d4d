// Package agreement scores how well two cluster assignments of the same
// samples agree, independently of label naming.
//
// What:
//
//   - Rand index: the share of sample pairs treated consistently by both
//     assignments (together in both, or apart in both).
//   - Adjusted Rand index (ARI): the Rand index corrected for chance
//     agreement via the hypergeometric expectation; 1 means identical
//     partitions, values near 0 mean chance-level agreement.
//   - Normalised mutual information (NMI): mutual information of the two
//     label distributions divided by the geometric mean of their
//     entropies, in [0, 1].
//
// All three are permutation-invariant: relabelling clusters never changes
// a score. Scores computes them in one pass over a shared contingency
// table.
//
// Why:
//
//   - Comparing discovered subtypes against reference subtypes.
//   - Checking stability of a clustering across fusion strategies.
//
// Edge cases:
//
//   - ARI with a zero chance-corrected denominator (both partitions
//     trivial) scores 1 when the numerator is also zero, 0 otherwise.
//   - NMI with a zero-entropy partition on either side scores 0.
//
// Errors:
//
//   - ErrLengthMismatch: the two label slices differ in length.
//   - ErrEmptyLabels: fewer than two samples.
//   - ErrBadLabel: a label below 1.
//
// Complexity: O(n + kx·ky) time, O(kx·ky) space for the contingency table.
package agreement
