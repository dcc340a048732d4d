// Package fusion combines per-modality similarity matrices into a single
// consensus network, either by element-wise averaging or by iterative
// similarity-network fusion.
//
// What:
//
//   - GlobalKernel derives a full-rank transition matrix P from a similarity
//     matrix: off-diagonal P(i,j) = W(i,j)/(2·Σ_{k≠i}W(i,k)), diagonal 1/2.
//     Every row sums to exactly 1.
//   - LocalKernel restricts each row to its Neighbors most similar samples,
//     the sample itself included, and row-normalises within that
//     neighbourhood (zero elsewhere).
//   - Average is the element-wise mean of the input matrices.
//   - Network runs the cross-diffusion iteration
//     P⁽ˢ⁾ ← S⁽ˢ⁾ · mean_{r≠s}(P⁽ʳ⁾) · S⁽ˢ⁾ᵀ
//     for a fixed number of iterations, re-normalising rows after every
//     update, and returns the symmetrised mean of the final matrices.
//
// Why:
//
//   - Integrating mRNA, miRNA and protein similarity networks into one
//     patient-by-patient consensus before subtype clustering.
//   - Any setting where several noisy views of the same sample graph must
//     reinforce shared structure and suppress view-specific noise.
//
// Semantics:
//
//   - The iteration generalises the original two-view cross-update to s>2
//     views through the "average of the other modalities" rule; for s=2 it
//     reduces exactly to the pairwise formulation, and for s=1 Network
//     returns the single input unchanged (there is nothing to fuse against).
//   - The algorithm is fully deterministic given Neighbors and Iterations.
//
// Complexity:
//
//   - Average: O(s·n²). Network: O(T·s·n³), dominated by the two dense
//     matrix products per modality per iteration. Tractable for n in the
//     low hundreds; this is the package's documented scalability ceiling.
//
// Errors:
//
//   - ErrNoModalities: empty input stack.
//   - ErrNilMatrix: a nil matrix in the stack.
//   - ErrDimensionMismatch: matrices of differing order.
//   - ErrNaNInf: a non-finite similarity value.
//   - ErrZeroRowSum: a sample with no similarity mass (isolated row).
//   - ErrBadNeighbors / ErrBadIterations / ErrBadTol: invalid options.
package fusion
