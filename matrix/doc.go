// Package matrix provides dense and sparse (CSR) matrix representations
// behind a single capability contract, plus an adaptive facade that picks
// the better representation for the data at hand.
//
// The package provides:
//
//   - Dense: a flat, contiguous row-major buffer with bounds-checked
//     accessors; the reference implementation and the fallback target for
//     every operation that lacks a sparse-specific path.
//   - CSR: compressed sparse row storage (values / column indices / row
//     offsets) with COO and dense conversions, merge-based add/sub,
//     Gustavson-style multiplication and O(nnz) matrix-vector products.
//   - Adaptive: a facade owning exactly one representation at a time,
//     chosen from the density of the data (nnz / rows·cols) against a
//     configurable threshold, re-evaluated on explicit Repack.
//
// Dense is best when most cells are populated; CSR wins once density drops
// below roughly one entry in five (DefaultDensityThreshold). All operations
// return freshly allocated results; no view ever aliases an operand.
//
// See the examples in this package for usage patterns.
package matrix
