package matrix

import "errors"

// Sentinel errors returned across the matrix package. All messages carry the
// "matrix: " prefix for easy grepping; callers match them via errors.Is.
// Public operations never panic on user-triggered conditions.
var (
	// ErrInvalidDimensions indicates a negative row or column count.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be non-negative")

	// ErrRagged indicates a 2-D input whose rows differ in length.
	ErrRagged = errors.New("matrix: all rows must have the same length")

	// ErrOutOfRange indicates an index (row or column) outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g. Add/Sub with different shapes, or Mul where a.Cols != b.Rows.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrBadStructure indicates raw CSR buffers violating the structural
	// invariants (length or row-pointer prefix inconsistency). This is a
	// programmer-error path, reported at construction time.
	ErrBadStructure = errors.New("matrix: inconsistent CSR buffers")

	// ErrNaNInf indicates a NaN or ±Inf value where the numeric policy
	// requires finite values (ingestion, Set).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates a nil matrix receiver or operand.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
