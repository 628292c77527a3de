// Package matrix: shared validation helpers. Every binary operation
// validates through these before touching any buffer, so failures never
// leave a partially mutated receiver.
package matrix

import (
	"fmt"
	"math"
)

// isNonFinite reports whether v is NaN or ±Inf. Complexity: O(1).
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// validateShape rejects negative dimensions. Zero rows or columns are
// legal shapes (rows·cols == 0 matrices exist and behave deterministically).
func validateShape(rows, cols int) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("shape %dx%d: %w", rows, cols, ErrInvalidDimensions)
	}

	return nil
}

// validateSameShape ensures a and b are non-nil and share dimensions.
// Used by Add/Sub.
func validateSameShape(a, b Matrix) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return fmt.Errorf("%dx%d vs %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}

	return nil
}

// validateMulShape ensures a and b are non-nil and a.Cols == b.Rows.
// Used by Mul.
func validateMulShape(a, b Matrix) error {
	if a == nil || b == nil {
		return ErrNilMatrix
	}
	if a.Cols() != b.Rows() {
		return fmt.Errorf("%dx%d * %dx%d: %w",
			a.Rows(), a.Cols(), b.Rows(), b.Cols(), ErrDimensionMismatch)
	}

	return nil
}

// validateVecLen ensures len(x) matches a's column count. Used by MulVec.
func validateVecLen(a Matrix, x []float64) error {
	if a == nil {
		return ErrNilMatrix
	}
	if len(x) != a.Cols() {
		return fmt.Errorf("%dx%d * vec(%d): %w",
			a.Rows(), a.Cols(), len(x), ErrDimensionMismatch)
	}

	return nil
}

// validateIndex bounds-checks (i, j) against rows×cols.
func validateIndex(i, j, rows, cols int) error {
	if i < 0 || i >= rows || j < 0 || j >= cols {
		return ErrOutOfRange
	}

	return nil
}
