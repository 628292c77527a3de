// Package matrix: domain types shared by all representations.
// Errors live in errors.go, functional options in options.go.
package matrix

// Entry is one COO (coordinate list) triplet: a value at (Row, Col).
// COO lists are the universal bridge between representations; they are not
// required to be sorted or deduplicated on input to conversion routines.
type Entry struct {
	Row int     // zero-based row index
	Col int     // zero-based column index
	Val float64 // stored value
}

// Backend identifies the concrete representation behind an Adaptive matrix.
type Backend int

const (
	// BackendDense marks a flat row-major buffer.
	BackendDense Backend = iota
	// BackendCSR marks compressed sparse row storage.
	BackendCSR
)

// String returns the human-readable backend name.
func (b Backend) String() string {
	if b == BackendCSR {
		return "CSR"
	}

	return "Dense"
}

// Matrix is the capability contract every representation supports. The
// package has exactly two concrete variants (Dense, CSR) plus the Adaptive
// facade; operands are treated polymorphically, with same-backend pairs
// taking algorithmic fast paths and everything else an explicit densify
// fallback.
//
// Every operation that produces a matrix allocates fresh backing storage;
// results never alias an operand's buffer. All dimension mismatches and
// out-of-range indices surface as sentinel errors before any mutation.
type Matrix interface {
	// Rows returns the number of rows. Complexity: O(1).
	Rows() int

	// Cols returns the number of columns. Complexity: O(1).
	Cols() int

	// At returns the element at (i, j), or ErrOutOfRange.
	// Absent sparse entries read as 0.
	At(i, j int) (float64, error)

	// Set stores v at (i, j), or returns ErrOutOfRange / ErrNaNInf.
	// On CSR this is a structural rebuild and deliberately expensive.
	Set(i, j int, v float64) error

	// Add returns the element-wise sum with b (same shape required).
	Add(b Matrix) (Matrix, error)

	// Sub returns the element-wise difference with b (same shape required).
	Sub(b Matrix) (Matrix, error)

	// Scale returns the matrix multiplied by scalar s.
	Scale(s float64) Matrix

	// Mul returns the matrix product with b (Cols() must equal b.Rows()).
	Mul(b Matrix) (Matrix, error)

	// MulVec returns the matrix-vector product with x (len(x) == Cols()).
	MulVec(x []float64) ([]float64, error)

	// Transpose returns the transposed matrix.
	Transpose() Matrix

	// ToDense materializes an independent dense copy (never a view).
	ToDense() *Dense

	// NNZ reports the number of non-zero entries: stored entries for CSR,
	// counted cells for Dense.
	NNZ() int
}
