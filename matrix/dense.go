// Package matrix - Dense storage (row-major) and its operation set.
//
// Dense owns a single contiguous buffer of length rows*cols; element (i,j)
// lives at offset i*cols + j. It is the reference implementation of the
// Matrix contract and the fallback target for any operation lacking a
// sparse-specific path. Loop orders are fixed for determinism; every
// operation returning a matrix allocates fresh storage.
package matrix

import (
	"fmt"
	"strings"
)

// Method tags used in error wrappers.
const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// denseErrorf attaches method context and coordinates to a sentinel error.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r, c hold dimensions (non-negative; zero-area shapes are legal).
//   - data is a flat buffer of length r*c (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set (policy from options.go).
type Dense struct {
	r, c           int
	data           []float64
	validateNaNInf bool
}

// Compile-time conformance checks.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates a rows×cols all-zero matrix.
// Returns ErrInvalidDimensions on negative dimensions.
// Complexity: O(rows*cols) time and memory.
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewDenseFromRows creates a matrix from a rectangular 2-D slice, deep-copying
// the input. Rows of differing length yield ErrRagged; under the numeric
// policy, NaN/±Inf values yield ErrNaNInf. An empty slice is the legal 0×0
// matrix. Complexity: O(rows*cols).
func NewDenseFromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	o := gatherOptions(opts...)
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	m := &Dense{
		r:              r,
		c:              c,
		data:           make([]float64, r*c),
		validateNaNInf: o.validateNaNInf,
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), c, ErrRagged)
		}
		for j, v := range row {
			if o.validateNaNInf && isNonFinite(v) {
				return nil, denseErrorf(ctxSet, i, j, ErrNaNInf)
			}
			m.data[i*c+j] = v
		}
	}

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if err := validateIndex(row, col, m.r, m.c); err != nil {
		return 0, err
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange. Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col). Returns ErrOutOfRange on invalid indices and
// ErrNaNInf when the numeric policy rejects non-finite values.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// ToDense returns an independent dense copy; it never aliases m's buffer.
// Complexity: O(r*c).
func (m *Dense) ToDense() *Dense { return m.Clone() }

// NNZ counts the non-zero cells. Complexity: O(r*c).
func (m *Dense) NNZ() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}

	return n
}

// addSub computes out = m + sign*b for sign ∈ {+1, -1}. Both operands keep
// their buffers untouched; a fresh Dense is allocated. When b is also a
// *Dense the kernel is a single flat loop; otherwise it falls back to the
// generic At path with fixed i→j order.
func (m *Dense) addSub(b Matrix, sign float64) (*Dense, error) {
	if err := validateSameShape(m, b); err != nil {
		return nil, err
	}
	res := &Dense{
		r:              m.r,
		c:              m.c,
		data:           make([]float64, m.r*m.c),
		validateNaNInf: m.validateNaNInf,
	}

	// Fast path: Dense ⊕ Dense is one flat walk over both buffers.
	if db, ok := b.(*Dense); ok {
		for idx := range m.data {
			res.data[idx] = m.data[idx] + sign*db.data[idx]
		}

		return res, nil
	}

	// Generic fallback: read b through the contract, fixed i→j order.
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			bv, err := b.At(i, j)
			if err != nil {
				return nil, err
			}
			res.data[base+j] = m.data[base+j] + sign*bv
		}
	}

	return res, nil
}

// Add returns m + b as a fresh Dense. Shapes must match
// (ErrDimensionMismatch otherwise). Complexity: O(r*c).
func (m *Dense) Add(b Matrix) (Matrix, error) { return m.addSub(b, 1) }

// Sub returns m - b as a fresh Dense. Shapes must match.
// Complexity: O(r*c).
func (m *Dense) Sub(b Matrix) (Matrix, error) { return m.addSub(b, -1) }

// Scale returns m multiplied by scalar s as a fresh Dense.
// Complexity: O(r*c).
func (m *Dense) Scale(s float64) Matrix {
	res := m.Clone()
	for idx := range res.data {
		res.data[idx] *= s
	}

	return res
}

// Mul returns the matrix product m·b as a fresh Dense. Requires
// m.Cols() == b.Rows() (ErrDimensionMismatch otherwise). Any operand that
// is not already dense is densified first. The kernel is the classic i-k-j
// loop; zero multiplicands are skipped, which makes the same kernel cheap
// on sparse-ish data without changing the result.
// Complexity: O(r*k*c) worst case.
func (m *Dense) Mul(b Matrix) (Matrix, error) {
	if err := validateMulShape(m, b); err != nil {
		return nil, err
	}
	bd, ok := b.(*Dense)
	if !ok {
		bd = b.ToDense()
	}
	n := bd.c
	res := &Dense{
		r:              m.r,
		c:              n,
		data:           make([]float64, m.r*n),
		validateNaNInf: m.validateNaNInf,
	}
	for i := 0; i < m.r; i++ {
		for k := 0; k < m.c; k++ {
			a := m.data[i*m.c+k]
			if a == 0 {
				continue // sparsity-agnostic micro-optimization
			}
			rowB := k * n
			rowC := i * n
			for j := 0; j < n; j++ {
				res.data[rowC+j] += a * bd.data[rowB+j]
			}
		}
	}

	return res, nil
}

// Transpose returns mᵀ as a fresh Dense (index-remap copy).
// Complexity: O(r*c).
func (m *Dense) Transpose() Matrix {
	res := &Dense{
		r:              m.c,
		c:              m.r,
		data:           make([]float64, m.r*m.c),
		validateNaNInf: m.validateNaNInf,
	}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			res.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return res
}

// MulVec returns m·x as a fresh slice. Requires len(x) == Cols().
// Complexity: O(r*c).
func (m *Dense) MulVec(x []float64) ([]float64, error) {
	if err := validateVecLen(m, x); err != nil {
		return nil, err
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		base := i * m.c
		sum := 0.0
		for j := 0; j < m.c; j++ {
			sum += m.data[base+j] * x[j]
		}
		out[i] = sum
	}

	return out, nil
}

// Do visits each element in row-major order; stops early when f returns
// false. Read-only with respect to the callback. Complexity: O(r*c).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each element with f(i,j,v) in-place, in fixed row-major
// order. Under the numeric policy a non-finite result aborts with ErrNaNInf;
// elements written before the error remain updated. Complexity: O(r*c).
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for j := 0; j < m.c; j++ {
			nv := f(i, j, m.data[base+j])
			if m.validateNaNInf && isNonFinite(nv) {
				return denseErrorf(ctxSet, i, j, ErrNaNInf)
			}
			m.data[base+j] = nv
		}
	}

	return nil
}

// String renders a readable row-wise dump for diagnostics; not for hot
// paths. Complexity: O(r*c).
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteString("[")
		base := i * m.c
		for j := 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(", ")
			}
		}
		b.WriteString("]\n")
	}

	return b.String()
}
