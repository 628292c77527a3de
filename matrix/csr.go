// Package matrix - CSR (Compressed Sparse Row) storage and its operation set.
//
// CSR owns three parallel buffers: values (non-zero entries in row-major,
// column-ascending order), colIndex (the column of each entry) and rowPtr
// (length rows+1; rowPtr[r] is the offset of row r's first entry, rowPtr[rows]
// equals nnz). The structural invariants, upheld after every construction and
// mutation:
//
//  1. len(values) == len(colIndex) == nnz.
//  2. rowPtr is non-decreasing, starts at 0 and ends at nnz.
//  3. Within each row the column indices are strictly increasing.
//  4. No stored value is exactly zero: arithmetic that cancels to exact zero
//     drops the entry (structural pruning). Explicitly near-zero floats are
//     kept; no threshold is applied.
//  5. Every stored index is inside [0,rows)×[0,cols).
//
// Add/Sub are per-row sorted merges, Mul is a two-pass Gustavson-style
// accumulation, Transpose rebuilds through the COO bridge. Operands that are
// not CSR take the densify fallback; correctness holds for every backend
// combination, only same-backend pairs get the algorithmic shortcuts.
package matrix

import (
	"fmt"
	"sort"
)

// csrErrorf attaches method context and coordinates to a sentinel error.
func csrErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("CSR.%s(%d,%d): %w", method, row, col, err)
}

// CSR is a sparse matrix in Compressed Sparse Row format.
type CSR struct {
	r, c           int
	values         []float64 // nnz stored values, row-major then column-ascending
	colIndex       []int     // column per value, same length and order
	rowPtr         []int     // len r+1; rowPtr[i]..rowPtr[i+1] bounds row i
	validateNaNInf bool
}

// Compile-time conformance checks.
var (
	_ Matrix       = (*CSR)(nil)
	_ fmt.Stringer = (*CSR)(nil)
)

// fromSortedEntries builds a CSR from entries already sorted by (row, col),
// with unique positions and no exact-zero values. This is the internal
// scatter builder: a counting pass fills rowPtr, a prefix sum turns counts
// into offsets, and per-row write cursors place values/columns.
// Complexity: O(rows + nnz).
func fromSortedEntries(rows, cols int, entries []Entry, validateNaNInf bool) *CSR {
	m := &CSR{
		r:              rows,
		c:              cols,
		values:         make([]float64, len(entries)),
		colIndex:       make([]int, len(entries)),
		rowPtr:         make([]int, rows+1),
		validateNaNInf: validateNaNInf,
	}
	// Counting pass over row indices.
	for _, e := range entries {
		m.rowPtr[e.Row+1]++
	}
	// Prefix sum: counts become offsets.
	for i := 0; i < rows; i++ {
		m.rowPtr[i+1] += m.rowPtr[i]
	}
	// Scatter with per-row cursors initialized from rowPtr.
	cursor := make([]int, rows)
	copy(cursor, m.rowPtr[:rows])
	for _, e := range entries {
		k := cursor[e.Row]
		m.values[k] = e.Val
		m.colIndex[k] = e.Col
		cursor[e.Row]++
	}

	return m
}

// NewCSRFromCOO builds a CSR from unordered COO triplets. Entries are
// bounds-checked before any structure is built (ErrOutOfRange), sorted by
// (row, col), and duplicates at the same position are summed; a duplicate
// group whose sum is exactly zero is omitted. Under the numeric policy,
// NaN/±Inf values are rejected with ErrNaNInf.
// Complexity: O(nnz log nnz) for the sort.
func NewCSRFromCOO(rows, cols int, entries []Entry, opts ...Option) (*CSR, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	for _, e := range entries {
		if err := validateIndex(e.Row, e.Col, rows, cols); err != nil {
			return nil, csrErrorf("NewCSRFromCOO", e.Row, e.Col, err)
		}
		if o.validateNaNInf && isNonFinite(e.Val) {
			return nil, csrErrorf("NewCSRFromCOO", e.Row, e.Col, ErrNaNInf)
		}
	}
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(a, b int) bool {
		if sorted[a].Row != sorted[b].Row {
			return sorted[a].Row < sorted[b].Row
		}

		return sorted[a].Col < sorted[b].Col
	})
	// Compact duplicates: same (row,col) runs are summed; exact-zero sums
	// (including explicit zero inputs) are dropped.
	compact := sorted[:0]
	for k := 0; k < len(sorted); {
		row, col := sorted[k].Row, sorted[k].Col
		sum := 0.0
		for ; k < len(sorted) && sorted[k].Row == row && sorted[k].Col == col; k++ {
			sum += sorted[k].Val
		}
		if sum != 0 {
			compact = append(compact, Entry{Row: row, Col: col, Val: sum})
		}
	}

	return fromSortedEntries(rows, cols, compact, o.validateNaNInf), nil
}

// NewCSRFromDense collects every non-zero cell of d in row-major order and
// builds the CSR directly (the scan is already sorted).
// Complexity: O(rows*cols).
func NewCSRFromDense(d *Dense, opts ...Option) (*CSR, error) {
	if d == nil {
		return nil, ErrNilMatrix
	}
	o := gatherOptions(opts...)
	entries := make([]Entry, 0, d.NNZ())
	for i := 0; i < d.r; i++ {
		base := i * d.c
		for j := 0; j < d.c; j++ {
			if v := d.data[base+j]; v != 0 {
				entries = append(entries, Entry{Row: i, Col: j, Val: v})
			}
		}
	}

	return fromSortedEntries(d.r, d.c, entries, o.validateNaNInf), nil
}

// NewCSRRaw adopts three raw CSR buffers after eagerly validating the length
// and row-pointer invariants (ErrBadStructure) and the index ranges. Column
// ordering within each row is a documented caller obligation on this path
// and is not re-verified. The buffers are deep-copied; the caller keeps
// ownership of its slices.
func NewCSRRaw(rows, cols int, values []float64, colIndex, rowPtr []int, opts ...Option) (*CSR, error) {
	if err := validateShape(rows, cols); err != nil {
		return nil, err
	}
	o := gatherOptions(opts...)
	if len(values) != len(colIndex) {
		return nil, fmt.Errorf("len(values)=%d len(colIndex)=%d: %w",
			len(values), len(colIndex), ErrBadStructure)
	}
	if len(rowPtr) != rows+1 {
		return nil, fmt.Errorf("len(rowPtr)=%d want %d: %w", len(rowPtr), rows+1, ErrBadStructure)
	}
	if rowPtr[0] != 0 || rowPtr[rows] != len(values) {
		return nil, fmt.Errorf("rowPtr bounds [%d..%d] want [0..%d]: %w",
			rowPtr[0], rowPtr[rows], len(values), ErrBadStructure)
	}
	for i := 0; i < rows; i++ {
		if rowPtr[i] > rowPtr[i+1] {
			return nil, fmt.Errorf("rowPtr decreases at row %d: %w", i, ErrBadStructure)
		}
	}
	for k, j := range colIndex {
		if j < 0 || j >= cols {
			return nil, csrErrorf("NewCSRRaw", -1, j, ErrOutOfRange)
		}
		if o.validateNaNInf && isNonFinite(values[k]) {
			return nil, fmt.Errorf("values[%d]: %w", k, ErrNaNInf)
		}
	}
	m := &CSR{
		r:              rows,
		c:              cols,
		values:         make([]float64, len(values)),
		colIndex:       make([]int, len(colIndex)),
		rowPtr:         make([]int, len(rowPtr)),
		validateNaNInf: o.validateNaNInf,
	}
	copy(m.values, values)
	copy(m.colIndex, colIndex)
	copy(m.rowPtr, rowPtr)

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *CSR) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *CSR) Cols() int { return m.c }

// NNZ reports the number of stored entries. Complexity: O(1).
func (m *CSR) NNZ() int { return len(m.values) }

// At returns the element at (row, col), 0 when no entry is stored.
// The row's column slice is ascending, so a binary search locates the
// candidate. Complexity: O(log nnz(row)).
func (m *CSR) At(row, col int) (float64, error) {
	if err := validateIndex(row, col, m.r, m.c); err != nil {
		return 0, csrErrorf(ctxAt, row, col, err)
	}
	lo, hi := m.rowPtr[row], m.rowPtr[row+1]
	k := lo + sort.SearchInts(m.colIndex[lo:hi], col)
	if k < hi && m.colIndex[k] == col {
		return m.values[k], nil
	}

	return 0, nil
}

// Set stores v at (row, col). This is a structural mutation and is
// deliberately expensive: the stored entries are materialized as COO, the
// target is replaced, inserted or (when v is exactly zero) removed, and
// the whole structure is rebuilt. Callers performing many scattered updates
// should build once from COO instead. Complexity: O(nnz).
func (m *CSR) Set(row, col int, v float64) error {
	if err := validateIndex(row, col, m.r, m.c); err != nil {
		return csrErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return csrErrorf(ctxSet, row, col, ErrNaNInf)
	}
	old := m.Entries()
	entries := make([]Entry, 0, len(old)+1)
	placed := false
	for _, e := range old {
		switch {
		case e.Row == row && e.Col == col:
			// Replace in place; a zero write drops the entry.
			if v != 0 {
				entries = append(entries, Entry{Row: row, Col: col, Val: v})
			}
			placed = true
		case !placed && (e.Row > row || (e.Row == row && e.Col > col)):
			// Passed the insertion point: emit the new entry first.
			if v != 0 {
				entries = append(entries, Entry{Row: row, Col: col, Val: v})
			}
			placed = true
			entries = append(entries, e)
		default:
			entries = append(entries, e)
		}
	}
	if !placed && v != 0 {
		entries = append(entries, Entry{Row: row, Col: col, Val: v})
	}
	*m = *fromSortedEntries(m.r, m.c, entries, m.validateNaNInf)

	return nil
}

// Entries exports the stored triplets in row-major, column-ascending order.
// This is the natural serializable form of the matrix (plus its shape).
// Complexity: O(nnz).
func (m *CSR) Entries() []Entry {
	out := make([]Entry, 0, len(m.values))
	for i := 0; i < m.r; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			out = append(out, Entry{Row: i, Col: m.colIndex[k], Val: m.values[k]})
		}
	}

	return out
}

// Clone returns a deep copy. Complexity: O(nnz).
func (m *CSR) Clone() *CSR {
	cp := &CSR{
		r:              m.r,
		c:              m.c,
		values:         make([]float64, len(m.values)),
		colIndex:       make([]int, len(m.colIndex)),
		rowPtr:         make([]int, len(m.rowPtr)),
		validateNaNInf: m.validateNaNInf,
	}
	copy(cp.values, m.values)
	copy(cp.colIndex, m.colIndex)
	copy(cp.rowPtr, m.rowPtr)

	return cp
}

// addSubCSR merges two CSR matrices of identical shape row by row: advance
// whichever side has the smaller pending column, or combine on a match.
// Combined values that cancel to exact zero are dropped; output rows are
// born column-sorted, so the result satisfies the CSR invariants with no
// secondary sort. Complexity: O(nnz(m) + nnz(o)).
func (m *CSR) addSubCSR(o *CSR, sign float64) *CSR {
	vals := make([]float64, 0, len(m.values)+len(o.values))
	cols := make([]int, 0, len(m.values)+len(o.values))
	rowPtr := make([]int, m.r+1)
	for i := 0; i < m.r; i++ {
		p, pe := m.rowPtr[i], m.rowPtr[i+1]
		q, qe := o.rowPtr[i], o.rowPtr[i+1]
		for p < pe || q < qe {
			switch {
			case q >= qe || (p < pe && m.colIndex[p] < o.colIndex[q]):
				vals = append(vals, m.values[p])
				cols = append(cols, m.colIndex[p])
				p++
			case p >= pe || o.colIndex[q] < m.colIndex[p]:
				vals = append(vals, sign*o.values[q])
				cols = append(cols, o.colIndex[q])
				q++
			default: // column match: combine and advance both
				if v := m.values[p] + sign*o.values[q]; v != 0 {
					vals = append(vals, v)
					cols = append(cols, m.colIndex[p])
				}
				p++
				q++
			}
		}
		rowPtr[i+1] = len(vals)
	}

	return &CSR{
		r:              m.r,
		c:              m.c,
		values:         vals,
		colIndex:       cols,
		rowPtr:         rowPtr,
		validateNaNInf: m.validateNaNInf,
	}
}

// Add returns m + b. Same-shape CSR operands take the sorted merge and keep
// the result sparse; any other operand densifies m and delegates to the
// dense path. Complexity: O(nnz(m)+nnz(b)) on the merge path.
func (m *CSR) Add(b Matrix) (Matrix, error) {
	if err := validateSameShape(m, b); err != nil {
		return nil, err
	}
	if o, ok := b.(*CSR); ok {
		return m.addSubCSR(o, 1), nil
	}

	return m.ToDense().Add(b)
}

// Sub returns m - b; see Add for the dispatch rules.
func (m *CSR) Sub(b Matrix) (Matrix, error) {
	if err := validateSameShape(m, b); err != nil {
		return nil, err
	}
	if o, ok := b.(*CSR); ok {
		return m.addSubCSR(o, -1), nil
	}

	return m.ToDense().Sub(b)
}

// Scale returns m multiplied by scalar s. The column/row structure is
// copied unchanged; scaling by zero produces explicitly stored zeros rather
// than pruning entries. Only additive/multiplicative cancellation inside
// the merge and Gustavson kernels prunes structurally.
// Complexity: O(nnz).
func (m *CSR) Scale(s float64) Matrix {
	res := m.Clone()
	for k := range res.values {
		res.values[k] *= s
	}

	return res
}

// mulCSR multiplies two CSR matrices with a two-pass, row-at-a-time
// Gustavson accumulation. For each row i of m, every stored (i,k,a) walks
// row k of o, accumulating partial products in a dense scratch keyed by
// output column; a marker array bounds re-visits so the scratch never needs
// clearing between rows. On completing a row the touched columns are sorted,
// exact-zero sums are pruned, and the compacted row is appended, so the
// output satisfies every CSR invariant without a whole-matrix sort.
// Complexity: O(Σ pairs visited + Σ per-row output·log(output)).
func (m *CSR) mulCSR(o *CSR) *CSR {
	n := o.c
	scratch := make([]float64, n) // per-row accumulator keyed by column
	marker := make([]int, n)      // last row that touched each column
	for j := range marker {
		marker[j] = -1
	}
	touched := make([]int, 0, n)

	vals := make([]float64, 0, len(m.values))
	cols := make([]int, 0, len(m.values))
	rowPtr := make([]int, m.r+1)
	for i := 0; i < m.r; i++ {
		touched = touched[:0]
		for p := m.rowPtr[i]; p < m.rowPtr[i+1]; p++ {
			a := m.values[p]
			if a == 0 {
				continue // skipped as an optimization, not for correctness
			}
			k := m.colIndex[p]
			for q := o.rowPtr[k]; q < o.rowPtr[k+1]; q++ {
				j := o.colIndex[q]
				prod := a * o.values[q]
				if prod == 0 {
					continue
				}
				if marker[j] != i {
					marker[j] = i
					scratch[j] = prod
					touched = append(touched, j)
				} else {
					scratch[j] += prod
				}
			}
		}
		sort.Ints(touched)
		for _, j := range touched {
			if scratch[j] != 0 { // exact-zero cancellation is pruned
				vals = append(vals, scratch[j])
				cols = append(cols, j)
			}
		}
		rowPtr[i+1] = len(vals)
	}

	return &CSR{
		r:              m.r,
		c:              n,
		values:         vals,
		colIndex:       cols,
		rowPtr:         rowPtr,
		validateNaNInf: m.validateNaNInf,
	}
}

// mulDense is the sparse-times-dense kernel: every stored (i,k,a)
// accumulates a·row k of d into output row i.
// Complexity: O(nnz(m) · d.Cols()).
func (m *CSR) mulDense(d *Dense) *Dense {
	n := d.c
	res := &Dense{
		r:              m.r,
		c:              n,
		data:           make([]float64, m.r*n),
		validateNaNInf: m.validateNaNInf,
	}
	for i := 0; i < m.r; i++ {
		rowC := i * n
		for p := m.rowPtr[i]; p < m.rowPtr[i+1]; p++ {
			a := m.values[p]
			rowB := m.colIndex[p] * n
			for j := 0; j < n; j++ {
				res.data[rowC+j] += a * d.data[rowB+j]
			}
		}
	}

	return res
}

// Mul returns the matrix product m·b. CSR×CSR stays sparse through the
// Gustavson kernel; CSR×Dense uses the sparse-times-dense kernel and yields
// a Dense; any other operand is densified first. Requires
// m.Cols() == b.Rows().
func (m *CSR) Mul(b Matrix) (Matrix, error) {
	if err := validateMulShape(m, b); err != nil {
		return nil, err
	}
	switch o := b.(type) {
	case *CSR:
		return m.mulCSR(o), nil
	case *Dense:
		return m.mulDense(o), nil
	default:
		return m.mulDense(b.ToDense()), nil
	}
}

// Transpose re-emits every stored (i,j,v) as (j,i,v) and rebuilds through
// the sorted scatter builder. Swapping roles destroys the per-row column
// ordering, so the triplets are re-sorted first; positions stay unique and
// values non-zero, so no aggregation pass is needed.
// Complexity: O(nnz log nnz).
func (m *CSR) Transpose() Matrix {
	entries := m.Entries()
	for k := range entries {
		entries[k].Row, entries[k].Col = entries[k].Col, entries[k].Row
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Row != entries[b].Row {
			return entries[a].Row < entries[b].Row
		}

		return entries[a].Col < entries[b].Col
	})

	return fromSortedEntries(m.c, m.r, entries, m.validateNaNInf)
}

// MulVec returns m·x by dotting each row's stored entries against the
// matching vector positions. Requires len(x) == Cols().
// Complexity: O(nnz).
func (m *CSR) MulVec(x []float64) ([]float64, error) {
	if err := validateVecLen(m, x); err != nil {
		return nil, err
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		sum := 0.0
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			sum += m.values[k] * x[m.colIndex[k]]
		}
		out[i] = sum
	}

	return out, nil
}

// ToDense scatters every stored entry into a zero-initialized dense buffer.
// Always an independent copy. Complexity: O(rows*cols).
func (m *CSR) ToDense() *Dense {
	d := &Dense{
		r:              m.r,
		c:              m.c,
		data:           make([]float64, m.r*m.c),
		validateNaNInf: m.validateNaNInf,
	}
	for i := 0; i < m.r; i++ {
		base := i * m.c
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			d.data[base+m.colIndex[k]] = m.values[k]
		}
	}

	return d
}

// String renders a compact triplet dump for diagnostics.
func (m *CSR) String() string {
	s := fmt.Sprintf("CSR %dx%d nnz=%d", m.r, m.c, len(m.values))
	for i := 0; i < m.r; i++ {
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			s += fmt.Sprintf(" (%d,%d)=%g", i, m.colIndex[k], m.values[k])
		}
	}

	return s
}
