// Package matrix - Adaptive facade over the Dense and CSR representations.
//
// An Adaptive matrix owns exactly one representation at a time and a density
// threshold. The backend decision (density = nnz/(rows·cols), CSR when
// density <= threshold) is applied at every construction entry point and
// again by explicit Repack; it is NOT re-applied per operation. Every
// contract method unwraps facade-wrapped operands, forwards to the active
// representation, and rewraps representation results in a new facade sharing
// the same threshold: the concrete type the underlying algorithm produced
// (e.g. CSR×CSR→CSR) is trusted as-is.
package matrix

// Adaptive wraps either a *Dense or a *CSR and re-dispatches every
// operation to it. No representation is ever shared between two facades.
type Adaptive struct {
	repr      Matrix  // active representation: *Dense or *CSR
	threshold float64 // density at or below which CSR is preferred
}

var _ Matrix = (*Adaptive)(nil)

// ChooseBackend applies the density rule: density = nnz/(rows·cols),
// defined as 0 when rows·cols == 0 (no division happens); CSR is chosen
// iff density <= threshold. Deterministic for every input.
func ChooseBackend(rows, cols, nnz int, threshold float64) Backend {
	cells := rows * cols
	density := 0.0
	if cells > 0 {
		density = float64(nnz) / float64(cells)
	}
	if density <= threshold {
		return BackendCSR
	}

	return BackendDense
}

// wrapRepr builds a facade around an existing representation without
// re-deciding the backend.
func wrapRepr(repr Matrix, threshold float64) *Adaptive {
	return &Adaptive{repr: repr, threshold: threshold}
}

// NewAdaptive creates a rows×cols all-zero adaptive matrix. With zero
// stored entries the density rule always lands on CSR.
// Returns ErrInvalidDimensions on negative dimensions.
func NewAdaptive(rows, cols int, opts ...Option) (*Adaptive, error) {
	return NewAdaptiveFromCOO(rows, cols, nil, opts...)
}

// NewAdaptiveFromRows creates an adaptive matrix from a rectangular 2-D
// slice, then picks the backend from the data's density.
// Complexity: O(rows*cols).
func NewAdaptiveFromRows(rows [][]float64, opts ...Option) (*Adaptive, error) {
	o := gatherOptions(opts...)
	d, err := NewDenseFromRows(rows, opts...)
	if err != nil {
		return nil, err
	}
	if ChooseBackend(d.r, d.c, d.NNZ(), o.densityThreshold) == BackendCSR {
		c, err := NewCSRFromDense(d, opts...)
		if err != nil {
			return nil, err
		}

		return wrapRepr(c, o.densityThreshold), nil
	}

	return wrapRepr(d, o.densityThreshold), nil
}

// NewAdaptiveFromCOO creates an adaptive matrix from COO triplets plus an
// explicit shape. The triplets go through the CSR builder first (bounds
// validation, duplicate aggregation, exact-zero pruning), so the density
// decision sees the true nnz; the result densifies only when the rule says
// Dense. Complexity: O(nnz log nnz).
func NewAdaptiveFromCOO(rows, cols int, entries []Entry, opts ...Option) (*Adaptive, error) {
	o := gatherOptions(opts...)
	c, err := NewCSRFromCOO(rows, cols, entries, opts...)
	if err != nil {
		return nil, err
	}
	if ChooseBackend(rows, cols, c.NNZ(), o.densityThreshold) == BackendDense {
		return wrapRepr(c.ToDense(), o.densityThreshold), nil
	}

	return wrapRepr(c, o.densityThreshold), nil
}

// Identity creates the n×n identity matrix. Density is 1/n, so small
// identities come out dense and larger ones CSR under the default threshold.
func Identity(n int, opts ...Option) (*Adaptive, error) {
	if n < 0 {
		return nil, ErrInvalidDimensions
	}
	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = Entry{Row: i, Col: i, Val: 1}
	}

	return NewAdaptiveFromCOO(n, n, entries, opts...)
}

// Backend reports the active representation. Complexity: O(1).
func (a *Adaptive) Backend() Backend {
	if _, ok := a.repr.(*CSR); ok {
		return BackendCSR
	}

	return BackendDense
}

// Threshold returns the density threshold this facade applies on
// construction and Repack. Complexity: O(1).
func (a *Adaptive) Threshold() float64 { return a.threshold }

// Repack recomputes nnz from the current representation, re-applies the
// backend decision, and converts only when it disagrees with the active
// backend. Set never repacks implicitly: a dense matrix can drift sparse
// (or vice versa) under mutation, and paying O(rows·cols) per element write
// would be wasteful, so repacking is caller-invoked.
// Complexity: O(rows*cols) when a conversion happens.
func (a *Adaptive) Repack() {
	want := ChooseBackend(a.Rows(), a.Cols(), a.repr.NNZ(), a.threshold)
	if want == a.Backend() {
		return
	}
	if want == BackendCSR {
		// Counting nnz happened on a Dense; the conversion cannot fail.
		c, _ := NewCSRFromDense(a.repr.(*Dense))
		c.validateNaNInf = a.repr.(*Dense).validateNaNInf
		a.repr = c

		return
	}
	a.repr = a.repr.ToDense()
}

// unwrap peels a facade off an operand so representations see each other's
// concrete types and can pick their fast paths.
func unwrap(b Matrix) Matrix {
	if ad, ok := b.(*Adaptive); ok {
		return ad.repr
	}

	return b
}

// wrap rewraps a representation produced by an operation, sharing this
// facade's threshold without re-deciding the backend.
func (a *Adaptive) wrap(m Matrix) Matrix {
	return wrapRepr(m, a.threshold)
}

// Rows returns the number of rows. Complexity: O(1).
func (a *Adaptive) Rows() int { return a.repr.Rows() }

// Cols returns the number of columns. Complexity: O(1).
func (a *Adaptive) Cols() int { return a.repr.Cols() }

// At forwards to the active representation.
func (a *Adaptive) At(i, j int) (float64, error) { return a.repr.At(i, j) }

// Set forwards to the active representation. The backend choice is not
// re-evaluated; call Repack after bulk mutation.
func (a *Adaptive) Set(i, j int, v float64) error { return a.repr.Set(i, j, v) }

// Add forwards to the active representation and rewraps the result.
func (a *Adaptive) Add(b Matrix) (Matrix, error) {
	res, err := a.repr.Add(unwrap(b))
	if err != nil {
		return nil, err
	}

	return a.wrap(res), nil
}

// Sub forwards to the active representation and rewraps the result.
func (a *Adaptive) Sub(b Matrix) (Matrix, error) {
	res, err := a.repr.Sub(unwrap(b))
	if err != nil {
		return nil, err
	}

	return a.wrap(res), nil
}

// Scale forwards to the active representation and rewraps the result.
func (a *Adaptive) Scale(s float64) Matrix {
	return a.wrap(a.repr.Scale(s))
}

// Mul forwards to the active representation and rewraps the result.
func (a *Adaptive) Mul(b Matrix) (Matrix, error) {
	res, err := a.repr.Mul(unwrap(b))
	if err != nil {
		return nil, err
	}

	return a.wrap(res), nil
}

// MulVec forwards to the active representation.
func (a *Adaptive) MulVec(x []float64) ([]float64, error) {
	return a.repr.MulVec(x)
}

// Transpose forwards to the active representation and rewraps the result.
func (a *Adaptive) Transpose() Matrix {
	return a.wrap(a.repr.Transpose())
}

// ToDense materializes an independent dense copy of the active
// representation.
func (a *Adaptive) ToDense() *Dense { return a.repr.ToDense() }

// NNZ reports the non-zero count of the active representation: O(1) for
// CSR, O(rows*cols) for Dense.
func (a *Adaptive) NNZ() int { return a.repr.NNZ() }
