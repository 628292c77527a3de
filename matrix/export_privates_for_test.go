package matrix

// RawBuffers exposes the internal CSR buffers so tests can verify the
// structural invariants directly. Test-only; the returned slices alias the
// matrix and must not be mutated.
func (m *CSR) RawBuffers() (values []float64, colIndex, rowPtr []int) {
	return m.values, m.colIndex, m.rowPtr
}
