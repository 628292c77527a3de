package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univ-lehavre/abacus/matrix"
)

// TestNewDense_Shapes verifies shape validation: negative dimensions are
// rejected, zero-area shapes are legal.
func TestNewDense_Shapes(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
		err        error
	}{
		{"Square", 3, 3, nil},
		{"ZeroRows", 0, 4, nil},
		{"ZeroCols", 4, 0, nil},
		{"ZeroBoth", 0, 0, nil},
		{"NegativeRows", -1, 4, matrix.ErrInvalidDimensions},
		{"NegativeCols", 4, -2, matrix.ErrInvalidDimensions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := matrix.NewDense(tc.rows, tc.cols)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.rows, m.Rows())
			assert.Equal(t, tc.cols, m.Cols())
			assert.Equal(t, 0, m.NNZ(), "fresh matrix must be all-zero")
		})
	}
}

// TestNewDenseFromRows_Validation covers ragged inputs and the numeric policy.
func TestNewDenseFromRows_Validation(t *testing.T) {
	_, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrRagged)

	_, err = matrix.NewDenseFromRows([][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, matrix.ErrNaNInf)

	// Policy off: non-finite values pass through.
	m, err := matrix.NewDenseFromRows([][]float64{{1, math.Inf(1)}}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	v, err := m.At(0, 1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))
}

// TestDenseAtSet_Bounds verifies safe accessors and the NaN/Inf guard.
func TestDenseAtSet_Bounds(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.5, v)

	for _, ij := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 3}} {
		_, err = m.At(ij[0], ij[1])
		assert.ErrorIs(t, err, matrix.ErrOutOfRange, "At(%d,%d)", ij[0], ij[1])
		assert.ErrorIs(t, m.Set(ij[0], ij[1], 1), matrix.ErrOutOfRange, "Set(%d,%d)", ij[0], ij[1])
	}

	assert.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)
}

// TestDenseAddSub checks elementwise add/sub, shape validation and result
// independence from the operands.
func TestDenseAddSub(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := matrix.NewDenseFromRows([][]float64{{10, 20}, {30, 40}})
	require.NoError(t, err)

	sum, err := a.Add(b)
	require.NoError(t, err)
	diff, err := a.Sub(b)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			av, _ := a.At(i, j)
			bv, _ := b.At(i, j)
			sv, _ := sum.At(i, j)
			dv, _ := diff.At(i, j)
			assert.Equal(t, av+bv, sv)
			assert.Equal(t, av-bv, dv)
		}
	}

	// Mutating an operand must not touch the result.
	require.NoError(t, a.Set(0, 0, 100))
	sv, _ := sum.At(0, 0)
	assert.Equal(t, 11.0, sv, "result must own fresh storage")

	wide, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = a.Add(wide)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = a.Sub(wide)
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestDenseScale verifies scalar multiplication returns a fresh matrix.
func TestDenseScale(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{1, -2}, {0, 4}})
	require.NoError(t, err)

	s := a.Scale(0.5)
	want := [][]float64{{0.5, -1}, {0, 2}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v, _ := s.At(i, j)
			assert.Equal(t, want[i][j], v)
		}
	}
	orig, _ := a.At(0, 0)
	assert.Equal(t, 1.0, orig, "operand must be untouched")
}

// TestDenseMul checks the i-k-j kernel against a hand-computed product.
func TestDenseMul(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{1, 0, 2}, {0, 3, 0}})
	require.NoError(t, err)
	b, err := matrix.NewDenseFromRows([][]float64{{5, 0}, {0, 1}, {7, -1}})
	require.NoError(t, err)

	prod, err := a.Mul(b)
	require.NoError(t, err)
	want := [][]float64{{19, -2}, {0, 3}}
	assert.Equal(t, 2, prod.Rows())
	assert.Equal(t, 2, prod.Cols())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v, _ := prod.At(i, j)
			assert.Equal(t, want[i][j], v, "(%d,%d)", i, j)
		}
	}

	_, err = b.Mul(a.Transpose())
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestDenseTranspose_Involution verifies Aᵀᵀ == A for square, rectangular
// and degenerate shapes.
func TestDenseTranspose_Involution(t *testing.T) {
	cases := [][][]float64{
		{{1, 2}, {3, 4}},          // square
		{{1, 2, 3}, {4, 5, 6}},    // rectangular
		{{1, 2, 3, 4}},            // 1×n
		{{1}, {2}, {3}},           // n×1
	}
	for _, rows := range cases {
		a, err := matrix.NewDenseFromRows(rows)
		require.NoError(t, err)
		tt := a.Transpose().Transpose()
		assert.Equal(t, a.Rows(), tt.Rows())
		assert.Equal(t, a.Cols(), tt.Cols())
		for i := 0; i < a.Rows(); i++ {
			for j := 0; j < a.Cols(); j++ {
				av, _ := a.At(i, j)
				tv, _ := tt.At(i, j)
				assert.Equal(t, av, tv)
			}
		}
	}
}

// TestDenseMulVec checks the row-dot loop and length validation.
func TestDenseMulVec(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{1, 2, 3}, {0, -1, 1}})
	require.NoError(t, err)

	y, err := a.MulVec([]float64{1, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 1}, y)

	_, err = a.MulVec([]float64{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestDenseToDense_NoAlias verifies the copy-on-densify discipline.
func TestDenseToDense_NoAlias(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{1, 2}})
	require.NoError(t, err)
	cp := a.ToDense()
	require.NoError(t, cp.Set(0, 0, 99))
	v, _ := a.At(0, 0)
	assert.Equal(t, 1.0, v, "ToDense must return an independent buffer")
}

// TestDenseNNZ counts populated cells.
func TestDenseNNZ(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{{0, 1}, {2, 0}})
	require.NoError(t, err)
	assert.Equal(t, 2, a.NNZ())
}
