package nmf_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univ-lehavre/abacus/matrix"
	"github.com/univ-lehavre/abacus/nmf"
)

// randomNonNegative builds a deterministic r×c dense matrix with entries in
// [0, 10).
func randomNonNegative(t *testing.T, rng *rand.Rand, r, c int) *matrix.Dense {
	t.Helper()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = make([]float64, c)
		for j := range rows[i] {
			rows[i][j] = rng.Float64() * 10
		}
	}
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return m
}

// TestFactorize_Validation covers the whole error taxonomy.
func TestFactorize_Validation(t *testing.T) {
	v, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	neg, err := matrix.NewDenseFromRows([][]float64{{1, -2}, {3, 4}})
	require.NoError(t, err)
	empty, err := matrix.NewDense(0, 3)
	require.NoError(t, err)

	cases := []struct {
		name string
		v    matrix.Matrix
		opts nmf.Options
		err  error
	}{
		{"NilInput", nil, nmf.DefaultOptions(1), nmf.ErrNilMatrix},
		{"EmptyInput", empty, nmf.DefaultOptions(1), nmf.ErrEmptyMatrix},
		{"NegativeInput", neg, nmf.DefaultOptions(1), nmf.ErrNegativeInput},
		{"RankZero", v, nmf.DefaultOptions(0), nmf.ErrBadRank},
		{"RankTooLarge", v, nmf.DefaultOptions(3), nmf.ErrBadRank},
		{"ZeroIterations", v, nmf.Options{Rank: 1, MaxIter: 0, Eps: 1e-9, Seed: 1}, nmf.ErrBadOptions},
		{"ZeroEps", v, nmf.Options{Rank: 1, MaxIter: 10, Eps: 0, Seed: 1}, nmf.ErrBadOptions},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := nmf.Factorize(tc.v, tc.opts)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestFactorize_ShapesAndNonNegativity checks the factor contract: W is
// r×k, H is k×c, and every entry of both stays non-negative.
func TestFactorize_ShapesAndNonNegativity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	v := randomNonNegative(t, rng, 6, 8)

	opts := nmf.DefaultOptions(3)
	opts.MaxIter = 50
	w, h, err := nmf.Factorize(v, opts)
	require.NoError(t, err)

	assert.Equal(t, 6, w.Rows())
	assert.Equal(t, 3, w.Cols())
	assert.Equal(t, 3, h.Rows())
	assert.Equal(t, 8, h.Cols())

	for _, f := range []*matrix.Dense{w, h} {
		f.Do(func(i, j int, val float64) bool {
			assert.GreaterOrEqual(t, val, 0.0, "(%d,%d)", i, j)

			return true
		})
	}
}

// TestFactorize_ErrorDecreases: multiplicative updates never increase the
// Frobenius objective, so more iterations from the same start can only help.
func TestFactorize_ErrorDecreases(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	v := randomNonNegative(t, rng, 8, 6)

	short := nmf.DefaultOptions(2)
	short.MaxIter = 5
	long := nmf.DefaultOptions(2)
	long.MaxIter = 100

	ws, hs, err := nmf.Factorize(v, short)
	require.NoError(t, err)
	wl, hl, err := nmf.Factorize(v, long)
	require.NoError(t, err)

	errShort, err := nmf.ReconstructionError(v, ws, hs)
	require.NoError(t, err)
	errLong, err := nmf.ReconstructionError(v, wl, hl)
	require.NoError(t, err)

	assert.LessOrEqual(t, errLong, errShort+1e-9)
}

// TestFactorize_RankOneRecovery: a strictly positive rank-1 matrix should
// be reconstructed almost exactly at rank 1.
func TestFactorize_RankOneRecovery(t *testing.T) {
	u := []float64{1, 2, 3, 4}
	x := []float64{2, 1, 0.5}
	rows := make([][]float64, len(u))
	norm := 0.0
	for i := range rows {
		rows[i] = make([]float64, len(x))
		for j := range rows[i] {
			rows[i][j] = u[i] * x[j]
			norm += rows[i][j] * rows[i][j]
		}
	}
	v, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	opts := nmf.DefaultOptions(1)
	opts.MaxIter = 500
	w, h, err := nmf.Factorize(v, opts)
	require.NoError(t, err)

	residual, err := nmf.ReconstructionError(v, w, h)
	require.NoError(t, err)
	assert.Less(t, residual*residual/norm, 0.01, "relative squared error")
}

// TestFactorize_Deterministic: identical inputs and seed give identical
// factors.
func TestFactorize_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	v := randomNonNegative(t, rng, 5, 5)

	opts := nmf.DefaultOptions(2)
	opts.MaxIter = 30
	opts.Seed = 7

	w1, h1, err := nmf.Factorize(v, opts)
	require.NoError(t, err)
	w2, h2, err := nmf.Factorize(v, opts)
	require.NoError(t, err)

	assert.Equal(t, w1.String(), w2.String())
	assert.Equal(t, h1.String(), h2.String())
}

// TestFactorize_SparseInput: CSR and adaptive inputs densify transparently.
func TestFactorize_SparseInput(t *testing.T) {
	v, err := matrix.NewAdaptiveFromCOO(5, 5, []matrix.Entry{
		{Row: 0, Col: 0, Val: 4},
		{Row: 2, Col: 3, Val: 1},
		{Row: 4, Col: 4, Val: 2},
	})
	require.NoError(t, err)
	require.Equal(t, matrix.BackendCSR, v.Backend())

	w, h, err := nmf.Factorize(v, nmf.DefaultOptions(2))
	require.NoError(t, err)
	assert.Equal(t, 5, w.Rows())
	assert.Equal(t, 5, h.Cols())
}

// TestReconstructionError_Validation checks the nil guards and the exact
// zero case.
func TestReconstructionError_Validation(t *testing.T) {
	v, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	_, err = nmf.ReconstructionError(nil, v, v)
	assert.ErrorIs(t, err, nmf.ErrNilMatrix)

	// V == W·H exactly: W = V, H = I.
	eye, err := matrix.NewDenseFromRows([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	residual, err := nmf.ReconstructionError(v, v, eye)
	require.NoError(t, err)
	assert.Zero(t, residual)
}
