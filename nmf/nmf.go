package nmf

import (
	"math"
	"math/rand"

	"github.com/univ-lehavre/abacus/matrix"
)

// Defaults for Options; DefaultOptions is the single source of truth.
const (
	// DefaultMaxIter is the fixed number of multiplicative-update rounds.
	DefaultMaxIter = 200
	// DefaultEps guards denominators against division by zero.
	DefaultEps = 1e-9
	// DefaultSeed feeds the factor initializer for reproducible runs.
	DefaultSeed = 1
)

// Options configures a factorization run.
type Options struct {
	// Rank is the inner dimension k of the W (r×k) and H (k×c) factors.
	Rank int
	// MaxIter is the fixed iteration count; there is no convergence test.
	MaxIter int
	// Eps is added to every denominator to keep updates finite.
	Eps float64
	// Seed initializes the RNG used for the starting factors.
	Seed int64
}

// DefaultOptions returns the documented defaults for the given rank.
func DefaultOptions(rank int) Options {
	return Options{Rank: rank, MaxIter: DefaultMaxIter, Eps: DefaultEps, Seed: DefaultSeed}
}

// asDense extracts the concrete Dense from an operation result without an
// extra copy when possible.
func asDense(m matrix.Matrix) *matrix.Dense {
	if d, ok := m.(*matrix.Dense); ok {
		return d
	}

	return m.ToDense()
}

// at reads (i,j) from a matrix whose bounds are known to hold.
func at(m matrix.Matrix, i, j int) float64 {
	v, _ := m.At(i, j)

	return v
}

// Factorize approximates v ≈ w·h with non-negative factors of the given
// rank, running opts.MaxIter Lee–Seung multiplicative updates:
//
//	H ← H ∘ (WᵀV) ⊘ (WᵀWH + eps)
//	W ← W ∘ (VHᵀ) ⊘ (WHHᵀ + eps)
//
// The input is densified once up front and never mutated. Returns
// ErrNilMatrix / ErrEmptyMatrix / ErrNegativeInput / ErrBadRank /
// ErrBadOptions on invalid input; both returned factors are freshly
// allocated and strictly non-negative.
// Complexity: O(MaxIter · r·c·k).
func Factorize(v matrix.Matrix, opts Options) (w, h *matrix.Dense, err error) {
	if v == nil {
		return nil, nil, ErrNilMatrix
	}
	r, c := v.Rows(), v.Cols()
	if r == 0 || c == 0 {
		return nil, nil, ErrEmptyMatrix
	}
	k := opts.Rank
	if k < 1 || k > r || k > c {
		return nil, nil, ErrBadRank
	}
	if opts.MaxIter <= 0 || opts.Eps <= 0 {
		return nil, nil, ErrBadOptions
	}

	vd := v.ToDense()
	negative := false
	vd.Do(func(_, _ int, val float64) bool {
		if val < 0 {
			negative = true

			return false
		}

		return true
	})
	if negative {
		return nil, nil, ErrNegativeInput
	}

	// Seeded initialization in (eps, 1+eps): strictly positive factors so
	// the multiplicative updates never lock a cell at zero by accident.
	rng := rand.New(rand.NewSource(opts.Seed))
	if w, err = matrix.NewDense(r, k); err != nil {
		return nil, nil, err
	}
	if h, err = matrix.NewDense(k, c); err != nil {
		return nil, nil, err
	}
	init := func(_, _ int, _ float64) float64 { return rng.Float64() + opts.Eps }
	if err = w.Apply(init); err != nil {
		return nil, nil, err
	}
	if err = h.Apply(init); err != nil {
		return nil, nil, err
	}

	for iter := 0; iter < opts.MaxIter; iter++ {
		// H ← H ∘ (WᵀV) ⊘ (WᵀWH + eps)
		wt := w.Transpose()
		numerH, mulErr := wt.Mul(vd)
		if mulErr != nil {
			return nil, nil, mulErr
		}
		gram, mulErr := wt.Mul(w)
		if mulErr != nil {
			return nil, nil, mulErr
		}
		denomH, mulErr := gram.Mul(h)
		if mulErr != nil {
			return nil, nil, mulErr
		}
		if err = h.Apply(func(i, j int, val float64) float64 {
			return val * at(numerH, i, j) / (at(denomH, i, j) + opts.Eps)
		}); err != nil {
			return nil, nil, err
		}

		// W ← W ∘ (VHᵀ) ⊘ (WHHᵀ + eps)
		ht := h.Transpose()
		numerW, mulErr := vd.Mul(ht)
		if mulErr != nil {
			return nil, nil, mulErr
		}
		wh, mulErr := w.Mul(h)
		if mulErr != nil {
			return nil, nil, mulErr
		}
		denomW, mulErr := wh.Mul(ht)
		if mulErr != nil {
			return nil, nil, mulErr
		}
		if err = w.Apply(func(i, j int, val float64) float64 {
			return val * at(numerW, i, j) / (at(denomW, i, j) + opts.Eps)
		}); err != nil {
			return nil, nil, err
		}
	}

	return w, h, nil
}

// ReconstructionError returns the Frobenius norm of V − W·H, the quantity
// the multiplicative updates drive down. Complexity: O(r·c·k).
func ReconstructionError(v matrix.Matrix, w, h *matrix.Dense) (float64, error) {
	if v == nil || w == nil || h == nil {
		return 0, ErrNilMatrix
	}
	wh, err := w.Mul(h)
	if err != nil {
		return 0, err
	}
	diff, err := v.ToDense().Sub(wh)
	if err != nil {
		return 0, err
	}
	sum := 0.0
	asDense(diff).Do(func(_, _ int, val float64) bool {
		sum += val * val

		return true
	})

	return math.Sqrt(sum), nil
}
