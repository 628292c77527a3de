package nmf

import "errors"

var (
	// ErrNilMatrix indicates a nil input matrix.
	ErrNilMatrix = errors.New("nmf: input matrix is nil")
	// ErrEmptyMatrix indicates an input with zero rows or zero columns.
	ErrEmptyMatrix = errors.New("nmf: input matrix must be non-empty")
	// ErrNegativeInput indicates a negative entry in the input matrix.
	ErrNegativeInput = errors.New("nmf: input matrix must be non-negative")
	// ErrBadRank indicates a factorization rank outside [1, min(rows, cols)].
	ErrBadRank = errors.New("nmf: rank must be within [1, min(rows, cols)]")
	// ErrBadOptions indicates non-positive iteration count or epsilon.
	ErrBadOptions = errors.New("nmf: MaxIter and Eps must be positive")
)
