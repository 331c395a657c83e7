package core

import "errors"

// Sentinel errors for the error kinds named in the ball tree specification.
// Callers should check these with errors.Is; call sites wrap them with
// fmt.Errorf("%w: ...") to attach dynamic context.
var (
	// ErrEmptyInput is returned when construction is attempted with N=0 points.
	ErrEmptyInput = errors.New("balltree: empty input")

	// ErrInvalidK is returned when k<=0 or k>N.
	ErrInvalidK = errors.New("balltree: invalid k")

	// ErrDimensionMismatch is returned when a query's dimensionality does not
	// match the indexed dimensionality.
	ErrDimensionMismatch = errors.New("balltree: dimension mismatch")

	// ErrNotBuilt is returned when a query is issued before Build has run.
	ErrNotBuilt = errors.New("balltree: index has not been built")
)
