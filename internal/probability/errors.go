package probability

import "errors"

// Validation errors. Callers match them with errors.Is; every returned error wraps
// one of these with the offending detail.
var (
	// ErrDimension indicates an empty input or mismatched lengths
	ErrDimension = errors.New("dimension mismatch")

	// ErrRange indicates a weight, odds value or coefficient outside its domain
	ErrRange = errors.New("value out of range")

	// ErrPoolName indicates an unrecognised pool identifier
	ErrPoolName = errors.New("invalid pool")

	// ErrInsufficientCompetitors indicates too few competitors for the requested pool
	ErrInsufficientCompetitors = errors.New("not enough competitors")

	// ErrTooManyCompetitors indicates the field is larger than the engine's memory ceiling
	ErrTooManyCompetitors = errors.New("too many competitors")
)
