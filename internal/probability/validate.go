package probability

import (
	"errors"
	"fmt"
	"math"
)

// ProbabilitySumTolerance is the allowed deviation of a probability vector's sum from 1.
const ProbabilitySumTolerance = 1e-6

// ValidateWeights checks that weights is a non-empty vector of finite positive values.
func ValidateWeights(weights []float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: no competitors", ErrDimension)
	}
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return fmt.Errorf("%w: weight %d is %v, must be finite and positive", ErrRange, i, w)
		}
	}
	return nil
}

// ValidateOdds checks that odds is a non-empty vector of finite decimal odds above 1.
func ValidateOdds(odds []float64) error {
	if len(odds) == 0 {
		return fmt.Errorf("%w: no competitors", ErrDimension)
	}
	for i, o := range odds {
		if math.IsNaN(o) || math.IsInf(o, 0) || o <= 1 {
			return fmt.Errorf("%w: odds %d is %v, must be larger than 1", ErrRange, i, o)
		}
	}
	return nil
}

// ValidateProbabilities checks that prob holds values in [0,1] summing to 1 within
// ProbabilitySumTolerance.
func ValidateProbabilities(prob []float64) error {
	if len(prob) == 0 {
		return fmt.Errorf("%w: no competitors", ErrDimension)
	}
	total := 0.0
	for i, p := range prob {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return fmt.Errorf("%w: probability %d is %v, must be within [0,1]", ErrRange, i, p)
		}
		total += p
	}
	if math.Abs(total-1) > ProbabilitySumTolerance {
		return fmt.Errorf("%w: probabilities sum to %v, not 1", ErrRange, total)
	}
	return nil
}

// checkCompetitors enforces the field size bounds for an order level.
func checkCompetitors(n, level, ceiling int, what string) error {
	if least := levelMinCompetitors(level); n <= least {
		return fmt.Errorf("%w: %s needs more than %d competitors, got %d",
			ErrInsufficientCompetitors, what, least, n)
	}
	if level >= 3 && ceiling > 0 && n > ceiling {
		return fmt.Errorf("%w: %s limited to %d competitors, got %d",
			ErrTooManyCompetitors, what, ceiling, n)
	}
	return nil
}

// ErrorKind classifies a validation error for metrics labels.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrDimension):
		return "dimension"
	case errors.Is(err, ErrRange):
		return "range"
	case errors.Is(err, ErrPoolName):
		return "pool_name"
	case errors.Is(err, ErrInsufficientCompetitors):
		return "insufficient_competitors"
	case errors.Is(err, ErrTooManyCompetitors):
		return "too_many_competitors"
	default:
		return "other"
	}
}
