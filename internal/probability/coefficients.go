package probability

import (
	"fmt"
	"math"
)

// Coefficients holds the correction exponents c1..c4 applied to the weights before
// normalisation at each rank. Benter's maximum likelihood fit suggests c2=0.81, c3=0.65.
type Coefficients [4]float64

// DefaultCoefficients leaves every rank uncorrected, which is plain Harville.
var DefaultCoefficients = Coefficients{1, 1, 1, 1}

// NewCoefficients builds coefficients from up to four exponents, padding missing
// trailing entries with 1.
func NewCoefficients(cs ...float64) (Coefficients, error) {
	if len(cs) > len(DefaultCoefficients) {
		return Coefficients{}, fmt.Errorf("%w: %d correction coefficients, at most %d allowed",
			ErrDimension, len(cs), len(DefaultCoefficients))
	}
	out := DefaultCoefficients
	for i, c := range cs {
		if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
			return Coefficients{}, fmt.Errorf("%w: coefficient c%d=%v must be finite and positive", ErrRange, i+1, c)
		}
		out[i] = c
	}
	return out, nil
}

// Level returns the exponent for order level k (1-4).
func (c Coefficients) Level(k int) float64 {
	return c[k-1]
}

// rankWeights computes w_i^c / sum_j w_j^c. Weights are scaled by their maximum
// before exponentiation so extreme magnitudes cannot overflow or underflow the sum.
func rankWeights(weights []float64, c float64) []float64 {
	out := make([]float64, len(weights))
	maxW := 0.0
	for _, w := range weights {
		maxW = math.Max(maxW, w)
	}
	total := 0.0
	for i, w := range weights {
		out[i] = math.Pow(w/maxW, c)
		total += out[i]
	}
	for i := range out {
		out[i] /= total
	}
	return out
}
