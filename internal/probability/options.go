package probability

import "github.com/sirupsen/logrus"

// DefaultMaxCompetitors bounds the field size for pools built from third- and
// fourth-order tensors, which grow as n^3 and n^4.
const DefaultMaxCompetitors = 40

type options struct {
	coefficients   Coefficients
	logger         *logrus.Logger
	maxCompetitors int
}

// Option configures an Engine.
type Option func(*options)

// WithCoefficients sets the per-rank correction exponents.
func WithCoefficients(c Coefficients) Option {
	return func(o *options) {
		o.coefficients = c
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *logrus.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxCompetitors overrides DefaultMaxCompetitors. Zero or negative disables the ceiling.
func WithMaxCompetitors(n int) Option {
	return func(o *options) {
		o.maxCompetitors = n
	}
}

func defaultOptions() options {
	return options{
		coefficients:   DefaultCoefficients,
		logger:         logrus.StandardLogger(),
		maxCompetitors: DefaultMaxCompetitors,
	}
}
