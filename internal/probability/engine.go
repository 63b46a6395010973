// Package probability estimates pari-mutuel pool probabilities from win weights using
// the Harville formula with optional per-rank correction exponents.
//
// An Engine is built once per race. Rank weights and order tensors are computed on
// first use and cached for the lifetime of the engine, so querying several pools on
// the same engine only pays for each order level once.
package probability

import (
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/harville-prober/internal/logger"
	"github.com/yourusername/harville-prober/internal/metrics"
)

// MaxOrder is the deepest finishing-order level the engine builds.
const MaxOrder = 4

type lazyVector struct {
	once sync.Once
	v    []float64
}

type lazyTensor struct {
	once sync.Once
	t    *Tensor
}

// Engine computes order tensors and pool probabilities for one race.
// It is safe for concurrent use.
type Engine struct {
	weights        []float64
	coefficients   Coefficients
	maxCompetitors int
	log            *logger.EngineLogger

	ranks  [MaxOrder]lazyVector
	orders [MaxOrder]lazyTensor
}

// New creates an engine from win weights: win probabilities or any positive strength
// values proportional to them.
func New(weights []float64, opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.NewEngineLogger(o.logger)

	if err := ValidateWeights(weights); err != nil {
		metrics.RecordValidationFailure(ErrorKind(err))
		log.LogValidationFailure("new", err)
		return nil, err
	}
	if _, err := NewCoefficients(o.coefficients[:]...); err != nil {
		metrics.RecordValidationFailure(ErrorKind(err))
		log.LogValidationFailure("new", err)
		return nil, err
	}

	w := make([]float64, len(weights))
	copy(w, weights)

	return &Engine{
		weights:        w,
		coefficients:   o.coefficients,
		maxCompetitors: o.maxCompetitors,
		log:            log,
	}, nil
}

// FromOdds creates an engine from decimal win odds, each larger than 1. The implied
// probabilities 1/odds become the weights.
func FromOdds(odds []float64, opts ...Option) (*Engine, error) {
	if err := ValidateOdds(odds); err != nil {
		metrics.RecordValidationFailure(ErrorKind(err))
		return nil, err
	}
	weights := make([]float64, len(odds))
	for i, o := range odds {
		weights[i] = 1 / o
	}
	return New(weights, opts...)
}

// Size returns the number of competitors.
func (e *Engine) Size() int {
	return len(e.weights)
}

// Coefficients returns the correction exponents in use.
func (e *Engine) Coefficients() Coefficients {
	return e.coefficients
}

// RankWeight returns the corrected, normalised weights for order level k (1-4).
func (e *Engine) RankWeight(level int) ([]float64, error) {
	if level < 1 || level > MaxOrder {
		return nil, fmt.Errorf("%w: order level %d outside 1-%d", ErrRange, level, MaxOrder)
	}
	r := e.rankWeight(level)
	out := make([]float64, len(r))
	copy(out, r)
	return out, nil
}

// Order returns a copy of the exact finishing-order tensor for level k (1-4).
func (e *Engine) Order(level int) (*Tensor, error) {
	if level < 1 || level > MaxOrder {
		return nil, fmt.Errorf("%w: order level %d outside 1-%d", ErrRange, level, MaxOrder)
	}
	if err := e.check(level, fmt.Sprintf("order level %d", level)); err != nil {
		return nil, err
	}
	return e.order(level).Clone(), nil
}

// Marginals returns each competitor's probability of finishing first, second and third.
func (e *Engine) Marginals() (*Marginals, error) {
	if err := e.check(3, "position marginals"); err != nil {
		return nil, err
	}
	return e.marginals(), nil
}

// TransformName is Transform for a pool given by name.
func (e *Engine) TransformName(name string) (*Tensor, error) {
	pool, err := ParsePool(name)
	if err != nil {
		metrics.RecordValidationFailure(ErrorKind(err))
		e.log.LogValidationFailure("transform", err)
		return nil, err
	}
	return e.Transform(pool)
}

// Transform returns the probabilities for every combination of the given pool.
// Only the order levels the pool needs are computed.
func (e *Engine) Transform(pool Pool) (*Tensor, error) {
	if !pool.Valid() {
		err := fmt.Errorf("%w: %q (expected one of %s)", ErrPoolName, string(pool), poolNames())
		metrics.RecordValidationFailure(ErrorKind(err))
		e.log.LogValidationFailure("transform", err)
		return nil, err
	}
	if err := e.check(pool.Level(), "pool "+string(pool)); err != nil {
		return nil, err
	}

	var out *Tensor
	switch pool {
	case PoolWin:
		out = e.order(1).Clone()
	case PoolQuinella:
		out = symmetricPair(e.order(2))
	case PoolTierce:
		out = e.order(3).Clone()
	case PoolTrio:
		out = symmetrize(e.order(3), permutations3)
	case PoolPlace:
		out = e.place()
	case PoolPlaceQ:
		out = e.placeQuinella()
	case PoolQuartet:
		out = e.order(4).Clone()
	case PoolFirst4:
		out = symmetrize(e.order(4), permutations4)
	}

	metrics.RecordPoolTransform(string(pool))
	e.log.LogPoolTransform(string(pool), e.Size(), out.Sum())
	return out, nil
}

func (e *Engine) check(level int, what string) error {
	if err := checkCompetitors(e.Size(), level, e.maxCompetitors, what); err != nil {
		metrics.RecordValidationFailure(ErrorKind(err))
		e.log.LogValidationFailure(what, err)
		return err
	}
	return nil
}

func (e *Engine) rankWeight(level int) []float64 {
	slot := &e.ranks[level-1]
	slot.once.Do(func() {
		slot.v = rankWeights(e.weights, e.coefficients.Level(level))
	})
	return slot.v
}

// order returns the cached tensor for a level, building lower levels first.
// Callers must have checked the field size.
func (e *Engine) order(level int) *Tensor {
	slot := &e.orders[level-1]
	slot.once.Do(func() {
		var prev *Tensor
		if level > 1 {
			prev = e.order(level - 1)
		}

		start := time.Now()
		r := e.rankWeight(level)
		if prev == nil {
			slot.t = firstOrder(r)
		} else {
			slot.t = extend(prev, r)
		}
		elapsed := time.Since(start)

		metrics.RecordOrderLevel(level, elapsed.Seconds())
		e.log.LogLevelComputed(level, e.Size(), float64(elapsed.Microseconds())/1000)
	})
	return slot.t
}
