// Package service prices race cards: pool probabilities from the Harville engine and
// Kelly stakes from the resulting win probabilities.
package service

import (
	"context"
	"fmt"

	cache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/harville-prober/internal/config"
	"github.com/yourusername/harville-prober/internal/metrics"
	"github.com/yourusername/harville-prober/internal/probability"
	"github.com/yourusername/harville-prober/internal/staking"
)

// PoolPrice is the probability table of one pool for one race.
type PoolPrice struct {
	RaceID        string              `json:"race_id"`
	Pool          probability.Pool    `json:"pool"`
	Runners       []string            `json:"runners"`
	Probabilities *probability.Tensor `json:"probabilities"`
}

// StakePlan is the Kelly allocation for a race's win pool.
type StakePlan struct {
	RaceID          string              `json:"race_id"`
	KellyFraction   float64             `json:"kelly_fraction"`
	Allocations     staking.Allocations `json:"allocations"`
	TotalProportion float64             `json:"total_proportion"`
	Stakes          []staking.Stake     `json:"stakes,omitempty"`
}

// Pricer builds one engine per race card and keeps it cached so that further pool
// queries on the same card reuse the engine's order tensors.
type Pricer struct {
	engines        *cache.Cache
	coefficients   probability.Coefficients
	maxCompetitors int
	kellyFraction  float64
	logger         *logrus.Logger
}

// NewPricer creates a pricer from application configuration.
func NewPricer(cfg *config.Config, logger *logrus.Logger) (*Pricer, error) {
	coefficients, err := cfg.CorrectionCoefficients()
	if err != nil {
		return nil, fmt.Errorf("invalid engine coefficients: %w", err)
	}
	fraction := cfg.Staking.KellyFraction
	if fraction <= 0 {
		fraction = 1
	}

	return &Pricer{
		engines:        cache.New(cfg.CacheTTL(), cfg.CacheCleanupInterval()),
		coefficients:   coefficients,
		maxCompetitors: cfg.Engine.MaxCompetitors,
		kellyFraction:  fraction,
		logger:         logger,
	}, nil
}

// Price returns the probabilities of the given pool for the card.
func (p *Pricer) Price(ctx context.Context, card *RaceCard, pool probability.Pool) (*PoolPrice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	engine, err := p.engine(card)
	if err != nil {
		return nil, err
	}

	probs, err := engine.Transform(pool)
	if err != nil {
		return nil, fmt.Errorf("failed to price pool %s: %w", pool, err)
	}

	p.logger.WithFields(logrus.Fields{
		"race_id": card.ID.String(),
		"pool":    string(pool),
		"runners": len(card.Runners),
	}).Debug("Pool priced")

	return &PoolPrice{
		RaceID:        card.ID.String(),
		Pool:          pool,
		Runners:       card.Names(),
		Probabilities: probs,
	}, nil
}

// Stake sizes Kelly stakes on the card's win pool against its odds. A zero bankroll
// returns proportions only.
func (p *Pricer) Stake(ctx context.Context, card *RaceCard, bankroll decimal.Decimal) (*StakePlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	engine, err := p.engine(card)
	if err != nil {
		return nil, err
	}

	win, err := engine.Transform(probability.PoolWin)
	if err != nil {
		return nil, fmt.Errorf("failed to price win pool: %w", err)
	}

	bettor, err := staking.NewMultiKelly(card.Odds(), win.Data, card.Names(), p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create bettor: %w", err)
	}
	allocations := bettor.Transform().Scale(p.kellyFraction)

	plan := &StakePlan{
		RaceID:          card.ID.String(),
		KellyFraction:   p.kellyFraction,
		Allocations:     allocations,
		TotalProportion: allocations.Total(),
	}
	if bankroll.IsPositive() {
		plan.Stakes = allocations.Stakes(bankroll)
	}
	return plan, nil
}

// Forget drops the cached engine for a card.
func (p *Pricer) Forget(card *RaceCard) {
	p.engines.Delete(cacheKey(card))
}

// CachedEngines returns the number of engines currently cached.
func (p *Pricer) CachedEngines() int {
	return p.engines.ItemCount()
}

func (p *Pricer) engine(card *RaceCard) (*probability.Engine, error) {
	if err := card.Validate(); err != nil {
		metrics.RecordValidationFailure("race_card")
		return nil, err
	}

	key := cacheKey(card)
	if cached, found := p.engines.Get(key); found {
		if engine, ok := cached.(*probability.Engine); ok {
			metrics.RecordPricerCache(true)
			return engine, nil
		}
	}
	metrics.RecordPricerCache(false)

	opts := []probability.Option{
		probability.WithCoefficients(p.coefficients),
		probability.WithLogger(p.logger),
		probability.WithMaxCompetitors(p.maxCompetitors),
	}

	var (
		engine *probability.Engine
		err    error
	)
	if weights := card.Weights(); weights != nil {
		engine, err = probability.New(weights, opts...)
	} else {
		engine, err = probability.FromOdds(card.Odds(), opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build engine for race %s: %w", card.ID, err)
	}

	// Another caller may have cached an engine for the same card meanwhile; keep theirs.
	if err := p.engines.Add(key, engine, cache.DefaultExpiration); err != nil {
		if cached, found := p.engines.Get(key); found {
			if existing, ok := cached.(*probability.Engine); ok {
				return existing, nil
			}
		}
		p.engines.Set(key, engine, cache.DefaultExpiration)
	}
	return engine, nil
}

// cacheKey identifies an engine by race and by every input that shapes it, so a card
// whose odds move gets a fresh engine.
func cacheKey(card *RaceCard) string {
	return fmt.Sprintf("%s|%v|%v", card.ID, card.Odds(), card.Weights())
}
