package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Runner is one competitor on a race card. Weight is an optional model strength;
// when every runner carries one, probabilities come from the weights and the odds
// are only used as payouts.
type Runner struct {
	Name   string  `json:"name" validate:"required"`
	Odds   float64 `json:"odds" validate:"gt=1"`
	Weight float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
}

// RaceCard is the field of one race with its win odds.
type RaceCard struct {
	ID      uuid.UUID `json:"id" validate:"required"`
	Runners []Runner  `json:"runners" validate:"required,min=1,dive"`
}

// NewRaceCard builds a card with a fresh ID from parallel name and odds slices.
func NewRaceCard(names []string, odds []float64) (*RaceCard, error) {
	if len(names) != len(odds) {
		return nil, fmt.Errorf("%d names for %d odds", len(names), len(odds))
	}
	card := &RaceCard{ID: uuid.New(), Runners: make([]Runner, len(odds))}
	for i := range odds {
		card.Runners[i] = Runner{Name: names[i], Odds: odds[i]}
	}
	return card, nil
}

// Odds returns the runners' odds in card order.
func (rc *RaceCard) Odds() []float64 {
	out := make([]float64, len(rc.Runners))
	for i, r := range rc.Runners {
		out[i] = r.Odds
	}
	return out
}

// Weights returns the runners' model weights, or nil unless every runner has one.
func (rc *RaceCard) Weights() []float64 {
	out := make([]float64, len(rc.Runners))
	for i, r := range rc.Runners {
		if r.Weight <= 0 {
			return nil
		}
		out[i] = r.Weight
	}
	return out
}

// Names returns the runners' names in card order.
func (rc *RaceCard) Names() []string {
	out := make([]string, len(rc.Runners))
	for i, r := range rc.Runners {
		out[i] = r.Name
	}
	return out
}

var cardValidator = validator.New()

// Validate checks the card's structure.
func (rc *RaceCard) Validate() error {
	if err := cardValidator.Struct(rc); err != nil {
		return fmt.Errorf("invalid race card: %w", err)
	}
	seen := make(map[string]bool, len(rc.Runners))
	for _, r := range rc.Runners {
		if seen[r.Name] {
			return fmt.Errorf("invalid race card: duplicate runner %q", r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}
