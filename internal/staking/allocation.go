package staking

import (
	"github.com/shopspring/decimal"
)

// Allocation is the stake proportion assigned to one outcome.
type Allocation struct {
	Label       string  `json:"label"`
	Odds        float64 `json:"odds"`
	Probability float64 `json:"probability"`
	Proportion  float64 `json:"proportion"`
}

// Stake is an allocation converted into money.
type Stake struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// Allocations holds one entry per outcome in input order.
type Allocations []Allocation

// Total returns the proportion of capital staked across all outcomes.
func (a Allocations) Total() float64 {
	total := 0.0
	for _, al := range a {
		total += al.Proportion
	}
	return total
}

// Proportions returns the allocations keyed by label.
func (a Allocations) Proportions() map[string]float64 {
	out := make(map[string]float64, len(a))
	for _, al := range a {
		out[al.Label] = al.Proportion
	}
	return out
}

// Scale returns a copy with every proportion multiplied by fraction, as for
// fractional Kelly staking.
func (a Allocations) Scale(fraction float64) Allocations {
	out := make(Allocations, len(a))
	copy(out, a)
	for i := range out {
		out[i].Proportion *= fraction
	}
	return out
}

// Stakes converts the proportions into amounts of bankroll, truncated to whole cents
// so the total never exceeds the allocated share.
func (a Allocations) Stakes(bankroll decimal.Decimal) []Stake {
	out := make([]Stake, len(a))
	for i, al := range a {
		amount := bankroll.Mul(decimal.NewFromFloat(al.Proportion)).Truncate(2)
		out[i] = Stake{Label: al.Label, Amount: amount}
	}
	return out
}
