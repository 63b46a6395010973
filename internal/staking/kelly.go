// Package staking sizes simultaneous Kelly stakes across mutually exclusive outcomes,
// such as every runner in a win pool.
package staking

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/harville-prober/internal/logger"
	"github.com/yourusername/harville-prober/internal/metrics"
	"github.com/yourusername/harville-prober/internal/probability"
)

// ErrDuplicateLabel indicates two outcomes share a label
var ErrDuplicateLabel = errors.New("duplicate label")

// MultiKelly computes the capital proportion to stake on each of several exclusive
// outcomes so that expected log growth is maximised.
type MultiKelly struct {
	odds   []float64
	prob   []float64
	labels []string
	log    *logger.StakingLogger
}

// NewMultiKelly creates a bettor from decimal odds and win probabilities of equal
// length. Labels are optional; when empty the outcomes are labelled by index.
func NewMultiKelly(odds, prob []float64, labels []string, log *logrus.Logger) (*MultiKelly, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if err := validate(odds, prob, labels); err != nil {
		metrics.RecordValidationFailure(probability.ErrorKind(err))
		return nil, err
	}

	if len(labels) == 0 {
		labels = make([]string, len(odds))
		for i := range labels {
			labels[i] = strconv.Itoa(i)
		}
	}

	mk := &MultiKelly{
		odds:   append([]float64(nil), odds...),
		prob:   append([]float64(nil), prob...),
		labels: append([]string(nil), labels...),
		log:    logger.NewStakingLogger(log),
	}
	return mk, nil
}

func validate(odds, prob []float64, labels []string) error {
	if len(odds) != len(prob) {
		return fmt.Errorf("%w: %d odds but %d probabilities", probability.ErrDimension, len(odds), len(prob))
	}
	if err := probability.ValidateOdds(odds); err != nil {
		return err
	}
	if err := probability.ValidateProbabilities(prob); err != nil {
		return err
	}
	if len(labels) == 0 {
		return nil
	}
	if len(labels) != len(odds) {
		return fmt.Errorf("%w: %d labels for %d outcomes", probability.ErrDimension, len(labels), len(odds))
	}
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return fmt.Errorf("%w: %q", ErrDuplicateLabel, l)
		}
		seen[l] = true
	}
	return nil
}

// Transform returns the proportion of capital to stake on each outcome, in input order.
//
// Outcomes are ranked by expected return odds*prob. With no outcome above 1 there is
// no edge and every proportion is 0. Otherwise the reserve rate
//
//	R = min over positive (1 - cumulative prob) / (1 - cumulative 1/odds)
//
// is taken over the ranked prefix and each outcome in that prefix receives
// max(0, prob - R/odds).
func (mk *MultiKelly) Transform() Allocations {
	n := len(mk.odds)
	out := make(Allocations, n)
	for i := range out {
		out[i] = Allocation{Label: mk.labels[i], Odds: mk.odds[i], Probability: mk.prob[i]}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return mk.expectedReturn(order[a]) > mk.expectedReturn(order[b])
	})

	best := mk.expectedReturn(order[0])
	if best <= 1 {
		mk.log.LogNoEdge(n, best)
		metrics.RecordStakingRun(false, 0, 0)
		return out
	}

	reserve := math.Inf(1)
	prefix := 0
	cumProb, cumRodds := 0.0, 0.0
	for _, i := range order {
		cumProb += mk.prob[i]
		cumRodds += 1 / mk.odds[i]
		rate := (1 - cumProb) / (1 - cumRodds)
		if rate > 0 {
			prefix++
			reserve = math.Min(reserve, rate)
		}
	}

	backed := 0
	for _, i := range order[:prefix] {
		stake := mk.prob[i] - reserve/mk.odds[i]
		if stake <= 0 || math.IsNaN(stake) {
			continue
		}
		out[i].Proportion = stake
		backed++
		mk.log.LogAllocation(out[i].Label, out[i].Odds, out[i].Probability, stake)
	}

	total := out.Total()
	mk.log.LogAllocationSummary(n, backed, reserve, total)
	metrics.RecordStakingRun(true, backed, total)
	return out
}

func (mk *MultiKelly) expectedReturn(i int) float64 {
	return mk.odds[i] * mk.prob[i]
}
