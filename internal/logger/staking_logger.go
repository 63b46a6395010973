// Package logger provides stake sizing logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// StakingLogger provides dedicated logging for stake sizing decisions.
type StakingLogger struct {
	*logrus.Entry
}

// NewStakingLogger creates a new staking logger.
func NewStakingLogger(baseLogger *logrus.Logger) *StakingLogger {
	return &StakingLogger{
		Entry: baseLogger.WithField("component", "staking"),
	}
}

// LogNoEdge logs a field where no outcome has a positive expected return.
func (sl *StakingLogger) LogNoEdge(competitors int, bestReturn float64) {
	sl.WithFields(logrus.Fields{
		"competitors": competitors,
		"best_return": bestReturn,
	}).Info("No edge, nothing staked")
}

// LogAllocation logs the proportion assigned to one outcome.
func (sl *StakingLogger) LogAllocation(label string, odds, probability, proportion float64) {
	sl.WithFields(logrus.Fields{
		"label":       label,
		"odds":        odds,
		"probability": probability,
		"proportion":  proportion,
	}).Debug("Stake allocated")
}

// LogAllocationSummary logs the result of a staking run.
func (sl *StakingLogger) LogAllocationSummary(competitors, backed int, reserve, total float64) {
	sl.WithFields(logrus.Fields{
		"competitors":      competitors,
		"backed":           backed,
		"reserve_rate":     reserve,
		"total_proportion": total,
	}).Info("Stakes sized")
}
