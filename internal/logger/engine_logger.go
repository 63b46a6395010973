// Package logger provides probability engine logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// EngineLogger provides dedicated logging for the probability engine.
type EngineLogger struct {
	*logrus.Entry
}

// NewEngineLogger creates a new engine logger.
func NewEngineLogger(baseLogger *logrus.Logger) *EngineLogger {
	return &EngineLogger{
		Entry: baseLogger.WithField("component", "probability"),
	}
}

// LogLevelComputed logs the one-time construction of an order tensor.
func (el *EngineLogger) LogLevelComputed(level, competitors int, durationMs float64) {
	el.WithFields(logrus.Fields{
		"order_level": level,
		"competitors": competitors,
		"duration_ms": durationMs,
	}).Debug("Order level computed")
}

// LogPoolTransform logs a pool query.
func (el *EngineLogger) LogPoolTransform(pool string, competitors int, total float64) {
	el.WithFields(logrus.Fields{
		"pool":        pool,
		"competitors": competitors,
		"total":       total,
	}).Debug("Pool probabilities computed")
}

// LogValidationFailure logs rejected input.
func (el *EngineLogger) LogValidationFailure(operation string, err error) {
	el.WithFields(logrus.Fields{
		"operation": operation,
	}).WithError(err).Debug("Input rejected")
}
