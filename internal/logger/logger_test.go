package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestEngineLoggerLevelComputed(t *testing.T) {
	log, buf := setupTestLogger()
	engineLogger := NewEngineLogger(log)

	engineLogger.LogLevelComputed(3, 7, 0.25)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "probability", logEntry["component"])
	assert.Equal(t, float64(3), logEntry["order_level"])
	assert.Equal(t, float64(7), logEntry["competitors"])
	assert.Equal(t, "debug", logEntry["level"])
}

func TestEngineLoggerPoolTransform(t *testing.T) {
	log, buf := setupTestLogger()
	engineLogger := NewEngineLogger(log)

	engineLogger.LogPoolTransform("trio", 7, 1.0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "trio", logEntry["pool"])
	assert.Equal(t, 1.0, logEntry["total"])
}

func TestEngineLoggerValidationFailure(t *testing.T) {
	log, buf := setupTestLogger()
	engineLogger := NewEngineLogger(log)

	engineLogger.LogValidationFailure("transform", errors.New("invalid pool"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "transform", logEntry["operation"])
	assert.Equal(t, "invalid pool", logEntry["error"])
}

func TestStakingLoggerNoEdge(t *testing.T) {
	log, buf := setupTestLogger()
	stakingLogger := NewStakingLogger(log)

	stakingLogger.LogNoEdge(3, 0.95)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "staking", logEntry["component"])
	assert.Equal(t, 0.95, logEntry["best_return"])
	assert.Equal(t, "info", logEntry["level"])
}

func TestStakingLoggerAllocationSummary(t *testing.T) {
	log, buf := setupTestLogger()
	stakingLogger := NewStakingLogger(log)

	stakingLogger.LogAllocationSummary(3, 2, 0.7, 0.28)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(2), logEntry["backed"])
	assert.Equal(t, 0.28, logEntry["total_proportion"])
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	log := NewLogger("loud")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerJSONInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestNewEnvironmentLogger(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	log := NewEnvironmentLogger("warn", "production")
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewEnvironmentLogger("info", "development")
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNopLoggerDiscards(t *testing.T) {
	log := NewNopLogger()
	assert.NotPanics(t, func() {
		NewEngineLogger(log).LogPoolTransform("win", 1, 1)
	})
	assert.False(t, log.IsLevelEnabled(logrus.ErrorLevel))
}
