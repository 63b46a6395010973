// Package logger provides a wrapper around logrus for structured logging.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a new configured logger instance, taking the environment from
// the ENVIRONMENT variable.
func NewLogger(logLevel string) *logrus.Logger {
	return NewEnvironmentLogger(logLevel, os.Getenv("ENVIRONMENT"))
}

// NewEnvironmentLogger creates a logger for an explicit environment name.
func NewEnvironmentLogger(logLevel, environment string) *logrus.Logger {
	logger := logrus.New()

	// Diagnostics go to stderr so stdout stays clean for command output
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s', defaulting to info", logLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Use JSON formatter for structured logging in production
	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

// NewNopLogger returns a logger that discards everything, for tests and library callers
// that do not want output.
func NewNopLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}
