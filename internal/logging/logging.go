// Package logging wires up the application logger from configuration.
package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/fraudlens/fraudlens/internal/config"
)

// New builds a logrus logger from the logging configuration.
// Unknown levels fall back to info; unknown formats fall back to text.
func New(cfg config.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
