package logging

import (
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/fraudlens/fraudlens/internal/config"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"bogus", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}
	for _, c := range cases {
		logger := New(config.LoggingConfig{Level: c.level, Format: "text"})
		if logger.GetLevel() != c.want {
			t.Errorf("level %q: got %v, want %v", c.level, logger.GetLevel(), c.want)
		}
	}
}

func TestNewFormats(t *testing.T) {
	logger := New(config.LoggingConfig{Level: "info", Format: "json"})
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("format json: got %T", logger.Formatter)
	}

	logger = New(config.LoggingConfig{Level: "info", Format: "text"})
	if _, ok := logger.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("format text: got %T", logger.Formatter)
	}

	logger = New(config.LoggingConfig{Level: "info", Format: "unknown"})
	if _, ok := logger.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("unknown format should fall back to text, got %T", logger.Formatter)
	}
}
