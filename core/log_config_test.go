package core

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func initLogging() {
	logLevel := os.Getenv("BALLTREE_LOG")
	switch logLevel {
	case "off":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "full":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func loggingLevel() zerolog.Level {
	return zerolog.GlobalLevel()
}

func TestLoggingDisabled(t *testing.T) {
	os.Setenv("BALLTREE_LOG", "off")
	defer os.Unsetenv("BALLTREE_LOG")
	initLogging()
	if loggingLevel() != zerolog.Disabled {
		t.Errorf("expected logging level to be Disabled, got %v", loggingLevel())
	}
}

func TestLoggingDebug(t *testing.T) {
	os.Setenv("BALLTREE_LOG", "full")
	defer os.Unsetenv("BALLTREE_LOG")
	initLogging()
	if loggingLevel() != zerolog.DebugLevel {
		t.Errorf("expected logging level to be Debug, got %v", loggingLevel())
	}
}

func TestLoggingDefault(t *testing.T) {
	os.Unsetenv("BALLTREE_LOG")
	initLogging()
	if loggingLevel() != zerolog.InfoLevel {
		t.Errorf("expected logging level to be Info by default, got %v", loggingLevel())
	}
}
