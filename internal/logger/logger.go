package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Levels are emitted as "severity" so Cloud
// Logging picks them up; LOG_LEVEL overrides the default debug level.
func New() zerolog.Logger {
	zerolog.LevelFieldName = "severity"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stderr).With().Timestamp().Str("app", "learnhub").Logger()
	if os.Getenv("ENV") == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	level := zerolog.DebugLevel
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	return logger.Level(level)
}

// Nop returns a logger that discards everything, for tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
