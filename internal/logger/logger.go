// Package logger configures the zerolog logger used across the service.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON to stdout. In non-production
// environments output is switched to the human-readable console writer
// and the level lowered to debug.
func New(appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	out := zerolog.New(os.Stdout)

	if appEnv != "production" {
		level = zerolog.DebugLevel
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	return out.Level(level).With().Timestamp().Logger()
}
