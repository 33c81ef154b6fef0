// Package logging builds the structured loggers used by bouncesim. It wraps
// log/slog with a level taken from the BOUNCESIM_LOG_LEVEL environment
// variable.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel is the environment variable that selects the log level.
// Valid levels: DEBUG, INFO, WARN, ERROR. Defaults to INFO.
const EnvLevel = "BOUNCESIM_LOG_LEVEL"

// New returns a text logger writing to w at the level from the environment.
func New(w io.Writer) *slog.Logger {
	return NewWithLevel(w, LevelFromEnv())
}

func NewWithLevel(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// Stderr is New(os.Stderr).
func Stderr() *slog.Logger {
	return New(os.Stderr)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// LevelFromEnv parses EnvLevel.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(EnvLevel))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
