// Package logging builds the slog loggers used across mccabre. Diagnostics go
// to stderr; command output never passes through a logger.
package logging

import (
	"io"
	"log/slog"
)

// LevelSilent is above every standard level and disables all records.
const LevelSilent = slog.Level(100)

// NewLogger creates a text logger writing to w at the given level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: LevelSilent}))
}

// LevelFromVerbosity maps CLI flags to a level: warn by default, debug with
// verbose, silent with quiet. Quiet wins over verbose.
func LevelFromVerbosity(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return LevelSilent
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
