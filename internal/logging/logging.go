// Package logging builds the slog logger shared by the CLI and the trace registry.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New returns a logger writing to w. jsonOutput selects the JSON handler,
// used when traces are emitted as NDJSON so both streams stay machine-readable.
func New(w io.Writer, jsonOutput bool, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init creates the logger and installs it as the slog default.
func Init(w io.Writer, jsonOutput bool, level slog.Level) *slog.Logger {
	logger := New(w, jsonOutput, level)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelWarn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
