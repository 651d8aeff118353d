package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ChicagoDave/citycore/pkg/config"
)

// newLogger builds the process logger from the log section of the config.
func newLogger(w io.Writer, def config.LogDef) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(def.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if def.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
