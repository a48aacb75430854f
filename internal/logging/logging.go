// Package logging installs the process-wide slog logger from the
// configured format and level strings.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init builds and sets the default slog logger. Handlers write to
// stderr so report output on stdout stays clean. Unrecognized format
// or level strings fall back to text at info, with a warning emitted
// through the freshly installed logger.
func Init(format, level string) {
	lvl, levelOK := parseLevel(level)

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	formatOK := true
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "", "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		formatOK = false
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	if !levelOK {
		slog.Warn("unknown log level, using info", "level", level)
	}
	if !formatOK {
		slog.Warn("unknown log format, using text", "format", format)
	}
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
