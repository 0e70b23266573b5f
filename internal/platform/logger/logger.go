package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// New returns a structured logger writing to stdout with the given level and
// format. level: "debug", "info", "warn", "error" (default "info").
// format: "json" or "text" (default "json").
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stdout, level, format)
}

// NewWithWriter is New with an explicit output destination.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	lvl, ok := levels[strings.ToLower(level)]
	if !ok {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	if strings.ToLower(format) == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	return slog.New(h)
}
