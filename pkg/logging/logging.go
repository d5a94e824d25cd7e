// Package logging configures structured logging for the qash binaries.
//
// Usage:
//
//	logging.Setup("info", "text")            // colored tint output on stderr
//	logging.Setup("debug", "json")           // JSON lines for log shippers
//	logging.SetupWithLevel(w, slog.LevelDebug) // explicit level, tint output to w
//
// Environment variables read by config:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
//	LOG_FORMAT: text, json (default: text)
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs and returns the default logger for the given level and
// format names. Unknown levels fall back to info, unknown formats to text.
func Setup(level, format string) *slog.Logger {
	logger := New(os.Stderr, ParseLevel(level), format)
	slog.SetDefault(logger)
	return logger
}

// SetupWithLevel installs colored logging to w at the given level. The
// command-line tools use it; the server goes through Setup.
func SetupWithLevel(w io.Writer, level slog.Level) *slog.Logger {
	logger := New(w, level, "text")
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w without touching the default logger.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}
	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
