// Package logging builds the process-wide structured logger. Records go
// through log/slog and are rendered by charmbracelet/log: coloured text in
// development, one JSON object per line in production.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseLevel maps a LOG_LEVEL value to a charmbracelet/log level, defaulting to info
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New returns a slog.Logger writing to w
func New(w io.Writer, level string, production bool) *slog.Logger {
	formatter := log.TextFormatter
	if production {
		formatter = log.JSONFormatter
	}

	handler := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       formatter,
		ReportTimestamp: true,
		Prefix:          "todo-be",
	})
	return slog.New(handler)
}

// Discard returns a logger that drops every record, for tests
func Discard() *slog.Logger {
	return slog.New(log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel}))
}
