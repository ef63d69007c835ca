package logger

import (
	"io"
	"log/slog"
)

// NewConsoleHandler exposes the console handler at the given level.
func NewConsoleHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return newConsoleHandler(w, level)
}

var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
