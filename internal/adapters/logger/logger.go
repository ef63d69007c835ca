// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/wheelhouse/internal/core/ports"
)

// messager is satisfied by zerr errors, which report their own message
// without the wrapped chain.
type messager interface {
	Message() string
}

// metadater is satisfied by zerr errors carrying key/value metadata.
type metadater interface {
	Metadata() map[string]any
}

// ErrorEntry is one level of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates a new Logger writing to stderr.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a new Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{logger: slog.New(newHandler(w))}
}

func newHandler(w io.Writer) slog.Handler {
	return newConsoleHandler(w, slog.LevelInfo)
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(newHandler(w))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err with its chain of causes and their metadata.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// collectErrorEntries walks the chain of zerr errors. The first error that is
// not a zerr error ends the walk with its full message.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}
		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadater); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}
	return entries
}

func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			lines = appendIndented(lines, "       ", msgLines[1:], entry.Metadata)
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		lines = appendIndented(lines, "      ", msgLines[1:], entry.Metadata)
	}
	return strings.Join(lines, "\n")
}

func appendIndented(lines []string, indent string, rest []string, metadata map[string]any) []string {
	for _, line := range rest {
		lines = append(lines, indent+line)
	}
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, metadata[k]))
	}
	return lines
}

var _ ports.Logger = (*Logger)(nil)
