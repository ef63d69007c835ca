package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/wheelhouse/internal/ui/output"
	"go.trai.ch/wheelhouse/internal/ui/style"
)

type levelStyle struct {
	icon  string
	color lipgloss.Color
}

var levelStyles = map[slog.Level]levelStyle{
	slog.LevelWarn:  {icon: style.Warning, color: style.Yellow},
	slog.LevelError: {icon: style.Cross, color: style.Red},
}

// consoleHandler writes each record as one colored line, icon first.
// Attributes from WithAttrs are rendered once and kept as text.
type consoleHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	keys   string
	preset string
}

func newConsoleHandler(w io.Writer, level slog.Leveler) *consoleHandler {
	return &consoleHandler{out: output.New(w), level: level}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	ls, ok := levelStyles[r.Level]
	if !ok {
		ls = levelStyle{color: style.Slate}
	}

	var b strings.Builder
	if ls.icon != "" {
		b.WriteString(ls.icon + " ")
	}
	b.WriteString(r.Message)
	b.WriteString(h.preset)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.keys, a)
		return true
	})

	line := h.out.String(b.String()).Foreground(h.out.Color(string(ls.color)))
	_, err := h.out.WriteString(line.String() + "\n")
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(h.preset)
	for _, a := range attrs {
		writeAttr(&b, h.keys, a)
	}
	next := *h
	next.preset = b.String()
	return &next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.keys = h.keys + name + "."
	return &next
}

// writeAttr appends " key=value", flattening group values into dotted keys.
func writeAttr(b *strings.Builder, keys string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		prefix := keys
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range v.Group() {
			writeAttr(b, prefix, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	b.WriteString(" " + keys + a.Key + "=" + v.String())
}
