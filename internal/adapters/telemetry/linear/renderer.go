// Package linear renders telemetry as prefixed, chronological console lines.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/wheelhouse/internal/ui/output"
	"go.trai.ch/wheelhouse/internal/ui/style"
)

// Renderer implements ports.Telemetry by writing one line per event.
type Renderer struct {
	mu  sync.Mutex
	out *termenv.Output
	w   io.Writer
	now func() time.Time
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

// NewRenderer creates a Renderer writing to w, or stderr when w is nil.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	r := &Renderer{out: output.New(w), w: w, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record prints the start of a unit of work.
func (r *Renderer) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	v := &vertex{r: r, name: name, start: r.now()}
	v.stdout = &lineWriter{emit: v.line}
	v.stderr = &lineWriter{emit: v.line}
	r.printf("%s %s\n", r.tag(name), "Starting...")
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing; lines are written as they complete.
func (r *Renderer) Close() error {
	return nil
}

func (r *Renderer) tag(name string) string {
	return r.out.String("[" + name + "]").Faint().String()
}

func (r *Renderer) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.w, format, args...)
}

type vertex struct {
	r      *Renderer
	name   string
	start  time.Time
	stdout *lineWriter
	stderr *lineWriter
	once   sync.Once
	cached atomic.Bool
}

func (v *vertex) Stdout() io.Writer { return v.stdout }

func (v *vertex) Stderr() io.Writer { return v.stderr }

func (v *vertex) Log(level domain.LogLevel, msg string) {
	if level < domain.LogLevelInfo {
		return
	}
	v.line(msg)
}

func (v *vertex) Complete(err error) {
	v.once.Do(func() {
		v.stdout.Flush()
		v.stderr.Flush()
		elapsed := v.r.now().Sub(v.start).Round(time.Millisecond)
		if err != nil {
			symbol := v.r.out.String(style.Cross).Foreground(v.r.out.Color(string(style.Red))).String()
			v.r.printf("%s %s Failed after %v: %v\n", v.r.tag(v.name), symbol, elapsed, err)
			return
		}
		if v.cached.Load() {
			return
		}
		symbol := v.r.out.String(style.Check).Foreground(v.r.out.Color(string(style.Green))).String()
		v.r.printf("%s %s Completed in %v\n", v.r.tag(v.name), symbol, elapsed)
	})
}

// Cached replaces the completion line of a successful vertex.
func (v *vertex) Cached() {
	v.cached.Store(true)
	v.r.printf("%s %s Up to date\n", v.r.tag(v.name), style.Tilde)
}

func (v *vertex) line(text string) {
	v.r.printf("%s %s\n", v.r.tag(v.name), text)
}

// lineWriter buffers writes and emits complete lines.
type lineWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimSuffix(w.buf.Next(i+1)[:i], []byte("\r")))
		w.emit(line)
	}
	return len(p), nil
}

func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

var _ ports.Telemetry = (*Renderer)(nil)
