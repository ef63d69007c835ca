// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"sync"

	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Run executes cmd. Output goes to the vertex stored in ctx when there is
// one, otherwise line by line to the logger.
func (e *Executor) Run(ctx context.Context, cmd ports.Command) error {
	stdout, stderr, flush := e.sinks(ctx)
	c := e.command(ctx, cmd)
	c.Stdout = tee(stdout, cmd.Stdout)
	c.Stderr = tee(stderr, cmd.Stderr)

	err := c.Run()
	flush()
	if err != nil {
		return commandError(err, cmd, "")
	}
	return nil
}

// Output executes cmd and returns its standard output. Standard error is
// forwarded like in Run and attached to the returned error.
func (e *Executor) Output(ctx context.Context, cmd ports.Command) (string, error) {
	_, stderr, flush := e.sinks(ctx)
	var out, errBuf bytes.Buffer
	c := e.command(ctx, cmd)
	c.Stdout = tee(&out, cmd.Stdout)
	c.Stderr = tee(io.MultiWriter(stderr, &errBuf), cmd.Stderr)

	err := c.Run()
	flush()
	if err != nil {
		return "", commandError(err, cmd, errBuf.String())
	}
	return out.String(), nil
}

func (e *Executor) command(ctx context.Context, cmd ports.Command) *exec.Cmd {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...) //nolint:gosec // commands come from configuration
	c.Dir = cmd.Dir
	return c
}

func (e *Executor) sinks(ctx context.Context) (stdout, stderr io.Writer, flush func()) {
	if v, ok := ports.VertexFromContext(ctx); ok {
		return v.Stdout(), v.Stderr(), func() {}
	}
	if e.logger == nil {
		return io.Discard, io.Discard, func() {}
	}
	out := &logWriter{log: e.logger.Info}
	errOut := &logWriter{log: e.logger.Warn}
	return out, errOut, func() {
		out.Flush()
		errOut.Flush()
	}
}

func tee(primary, extra io.Writer) io.Writer {
	if extra == nil {
		return primary
	}
	return io.MultiWriter(primary, extra)
}

func commandError(err error, cmd ports.Command, stderr string) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	wrapped := zerr.With(zerr.Wrap(err, domain.ErrCommandFailed.Error()), "exit_code", exitCode)
	wrapped = zerr.With(wrapped, "command", strings.Join(append([]string{cmd.Name}, cmd.Args...), " "))
	if cmd.Dir != "" {
		wrapped = zerr.With(wrapped, "dir", cmd.Dir)
	}
	if s := strings.TrimSpace(stderr); s != "" {
		wrapped = zerr.With(wrapped, "stderr", s)
	}
	return wrapped
}

// logWriter forwards complete lines to a log function, buffering partial
// writes until a newline arrives or Flush is called.
type logWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	log func(string)
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line, keep it for the next write.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(line)
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

func (w *logWriter) emit(line string) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	w.log(line)
}

var _ ports.Executor = (*Executor)(nil)
