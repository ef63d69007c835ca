package telemetry

import (
	"context"
	"errors"
	"io"

	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
)

// Multi fans every recording out to several telemetry backends.
type Multi struct {
	backends []ports.Telemetry
}

// NewMulti creates a Multi over backends.
func NewMulti(backends ...ports.Telemetry) *Multi {
	return &Multi{backends: backends}
}

// Record starts a vertex named name on every backend.
func (m *Multi) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	vertices := make(multiVertex, 0, len(m.backends))
	for _, b := range m.backends {
		var v ports.Vertex
		ctx, v = b.Record(ctx, name)
		vertices = append(vertices, v)
	}
	return ports.ContextWithVertex(ctx, vertices), vertices
}

// Close closes every backend and joins their errors.
func (m *Multi) Close() error {
	var errs []error
	for _, b := range m.backends {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type multiVertex []ports.Vertex

func (mv multiVertex) Stdout() io.Writer {
	w := make([]io.Writer, len(mv))
	for i, v := range mv {
		w[i] = v.Stdout()
	}
	return io.MultiWriter(w...)
}

func (mv multiVertex) Stderr() io.Writer {
	w := make([]io.Writer, len(mv))
	for i, v := range mv {
		w[i] = v.Stderr()
	}
	return io.MultiWriter(w...)
}

func (mv multiVertex) Log(level domain.LogLevel, msg string) {
	for _, v := range mv {
		v.Log(level, msg)
	}
}

func (mv multiVertex) Complete(err error) {
	for _, v := range mv {
		v.Complete(err)
	}
}

func (mv multiVertex) Cached() {
	for _, v := range mv {
		v.Cached()
	}
}
