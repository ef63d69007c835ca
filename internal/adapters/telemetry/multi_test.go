package telemetry_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wheelhouse/internal/adapters/telemetry"
	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/wheelhouse/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestMulti_FansOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	first := mocks.NewMockTelemetry(ctrl)
	second := mocks.NewMockTelemetry(ctrl)
	v1 := mocks.NewMockVertex(ctrl)
	v2 := mocks.NewMockVertex(ctrl)

	var out1, out2 bytes.Buffer
	ctx := context.Background()
	first.EXPECT().Record(ctx, "build foo v1.0.0").Return(ctx, v1)
	second.EXPECT().Record(ctx, "build foo v1.0.0").Return(ctx, v2)
	v1.EXPECT().Stdout().Return(&out1)
	v2.EXPECT().Stdout().Return(&out2)
	v1.EXPECT().Log(domain.LogLevelInfo, "hello")
	v2.EXPECT().Log(domain.LogLevelInfo, "hello")
	v1.EXPECT().Complete(nil)
	v2.EXPECT().Complete(nil)
	first.EXPECT().Close().Return(nil)
	second.EXPECT().Close().Return(errors.New("flush failed"))

	multi := telemetry.NewMulti(first, second)
	gotCtx, v := multi.Record(ctx, "build foo v1.0.0")

	fromCtx, ok := ports.VertexFromContext(gotCtx)
	require.True(t, ok)
	assert.Equal(t, v, fromCtx)

	_, err := v.Stdout().Write([]byte("line\n"))
	require.NoError(t, err)
	v.Log(domain.LogLevelInfo, "hello")
	v.Complete(nil)

	assert.Equal(t, "line\n", out1.String())
	assert.Equal(t, "line\n", out2.String())
	assert.EqualError(t, multi.Close(), "flush failed")
}

func TestNoop(t *testing.T) {
	n := telemetry.NewNoop()
	ctx, v := n.Record(context.Background(), "sync acme/foo")

	_, ok := ports.VertexFromContext(ctx)
	assert.True(t, ok)

	_, err := v.Stdout().Write([]byte("ignored"))
	require.NoError(t, err)
	v.Cached()
	v.Complete(errors.New("ignored"))
	assert.NoError(t, n.Close())
}
