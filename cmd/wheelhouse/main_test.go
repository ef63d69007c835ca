package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/wheelhouse/internal/adapters/fs"
	"go.trai.ch/wheelhouse/internal/app"
	"go.trai.ch/wheelhouse/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type testApp struct {
	app       *app.App
	loader    *mocks.MockConfigLoader
	logger    *mocks.MockLogger
	telemetry *mocks.MockTelemetry
}

func newTestApp(ctrl *gomock.Controller) testApp {
	loader := mocks.NewMockConfigLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	telemetry := mocks.NewMockTelemetry(ctrl)
	application := app.New(
		loader,
		mocks.NewMockExecutor(ctrl),
		logger,
		telemetry,
		fs.NewWalker(),
		fs.NewHasher(),
	)
	return testApp{app: application, loader: loader, logger: logger, telemetry: telemetry}
}

func (a testApp) provider(cleanup func()) ComponentProvider {
	return func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a.app, Logger: a.logger}, cleanup, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newTestApp(ctrl)

	cleaned := false
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stdout, stderr, a.provider(func() { cleaned = true }))

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "wheelhouse version")
	assert.True(t, cleaned)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 and logs when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newTestApp(ctrl)

	a.loader.EXPECT().Load("missing.yaml").Return(nil, errors.New("load failed"))
	a.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.Contains(t, err.Error(), "load failed")
	})

	exitCode := run(
		context.Background(),
		[]string{"run", "--config", "missing.yaml"},
		new(bytes.Buffer),
		new(bytes.Buffer),
		a.provider(nil),
	)

	assert.Equal(t, 1, exitCode)
}

// TestProvideComponents_CleanupClosesTelemetry verifies that the cleanup closes telemetry.
func TestProvideComponents_CleanupClosesTelemetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	a := newTestApp(ctrl)

	a.telemetry.EXPECT().Close().Return(errors.New("tape closed"))
	a.logger.EXPECT().Warn("failed to close telemetry: tape closed")

	components := &app.Components{App: a.app, Logger: a.logger}
	closeComponents(components)()
}
