package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wheelhouse/internal/adapters/fs"
	"go.trai.ch/wheelhouse/internal/adapters/telemetry"
	"go.trai.ch/wheelhouse/internal/app"
	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/wheelhouse/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader   *mocks.MockConfigLoader
	executor *mocks.MockExecutor
	logger   *mocks.MockLogger
	app      *app.App
	cfg      *domain.Config
	opts     app.RunOptions
}

func newFixture(t *testing.T, repos ...domain.Repository) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	tmp := t.TempDir()

	cfg := domain.DefaultConfig()
	cfg.Repositories = repos
	cfg.OutputDir = filepath.Join(tmp, domain.IndexDirName)
	cfg.CloneDir = filepath.Join(tmp, domain.CloneDirName)

	f := &fixture{
		loader:   mocks.NewMockConfigLoader(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		cfg:      cfg,
		opts:     app.RunOptions{ConfigPath: filepath.Join(tmp, "config.yaml")},
	}
	f.app = app.New(f.loader, f.executor, f.logger, telemetry.NewNoop(), fs.NewWalker(), fs.NewHasher())
	f.loader.EXPECT().Load(f.opts.ConfigPath).Return(cfg, nil).AnyTimes()
	return f
}

func isCommand(args ...string) gomock.Matcher {
	return gomock.Cond(func(cmd ports.Command) bool {
		if len(cmd.Args) < len(args) {
			return false
		}
		for i, a := range args {
			if cmd.Args[i] != a {
				return false
			}
		}
		return true
	})
}

func publishExisting(t *testing.T, cfg *domain.Config, pkg, filename string) {
	t.Helper()
	dir := filepath.Join(cfg.OutputDir, pkg)
	require.NoError(t, os.MkdirAll(dir, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte("wheel"), domain.FilePerm))
}

func TestApp_Run_EmptyConfigWritesRootIndex(t *testing.T) {
	f := newFixture(t)
	f.logger.EXPECT().Info("published 0 new artifact(s) for 0 package(s)")

	require.NoError(t, f.app.Run(context.Background(), f.opts))

	data, err := os.ReadFile(filepath.Join(f.cfg.OutputDir, domain.IndexFileName))
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html>\n<html>\n  <body>\n  </body>\n</html>", string(data))

	journal, err := os.ReadFile(domain.JournalPath(f.cfg.CloneDir))
	require.NoError(t, err)
	assert.Contains(t, string(journal), `"index"`)
}

func TestApp_Run_JournalOpenFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.cfg.CloneDir, []byte("not a directory"), domain.FilePerm))

	err := f.app.Run(context.Background(), f.opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrJournalOpenFailed.Error())
}

func TestApp_Run_BuildsMissingVersions(t *testing.T) {
	bar := domain.Repository{Owner: "acme", Name: "bar"}
	f := newFixture(t, bar)
	publishExisting(t, f.cfg, "bar", "bar-0.9.0-py3-none-any.whl")
	clonePath := domain.ClonePath(f.cfg.CloneDir, "bar")

	gomock.InOrder(
		f.executor.EXPECT().Run(gomock.Any(), isCommand("clone")).Return(nil),
		f.executor.EXPECT().Output(gomock.Any(), isCommand("tag")).Return("0.9.0\n1.0.0\n", nil),
		f.executor.EXPECT().Run(gomock.Any(), isCommand("checkout", "1.0.0")).Return(nil),
		f.executor.EXPECT().Run(gomock.Any(), isCommand("-m", "build")).
			DoAndReturn(func(_ context.Context, cmd ports.Command) error {
				assert.Equal(t, clonePath, cmd.Dir)
				dist := filepath.Join(cmd.Dir, domain.DistDirName)
				require.NoError(t, os.MkdirAll(dist, domain.DirPerm))
				return os.WriteFile(filepath.Join(dist, "bar-1.0.0-py3-none-any.whl"), []byte("new"), domain.FilePerm)
			}),
	)
	f.logger.EXPECT().Info("published bar-1.0.0-py3-none-any.whl")
	f.logger.EXPECT().Info("published 1 new artifact(s) for 1 package(s)")

	require.NoError(t, f.app.Run(context.Background(), f.opts))

	assert.FileExists(t, filepath.Join(f.cfg.OutputDir, "bar", "bar-1.0.0-py3-none-any.whl"))
	page, err := os.ReadFile(filepath.Join(f.cfg.OutputDir, "bar", domain.IndexFileName))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<a href="bar-0.9.0-py3-none-any.whl">v0.9.0</a><br>`)
	assert.Contains(t, string(page), `<a href="bar-1.0.0-py3-none-any.whl">v1.0.0</a><br>`)

	journal, err := os.ReadFile(domain.JournalPath(f.cfg.CloneDir))
	require.NoError(t, err)
	assert.Contains(t, string(journal), "sync acme/bar")
	assert.Contains(t, string(journal), "build bar 1.0.0")
}

func TestApp_Run_CommandFailure(t *testing.T) {
	bar := domain.Repository{Owner: "acme", Name: "bar"}
	f := newFixture(t, bar)

	f.executor.EXPECT().Run(gomock.Any(), isCommand("clone")).Return(errors.New("permission denied"))

	err := f.app.Run(context.Background(), f.opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrRunFailed.Error())
	assert.Contains(t, err.Error(), "permission denied")
}

func TestApp_Plan(t *testing.T) {
	bar := domain.Repository{Owner: "acme", Name: "bar"}
	f := newFixture(t, bar)
	publishExisting(t, f.cfg, "bar", "bar-1.0.0-py3-none-any.whl")

	f.executor.EXPECT().Run(gomock.Any(), isCommand("clone")).Return(nil)
	f.executor.EXPECT().Output(gomock.Any(), isCommand("tag")).Return("v1.0.0\nv1.1.0\n", nil)

	plan, err := f.app.Plan(context.Background(), f.opts)
	require.NoError(t, err)
	require.Len(t, plan.Packages, 1)
	assert.Equal(t, []string{"v1.1.0"}, plan.Packages[0].Needed)
	assert.NoFileExists(t, filepath.Join(f.cfg.OutputDir, domain.IndexFileName))
}

func TestApp_Index(t *testing.T) {
	f := newFixture(t,
		domain.Repository{Owner: "acme", Name: "bar"},
		domain.Repository{Owner: "acme", Name: "foo"},
	)
	publishExisting(t, f.cfg, "foo", "foo-2.0.0-py3-none-any.whl")

	require.NoError(t, f.app.Index(context.Background(), f.opts))

	root, err := os.ReadFile(filepath.Join(f.cfg.OutputDir, domain.IndexFileName))
	require.NoError(t, err)
	assert.Contains(t, string(root), "<a href=\"bar/\">bar</a><br>\n    <a href=\"foo/\">foo</a><br>")
	assert.FileExists(t, filepath.Join(f.cfg.OutputDir, "bar", domain.IndexFileName))

	page, err := os.ReadFile(filepath.Join(f.cfg.OutputDir, "foo", domain.IndexFileName))
	require.NoError(t, err)
	assert.Contains(t, string(page), `<a href="foo-2.0.0-py3-none-any.whl">v2.0.0</a><br>`)
}

func TestApp_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	a := app.New(loader, mocks.NewMockExecutor(ctrl), mocks.NewMockLogger(ctrl), telemetry.NewNoop(), fs.NewWalker(), fs.NewHasher())

	loader.EXPECT().Load(domain.ConfigFileName).Return(nil, errors.New("boom")).Times(3)

	ctx := context.Background()
	for _, err := range []error{
		a.Run(ctx, app.RunOptions{}),
		a.Index(ctx, app.RunOptions{}),
		func() error { _, err := a.Plan(ctx, app.RunOptions{}); return err }(),
	} {
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load configuration")
	}
}

func TestApp_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	tel := mocks.NewMockTelemetry(ctrl)
	a := app.New(nil, nil, nil, tel, nil, nil)

	tel.EXPECT().Close().Return(nil)
	assert.NoError(t, a.Close())
}
