// Package app implements the application layer for wheelhouse.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/wheelhouse/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/adapters/git"                //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/adapters/index"              //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/adapters/python"             //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/wheelhouse/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	telemetry    ports.Telemetry
	walker       *fs.Walker
	hasher       *fs.Hasher
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	telemetry ports.Telemetry,
	walker *fs.Walker,
	hasher *fs.Hasher,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		telemetry:    telemetry,
		walker:       walker,
		hasher:       hasher,
	}
}

// RunOptions configuration for the App methods.
type RunOptions struct {
	// ConfigPath is the YAML configuration file.
	ConfigPath string
}

func (o RunOptions) configPath() string {
	if o.ConfigPath == "" {
		return domain.ConfigFileName
	}
	return o.ConfigPath
}

// Run mirrors every configured repository, builds the missing versions and
// regenerates the index.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	p, done, err := a.newPipeline(cfg)
	if err != nil {
		return err
	}
	defer done()

	published, err := p.Run(ctx, cfg.Repositories)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRunFailed.Error()), "published", len(published))
	}

	a.logger.Info(fmt.Sprintf("published %d new artifact(s) for %d package(s)", len(published), len(cfg.Repositories)))
	return nil
}

// Plan mirrors every configured repository and reports the versions that
// need a build, without building them.
func (a *App) Plan(ctx context.Context, opts RunOptions) (*domain.Plan, error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return nil, err
	}

	p, done, err := a.newPipeline(cfg)
	if err != nil {
		return nil, err
	}
	defer done()

	plan, err := p.Discover(ctx, cfg.Repositories)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrRunFailed.Error())
	}
	if err := p.Sync(ctx, plan); err != nil {
		return nil, zerr.Wrap(err, domain.ErrRunFailed.Error())
	}
	return plan, nil
}

// Index regenerates the index pages from the artifacts on disk.
func (a *App) Index(ctx context.Context, opts RunOptions) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	p, done, err := a.newPipeline(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := p.Index(ctx, cfg.PackageNames()); err != nil {
		return zerr.Wrap(err, domain.ErrRunFailed.Error())
	}
	return nil
}

// Close closes the console telemetry.
func (a *App) Close() error {
	return a.telemetry.Close()
}

func (a *App) loadConfig(opts RunOptions) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.configPath())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// newPipeline builds the pipeline for cfg. Progress goes to the console
// telemetry and to a progrock journal below the clone directory; the
// returned func closes the journal.
func (a *App) newPipeline(cfg *domain.Config) (*pipeline.Pipeline, func(), error) {
	journal, err := progrock.OpenJournal(domain.JournalPath(cfg.CloneDir))
	if err != nil {
		return nil, nil, err
	}
	recorder := progrock.NewRecorder(journal)
	done := func() {
		if err := recorder.Close(); err != nil {
			a.logger.Warn("failed to close progress journal: " + err.Error())
		}
	}

	store := fs.NewStore(cfg.OutputDir, a.walker, a.hasher)
	p := pipeline.New(
		git.NewClient(a.executor, cfg.Remote, cfg.Branch),
		python.NewBuilder(a.executor, cfg.BuildCommand),
		store,
		index.NewWriter(cfg.OutputDir, store),
		telemetry.NewMulti(a.telemetry, recorder),
		a.logger,
		cfg.CloneDir,
	)
	return p, done, nil
}
