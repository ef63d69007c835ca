// Package pipeline implements the mirror, reconcile, build and index stages.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pipeline runs the stages strictly in sequence. The first failure aborts
// the stage; files already written are left in place.
type Pipeline struct {
	vcs       ports.VersionControl
	builder   ports.ArtifactBuilder
	store     ports.ArtifactStore
	index     ports.IndexWriter
	telemetry ports.Telemetry
	logger    ports.Logger
	cloneDir  string
}

// New creates a Pipeline mirroring repositories below cloneDir.
func New(
	vcs ports.VersionControl,
	builder ports.ArtifactBuilder,
	store ports.ArtifactStore,
	index ports.IndexWriter,
	telemetry ports.Telemetry,
	logger ports.Logger,
	cloneDir string,
) *Pipeline {
	if cloneDir == "" {
		cloneDir = domain.CloneDirName
	}
	return &Pipeline{
		vcs:       vcs,
		builder:   builder,
		store:     store,
		index:     index,
		telemetry: telemetry,
		logger:    logger,
		cloneDir:  cloneDir,
	}
}

// Run executes all stages and returns the artifacts it published.
func (p *Pipeline) Run(ctx context.Context, repos []domain.Repository) ([]domain.Artifact, error) {
	plan, err := p.Discover(ctx, repos)
	if err != nil {
		return nil, err
	}
	if err := p.Sync(ctx, plan); err != nil {
		return nil, err
	}
	published, err := p.Build(ctx, plan)
	if err != nil {
		return published, err
	}
	return published, p.Index(ctx, plan.PackageNames())
}

// Discover creates the index layout and collects the versions already
// published for every repository.
func (p *Pipeline) Discover(_ context.Context, repos []domain.Repository) (*domain.Plan, error) {
	plan := &domain.Plan{Packages: make([]*domain.PackagePlan, 0, len(repos))}
	for _, repo := range repos {
		plan.Packages = append(plan.Packages, &domain.PackagePlan{Repository: repo})
	}

	if err := p.store.EnsureLayout(plan.PackageNames()); err != nil {
		return nil, err
	}

	for _, pp := range plan.Packages {
		names, err := p.store.List(pp.Package())
		if err != nil {
			return nil, zerr.With(err, "package", pp.Package())
		}
		existing, err := domain.ExistingVersions(pp.Package(), names)
		if err != nil {
			return nil, zerr.With(err, "package", pp.Package())
		}
		pp.Existing = existing
	}
	return plan, nil
}

// Sync updates every mirror, lists its tags and records the versions that
// still need a build. Repositories are processed one at a time, in order.
func (p *Pipeline) Sync(ctx context.Context, plan *domain.Plan) error {
	for _, pp := range plan.Packages {
		if err := p.syncOne(ctx, pp); err != nil {
			return zerr.With(err, "repository", pp.Repository.String())
		}
	}
	return nil
}

func (p *Pipeline) syncOne(ctx context.Context, pp *domain.PackagePlan) (err error) {
	ctx, vertex := p.telemetry.Record(ctx, "sync "+pp.Repository.String())
	defer func() { vertex.Complete(err) }()

	filter, err := domain.NewMinVersionFilter(pp.Repository.MinVersion)
	if err != nil {
		return err
	}

	path, err := p.vcs.Sync(ctx, pp.Repository, p.cloneDir)
	if err != nil {
		return err
	}
	pp.ClonePath = path

	tags, err := p.vcs.ListTags(ctx, path)
	if err != nil {
		return err
	}
	kept, skipped := filter.Apply(tags)
	if len(skipped) > 0 {
		p.logger.Warn(fmt.Sprintf("%s: ignoring tags that are not versions: %s",
			pp.Package(), strings.Join(skipped, ", ")))
	}
	pp.Tags = kept
	pp.Needed = domain.Reconcile(pp.Existing, kept)

	vertex.Log(domain.LogLevelInfo, fmt.Sprintf("%d tags, %d to build", len(pp.Tags), len(pp.Needed)))
	if len(pp.Needed) == 0 {
		vertex.Cached()
	}
	return nil
}

// Build checks out, builds and publishes every needed version in order.
// It returns the artifacts published before any failure.
func (p *Pipeline) Build(ctx context.Context, plan *domain.Plan) ([]domain.Artifact, error) {
	published := make([]domain.Artifact, 0, plan.NeededCount())
	for _, pp := range plan.Packages {
		for _, tag := range pp.Needed {
			artifact, err := p.buildOne(ctx, pp, tag)
			if err != nil {
				err = zerr.With(zerr.With(err, "package", pp.Package()), "version", tag)
				return published, zerr.With(err, "repository", pp.Repository.String())
			}
			published = append(published, artifact)
			p.logger.Info(fmt.Sprintf("published %s", artifact.Filename))
		}
	}
	return published, nil
}

func (p *Pipeline) buildOne(ctx context.Context, pp *domain.PackagePlan, tag string) (_ domain.Artifact, err error) {
	ctx, vertex := p.telemetry.Record(ctx, "build "+pp.Package()+" "+tag)
	defer func() { vertex.Complete(err) }()

	if err := p.vcs.Checkout(ctx, pp.ClonePath, tag); err != nil {
		return domain.Artifact{}, err
	}
	path, err := p.builder.BuildArtifact(ctx, pp.ClonePath, pp.Package(), tag)
	if err != nil {
		return domain.Artifact{}, err
	}
	return p.store.Publish(pp.Package(), path)
}

// Index regenerates the root page and the page of every package.
func (p *Pipeline) Index(ctx context.Context, packages []string) (err error) {
	_, vertex := p.telemetry.Record(ctx, "index")
	defer func() { vertex.Complete(err) }()

	if err := p.store.EnsureLayout(packages); err != nil {
		return err
	}
	return p.index.WriteIndex(packages)
}
