// Package python builds wheels from a checked-out source tree.
package python

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder implements ports.ArtifactBuilder by running a wheel build command
// in the repository root.
type Builder struct {
	exec    ports.Executor
	command []string
}

// NewBuilder creates a Builder running command. An empty command falls back
// to domain.DefaultBuildCommand.
func NewBuilder(exec ports.Executor, command []string) *Builder {
	if len(command) == 0 {
		command = domain.DefaultBuildCommand()
	}
	return &Builder{exec: exec, command: command}
}

// BuildArtifact builds pkg at tag from the tree at repoPath and returns the
// path of the produced wheel.
func (b *Builder) BuildArtifact(ctx context.Context, repoPath, pkg, tag string) (string, error) {
	for _, dir := range []string{domain.DistDirName, domain.BuildDirName} {
		if err := os.RemoveAll(filepath.Join(repoPath, dir)); err != nil {
			return "", b.buildError(err, repoPath, tag)
		}
	}

	err := b.exec.Run(ctx, ports.Command{
		Name: b.command[0],
		Args: b.command[1:],
		Dir:  repoPath,
	})
	if err != nil {
		return "", b.buildError(err, repoPath, tag)
	}

	path := filepath.Join(repoPath, domain.DistDirName, domain.ArtifactFileName(pkg, tag))
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", zerr.With(zerr.With(domain.ErrArtifactNotFound, "path", path), "version", tag)
		}
		return "", b.buildError(err, repoPath, tag)
	}
	return path, nil
}

func (b *Builder) buildError(err error, repoPath, tag string) error {
	wrapped := zerr.With(zerr.Wrap(err, domain.ErrArtifactBuildFailed.Error()), "path", repoPath)
	return zerr.With(wrapped, "version", tag)
}

var _ ports.ArtifactBuilder = (*Builder)(nil)
