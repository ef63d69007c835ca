// Package config provides the configuration loader for wheelhouse.
package config

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path. A missing file yields the default
// configuration with no repositories.
func (l *Loader) Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		if l.Logger != nil {
			l.Logger.Warn("config file " + path + " not found, nothing to mirror")
		}
		return domain.DefaultConfig(), nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML configuration document.
func Parse(data []byte) (*domain.Config, error) {
	var file Wheelhouse
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	cfg := domain.DefaultConfig()
	if file.CloneDir != "" {
		cfg.CloneDir = file.CloneDir
	}
	if file.OutputDir != "" {
		cfg.OutputDir = file.OutputDir
	}
	if file.Remote != "" {
		cfg.Remote = file.Remote
	}
	if file.Branch != "" {
		cfg.Branch = file.Branch
	}
	if len(file.BuildCommand) > 0 {
		cfg.BuildCommand = file.BuildCommand
	}

	seen := make(map[string]string, len(file.Repos))
	for _, dto := range file.Repos {
		repo, err := domain.ParseRepository(dto.Repo)
		if err != nil {
			return nil, err
		}
		if _, err := domain.NewMinVersionFilter(dto.MinVersion); err != nil {
			return nil, zerr.With(err, "repository", dto.Repo)
		}
		repo.MinVersion = dto.MinVersion

		pkg := repo.PackageName()
		if prev, ok := seen[pkg]; ok {
			return nil, zerr.With(zerr.With(domain.ErrDuplicatePackage, "package", pkg), "repositories", prev+", "+dto.Repo)
		}
		seen[pkg] = dto.Repo
		cfg.Repositories = append(cfg.Repositories, repo)
	}

	return cfg, nil
}

var _ ports.ConfigLoader = (*Loader)(nil)
