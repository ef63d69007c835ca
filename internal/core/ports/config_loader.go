// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/wheelhouse/internal/core/domain"

// ConfigLoader defines the interface for loading the run configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path.
	// A missing file yields the default configuration.
	Load(path string) (*domain.Config, error)
}
