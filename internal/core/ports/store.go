package ports

import "go.trai.ch/wheelhouse/internal/core/domain"

// ArtifactStore manages the published artifacts of the package index.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// EnsureLayout creates the index root and one directory per package.
	EnsureLayout(packages []string) error

	// List returns the artifact filenames in the directory of pkg, sorted by name.
	List(pkg string) ([]string, error)

	// Publish copies the artifact at srcPath into the directory of pkg.
	Publish(pkg, srcPath string) (domain.Artifact, error)
}
