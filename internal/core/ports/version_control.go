package ports

import (
	"context"

	"go.trai.ch/wheelhouse/internal/core/domain"
)

// VersionControl mirrors repositories and exposes their tags.
//
//go:generate go run go.uber.org/mock/mockgen -source=version_control.go -destination=mocks/mock_version_control.go -package=mocks
type VersionControl interface {
	// Sync clones repo below cloneDir, or updates the existing mirror.
	// It returns the path of the local mirror.
	Sync(ctx context.Context, repo domain.Repository, cloneDir string) (string, error)

	// ListTags returns the tags of the mirror at repoPath, sorted by version ascending.
	ListTags(ctx context.Context, repoPath string) ([]string, error)

	// Checkout switches the mirror at repoPath to ref.
	Checkout(ctx context.Context, repoPath, ref string) error
}
