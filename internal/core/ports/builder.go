package ports

import "context"

// ArtifactBuilder produces a distributable from a checked out mirror.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type ArtifactBuilder interface {
	// BuildArtifact builds pkg at the checked out tag and returns the path of the produced artifact.
	BuildArtifact(ctx context.Context, repoPath, pkg, tag string) (string, error)
}
