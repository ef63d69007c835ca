// Package fs provides the file system adapters of the package index.
package fs

import (
	"iter"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/wheelhouse/internal/core/domain"
)

// Walker lists artifact files.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkArtifacts yields the names of the regular artifact files directly
// inside dir, in directory order. Subdirectories are not descended into.
// A read error is yielded once with an empty name.
func (w *Walker) WalkArtifacts(dir string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			yield("", err)
			return
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() || !isArtifact(entry.Name()) {
				continue
			}
			if !yield(entry.Name(), nil) {
				return
			}
		}
	}
}

func isArtifact(name string) bool {
	return strings.HasSuffix(name, domain.ArtifactExt) && !strings.HasPrefix(name, ".")
}

// artifactPath returns the location of name inside the directory of pkg.
func artifactPath(root, pkg, name string) string {
	return filepath.Join(domain.PackageDir(root, pkg), name)
}
