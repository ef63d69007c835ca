package fs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/wheelhouse/internal/core/domain"
	"go.trai.ch/wheelhouse/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ArtifactStore on a directory tree laid out as
// <root>/<package>/<artifact>.
type Store struct {
	root   string
	walker *Walker
	hasher *Hasher
}

// NewStore creates a Store rooted at root.
func NewStore(root string, walker *Walker, hasher *Hasher) *Store {
	if root == "" {
		root = domain.IndexDirName
	}
	return &Store{root: root, walker: walker, hasher: hasher}
}

// Root returns the index root directory.
func (s *Store) Root() string {
	return s.root
}

// EnsureLayout creates the index root and one directory per package.
func (s *Store) EnsureLayout(packages []string) error {
	dirs := make([]string, 0, len(packages)+1)
	dirs = append(dirs, s.root)
	for _, pkg := range packages {
		dirs = append(dirs, domain.PackageDir(s.root, pkg))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrLayoutCreateFailed.Error()), "path", dir)
		}
	}
	return nil
}

// List returns the artifact filenames of pkg sorted by name.
// A package without a directory has no artifacts.
func (s *Store) List(pkg string) ([]string, error) {
	dir := domain.PackageDir(s.root, pkg)
	names := make([]string, 0)
	for name, err := range s.walker.WalkArtifacts(dir) {
		if errors.Is(err, fs.ErrNotExist) {
			return names, nil
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrArtifactScanFailed.Error()), "path", dir)
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Publish copies the artifact at srcPath into the directory of pkg and
// verifies that the copy matches the source.
func (s *Store) Publish(pkg, srcPath string) (domain.Artifact, error) {
	name := filepath.Base(srcPath)
	artifact, err := domain.ParseArtifactFor(pkg, name)
	if err != nil {
		return domain.Artifact{}, err
	}

	dst := artifactPath(s.root, pkg, name)
	if err := copyFile(srcPath, dst); err != nil {
		return domain.Artifact{}, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "source", srcPath), "path", dst)
	}

	if err := s.verify(srcPath, dst); err != nil {
		_ = os.Remove(dst)
		return domain.Artifact{}, err
	}
	return artifact, nil
}

func (s *Store) verify(src, dst string) error {
	want, err := s.hasher.Digest(src)
	if err != nil {
		return err
	}
	got, err := s.hasher.Digest(dst)
	if err != nil {
		return err
	}
	if want != got {
		err := zerr.With(zerr.With(domain.ErrPublishVerifyFailed, "path", dst), "expected", want)
		return zerr.With(err, "actual", got)
	}
	return nil
}

// copyFile writes src to a temporary file next to dst and renames it into
// place, so a failed copy never leaves a truncated artifact behind.
func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // Read-only file

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".publish-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // No-op after a successful rename

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}

var _ ports.ArtifactStore = (*Store)(nil)
