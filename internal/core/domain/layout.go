package domain

import "path/filepath"

const (
	// IndexDirName is the default root directory of the published package index.
	IndexDirName = "simple"

	// IndexFileName is the name of every generated index page.
	IndexFileName = "index.html"

	// CloneDirName is the default directory holding the repository mirrors.
	CloneDirName = "repos"

	// ConfigFileName is the default configuration file.
	ConfigFileName = "config.yaml"

	// JournalFileName is the progress journal written below the clone directory.
	JournalFileName = ".wheelhouse-journal.jsonl"

	// ArtifactExt is the extension of published artifacts.
	ArtifactExt = ".whl"

	// ArtifactSuffix is the tag triple appended to pure-Python wheels.
	ArtifactSuffix = "-py3-none-any" + ArtifactExt

	// DistDirName is the directory the build command writes artifacts to.
	DistDirName = "dist"

	// BuildDirName is the scratch directory of the build command.
	BuildDirName = "build"

	// DefaultRemote is the clone URL template; owner and name are substituted in order.
	DefaultRemote = "git@github.com:%s/%s.git"

	// DefaultBranch is checked out before updating an existing mirror.
	DefaultBranch = "main"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultBuildCommand returns the command that produces a wheel in DistDirName.
func DefaultBuildCommand() []string {
	return []string{"python", "-m", "build", "--wheel"}
}

// PackageDir returns the directory holding the artifacts of pkg below indexRoot.
func PackageDir(indexRoot, pkg string) string {
	return filepath.Join(indexRoot, pkg)
}

// ClonePath returns the mirror location of pkg below cloneDir.
func ClonePath(cloneDir, pkg string) string {
	return filepath.Join(cloneDir, pkg)
}

// JournalPath returns the location of the progress journal below cloneDir.
func JournalPath(cloneDir string) string {
	return filepath.Join(cloneDir, JournalFileName)
}
