package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedArtifactName is returned when an artifact filename does not follow
	// the <package>-<version>-... convention.
	ErrMalformedArtifactName = zerr.New("malformed artifact name")

	// ErrPackageMismatch is returned when an artifact belongs to a different package than expected.
	ErrPackageMismatch = zerr.New("artifact does not belong to package")

	// ErrInvalidRepository is returned when a repository identifier is not in owner/name form.
	ErrInvalidRepository = zerr.New("invalid repository, expected format: owner/name")

	// ErrDuplicatePackage is returned when two repositories map to the same package name.
	ErrDuplicatePackage = zerr.New("duplicate package name")

	// ErrInvalidMinVersion is returned when a min_version constraint is not a valid semantic version.
	ErrInvalidMinVersion = zerr.New("invalid min_version")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrRepositorySyncFailed is returned when cloning or updating a mirror fails.
	ErrRepositorySyncFailed = zerr.New("failed to sync repository")

	// ErrTagListFailed is returned when the tags of a mirror cannot be listed.
	ErrTagListFailed = zerr.New("failed to list tags")

	// ErrCheckoutFailed is returned when a tag cannot be checked out.
	ErrCheckoutFailed = zerr.New("failed to check out ref")

	// ErrArtifactBuildFailed is returned when the build command fails.
	ErrArtifactBuildFailed = zerr.New("failed to build artifact")

	// ErrArtifactNotFound is returned when the build did not produce the expected artifact.
	ErrArtifactNotFound = zerr.New("built artifact not found")

	// ErrArtifactScanFailed is returned when a package directory cannot be listed.
	ErrArtifactScanFailed = zerr.New("failed to scan artifacts")

	// ErrPublishFailed is returned when an artifact cannot be copied into the index.
	ErrPublishFailed = zerr.New("failed to publish artifact")

	// ErrPublishVerifyFailed is returned when a published copy does not match its source.
	ErrPublishVerifyFailed = zerr.New("published artifact digest mismatch")

	// ErrLayoutCreateFailed is returned when the output or clone directories cannot be created.
	ErrLayoutCreateFailed = zerr.New("failed to create directory layout")

	// ErrIndexWriteFailed is returned when an index page cannot be written.
	ErrIndexWriteFailed = zerr.New("failed to write index page")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrJournalOpenFailed is returned when the progress journal cannot be created.
	ErrJournalOpenFailed = zerr.New("failed to open progress journal")

	// ErrJournalWriteFailed is returned when a status update cannot be appended to the journal.
	ErrJournalWriteFailed = zerr.New("failed to write progress journal")

	// ErrRunFailed is returned when the pipeline aborts.
	ErrRunFailed = zerr.New("run failed")
)
