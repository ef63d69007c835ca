package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// artifactSeparator separates the fields of an artifact filename.
const artifactSeparator = "-"

// Artifact is a built distributable for one package version.
type Artifact struct {
	// Package is the distribution name as written in the filename.
	Package string
	// Version is the version field, without any tag marker.
	Version string
	// Filename is the base name of the artifact file.
	Filename string
}

// ParseArtifactName splits an artifact filename of the form <package>-<version>-...
// into its package and version fields.
func ParseArtifactName(filename string) (Artifact, error) {
	fields := strings.Split(filename, artifactSeparator)
	if len(fields) < 2 {
		return Artifact{}, malformed(filename, "too few fields")
	}

	pkg, version := fields[0], fields[1]
	if pkg == "" {
		return Artifact{}, malformed(filename, "empty package field")
	}
	if version == "" {
		return Artifact{}, malformed(filename, "empty version field")
	}
	// The version is the last field of a two-field name: drop the extension.
	if len(fields) == 2 {
		version = strings.TrimSuffix(version, ArtifactExt)
		if version == "" {
			return Artifact{}, malformed(filename, "empty version field")
		}
	}

	return Artifact{Package: pkg, Version: version, Filename: filename}, nil
}

// ParseArtifactFor parses filename and checks that it belongs to pkg.
func ParseArtifactFor(pkg, filename string) (Artifact, error) {
	a, err := ParseArtifactName(filename)
	if err != nil {
		return Artifact{}, err
	}
	if !a.BelongsTo(pkg) {
		err := zerr.With(ErrPackageMismatch, "filename", filename)
		return Artifact{}, zerr.With(err, "package", pkg)
	}
	return a, nil
}

// BelongsTo reports whether the artifact was built for pkg.
// Build tools write hyphens in distribution names as underscores, so both spellings match.
func (a Artifact) BelongsTo(pkg string) bool {
	return a.Package == pkg || a.Package == NormalizeName(pkg)
}

// NormalizeName returns pkg as it appears in built artifact filenames.
func NormalizeName(pkg string) string {
	return strings.ReplaceAll(pkg, "-", "_")
}

// VersionFromTag strips any leading non-digit marker from tag.
// A tag without digits is returned unchanged.
func VersionFromTag(tag string) string {
	if i := strings.IndexAny(tag, "0123456789"); i > 0 {
		return tag[i:]
	}
	return tag
}

// ArtifactFileName predicts the filename the build command produces for pkg at tag.
func ArtifactFileName(pkg, tag string) string {
	return NormalizeName(pkg) + artifactSeparator + VersionFromTag(tag) + ArtifactSuffix
}

func malformed(filename, reason string) error {
	err := zerr.With(ErrMalformedArtifactName, "filename", filename)
	return zerr.With(err, "reason", reason)
}
