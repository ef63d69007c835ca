package domain

// TagMarker is the prefix registered as an alias for digit-leading artifact versions,
// so that a tag like v1.2.3 matches the published version 1.2.3.
const TagMarker = "v"

// VersionSet is the set of versions already published for a package.
type VersionSet map[string]struct{}

// NewVersionSet returns a set holding versions.
func NewVersionSet(versions ...string) VersionSet {
	s := make(VersionSet, len(versions))
	for _, v := range versions {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s VersionSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Add registers an artifact version together with its marker alias.
func (s VersionSet) Add(version string) {
	s[version] = struct{}{}
	if version != "" && version[0] >= '0' && version[0] <= '9' {
		s[TagMarker+version] = struct{}{}
	}
}

// ExistingVersions builds the version set of pkg from the artifact filenames in its directory.
// Artifacts of other packages are ignored; a malformed filename aborts the scan.
func ExistingVersions(pkg string, filenames []string) (VersionSet, error) {
	existing := make(VersionSet, 2*len(filenames))
	for _, name := range filenames {
		a, err := ParseArtifactName(name)
		if err != nil {
			return nil, err
		}
		if !a.BelongsTo(pkg) {
			continue
		}
		existing.Add(a.Version)
	}
	return existing, nil
}

// Reconcile returns the tags absent from existing, in tag order.
func Reconcile(existing VersionSet, tags []string) []string {
	needed := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !existing.Has(tag) {
			needed = append(needed, tag)
		}
	}
	return needed
}
