package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

// Repository identifies a mirrored source repository in owner/name form.
type Repository struct {
	Owner string
	Name  string

	// MinVersion, when set, drops tags older than this version before reconciliation.
	MinVersion string
}

// ParseRepository parses an owner/name identifier.
func ParseRepository(id string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(id), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, zerr.With(ErrInvalidRepository, "repository", id)
	}
	return Repository{Owner: owner, Name: name}, nil
}

// String returns the owner/name identifier.
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// PackageName returns the package the repository publishes, its last path segment.
func (r Repository) PackageName() string {
	return r.Name
}

// CloneURL renders the remote template with the repository owner and name.
func (r Repository) CloneURL(remote string) string {
	if remote == "" {
		remote = DefaultRemote
	}
	return fmt.Sprintf(remote, r.Owner, r.Name)
}
