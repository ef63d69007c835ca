package domain

import (
	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// MinVersionFilter drops tags older than a minimum semantic version.
type MinVersionFilter struct {
	min *semver.Version
}

// NewMinVersionFilter parses minVersion. An empty string yields a filter that keeps every tag.
func NewMinVersionFilter(minVersion string) (*MinVersionFilter, error) {
	if minVersion == "" {
		return &MinVersionFilter{}, nil
	}
	v, err := semver.NewVersion(minVersion)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrInvalidMinVersion.Error()), "min_version", minVersion)
	}
	return &MinVersionFilter{min: v}, nil
}

// Apply returns the tags at or above the minimum, preserving order.
// Tags that are not semantic versions are returned in skipped.
func (f *MinVersionFilter) Apply(tags []string) (kept, skipped []string) {
	if f.min == nil {
		return tags, nil
	}
	kept = make([]string, 0, len(tags))
	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			skipped = append(skipped, tag)
			continue
		}
		if !v.LessThan(f.min) {
			kept = append(kept, tag)
		}
	}
	return kept, skipped
}
