package domain

// PackagePlan carries one repository through the pipeline stages.
type PackagePlan struct {
	Repository Repository
	// ClonePath is the local mirror, set once the repository is synced.
	ClonePath string
	// Existing holds the versions already published.
	Existing VersionSet
	// Tags is the version-sorted tag list of the mirror.
	Tags []string
	// Needed is Tags minus Existing, in tag order.
	Needed []string
}

// Package returns the package name of the plan.
func (p *PackagePlan) Package() string {
	return p.Repository.PackageName()
}

// Plan is the result threaded between pipeline stages, one entry per repository in configuration order.
type Plan struct {
	Packages []*PackagePlan
}

// PackageNames returns the tracked package names in configuration order.
func (p *Plan) PackageNames() []string {
	names := make([]string, len(p.Packages))
	for i, pp := range p.Packages {
		names[i] = pp.Package()
	}
	return names
}

// NeededCount returns the total number of versions that still need a build.
func (p *Plan) NeededCount() int {
	n := 0
	for _, pp := range p.Packages {
		n += len(pp.Needed)
	}
	return n
}
