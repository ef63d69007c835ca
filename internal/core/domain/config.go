package domain

// Config is the validated run configuration.
type Config struct {
	Repositories []Repository
	CloneDir     string
	OutputDir    string
	Remote       string
	Branch       string
	BuildCommand []string
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		CloneDir:     CloneDirName,
		OutputDir:    IndexDirName,
		Remote:       DefaultRemote,
		Branch:       DefaultBranch,
		BuildCommand: DefaultBuildCommand(),
	}
}

// PackageNames returns the package names of all configured repositories, in order.
func (c *Config) PackageNames() []string {
	names := make([]string, len(c.Repositories))
	for i, r := range c.Repositories {
		names[i] = r.PackageName()
	}
	return names
}
