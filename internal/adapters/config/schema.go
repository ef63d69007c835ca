package config

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Wheelhouse represents the structure of the config.yaml file.
type Wheelhouse struct {
	Repos        []RepoDTO `yaml:"repos"`
	CloneDir     string    `yaml:"clone_dir"`
	OutputDir    string    `yaml:"output_dir"`
	Remote       string    `yaml:"remote"`
	Branch       string    `yaml:"branch"`
	BuildCommand []string  `yaml:"build_command"`
}

// RepoDTO is a repository entry. It is written either as a plain
// "owner/name" string or as a mapping.
type RepoDTO struct {
	Repo       string `yaml:"repo"`
	MinVersion string `yaml:"min_version"`
}

// UnmarshalYAML accepts both the scalar and the mapping form.
func (r *RepoDTO) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		r.Repo = node.Value
		return nil
	case yaml.MappingNode:
		type plain RepoDTO
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*r = RepoDTO(p)
		return nil
	default:
		return zerr.With(zerr.New("repository entry must be a string or a mapping"), "line", node.Line)
	}
}
