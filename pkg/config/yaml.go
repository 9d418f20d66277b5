package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a prosecheck configuration file. It bundles
// the run configuration with the check list and ignore set; the loader
// splits them apart after merging, since each is hashed on its own channel.
type File struct {
	Config       Config             `yaml:",inline"`
	Checks       []Check            `yaml:"checks,omitempty"`
	Ignore       []string           `yaml:"ignore,omitempty"`
	IgnoreIssues []ContextualIgnore `yaml:"ignore_issues,omitempty"`
}

// ToYAML serializes the file to YAML with human-readable formatting.
func (f *File) ToYAML() ([]byte, error) {
	if f == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(f); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// FromYAML parses a configuration file from YAML bytes.
func FromYAML(data []byte) (*File, error) {
	f := &File{}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return f, nil
}
