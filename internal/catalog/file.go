package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleSpec is the serialized form of a rule
type RuleSpec struct {
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Pattern  string  `yaml:"pattern,omitempty"`
	Probe    string  `yaml:"probe,omitempty"`
	Weight   float64 `yaml:"weight"`
	Reason   string  `yaml:"reason"`
}

// MitigationSpec is the serialized form of a mitigation pattern
type MitigationSpec struct {
	Name    string  `yaml:"name"`
	Pattern string  `yaml:"pattern"`
	Damp    float64 `yaml:"damp"`
}

// File is the on-disk catalog document
type File struct {
	Version     string           `yaml:"version"`
	Rules       []RuleSpec       `yaml:"rules"`
	Mitigations []MitigationSpec `yaml:"mitigations,omitempty"`
}

// Load reads and compiles a catalog from a YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// Parse compiles a catalog from YAML bytes
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	version := f.Version
	if version == "" {
		version = "unversioned"
	}
	return build(version, f.Rules, f.Mitigations)
}

// Export serializes the catalog back to its YAML document form
func (c *Catalog) Export() ([]byte, error) {
	f := File{Version: c.version}
	for i := range c.rules {
		r := &c.rules[i]
		f.Rules = append(f.Rules, RuleSpec{
			Name:     r.Name,
			Category: string(r.Category),
			Pattern:  r.Pattern,
			Probe:    r.Probe,
			Weight:   r.Weight,
			Reason:   r.Reason,
		})
	}
	for i := range c.mitigations {
		m := &c.mitigations[i]
		f.Mitigations = append(f.Mitigations, MitigationSpec{
			Name:    m.Name,
			Pattern: m.Pattern,
			Damp:    m.Damp,
		})
	}
	out, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return out, nil
}
