package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Request describes one pattern to expand. Kind selects the generator;
// the remaining fields apply per kind and are ignored otherwise.
type Request struct {
	Kind    string `yaml:"kind" json:"kind"`
	Name    string `yaml:"name" json:"name"`
	Owner   string `yaml:"owner,omitempty" json:"owner,omitempty"`
	Type    string `yaml:"type,omitempty" json:"type,omitempty"`
	Element string `yaml:"element,omitempty" json:"element,omitempty"`
	Scope   string `yaml:"scope,omitempty" json:"scope,omitempty"`
	Load    string `yaml:"load,omitempty" json:"load,omitempty"`

	Predicate string `yaml:"predicate,omitempty" json:"predicate,omitempty"`

	Members      []string `yaml:"members,omitempty" json:"members,omitempty"`
	Targets      []string `yaml:"targets,omitempty" json:"targets,omitempty"`
	Events       []string `yaml:"events,omitempty" json:"events,omitempty"`
	SuppressLoad bool     `yaml:"suppress_load,omitempty" json:"suppress_load,omitempty"`
	Documented   bool     `yaml:"documented,omitempty" json:"documented,omitempty"`

	Fields []Field `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Field names one typed member carried by attribute, exception, and async
// requests.
type Field struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Record tracks one file produced from a request.
type Record struct {
	Kind string `yaml:"kind" json:"kind"`
	Name string `yaml:"name" json:"name"`
	File string `yaml:"file" json:"file"`
}

// Manifest is the on-disk description of a generation run: the requested
// patterns plus the records of what earlier runs produced.
type Manifest struct {
	Package  string    `yaml:"package,omitempty" json:"package,omitempty"`
	Requests []Request `yaml:"requests" json:"requests"`
	Records  []Record  `yaml:"records,omitempty" json:"records,omitempty"`
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// AddRecord stores a record, replacing an existing entry that shares the
// same kind and name.
func (m *Manifest) AddRecord(r Record) {
	for i := range m.Records {
		if m.Records[i].Kind == r.Kind && m.Records[i].Name == r.Name {
			m.Records[i] = r
			return
		}
	}
	m.Records = append(m.Records, r)
}

// RecordFile returns the file recorded for the named request, if present.
func (m *Manifest) RecordFile(kind, name string) string {
	for _, r := range m.Records {
		if r.Kind == kind && r.Name == name {
			return r.File
		}
	}
	return ""
}
