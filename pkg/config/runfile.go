package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunFile is a YAML document describing one CLI classification run: where
// the signal comes from and how to classify it.
type RunFile struct {
	Input      InputSpec      `yaml:"input"`
	Classifier string         `yaml:"classifier"`
	Params     map[string]any `yaml:"params"`
}

// InputSpec locates the signal inside its source file.
type InputSpec struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format"`      // "csv" or "pcap"
	Column      int    `yaml:"column"`      // csv: zero-based signal column
	BurstColumn int    `yaml:"burstColumn"` // csv: burst-id column, -1 for none
	Header      bool   `yaml:"header"`
}

// LoadRunFile reads and decodes a run document.
func LoadRunFile(path string) (*RunFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	run := &RunFile{
		Input: InputSpec{BurstColumn: -1, Header: true},
	}
	if err := yaml.Unmarshal(raw, run); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if run.Input.Path == "" {
		return nil, fmt.Errorf("%s: input.path is required", path)
	}

	return run, nil
}

// PropertySource exposes the run's classifier name and parameters as a
// property source for Resolve. YAML scalars are rendered to their property
// string form, so run files and property files type parameters identically.
func (r *RunFile) PropertySource() *Properties {
	values := make(map[string]string, len(r.Params)+1)
	if r.Classifier != "" {
		values[ClassifierKey] = r.Classifier
	}
	for name, v := range r.Params {
		values[name] = fmt.Sprint(v)
	}
	return NewProperties(values)
}
