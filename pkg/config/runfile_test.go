package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRunFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRunFile(t *testing.T) {
	path := writeRunFile(t, `
input:
  path: temperature.csv
  format: csv
  column: 2
  burstColumn: 0
classifier: burst_hampel
params:
  use_burst_window: true
  half_window: 2
  mad_factor: 10
  lower_mad_limit: 0
  repeated_only: false
`)

	run, err := LoadRunFile(path)
	require.NoError(t, err)
	assert.Equal(t, "temperature.csv", run.Input.Path)
	assert.Equal(t, 2, run.Input.Column)
	assert.Equal(t, 0, run.Input.BurstColumn)
	assert.Equal(t, "burst_hampel", run.Classifier)

	// The run document feeds the registry like a property file would.
	src := run.PropertySource()
	v, ok := src.Get(ClassifierKey)
	assert.True(t, ok)
	assert.Equal(t, "burst_hampel", v)

	v, ok = src.Get("half_window")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok = src.Get("use_burst_window")
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	cfg, err := Resolve(src, 100, true)
	require.NoError(t, err)
	assert.Equal(t, FamilyBurstHampel, cfg.Family())
}

func TestLoadRunFileDefaults(t *testing.T) {
	path := writeRunFile(t, `
input:
  path: data.csv
`)

	run, err := LoadRunFile(path)
	require.NoError(t, err)
	assert.Equal(t, -1, run.Input.BurstColumn)
	assert.True(t, run.Input.Header)
	assert.Empty(t, run.Classifier)
}

func TestLoadRunFileErrors(t *testing.T) {
	_, err := LoadRunFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	path := writeRunFile(t, "classifier: hampel\n")
	_, err = LoadRunFile(path)
	assert.Error(t, err, "input.path is required")

	path = writeRunFile(t, "input: [not, a, mapping]\n")
	_, err = LoadRunFile(path)
	assert.Error(t, err)
}
