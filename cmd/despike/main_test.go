package main

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunRequiresInputAndProps(t *testing.T) {
	_, err := execute(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input")

	// An input without a classifier source must not fall through to an
	// open("") failure.
	_, err = execute(t, "run", "--input", "signal.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--props")
}

func TestRunClassifiesCSVWithProperties(t *testing.T) {
	dir := t.TempDir()

	var b strings.Builder
	b.WriteString("value\n")
	for i := 1; i <= 30; i++ {
		v := 0.01 * math.Sin(float64(i))
		if i == 10 {
			v = 1000
		}
		fmt.Fprintf(&b, "%g\n", v)
	}
	csvPath := filepath.Join(dir, "signal.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(b.String()), 0o644))

	props := "classifier = hampel\nhalf_window = 3\nmad_factor = 10\nlower_mad_limit = 0\n"
	propsPath := filepath.Join(dir, "run.properties")
	require.NoError(t, os.WriteFile(propsPath, []byte(props), 0o644))

	out, err := execute(t, "run", "--input", csvPath, "--props", propsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "classifier: hampel")
	assert.Contains(t, out, "spikes: 1")
	assert.Contains(t, out, "\n10\n")
}

func TestLimitsListsAllFamilies(t *testing.T) {
	out, err := execute(t, "limits", "--length", "100")
	require.NoError(t, err)
	for _, family := range []string{"hampel", "burst_hampel", "otsu", "otsu_savgol", "running_stats"} {
		assert.Contains(t, out, family+":")
	}
	assert.Contains(t, out, "half_window")
}
