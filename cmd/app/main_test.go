package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolpathYAML = `
name: slot
workpiece:
  width: 30
  height: 20
  thickness: 5
  material: wood
operations:
  - type: profile
    depth: 1
    toolDiameter: 3
    points:
      - {x: 0, y: 0}
      - {x: 10, y: 0}
      - {x: 10, y: 10}
`

func TestRun_ToolpathToHeidenhain(t *testing.T) {
	t.Setenv("GCODE_LOG_LEVEL", "off")
	path := filepath.Join(t.TempDir(), "slot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(toolpathYAML), 0644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-toolpath", path, "-controller", "heidenhain"}, &out))

	assert.True(t, strings.HasPrefix(out.String(), "0 BEGIN PGM WORKPIECE MM"))
	assert.Contains(t, out.String(), "END PGM WORKPIECE MM")
}

func TestRun_ReportJSON(t *testing.T) {
	t.Setenv("GCODE_LOG_LEVEL", "off")
	dir := t.TempDir()
	in := filepath.Join(dir, "part.nc")
	out := filepath.Join(dir, "part.json")
	require.NoError(t, os.WriteFile(in, []byte("%\nG21 G90\nM3 S1000\nG0 Z5\nG1 X1 Y0 Z-1 F500\nM5\nM30\n%"), 0644))

	require.NoError(t, run([]string{"-in", in, "-controller", "fanuc", "-report", "-out", out}, &bytes.Buffer{}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var res models.OptimizationResult
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, 8, res.Stats.OriginalLines)
	assert.True(t, res.Validation.IsValid)
}

func TestRun_Usage(t *testing.T) {
	assert.Error(t, run(nil, &bytes.Buffer{}))
	assert.Error(t, run([]string{"-in", "a", "-toolpath", "b"}, &bytes.Buffer{}))
	assert.Error(t, run([]string{"-in", filepath.Join(t.TempDir(), "missing.nc")}, &bytes.Buffer{}))
}
