package optimizer

import (
	"testing"

	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize_DefaultSwitches(t *testing.T) {
	in := []string{"", "G21", "G90", "G21", "G0 Z5", ""}

	res := Optimize(in, models.DefaultOptimizationOptions())

	assert.Equal(t, []string{"G21 G90", "G0 Z5"}, res.Lines)
	assert.Equal(t, []string{
		"Removed 2 empty lines",
		"Removed 1 redundant modal codes",
		"Consolidated 1 modal G-code lines",
	}, res.Improvements)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, []string{"", "G21", "G90", "G21", "G0 Z5", ""}, in, "вход не изменяется")
}

func TestOptimize_AllDisabled(t *testing.T) {
	in := []string{"; c", "", "G0 X1 Y1", "G0 X1 Y1"}
	res := Optimize(in, models.OptimizationOptions{})
	assert.Equal(t, in, res.Lines)
	assert.Empty(t, res.Improvements)
	assert.Empty(t, res.Warnings)
}

func TestRemoveComments(t *testing.T) {
	out, n := RemoveComments([]string{"; header", "G0 X1 ; move", "(note)", "%"})
	assert.Equal(t, []string{"G0 X1", "%"}, out)
	assert.Equal(t, 3, n)
}

func TestRemoveRedundantCodes(t *testing.T) {
	out, n := RemoveRedundantCodes([]string{"G90", "G21", "G1 X1", "G90", "G91", "G90 G21"})
	assert.Equal(t, []string{"G90", "G21", "G1 X1", "G91", "G90 G21"}, out)
	assert.Equal(t, 1, n)
}

func TestConsolidateGCodes(t *testing.T) {
	out, n := ConsolidateGCodes([]string{"G21", "G90", "G17", "G0 Z5", "G54"})
	assert.Equal(t, []string{"G21 G90 G17", "G0 Z5", "G54"}, out)
	assert.Equal(t, 2, n)
}

func TestMinimizeAxisWords(t *testing.T) {
	out, n := MinimizeAxisWords([]string{"G0 X0 Y0 Z5", "G1 X0 Y10 Z5 F100", "G1 X0 Y10 Z5"})
	assert.Equal(t, []string{"G0 X0 Y0 Z5", "G1 Y10 F100"}, out)
	assert.Equal(t, 2, n)
}

func TestMinimizeAxisWords_KeepsMotionModeChange(t *testing.T) {
	out, _ := MinimizeAxisWords([]string{"G0 X0 Y0", "G1 X0 Y0", "X5"})
	require.Len(t, out, 3)
	assert.Equal(t, "G1", out[1])
}

func TestMergeRapidMoves(t *testing.T) {
	out, n := MergeRapidMoves([]string{"G0 X1 Y1", "G0 X2 Y2", "G0 Z5"})
	assert.Equal(t, []string{"G0 X2 Y2", "G0 Z5"}, out)
	assert.Equal(t, 1, n)
}

func TestArcsToRadius(t *testing.T) {
	out, n := ArcsToRadius([]string{
		"G0 X0 Y0",
		"G2 X10 Y0 I5 J0 F500",
		"G0 X0 Y0",
		"G3 X5 Y5 I5 J0 F500",
	})
	assert.Equal(t, 1, n)
	assert.Equal(t, "G2 X10 Y0 R5.000 F500", out[1])
	assert.Equal(t, "G3 X5 Y5 I5 J0 F500", out[3], "дуга больше 180° остается с I/J")
}

func TestSafetyCheck(t *testing.T) {
	warnings := SafetyCheck([]string{"G0 X0 Y0", "G1 X10 F100", "M3 S1000", "G0 Z-1", "G1 X20", "G0 Z-2"})
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "Line 1")
	assert.Contains(t, warnings[1], "feed move before spindle start")
	assert.Contains(t, warnings[2], "rapid move below Z0")
}

func TestSafetyCheck_CleanProgram(t *testing.T) {
	assert.Empty(t, SafetyCheck([]string{"G90", "M3 S1000", "G0 Z5", "G0 X0 Y0", "G1 Z-1 F100", "G1 X10", "M5", "M30"}))
}

func TestOptimize_IncrementalMovesKept(t *testing.T) {
	opts := models.DefaultOptimizationOptions()
	opts.MinimizeAxisMovement = true
	in := []string{
		"G91",
		"G1 X10 F100",
		"G1 X10 F100",
		"G1 X10 F100",
		"G0 Z5",
		"G0 Z5",
		"G1 X0 Y5 F100",
		"M30",
	}

	res := Optimize(in, opts)

	assert.Equal(t, []string{
		"G91",
		"G1 X10 F100",
		"G1 X10 F100",
		"G1 X10 F100",
		"G0 Z5",
		"G0 Z5",
		"G1 Y5 F100",
		"M30",
	}, res.Lines)
}

func TestMinimizeAxisWords_Incremental(t *testing.T) {
	out, n := MinimizeAxisWords([]string{"G90 G0 X0 Y0", "G91 G1 X0 Y10 F100", "G1 X0 Y0", "G1 X5"})
	assert.Equal(t, []string{"G90 G0 X0 Y0", "G91 G1 Y10 F100", "G1 X5"}, out)
	assert.Equal(t, 2, n)
}

func TestMergeRapidMoves_Incremental(t *testing.T) {
	in := []string{"G91", "G0 X1 Y1", "G0 X2 Y2", "G90", "G0 X1", "G0 X3"}
	out, n := MergeRapidMoves(in)
	assert.Equal(t, []string{"G91", "G0 X1 Y1", "G0 X2 Y2", "G90", "G0 X3"}, out)
	assert.Equal(t, 1, n)
}

func TestSafetyCheck_IncrementalRapidDown(t *testing.T) {
	warnings := SafetyCheck([]string{"G90", "M3 S1000", "G0 Z5", "G91", "G0 Z-2", "G1 X10 F100"})
	assert.Empty(t, warnings)
}
