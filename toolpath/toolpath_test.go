package toolpath

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(pts ...models.Point) []models.Point { return pts }

func pt(x, y float64) models.Point { return models.Point{X: x, Y: y} }

func countPrefix(lines []string, prefix string) int {
	n := 0
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			n++
		}
	}
	return n
}

func TestPassDepths_LastPassClipped(t *testing.T) {
	depths, err := PassDepths(10, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 8, 10}, depths)
}

func TestPassDepths_Defaults(t *testing.T) {
	depths, err := PassDepths(6, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{6}, depths, "без stepdown - один проход")

	depths, err = PassDepths(3, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, depths)

	depths, err = PassDepths(0, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, depths)

	depths, err = PassDepths(0.3, 0.1)
	require.NoError(t, err)
	assert.Len(t, depths, 3)
}

func TestPassDepths_TooManyPasses(t *testing.T) {
	_, err := PassDepths(1000, 0.00001)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrTooManyPasses))
}

func TestEmit_MultiPassPlunge(t *testing.T) {
	e := NewEmitter(models.GenerationParams{})
	lines, err := e.Emit(models.ToolpathOperation{
		Type:     models.OperationProfile,
		Points:   line(pt(0, 0), pt(10, 0), pt(20, 0)),
		Depth:    10,
		Stepdown: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, "G0 Z5.000", lines[0])
	assert.Equal(t, "G0 X0.000 Y0.000", lines[1])
	assert.Contains(t, lines, "G1 Z-4.000 F300")
	assert.Contains(t, lines, "G1 Z-8.000 F300")
	assert.Contains(t, lines, "G1 Z-10.000 F300")
	assert.Equal(t, 3, countPrefix(lines, "G1 Z-"))
	assert.NotContains(t, strings.Join(lines, "\n"), "Z-12.000")
	assert.Equal(t, 3, countPrefix(lines, "G1 X20.000 Y0.000 Z-"), "по одному обходу контура на проход")
	assert.Equal(t, 2, strings.Count(strings.Join(lines, "\n"), "\n\n"), "пустая строка между проходами")
}

func TestEmit_LinearMovesForCollinearPoints(t *testing.T) {
	e := NewEmitter(models.GenerationParams{Feedrate: 1500})
	lines, err := e.Emit(models.ToolpathOperation{
		Points: line(pt(0, 0), pt(5, 5), pt(10, 10)),
		Depth:  2,
	})
	require.NoError(t, err)
	assert.Contains(t, lines, "G1 X5.000 Y5.000 Z-2.000 F1500")
	assert.Contains(t, lines, "G1 X10.000 Y10.000 Z-2.000 F1500")
}

func TestEmit_ArcDetection(t *testing.T) {
	e := NewEmitter(models.GenerationParams{})

	ccw, err := e.Emit(models.ToolpathOperation{
		Points: line(pt(10, 0), pt(0, 10), pt(-10, 0)),
		Depth:  2,
	})
	require.NoError(t, err)
	assert.Contains(t, ccw, "G3 X-10.000 Y0.000 Z-2.000 I-10.000 J0.000 F1000")

	cw, err := e.Emit(models.ToolpathOperation{
		Points: line(pt(-10, 0), pt(0, 10), pt(10, 0)),
		Depth:  2,
	})
	require.NoError(t, err)
	assert.Contains(t, cw, "G2 X10.000 Y0.000 Z-2.000 I10.000 J0.000 F1000")
}

func TestEmit_EntryStrategies(t *testing.T) {
	pts := line(pt(0, 0), pt(10, 0), pt(20, 0))

	t.Run("helix", func(t *testing.T) {
		e := NewEmitter(models.GenerationParams{})
		lines, err := e.Emit(models.ToolpathOperation{Points: pts, Depth: 3, ToolDiameter: 6, EntryType: models.EntryHelix})
		require.NoError(t, err)
		assert.Contains(t, lines, "G0 X3.000 Y0.000")
		assert.Contains(t, lines, "G1 Z0.000 F300")
		assert.Contains(t, lines, "G3 X3.000 Y0.000 Z-3.000 I-3.000 J0.000 F300")
		assert.Contains(t, lines, "G1 X0.000 Y0.000 F1000")
	})

	t.Run("ramp", func(t *testing.T) {
		e := NewEmitter(models.GenerationParams{})
		lines, err := e.Emit(models.ToolpathOperation{Points: pts, Depth: 3, EntryType: models.EntryRamp})
		require.NoError(t, err)
		assert.Contains(t, lines, "G1 X10.000 Y0.000 Z-3.000 F300")
		assert.Contains(t, lines, "G1 X0.000 Y0.000 Z-3.000 F1000")
	})

	t.Run("direct", func(t *testing.T) {
		e := NewEmitter(models.GenerationParams{SafeHeight: 8})
		lines, err := e.Emit(models.ToolpathOperation{Points: pts, Depth: 3, EntryType: models.EntryDirect})
		require.NoError(t, err)
		idx := -1
		for i, l := range lines {
			if l == "G1 Z-3.000 F300" {
				idx = i
			}
		}
		require.Greater(t, idx, 1)
		assert.Equal(t, "G0 X0.000 Y0.000", lines[idx-1])
		assert.Equal(t, "G0 Z8.000", lines[idx-2])
	})

	t.Run("ramp с одной точкой переходит на direct", func(t *testing.T) {
		e := NewEmitter(models.GenerationParams{})
		lines, err := e.Emit(models.ToolpathOperation{Points: line(pt(1, 1)), Depth: 1, EntryType: models.EntryRamp})
		require.NoError(t, err)
		assert.Contains(t, lines, "G1 Z-1.000 F300")
	})
}

func TestEmit_ExitStrategies(t *testing.T) {
	pts := line(pt(0, 0), pt(10, 0), pt(20, 0))
	e := NewEmitter(models.GenerationParams{})

	loop, err := e.Emit(models.ToolpathOperation{Points: pts, Depth: 1, ExitType: models.ExitLoop})
	require.NoError(t, err)
	assert.Equal(t, "G1 X0.000 Y0.000 Z-1.000 F1000", loop[len(loop)-1])

	ramp, err := e.Emit(models.ToolpathOperation{Points: pts, Depth: 1, ExitType: models.ExitRamp, ExitDistance: 2})
	require.NoError(t, err)
	assert.Equal(t, "G1 X22.000 Y0.000 Z0.000 F1000", ramp[len(ramp)-1])
}

func TestEmit_EmptyOperation(t *testing.T) {
	e := NewEmitter(models.GenerationParams{})
	lines, err := e.Emit(models.ToolpathOperation{})
	require.NoError(t, err)
	assert.Equal(t, []string{"G0 Z5.000"}, lines)
}

func fixedGenerator() *Generator {
	g := NewGenerator(nil, 0)
	g.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return g
}

func sampleToolpath() models.Toolpath {
	return models.Toolpath{
		ID:   "tp-1",
		Name: "Bracket",
		Operations: []models.ToolpathOperation{
			{Type: models.OperationProfile, Points: line(pt(0, 0), pt(50, 0), pt(100, 0)), Depth: 6, Stepdown: 3},
			{Type: models.OperationPocket, Points: line(pt(10, 10), pt(10, 20)), Depth: 2, EntryType: models.EntryDirect},
		},
		Workpiece: &models.Workpiece{Width: 200, Height: 150, Thickness: 20, Material: "aluminum"},
	}
}

func TestGenerate_Structure(t *testing.T) {
	code, err := fixedGenerator().Generate(sampleToolpath(), models.GenerationParams{Coolant: true})
	require.NoError(t, err)
	lines := strings.Split(code, "\n")

	assert.Equal(t, "%", lines[0])
	assert.Equal(t, "%", lines[len(lines)-1])
	assert.Equal(t, "M30", lines[len(lines)-2])
	assert.Equal(t, "M9", lines[len(lines)-3])
	assert.Equal(t, "M5", lines[len(lines)-4])
	assert.Equal(t, "G0 Z10.000", lines[len(lines)-5])

	assert.Contains(t, code, "; Toolpath: Bracket")
	assert.Contains(t, code, "; Generated: 2026-01-02T03:04:05Z")
	assert.Contains(t, code, "; Material: aluminum")
	assert.Contains(t, code, "; Workpiece: 200 x 150 x 20 mm")
	assert.Contains(t, code, "; Feed rate: 1000 mm/min")
	assert.Contains(t, code, "; Spindle speed: 12000 RPM")
	assert.Contains(t, code, "; Coolant: On")

	for _, want := range []string{"G21", "G90", "G17", "G94", "G54", "M3 S12000", "M8"} {
		assert.Contains(t, lines, want)
	}
	assert.Contains(t, lines, "; Operation 1: profile")
	assert.Contains(t, lines, "; Operation 2: pocket")
}

func TestGenerate_InchesNoCoolant(t *testing.T) {
	code, err := fixedGenerator().Generate(sampleToolpath(), models.GenerationParams{UseInches: true, CoordinateSystem: "G55"})
	require.NoError(t, err)
	lines := strings.Split(code, "\n")

	assert.Contains(t, lines, "G20")
	assert.NotContains(t, lines, "G21")
	assert.Contains(t, lines, "G55")
	assert.NotContains(t, lines, "M8")
	assert.NotContains(t, lines, "M9")
	assert.Contains(t, code, "; Coolant: Off")
}

func TestGenerate_EmptyToolpath(t *testing.T) {
	code, err := fixedGenerator().Generate(models.Toolpath{Name: "empty"}, models.GenerationParams{})
	require.NoError(t, err)
	assert.Contains(t, code, "M30")
}

func TestGenerate_LineLimit(t *testing.T) {
	g := NewGenerator(nil, 20)
	_, err := g.Generate(sampleToolpath(), models.GenerationParams{})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrProgramTooLarge))
}

func TestGenerate_RemoveRedundantMoves(t *testing.T) {
	tp := models.Toolpath{Operations: []models.ToolpathOperation{
		{Points: line(pt(0, 0), pt(10, 0), pt(10, 0)), Depth: 1},
	}}
	plain, err := fixedGenerator().Generate(tp, models.GenerationParams{})
	require.NoError(t, err)
	opt, err := fixedGenerator().Generate(tp, models.GenerationParams{
		Optimization: models.GenerationOptimization{RemoveRedundantMoves: true},
	})
	require.NoError(t, err)
	assert.Less(t, len(strings.Split(opt, "\n")), len(strings.Split(plain, "\n")))
}

func TestRemoveRedundantMoves(t *testing.T) {
	in := []string{
		"G0 Z5.000",
		"G0 Z5.000",
		"; comment",
		"G1 X1 Y1 Z-1 F100",
		"G1 X1 Y1 Z-1 F100",
		"G1 X1 F100",
		"G1 X1 Y1 Z-1 F200",
		"G0 X1 Y1 Z-1 F200",
		"G1 X1 Y1 Z-1 F200 M8",
		"G2 X5 Y1 I2 J0",
		"G1 X5 Y1 Z-1 F200",
	}
	out := RemoveRedundantMoves(in)
	assert.Equal(t, []string{
		"G0 Z5.000",
		"; comment",
		"G1 X1 Y1 Z-1 F100",
		"G1 X1 Y1 Z-1 F200",
		"G0 X1 Y1 Z-1 F200",
		"G1 X1 Y1 Z-1 F200 M8",
		"G2 X5 Y1 I2 J0",
		"G1 X5 Y1 Z-1 F200",
	}, out)
}

func TestRemoveRedundantMoves_Incremental(t *testing.T) {
	in := []string{
		"G91",
		"G1 X10 F100",
		"G1 X10 F100",
		"G1 X10 F100",
		"G1 X0 F100",
		"G0 Z5",
		"G0 Z5",
		"G90",
		"G0 Z5",
		"G0 Z5",
	}
	out := RemoveRedundantMoves(in)
	assert.Equal(t, []string{
		"G91",
		"G1 X10 F100",
		"G1 X10 F100",
		"G1 X10 F100",
		"G0 Z5",
		"G0 Z5",
		"G90",
		"G0 Z5",
	}, out)
}

func TestRemoveRedundantMoves_Idempotent(t *testing.T) {
	code, err := fixedGenerator().Generate(sampleToolpath(), models.GenerationParams{})
	require.NoError(t, err)
	lines := strings.Split(code, "\n")

	once := RemoveRedundantMoves(lines)
	twice := RemoveRedundantMoves(once)
	assert.Equal(t, once, twice)
}
