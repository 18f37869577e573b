// Package fanuc реализует постпроцессор для систем ЧПУ Fanuc (и Haas как его вариант):
// базовая оптимизация, режимы высокоскоростной обработки, модальное сжатие и проверка программы.
package fanuc

import (
	"fmt"
	"strings"

	"github.com/iwtcode/gcodeAdapter/controller/model"
	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/optimizer"
	"github.com/iwtcode/gcodeAdapter/program"
)

// CornerRadius - радиус скругления углов, добавляемый к G1
const CornerRadius = "R0.5"

// Optimizer - постпроцессор Fanuc
type Optimizer struct {
	haas bool
}

// New создает постпроцессор Fanuc
func New() *Optimizer {
	return &Optimizer{}
}

// NewHaas создает постпроцессор Fanuc с пометкой об адаптации для Haas
func NewHaas() *Optimizer {
	return &Optimizer{haas: true}
}

var _ model.Pipeline = (*Optimizer)(nil)

// Process выполняет все этапы оптимизации Fanuc
func (o *Optimizer) Process(lines []string, opts models.OptimizationOptions) (model.Output, error) {
	base := optimizer.Optimize(lines, opts)
	out := model.Output{
		Lines:         base.Lines,
		Improvements:  base.Improvements,
		MinorWarnings: base.Warnings,
	}

	if on, off, names := HighSpeedBlocks(opts); len(on) > 0 {
		out.Lines = InsertHighSpeedMode(out.Lines, on, off)
		out.Improvements = append(out.Improvements,
			fmt.Sprintf("Added high-speed machining codes (%s)", strings.Join(names, ", ")))
	}

	if opts.Fanuc.UseCornerRounding {
		var n int
		out.Lines, n = RoundCorners(out.Lines)
		if n > 0 {
			out.Improvements = append(out.Improvements, fmt.Sprintf("Added corner rounding %s to %d corners", CornerRadius, n))
		}
	}

	var stats AdvancedStats
	out.Lines, stats = Advanced(out.Lines, opts)
	out.Improvements = append(out.Improvements, stats.Improvements()...)

	if opts.Fanuc.UseCompactGCode {
		var n int
		out.Lines, n = Compact(out.Lines)
		if n > 0 {
			out.Improvements = append(out.Improvements, fmt.Sprintf("Compact format: removed %d comment and empty lines", n))
		}
	}

	if o.haas {
		out.Improvements = append(out.Improvements, "Fanuc optimization adapted for Haas controller")
	}

	out.Validation = Validate(out.Lines)
	return out, nil
}

// HighSpeedBlocks возвращает строки включения и выключения режимов высокоскоростной обработки
// и их названия для отчета. Пустой on означает, что вставлять нечего.
func HighSpeedBlocks(opts models.OptimizationOptions) (on, off, names []string) {
	if opts.UseHighSpeedMode {
		if opts.Fanuc.UseAI {
			on = append(on, "G05.1 Q1")
			names = append(names, "AI contour control")
		}
		if opts.Fanuc.UseNanoSmoothing {
			on = append(on, "G05.1 Q3")
			names = append(names, "nano smoothing")
		}
		if opts.Fanuc.UseHighPrecisionMode {
			on = append(on, "G61.1")
			names = append(names, "high precision mode")
		} else {
			on = append(on, "G64 P0.05")
			names = append(names, "cutting mode with tolerance")
		}
	}
	if opts.UseLookAhead {
		on = append(on, "G08 P1")
		names = append(names, "look-ahead")
	}
	if opts.UseTCPMode {
		on = append(on, "G43.4 H1")
		names = append(names, "tool center point control")
	}

	// выключение в обратном порядке
	if opts.UseTCPMode {
		off = append(off, "G49")
	}
	if opts.UseLookAhead {
		off = append(off, "G08 P0")
	}
	if opts.UseHighSpeedMode {
		off = append(off, "G64")
		if opts.Fanuc.UseAI || opts.Fanuc.UseNanoSmoothing {
			off = append(off, "G05.1 Q0")
		}
	}
	return on, off, names
}

// InsertHighSpeedMode вставляет блок on после инициализации (последняя строка с G90/G21/G17
// до первого перемещения) и блок off перед окончанием программы (M30/M2)
func InsertHighSpeedMode(lines, on, off []string) []string {
	parsed := make([]program.Line, len(lines))
	for i, raw := range lines {
		parsed[i] = program.Parse(raw)
	}

	st := program.NewState()
	initIdx, firstMotion := -1, -1
	for i, l := range parsed {
		if st.IsMotion(l) {
			firstMotion = i
			break
		}
		if l.HasAnyCode('G', 90, 21, 17) {
			initIdx = i
		}
		st = st.Apply(l)
	}

	var directives []program.Directive
	switch {
	case initIdx >= 0:
		directives = append(directives, program.Directive{Index: initIdx, Position: program.InsertAfter, Lines: on})
	case firstMotion >= 0:
		directives = append(directives, program.Directive{Index: firstMotion, Position: program.InsertBefore, Lines: on})
	case len(parsed) > 0 && parsed[0].Percent:
		directives = append(directives, program.Directive{Index: 0, Position: program.InsertAfter, Lines: on})
	default:
		directives = append(directives, program.Directive{Index: 0, Position: program.InsertBefore, Lines: on})
	}

	endIdx := -1
	for i := len(parsed) - 1; i >= 0; i-- {
		if parsed[i].HasAnyCode('M', 30, 2) {
			endIdx = i
			break
		}
	}
	if endIdx < 0 {
		endIdx = len(parsed)
		if n := len(parsed); n > 0 && parsed[n-1].Percent {
			endIdx = n - 1
		}
	}
	directives = append(directives, program.Directive{Index: endIdx, Position: program.InsertBefore, Lines: off})

	return program.Apply(lines, directives)
}

// RoundCorners добавляет R0.5 к первому из двух соседних G1, если между ними
// меняются X и Y, а Z остается прежним
func RoundCorners(lines []string) ([]string, int) {
	out := append([]string(nil), lines...)
	states := program.Replay(lines)
	n := 0
	for i := 0; i+1 < len(lines); i++ {
		cur, next := program.Parse(lines[i]), program.Parse(lines[i+1])
		if !isLinearMove(cur, stateBefore(states, i)) || !isLinearMove(next, states[i]) || cur.Has('R') {
			continue
		}
		a, b := states[i], states[i+1]
		if !a.X.Equal(b.X) && !a.Y.Equal(b.Y) && a.Z.Equal(b.Z) {
			out[i] = cur.Append(program.Word{Letter: 'R', Value: 0.5, Text: "0.5"}).String()
			n++
		}
	}
	return out, n
}

func stateBefore(states []program.State, i int) program.State {
	if i == 0 {
		return program.NewState()
	}
	return states[i-1]
}

func isLinearMove(l program.Line, before program.State) bool {
	if !l.HasAxis() {
		return false
	}
	code, ok := l.MotionCode()
	if !ok {
		code = before.Motion
	}
	return code == 1
}
