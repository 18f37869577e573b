// Package optimizer реализует базовую оптимизацию G-кода, общую для всех систем ЧПУ.
// Контроллер-специфичные преобразования выполняются поверх ее результата.
package optimizer

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwtcode/gcodeAdapter/geometry"
	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/program"
	"github.com/iwtcode/gcodeAdapter/toolpath"
)

// Result содержит итог базовой оптимизации
type Result struct {
	Lines        []string
	Improvements []string
	Warnings     []string
}

// modalGroups - немодальные по движению группы G-кодов, которые можно сворачивать
var modalGroups = [][]float64{
	{17, 18, 19},
	{20, 21},
	{90, 91},
	{93, 94, 95},
	{54, 55, 56, 57, 58, 59},
}

func groupOf(w program.Word) int {
	if w.Letter != 'G' {
		return -1
	}
	for i, g := range modalGroups {
		for _, v := range g {
			if w.Is('G', v) {
				return i
			}
		}
	}
	return -1
}

// isModalOnly сообщает, что строка состоит только из кодов modalGroups
func isModalOnly(l program.Line) bool {
	if len(l.Words) == 0 || l.Comment != "" || len(l.Malformed) > 0 {
		return false
	}
	for _, w := range l.Words {
		if groupOf(w) < 0 {
			return false
		}
	}
	return true
}

// Optimize выполняет базовые проходы оптимизации в фиксированном порядке
func Optimize(lines []string, opts models.OptimizationOptions) Result {
	res := Result{Lines: append([]string(nil), lines...)}

	step := func(enabled bool, fn func([]string) ([]string, int), format string) {
		if !enabled {
			return
		}
		out, n := fn(res.Lines)
		res.Lines = out
		if n > 0 {
			res.Improvements = append(res.Improvements, fmt.Sprintf(format, n))
		}
	}

	step(opts.RemoveComments, RemoveComments, "Removed %d comments")
	step(opts.RemoveEmptyLines, RemoveEmptyLines, "Removed %d empty lines")
	step(opts.RemoveRedundantCodes, RemoveRedundantCodes, "Removed %d redundant modal codes")
	step(opts.ConsolidateGCodes, ConsolidateGCodes, "Consolidated %d modal G-code lines")
	step(opts.MinimizeAxisMovement, MinimizeAxisWords, "Removed unchanged axis words from %d moves")
	step(opts.RemoveRedundantMoves, func(in []string) ([]string, int) {
		out := toolpath.RemoveRedundantMoves(in)
		return out, len(in) - len(out)
	}, "Removed %d redundant moves")
	step(opts.OptimizeRapidMoves, MergeRapidMoves, "Merged %d superseded rapid moves")
	step(opts.UseArcOptimization, ArcsToRadius, "Converted %d arcs to radius format")

	if opts.SafetyChecks {
		res.Warnings = SafetyCheck(res.Lines)
	}
	return res
}

// RemoveComments удаляет строки-комментарии и комментарии в конце строк
func RemoveComments(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	n := 0
	for _, raw := range lines {
		l := program.Parse(raw)
		switch {
		case l.IsCommentOnly():
			n++
		case l.Comment != "":
			l.Comment = ""
			out = append(out, l.String())
			n++
		default:
			out = append(out, raw)
		}
	}
	return out, n
}

// RemoveEmptyLines удаляет пустые строки
func RemoveEmptyLines(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		if strings.TrimSpace(raw) != "" {
			out = append(out, raw)
		}
	}
	return out, len(lines) - len(out)
}

// RemoveRedundantCodes удаляет строки, повторно задающие уже активные модальные коды
func RemoveRedundantCodes(lines []string) ([]string, int) {
	active := make(map[int]float64)
	out := make([]string, 0, len(lines))
	n := 0
	for _, raw := range lines {
		l := program.Parse(raw)
		redundant := isModalOnly(l)
		for _, w := range l.Words {
			g := groupOf(w)
			if g < 0 {
				continue
			}
			if v, ok := active[g]; !ok || v != w.Value {
				redundant = false
			}
			active[g] = w.Value
		}
		if redundant {
			n++
			continue
		}
		out = append(out, raw)
	}
	return out, n
}

// ConsolidateGCodes объединяет соседние строки, содержащие только модальные G-коды
func ConsolidateGCodes(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	n := 0
	var pending []program.Word
	flush := func() {
		if len(pending) > 0 {
			out = append(out, program.Line{Words: pending}.String())
			pending = nil
		}
	}
	for _, raw := range lines {
		l := program.Parse(raw)
		if isModalOnly(l) {
			if len(pending) > 0 {
				n++
			}
			pending = append(pending, l.Words...)
			continue
		}
		flush()
		out = append(out, raw)
	}
	flush()
	return out, n
}

// MinimizeAxisWords удаляет из G0/G1 координаты, совпадающие с текущим положением.
// В режиме G91 удаляются только нулевые приращения.
func MinimizeAxisWords(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	st := program.NewState()
	n := 0
	for _, raw := range lines {
		l := program.Parse(raw)
		next := st.Apply(l)
		code, explicit := l.MotionCode()
		if !explicit {
			code = st.Motion
		}
		if (code != 0 && code != 1) || !l.HasAxis() || !st.IsMotion(l) {
			out = append(out, raw)
			st = next
			continue
		}

		reduced := l.Without(func(w program.Word) bool {
			if next.Relative {
				return (w.Letter == 'X' || w.Letter == 'Y' || w.Letter == 'Z') && w.Value == 0
			}
			var cur program.Value
			switch w.Letter {
			case 'X':
				cur = st.X
			case 'Y':
				cur = st.Y
			case 'Z':
				cur = st.Z
			default:
				return false
			}
			return cur.Set && cur.V == w.Value
		})
		if len(reduced.Words) == len(l.Words) {
			out = append(out, raw)
			st = next
			continue
		}
		n++
		if !reduced.HasAxis() && onlyMotionCode(reduced) && code == st.Motion && reduced.Comment == "" {
			st = next
			continue
		}
		out = append(out, reduced.String())
		st = next
	}
	return out, n
}

func onlyMotionCode(l program.Line) bool {
	for _, w := range l.Words {
		if !w.Is('G', 0) && !w.Is('G', 1) {
			return false
		}
	}
	return len(l.Malformed) == 0
}

// MergeRapidMoves удаляет ускоренное перемещение, которое сразу перекрывается следующим
// ускоренным перемещением по тем же осям. В режиме G91 перемещения не объединяются.
func MergeRapidMoves(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	states := program.Replay(lines)
	n := 0
	for i, raw := range lines {
		if i+1 < len(lines) && !states[i].Relative {
			cur, next := program.Parse(raw), program.Parse(lines[i+1])
			if pureRapid(cur) && pureRapid(next) && sameAxes(cur, next) {
				n++
				continue
			}
		}
		out = append(out, raw)
	}
	return out, n
}

func pureRapid(l program.Line) bool {
	if l.Comment != "" || len(l.Malformed) > 0 || !l.HasCode('G', 0) || !l.HasAxis() {
		return false
	}
	for _, w := range l.Words {
		switch w.Letter {
		case 'X', 'Y', 'Z':
		case 'G':
			if !w.Is('G', 0) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func sameAxes(a, b program.Line) bool {
	for _, axis := range []byte{'X', 'Y', 'Z'} {
		if a.Has(axis) != b.Has(axis) {
			return false
		}
	}
	return true
}

// ArcsToRadius заменяет центр дуги I/J на радиус R для дуг не более 180°
func ArcsToRadius(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	st := program.NewState()
	n := 0
	for _, raw := range lines {
		l := program.Parse(raw)
		next := st.Apply(l)
		code, ok := l.MotionCode()
		if !ok {
			code = st.Motion
		}
		if (code == 2 || code == 3) && l.Has('I') && l.Has('J') && !l.Has('R') && !l.Has('K') &&
			st.X.Set && st.Y.Set && next.X.Set && next.Y.Set {
			i, _ := l.Value('I')
			j, _ := l.Value('J')
			start := models.Point{X: st.X.V, Y: st.Y.V}
			end := models.Point{X: next.X.V, Y: next.Y.V}
			center := models.Point{X: start.X + i, Y: start.Y + j}
			sweep := geometry.SweepAngle(start, end, center, code == 2)
			if sweep <= math.Pi+1e-9 {
				r := math.Hypot(i, j)
				converted := l.Without(func(w program.Word) bool { return w.Letter == 'I' || w.Letter == 'J' })
				converted = insertBeforeFeed(converted, program.NewWord('R', r, 3))
				out = append(out, converted.String())
				n++
				st = next
				continue
			}
		}
		out = append(out, raw)
		st = next
	}
	return out, n
}

func insertBeforeFeed(l program.Line, w program.Word) program.Line {
	for i, cur := range l.Words {
		if cur.Letter == 'F' {
			words := append(append(append([]program.Word{}, l.Words[:i]...), w), l.Words[i:]...)
			l.Words = words
			return l
		}
	}
	return l.Append(w)
}

// SafetyCheck ищет подозрительные места программы; каждое правило срабатывает один раз
func SafetyCheck(lines []string) []string {
	var warnings []string
	st := program.NewState()
	var feedBeforeSpindle, rapidBelowZero, noRetract bool
	for i, raw := range lines {
		l := program.Parse(raw)
		code, ok := l.MotionCode()
		if !ok && st.IsMotion(l) {
			code, ok = st.Motion, true
		}
		if ok {
			switch code {
			case 1, 2, 3:
				if !st.Spindle && !feedBeforeSpindle && l.HasAxis() {
					feedBeforeSpindle = true
					warnings = append(warnings, fmt.Sprintf("Line %d: feed move before spindle start", i+1))
				}
			case 0:
				if z, has := l.Value('Z'); has && z < 0 && !st.Apply(l).Relative && !rapidBelowZero {
					rapidBelowZero = true
					warnings = append(warnings, fmt.Sprintf("Line %d: rapid move below Z0 (Z%s)", i+1, program.FormatNumber(z, -1)))
				}
				if (l.Has('X') || l.Has('Y')) && !st.Z.Set && !l.Has('Z') && !noRetract {
					noRetract = true
					warnings = append(warnings, fmt.Sprintf("Line %d: rapid XY move before any Z retract", i+1))
				}
			}
		}
		st = st.Apply(l)
	}
	return warnings
}
