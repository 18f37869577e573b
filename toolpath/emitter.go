package toolpath

import (
	"fmt"
	"math"
	"strings"

	"github.com/iwtcode/gcodeAdapter/geometry"
	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/pkg/errors"
	"github.com/iwtcode/gcodeAdapter/program"
)

// MaxPasses ограничивает число проходов по глубине для одной операции
const MaxPasses = 10000

// coordDecimals - точность вывода координат и глубин
const coordDecimals = 3

// PassDepths возвращает глубины всех проходов: min(pass*stepdown, depth).
// Если stepdown не задан или больше depth, выполняется один проход.
func PassDepths(depth, stepdown float64) ([]float64, error) {
	if depth <= 0 || math.IsNaN(depth) {
		return []float64{0}, nil
	}
	if stepdown <= 0 || stepdown > depth || math.IsNaN(stepdown) {
		stepdown = depth
	}
	ratio := depth / stepdown
	if math.IsInf(ratio, 0) || ratio > MaxPasses {
		return nil, fmt.Errorf("%w: depth=%g stepdown=%g", errors.ErrTooManyPasses, depth, stepdown)
	}
	passes := int(math.Ceil(ratio - 1e-9))
	if passes < 1 {
		passes = 1
	}
	depths := make([]float64, passes)
	for i := range depths {
		depths[i] = math.Min(float64(i+1)*stepdown, depth)
	}
	return depths, nil
}

// Emitter переводит одну операцию траектории в команды перемещения
type Emitter struct {
	params models.GenerationParams
}

// NewEmitter создает Emitter; отсутствующие параметры заменяются значениями по умолчанию
func NewEmitter(params models.GenerationParams) *Emitter {
	return &Emitter{params: params.WithDefaults()}
}

func coord(letter byte, v float64) program.Word {
	return program.NewWord(letter, v, coordDecimals)
}

// feed вставляет подачу без форматирования
func feed(v float64) program.Word {
	return program.NewWord('F', v, -1)
}

func move(code string, words ...program.Word) string {
	var b strings.Builder
	b.WriteString(code)
	for _, w := range words {
		b.WriteByte(' ')
		b.WriteString(w.String())
	}
	return b.String()
}

// Emit возвращает строки G-кода для операции, включая все проходы по глубине
func (e *Emitter) Emit(op models.ToolpathOperation) ([]string, error) {
	p := e.params
	out := []string{move("G0", coord('Z', p.SafeHeight))}
	if len(op.Points) == 0 {
		return out, nil
	}

	depths, err := PassDepths(op.Depth, op.Stepdown)
	if err != nil {
		return nil, err
	}

	first := op.Points[0]
	out = append(out, move("G0", coord('X', first.X), coord('Y', first.Y)))

	prevZ := 0.0
	for i, d := range depths {
		z := -d
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, e.entry(op, z, prevZ)...)
		out = append(out, e.contour(op.Points, z)...)
		out = append(out, e.exit(op, z)...)
		prevZ = z
	}
	return out, nil
}

func (e *Emitter) toolRadius(op models.ToolpathOperation) float64 {
	if op.ToolDiameter > 0 {
		return op.ToolDiameter / 2
	}
	return e.params.Tool.Diameter / 2
}

func (e *Emitter) entry(op models.ToolpathOperation, z, prevZ float64) []string {
	p := e.params
	first := op.Points[0]

	switch op.EntryType {
	case models.EntryHelix:
		r := e.toolRadius(op)
		return []string{
			move("G0", coord('Z', p.SafeHeight)),
			move("G0", coord('X', first.X+r), coord('Y', first.Y)),
			move("G1", coord('Z', 0), feed(p.Plungerate)),
			move("G3", coord('X', first.X+r), coord('Y', first.Y), coord('Z', z),
				coord('I', -r), coord('J', 0), feed(p.Plungerate)),
			move("G1", coord('X', first.X), coord('Y', first.Y), feed(p.Feedrate)),
		}
	case models.EntryRamp:
		if len(op.Points) < 2 {
			return e.directEntry(first, z)
		}
		second := op.Points[1]
		return []string{
			move("G0", coord('Z', p.SafeHeight)),
			move("G0", coord('X', first.X), coord('Y', first.Y)),
			move("G1", coord('Z', prevZ), feed(p.Plungerate)),
			move("G1", coord('X', second.X), coord('Y', second.Y), coord('Z', z), feed(p.Plungerate)),
			move("G1", coord('X', first.X), coord('Y', first.Y), coord('Z', z), feed(p.Feedrate)),
		}
	case models.EntryDirect:
		return e.directEntry(first, z)
	default:
		return []string{move("G1", coord('Z', z), feed(p.Plungerate))}
	}
}

func (e *Emitter) directEntry(first models.Point, z float64) []string {
	p := e.params
	return []string{
		move("G0", coord('Z', p.SafeHeight)),
		move("G0", coord('X', first.X), coord('Y', first.Y)),
		move("G1", coord('Z', z), feed(p.Plungerate)),
	}
}

// contour обходит точки операции, заменяя тройки точек дугами, где это возможно
func (e *Emitter) contour(pts []models.Point, z float64) []string {
	p := e.params
	var out []string
	for i := 1; i < len(pts); {
		if i+1 < len(pts) && geometry.CanFormArc(pts[i-1], pts[i], pts[i+1], p.ArcTolerance) {
			center, ok := geometry.Circumcenter(pts[i-1], pts[i], pts[i+1])
			if ok {
				code := "G3"
				if geometry.IsClockwise(pts[i-1], pts[i], pts[i+1]) {
					code = "G2"
				}
				start, end := pts[i-1], pts[i+1]
				out = append(out, move(code, coord('X', end.X), coord('Y', end.Y), coord('Z', z),
					coord('I', center.X-start.X), coord('J', center.Y-start.Y), feed(p.Feedrate)))
				i += 2
				continue
			}
		}
		out = append(out, move("G1", coord('X', pts[i].X), coord('Y', pts[i].Y), coord('Z', z), feed(p.Feedrate)))
		i++
	}
	return out
}

func (e *Emitter) exit(op models.ToolpathOperation, z float64) []string {
	p := e.params
	pts := op.Points
	switch op.ExitType {
	case models.ExitLoop:
		return []string{move("G1", coord('X', pts[0].X), coord('Y', pts[0].Y), coord('Z', z), feed(p.Feedrate))}
	case models.ExitRamp:
		if len(pts) < 2 {
			return nil
		}
		last, prev := pts[len(pts)-1], pts[len(pts)-2]
		length := geometry.Distance(prev, last)
		if length == 0 {
			return nil
		}
		dist := op.ExitDistance
		if dist <= 0 {
			dist = e.toolRadius(op)
		}
		ux, uy := (last.X-prev.X)/length, (last.Y-prev.Y)/length
		return []string{move("G1", coord('X', last.X+ux*dist), coord('Y', last.Y+uy*dist), coord('Z', 0), feed(p.Feedrate))}
	default:
		return nil
	}
}
