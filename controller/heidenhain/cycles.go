package heidenhain

import (
	"fmt"

	"github.com/iwtcode/gcodeAdapter/program"
	"github.com/iwtcode/gcodeAdapter/toolpath"
)

// Значения по умолчанию для параметров циклов, которых нет в ISO-записи
const (
	secondClearance = 50.0
	retractFeed     = 99999.0
)

// drill переводит строку постоянного цикла G81/G83/G84: при изменении параметров
// определяет цикл заново, затем выполняет его в точке
func (t *translation) drill(l program.Line, code int) {
	c := t.cyc
	changed := !c.defined || c.code != code
	update := func(letter byte, dst *float64) {
		if v, ok := l.Value(letter); ok {
			if *dst != v {
				changed = true
			}
			*dst = v
		}
	}
	update('R', &c.r)
	update('Z', &c.z)
	update('F', &c.f)
	update('Q', &c.q)
	update('P', &c.p)
	c.code, c.defined = code, true
	t.cyc = c

	if changed {
		t.cycles++
		if t.opts.Heidenhain.UseCycleDefine {
			t.emit(cycleDefinition(c, t.st.S, t.feedWord)...)
		}
	}

	if !l.Has('X') && !l.Has('Y') {
		return
	}
	if !t.st.X.Set || !t.st.Y.Set {
		t.unconvertedLine(l.Raw)
		return
	}
	x, y := t.st.X.V, t.st.Y.V
	if t.opts.Heidenhain.UseCycleDefine {
		t.emit(fmt.Sprintf("L %s %s FMAX M99", axis('X', x, false), axis('Y', y, false)))
		return
	}
	t.emit(expandCycle(c, x, y, t.feedWord)...)
}

// cycleDefinition возвращает CYCL DEF с Q-параметрами; строки параметров начинаются с отступа
func cycleDefinition(c cycle, speed program.Value, feed func(float64) string) []string {
	depth := c.z
	q := func(n int, v float64, name string) string {
		return fmt.Sprintf("  Q%d=%s ;%s", n, signed(v), name)
	}
	qFeed := func(n int, v float64, name string) string {
		w := feed(v)
		if w[1] == 'Q' {
			return fmt.Sprintf("  Q%d=%s ;%s", n, w[1:], name)
		}
		return q(n, v, name)
	}
	dwell := c.p / 1000

	switch c.code {
	case 83:
		peck := c.q
		if peck <= 0 {
			peck = -depth
		}
		return []string{
			"CYCL DEF 203 UNIVERSAL DRILLING",
			q(200, c.r, "SET-UP CLEARANCE"),
			q(201, depth, "DEPTH"),
			qFeed(206, c.f, "FEED RATE FOR PLNGNG"),
			q(202, peck, "PLUNGING DEPTH"),
			q(210, 0, "DWELL TIME AT TOP"),
			q(203, 0, "SURFACE COORDINATE"),
			q(204, secondClearance, "2ND SET-UP CLEARANCE"),
			q(212, 0, "DECREMENT"),
			q(213, 0, "BREAKS"),
			q(205, 0, "MIN. PLUNGING DEPTH"),
			q(211, dwell, "DWELL TIME AT DEPTH"),
			q(208, retractFeed, "RETRACTION FEED RATE"),
		}
	case 84:
		pitch := c.f
		if speed.Set && speed.V > 0 {
			pitch = c.f / speed.V
		}
		return []string{
			"CYCL DEF 207 RIGID TAPPING",
			q(200, c.r, "SET-UP CLEARANCE"),
			q(201, depth, "DEPTH"),
			q(239, pitch, "THREAD PITCH"),
			q(203, 0, "SURFACE COORDINATE"),
			q(204, secondClearance, "2ND SET-UP CLEARANCE"),
		}
	default:
		return []string{
			"CYCL DEF 200 DRILLING",
			q(200, c.r, "SET-UP CLEARANCE"),
			q(201, depth, "DEPTH"),
			qFeed(206, c.f, "FEED RATE FOR PLNGNG"),
			q(202, -depth, "PLUNGING DEPTH"),
			q(210, 0, "DWELL TIME AT TOP"),
			q(203, 0, "SURFACE COORDINATE"),
			q(204, secondClearance, "2ND SET-UP CLEARANCE"),
			q(211, dwell, "DWELL TIME AT DEPTH"),
		}
	}
}

// expandCycle раскрывает цикл в явные перемещения для одной точки
func expandCycle(c cycle, x, y float64, feed func(float64) string) []string {
	z := func(v float64) string { return axis('Z', v, false) }
	out := []string{
		fmt.Sprintf("L %s %s FMAX", axis('X', x, false), axis('Y', y, false)),
		fmt.Sprintf("L %s FMAX", z(c.r)),
	}
	switch c.code {
	case 83:
		depths, err := toolpath.PassDepths(-c.z, c.q)
		if err != nil {
			depths = []float64{-c.z}
		}
		for _, d := range depths {
			out = append(out,
				fmt.Sprintf("L %s %s", z(-d), feed(c.f)),
				fmt.Sprintf("L %s FMAX", z(c.r)))
		}
		return out
	case 84:
		return append(out,
			fmt.Sprintf("L %s %s", z(c.z), feed(c.f)),
			fmt.Sprintf("L %s %s", z(c.r), feed(c.f)))
	default:
		return append(out,
			fmt.Sprintf("L %s %s", z(c.z), feed(c.f)),
			fmt.Sprintf("L %s FMAX", z(c.r)))
	}
}
