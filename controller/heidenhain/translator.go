// Package heidenhain переводит программу в формате ISO G-кода в диалоговый формат
// Heidenhain (нумерованные кадры L/CR, CYCL DEF, TOOL CALL).
package heidenhain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/iwtcode/gcodeAdapter/controller/generic"
	"github.com/iwtcode/gcodeAdapter/controller/model"
	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/optimizer"
	"github.com/iwtcode/gcodeAdapter/program"
)

const (
	// ProgramName - имя программы в BEGIN PGM / END PGM
	ProgramName = "WORKPIECE"
	// DefaultBlank - размер заготовки, если в комментариях нет "W x H x D"
	DefaultBlank = 100.0
	// DefaultRetract - высота отвода в конце программы, если в программе нет Z > 0
	DefaultRetract = 100.0
)

var blankPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+(?:\.\d+)?)\s*[xX×]\s*(\d+(?:\.\d+)?)`)

// Translator - постпроцессор Heidenhain
type Translator struct{}

// New создает постпроцессор Heidenhain
func New() *Translator {
	return &Translator{}
}

var _ model.Pipeline = (*Translator)(nil)

// Process переводит программу в диалоговый формат или, если он отключен, оставляет ISO G-код
func (t *Translator) Process(lines []string, opts models.OptimizationOptions) (model.Output, error) {
	if !opts.Heidenhain.UseConversationalFormat {
		base := optimizer.Optimize(lines, opts)
		return model.Output{
			Lines:         base.Lines,
			Improvements:  append(base.Improvements, "Conversational format disabled, ISO G-code kept"),
			MinorWarnings: base.Warnings,
			Validation:    generic.Validate(base.Lines),
		}, nil
	}

	// комментарии и шаг модальных кодов нужны переводчику
	pre := opts
	pre.RemoveComments = false
	pre.ConsolidateGCodes = false
	pre.UseArcOptimization = false
	base := optimizer.Optimize(lines, pre)

	tr := newTranslation(opts)
	blocks := tr.run(base.Lines)

	out := model.Output{
		Improvements:  append(base.Improvements, tr.improvements()...),
		MinorWarnings: base.Warnings,
	}

	if opts.Heidenhain.UseTCP || opts.UseTCPMode {
		var ok bool
		if blocks, ok = InsertTCPM(blocks); ok {
			out.Improvements = append(out.Improvements, "Added TCPM tool center point management")
		}
	}
	if opts.Heidenhain.UseFunctionBlocks {
		var groups, points int
		blocks, groups, points = GroupDrillPoints(blocks)
		if groups > 0 {
			out.Improvements = append(out.Improvements,
				fmt.Sprintf("Grouped %d drill points into %d label blocks", points, groups))
		}
	}

	step := 1
	if opts.ConsolidateGCodes {
		step = 5
		out.Improvements = append(out.Improvements, "Renumbered blocks in steps of 5")
	}
	out.Lines = Number(blocks, step)
	if tr.unconverted > 0 {
		out.MinorWarnings = append(out.MinorWarnings,
			fmt.Sprintf("%d lines could not be converted and were kept as comments", tr.unconverted))
	}
	out.Validation = Validate(out.Lines)
	return out, nil
}

// cycle - параметры постоянного цикла сверления
type cycle struct {
	code    int
	r, z, f float64
	q, p    float64
	defined bool
}

type translation struct {
	opts models.OptimizationOptions

	blocks []string
	unit   string
	blankW float64
	blankH float64
	blankD float64

	st          program.State
	incremental bool
	comp        string
	feed        float64
	feedPending bool

	tool     int
	nextTool int
	lastCall string
	cyc      cycle
	retract  float64
	ended    bool

	feedParams map[float64]int
	feedOrder  []float64

	unconverted int
	cycles      int
}

func newTranslation(opts models.OptimizationOptions) *translation {
	return &translation{
		opts:       opts,
		unit:       "MM",
		blankW:     DefaultBlank,
		blankH:     DefaultBlank,
		blankD:     DefaultBlank,
		st:         program.NewState(),
		tool:       1,
		nextTool:   1,
		feedParams: make(map[float64]int),
	}
}

func (t *translation) improvements() []string {
	out := []string{"Converted program to Heidenhain conversational format"}
	if t.cycles > 0 {
		if t.opts.Heidenhain.UseCycleDefine {
			out = append(out, fmt.Sprintf("Converted %d drilling cycles to CYCL DEF", t.cycles))
		} else {
			out = append(out, fmt.Sprintf("Expanded %d drilling cycles into explicit moves", t.cycles))
		}
	}
	if n := len(t.feedOrder); n > 0 {
		out = append(out, fmt.Sprintf("Declared %d feed rates as Q parameters", n))
	}
	return out
}

func (t *translation) emit(blocks ...string) {
	t.blocks = append(t.blocks, blocks...)
}

// scan собирает сведения, нужные до начала перевода: единицы, заготовку, первый
// инструмент и обороты, высоту отвода (только по абсолютным Z)
func (t *translation) scan(lines []string) (speed float64, hasSpeed bool) {
	maxZ, hasZ := 0.0, false
	blankFound, toolFound := false, false
	st := program.NewState()
	for _, raw := range lines {
		l := program.Parse(raw)
		st = st.Apply(l)
		if l.HasCode('G', 20) {
			t.unit = "INCH"
		}
		if !blankFound && l.Comment != "" {
			if m := blankPattern.FindStringSubmatch(l.Comment); m != nil {
				t.blankW, _ = strconv.ParseFloat(m[1], 64)
				t.blankH, _ = strconv.ParseFloat(m[2], 64)
				t.blankD, _ = strconv.ParseFloat(m[3], 64)
				blankFound = true
			}
		}
		if s, ok := l.Value('S'); ok && !hasSpeed {
			speed, hasSpeed = s, true
		}
		if tn, ok := l.Value('T'); ok && !toolFound {
			t.tool, t.nextTool = int(tn), int(tn)
			toolFound = true
		}
		if z, ok := l.Value('Z'); ok && !st.Relative && !l.HasAnyCode('G', 4, 81, 83, 84) && z > maxZ {
			maxZ, hasZ = z, true
		}
	}
	t.retract = DefaultRetract
	if hasZ {
		t.retract = maxZ
	}
	return speed, hasSpeed
}

func (t *translation) toolCall(speed float64, hasSpeed bool) string {
	call := fmt.Sprintf("TOOL CALL %d Z", t.tool)
	if hasSpeed {
		call += " S" + program.FormatNumber(speed, -1)
	}
	return call
}

// callTool добавляет TOOL CALL, если он отличается от последнего
func (t *translation) callTool() {
	call := t.toolCall(t.st.S.V, t.st.S.Set)
	if call != t.lastCall {
		t.emit(call)
		t.lastCall = call
	}
}

func (t *translation) run(lines []string) []string {
	speed, hasSpeed := t.scan(lines)

	t.emit(
		fmt.Sprintf("BEGIN PGM %s %s", ProgramName, t.unit),
		fmt.Sprintf("BLK FORM 0.1 Z %s %s %s", axis('X', 0, false), axis('Y', 0, false), axis('Z', -t.blankD, false)),
		fmt.Sprintf("BLK FORM 0.2 %s %s %s", axis('X', t.blankW, false), axis('Y', t.blankH, false), axis('Z', 0, false)),
	)
	declAt := len(t.blocks)
	t.lastCall = t.toolCall(speed, hasSpeed)
	t.emit(t.lastCall)

	for _, raw := range lines {
		t.line(raw)
	}
	t.emit(fmt.Sprintf("END PGM %s %s", ProgramName, t.unit))

	if len(t.feedOrder) > 0 {
		decls := make([]string, 0, len(t.feedOrder))
		for _, f := range t.feedOrder {
			decls = append(decls, fmt.Sprintf("FN 0: Q%d = %s", t.feedParams[f], signed(f)))
		}
		t.blocks = program.Apply(t.blocks, []program.Directive{{Index: declAt, Position: program.InsertBefore, Lines: decls}})
	}
	return t.blocks
}

// line переводит одну строку ISO G-кода
func (t *translation) line(raw string) {
	l := program.Parse(raw)
	if l.Percent || l.IsBlank() {
		return
	}
	if l.IsCommentOnly() {
		t.emit("; " + l.Comment)
		return
	}
	if t.ended {
		t.unconvertedLine(raw)
		return
	}

	unknown := len(l.Malformed) > 0
	motion := t.st.Motion
	if tn, ok := l.Value('T'); ok {
		t.nextTool = int(tn)
	}
	dwell, toolChange, coolant, end := false, false, false, false
	foreign := false // неизвестный G-код: перемещение не переводится
	spindle := ""
	var pre, post []string

	for _, w := range l.Words {
		switch w.Letter {
		case 'G':
			switch {
			case w.Is('G', 0), w.Is('G', 1), w.Is('G', 2), w.Is('G', 3):
				motion = int(w.Value)
			case w.Is('G', 81), w.Is('G', 83), w.Is('G', 84):
				motion = int(w.Value)
			case w.Is('G', 80):
				motion = program.NoMotion
				t.cyc.defined = false
			case w.Is('G', 4):
				dwell = true
			case w.Is('G', 90):
				t.incremental = false
			case w.Is('G', 91):
				t.incremental = true
			case w.Is('G', 40):
				t.comp = "R0"
			case w.Is('G', 41):
				t.comp = "RL"
			case w.Is('G', 42):
				t.comp = "RR"
			case w.Is('G', 41.2), w.Is('G', 42.2):
				if !t.opts.Heidenhain.UseRadiusCompensation3D {
					unknown = true
				} else if w.Is('G', 41.2) {
					t.comp = "RL"
				} else {
					t.comp = "RR"
				}
			case w.Is('G', 18):
				if t.opts.Heidenhain.UseSmartTurning {
					pre = append(pre, "FUNCTION MODE TURN")
				} else {
					unknown = true
				}
			case w.Value >= 54 && w.Value <= 59 && w.Value == math.Trunc(w.Value):
				pre = append(pre, datumSetting(int(w.Value)-53)...)
			case w.Is('G', 17), w.Is('G', 20), w.Is('G', 21), w.Is('G', 94),
				w.Is('G', 98), w.Is('G', 99), w.Is('G', 43), w.Is('G', 49):
				// не требуются в диалоговом формате
			default:
				unknown, foreign = true, true
			}
		case 'M':
			switch {
			case w.Is('M', 6):
				t.tool = t.nextTool
				toolChange = true
			case w.Is('M', 3), w.Is('M', 4):
				spindle = "M" + strconv.Itoa(int(w.Value))
			case w.Is('M', 5), w.Is('M', 9):
				post = append(post, "M"+strconv.Itoa(int(w.Value)))
			case w.Is('M', 7), w.Is('M', 8):
				coolant = true
			case w.Is('M', 30), w.Is('M', 2):
				end = true
			default:
				unknown = true
			}
		case 'X', 'Y', 'Z', 'I', 'J', 'K', 'R', 'F', 'S', 'T', 'H', 'P', 'Q', 'N':
		default:
			unknown = true
		}
	}

	before := t.st
	t.st = t.st.Apply(l)
	if dwell {
		// X в G4 - время, а не координата
		t.st.X = before.X
	}
	if f, ok := l.Value('F'); ok && !isCycle(motion) {
		t.feed, t.feedPending = f, true
	}

	t.emit(pre...)
	if toolChange || spindle != "" {
		t.callTool()
	}
	if spindle != "" {
		t.emit(spindle)
	}
	if coolant {
		t.emit("M8")
	}

	switch {
	case dwell:
		t.emit(dwellCycle(l)...)
	case isCycle(motion):
		if l.HasAxis() || l.HasAnyCode('G', 81, 83, 84) {
			t.drill(l, motion)
		}
	case (l.HasAxis() || isArc(motion) && (l.Has('I') || l.Has('J'))) && !foreign:
		if !t.move(l, motion, before) {
			unknown = true
		}
	}

	t.emit(post...)
	if end {
		t.emit(fmt.Sprintf("L %s R0 FMAX M2", axis('Z', t.retract, false)))
		t.ended = true
	}

	if unknown {
		t.unconvertedLine(raw)
	}
}

func (t *translation) unconvertedLine(raw string) {
	t.emit("; Unconverted: " + strings.TrimSpace(raw))
	t.unconverted++
}

// move добавляет кадр L или CR (полная окружность - CC и C/CP);
// false, если перемещение перевести нельзя
func (t *translation) move(l program.Line, motion int, before program.State) bool {
	coords := strings.Join(t.coords(l), " ")
	switch motion {
	case 0:
		t.emit(joinBlock("L", coords, t.takeComp(), "FMAX"))
	case 1:
		t.emit(joinBlock("L", coords, t.takeComp(), t.takeFeed()))
	case 2, 3:
		sign, dir := "-", "DR-"
		if motion == 3 {
			sign, dir = "+", "DR+"
		}
		if t.closedArc(l, before) {
			return t.fullCircle(l, before, sign, dir)
		}
		radius, ok := arcRadius(l)
		if !ok {
			return false
		}
		r := "R" + sign + program.FormatNumber(radius, 3)
		t.emit(joinBlock("CR", coords, r, dir, t.takeComp(), t.takeFeed()))
	default:
		return false
	}
	return true
}

// closedArc сообщает, что дуга заканчивается в начальной точке на плоскости XY
func (t *translation) closedArc(l program.Line, before program.State) bool {
	if t.incremental {
		dx, _ := l.Value('X')
		dy, _ := l.Value('Y')
		return dx == 0 && dy == 0
	}
	return before.X.Set && before.Y.Set && t.st.X.V == before.X.V && t.st.Y.V == before.Y.V
}

// fullCircle переводит замкнутую дугу с центром I/J: CC и C по окружности
// или CP IPA±360 для винтовой дуги со смещением по Z
func (t *translation) fullCircle(l program.Line, before program.State, sign, dir string) bool {
	if !l.Has('I') && !l.Has('J') {
		return false
	}
	i, _ := l.Value('I')
	j, _ := l.Value('J')

	var center, end []string
	dz := 0.0
	if t.incremental {
		center = []string{axis('X', i, true), axis('Y', j, true)}
		end = []string{axis('X', 0, true), axis('Y', 0, true)}
		dz, _ = l.Value('Z')
	} else {
		center = []string{axis('X', before.X.V+i, false), axis('Y', before.Y.V+j, false)}
		end = []string{axis('X', before.X.V, false), axis('Y', before.Y.V, false)}
		if z, ok := l.Value('Z'); ok {
			dz = z - before.Z.V
		}
	}

	t.emit("CC " + strings.Join(center, " "))
	if dz != 0 {
		t.emit(joinBlock("CP", "IPA"+sign+"360", axis('Z', dz, true), dir, t.takeComp(), t.takeFeed()))
		return true
	}
	t.emit(joinBlock("C", strings.Join(end, " "), dir, t.takeComp(), t.takeFeed()))
	return true
}

func (t *translation) coords(l program.Line) []string {
	var out []string
	for _, letter := range []byte{'X', 'Y', 'Z'} {
		if v, ok := l.Value(letter); ok {
			out = append(out, axis(letter, v, t.incremental))
		}
	}
	return out
}

func (t *translation) takeComp() string {
	c := t.comp
	t.comp = ""
	return c
}

func (t *translation) takeFeed() string {
	if !t.feedPending {
		return ""
	}
	t.feedPending = false
	return t.feedWord(t.feed)
}

func (t *translation) feedWord(f float64) string {
	if !t.opts.Heidenhain.UseParameterProgramming {
		return "F" + program.FormatNumber(f, -1)
	}
	n, ok := t.feedParams[f]
	if !ok {
		n = 101 + len(t.feedOrder)
		t.feedParams[f] = n
		t.feedOrder = append(t.feedOrder, f)
	}
	return "FQ" + strconv.Itoa(n)
}

func arcRadius(l program.Line) (float64, bool) {
	if r, ok := l.Value('R'); ok {
		return math.Abs(r), true
	}
	if !l.Has('I') && !l.Has('J') {
		return 0, false
	}
	i, _ := l.Value('I')
	j, _ := l.Value('J')
	return math.Hypot(i, j), true
}

func joinBlock(parts ...string) string {
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			words = append(words, p)
		}
	}
	return strings.Join(words, " ")
}

// axis форматирует координату в виде X+10.000 (IX+10.000 в приращениях)
func axis(letter byte, v float64, incremental bool) string {
	prefix := ""
	if incremental {
		prefix = "I"
	}
	return prefix + string(letter) + signed3(v)
}

func signed3(v float64) string {
	return withSign(program.FormatNumber(v, 3))
}

// signed форматирует число с обязательным знаком: +2, -5, +0.2
func signed(v float64) string {
	return withSign(program.FormatNumber(v, -1))
}

func withSign(s string) string {
	if strings.HasPrefix(s, "-") {
		return s
	}
	return "+" + s
}

func datumSetting(n int) []string {
	return []string{
		"CYCL DEF 247 DATUM SETTING",
		fmt.Sprintf("  Q339=%s ;DATUM NUMBER", signed(float64(n))),
	}
}

// dwellCycle переводит G4 P<мс> или G4 X<с> в цикл 9
func dwellCycle(l program.Line) []string {
	sec := 0.0
	if p, ok := l.Value('P'); ok {
		sec = p / 1000
	} else if x, ok := l.Value('X'); ok {
		sec = x
	}
	return []string{
		"CYCL DEF 9.0 DWELL TIME",
		"CYCL DEF 9.1 DWELL " + program.FormatNumber(sec, -1),
	}
}

func isArc(code int) bool {
	return code == 2 || code == 3
}

func isCycle(code int) bool {
	return code == 81 || code == 83 || code == 84
}
