package program

// Value - необязательное числовое значение модального регистра
type Value struct {
	V   float64
	Set bool
}

// Equal сравнивает значения с учетом признака "не задано"
func (v Value) Equal(o Value) bool {
	if v.Set != o.Set {
		return false
	}
	return !v.Set || v.V == o.V
}

// NoMotion - модальный код движения не задан или отменен (G80)
const NoMotion = -1

// State - модальное состояние станка после выполнения строки
type State struct {
	X, Y, Z Value
	F, S    Value
	Motion  int // G0, G1, G2, G3 или код постоянного цикла (G73..G89); NoMotion после G80
	Spindle bool
	// Relative - режим приращений G91; координаты X, Y, Z складываются с текущим положением.
	// Положение, не заданное до G91, отсчитывается от нуля.
	Relative bool
}

// NewState возвращает начальное состояние
func NewState() State {
	return State{Motion: NoMotion}
}

// IsMotion сообщает, вызывает ли строка перемещение с учетом модального кода
func (s State) IsMotion(l Line) bool {
	if _, ok := l.MotionCode(); ok {
		return true
	}
	return l.HasAxis() && s.Motion != NoMotion
}

// Apply возвращает состояние после выполнения строки.
// G90/G91 действуют на координаты той же строки.
func (s State) Apply(l Line) State {
	for _, w := range l.Words {
		switch {
		case w.Is('G', 90):
			s.Relative = false
		case w.Is('G', 91):
			s.Relative = true
		}
	}
	for _, w := range l.Words {
		switch w.Letter {
		case 'X':
			s.X = s.move(s.X, w.Value)
		case 'Y':
			s.Y = s.move(s.Y, w.Value)
		case 'Z':
			s.Z = s.move(s.Z, w.Value)
		case 'F':
			s.F = Value{V: w.Value, Set: true}
		case 'S':
			s.S = Value{V: w.Value, Set: true}
		case 'G':
			switch {
			case w.Is('G', 0), w.Is('G', 1), w.Is('G', 2), w.Is('G', 3):
				s.Motion = int(w.Value)
			case w.Is('G', 80):
				s.Motion = NoMotion
			case w.Value >= 73 && w.Value <= 89 && w.Value == float64(int(w.Value)):
				s.Motion = int(w.Value)
			}
		case 'M':
			switch {
			case w.Is('M', 3), w.Is('M', 4):
				s.Spindle = true
			case w.Is('M', 5), w.Is('M', 30), w.Is('M', 2):
				s.Spindle = false
			}
		}
	}
	return s
}

func (s State) move(cur Value, v float64) Value {
	if s.Relative {
		return Value{V: cur.V + v, Set: true}
	}
	return Value{V: v, Set: true}
}

// SamePosition сообщает, совпадают ли координаты и подача двух состояний
func (s State) SamePosition(o State) bool {
	return s.X.Equal(o.X) && s.Y.Equal(o.Y) && s.Z.Equal(o.Z) && s.F.Equal(o.F)
}

// Replay возвращает состояния после каждой строки программы
func Replay(lines []string) []State {
	out := make([]State, 0, len(lines))
	st := NewState()
	for _, raw := range lines {
		st = st.Apply(Parse(raw))
		out = append(out, st)
	}
	return out
}
