package toolpath

import "github.com/iwtcode/gcodeAdapter/program"

// RemoveRedundantMoves удаляет строки G0/G1, которые повторяют активный код движения
// и после которых X, Y, Z (с учетом G91) и подача не меняются.
// Строки без перемещения сохраняются как есть. Повторный вызов результат не меняет.
func RemoveRedundantMoves(lines []string) []string {
	out := make([]string, 0, len(lines))
	st := program.NewState()
	for _, raw := range lines {
		l := program.Parse(raw)
		next := st.Apply(l)
		code, ok := l.MotionCode()
		if ok && (code == 0 || code == 1) && code == st.Motion && onlyMotionWords(l) && next.SamePosition(st) {
			continue
		}
		out = append(out, raw)
		st = next
	}
	return out
}

// onlyMotionWords сообщает, что строка не содержит ничего, кроме G0/G1, координат и подачи
func onlyMotionWords(l program.Line) bool {
	if l.Comment != "" || len(l.Malformed) > 0 {
		return false
	}
	for _, w := range l.Words {
		switch w.Letter {
		case 'X', 'Y', 'Z', 'F':
		case 'G':
			if !w.Is('G', 0) && !w.Is('G', 1) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
