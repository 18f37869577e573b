package fanuc

import (
	"fmt"

	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/program"
)

const (
	// MaxLineLength - длина строки, на которую рассчитан буфер ЧПУ
	MaxLineLength = 128
	// MaxProgramLines - размер программы, после которого выдается предупреждение
	MaxProgramLines = 10000
)

// Validate проверяет программу на соответствие соглашениям Fanuc
func Validate(lines []string) models.Validation {
	var errs, warnings []string
	hasStart, hasEnd := false, false

	st := program.NewState()
	for i, raw := range lines {
		n := i + 1
		l := program.Parse(raw)
		if l.Percent {
			hasStart = true
		}
		if l.HasAnyCode('M', 30, 2) {
			hasEnd = true
		}
		if len(raw) > MaxLineLength {
			warnings = append(warnings, fmt.Sprintf("Line %d exceeds %d characters", n, MaxLineLength))
		}
		for _, frag := range l.Malformed {
			if c := frag[0] | 0x20; c >= 'a' && c <= 'z' {
				errs = append(errs, fmt.Sprintf("Line %d: malformed code %q", n, frag))
			} else {
				warnings = append(warnings, fmt.Sprintf("Line %d: unrecognized token %q", n, frag))
			}
		}

		code, ok := l.MotionCode()
		if !ok && l.HasAxis() {
			code, ok = st.Motion, true
		}
		if ok && (code == 2 || code == 3) && !l.Has('I') && !l.Has('J') && !l.Has('R') {
			errs = append(errs, fmt.Sprintf("Line %d: arc G%d without I, J or R", n, code))
		}
		st = st.Apply(l)
	}

	if !hasStart {
		warnings = append(warnings, "Missing program start marker (%)")
	}
	if !hasEnd {
		warnings = append(warnings, "Missing program end (M30 or M2)")
	}
	if len(lines) > MaxProgramLines {
		warnings = append(warnings, fmt.Sprintf("Program has %d lines, more than %d", len(lines), MaxProgramLines))
	}
	return models.NewValidation(errs, warnings)
}
