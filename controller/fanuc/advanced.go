package fanuc

import (
	"fmt"
	"strings"

	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/program"
)

// AdvancedStats содержит счетчики продвинутого прохода
type AdvancedStats struct {
	ModalCodes int
	FeedSpeed  int
	Decimals   int
}

// Improvements возвращает описания ненулевых изменений
func (s AdvancedStats) Improvements() []string {
	var out []string
	if s.ModalCodes > 0 {
		out = append(out, fmt.Sprintf("Removed %d repeated modal G0/G1 codes", s.ModalCodes))
	}
	if s.FeedSpeed > 0 {
		out = append(out, fmt.Sprintf("Removed %d repeated feed/speed words", s.FeedSpeed))
	}
	if s.Decimals > 0 {
		out = append(out, fmt.Sprintf("Shortened %d numeric values", s.Decimals))
	}
	return out
}

// Advanced убирает повторные G0/G1, F и S, совпадающие с модальным состоянием,
// и сокращает запись чисел. Состояние, восстановленное по результату, совпадает с исходным.
func Advanced(lines []string, opts models.OptimizationOptions) ([]string, AdvancedStats) {
	var stats AdvancedStats
	out := make([]string, 0, len(lines))
	st := program.NewState()
	for _, raw := range lines {
		l := program.Parse(raw)
		next := st.Apply(l)
		if l.Percent || len(l.Words) == 0 {
			out = append(out, raw)
			st = next
			continue
		}

		res := l
		if opts.Fanuc.UseModalGCodes {
			if code, ok := l.MotionCode(); ok && (code == 0 || code == 1) && code == st.Motion {
				res = res.Without(func(w program.Word) bool { return w.Is('G', float64(code)) })
				stats.ModalCodes++
			}
		}
		if opts.OptimizeFeedrates {
			before := len(res.Words)
			res = res.Without(func(w program.Word) bool {
				switch w.Letter {
				case 'F':
					return st.F.Set && st.F.V == w.Value
				case 'S':
					return st.S.Set && st.S.V == w.Value
				}
				return false
			})
			stats.FeedSpeed += before - len(res.Words)
		}
		if opts.Fanuc.UseDecimalFormat {
			res = res.With(func(w program.Word) program.Word {
				if w.Letter == 'G' || w.Letter == 'M' {
					return w
				}
				if t := TrimDecimal(w.Text); t != w.Text {
					w.Text = t
					stats.Decimals++
				}
				return w
			})
		}

		st = next
		if len(res.Words) == 0 && len(res.Malformed) == 0 && res.Comment == "" {
			continue
		}
		if len(res.Words) == len(l.Words) && res.String() == l.String() {
			out = append(out, raw)
			continue
		}
		out = append(out, res.String())
	}
	return out, stats
}

// TrimDecimal убирает незначащие нули дробной части: 10.000 -> 10, 0.500 -> 0.5
func TrimDecimal(text string) string {
	if !strings.Contains(text, ".") {
		return text
	}
	t := strings.TrimRight(text, "0")
	t = strings.TrimSuffix(t, ".")
	switch t {
	case "", "-", "+", "-0", "+0":
		return "0"
	}
	return t
}

// Compact удаляет комментарии и пустые строки и ведущие нули в G/M-кодах (G01 -> G1)
func Compact(lines []string) ([]string, int) {
	out := make([]string, 0, len(lines))
	removed := 0
	for _, raw := range lines {
		l := program.Parse(raw)
		if l.Percent {
			out = append(out, raw)
			continue
		}
		if l.IsBlank() || l.IsCommentOnly() {
			removed++
			continue
		}
		l.Comment = ""
		l = l.With(func(w program.Word) program.Word {
			if w.Letter == 'G' || w.Letter == 'M' {
				w.Text = trimLeadingZeros(w.Text)
			}
			return w
		})
		out = append(out, l.String())
	}
	return out, removed
}

func trimLeadingZeros(text string) string {
	t := strings.TrimLeft(text, "0")
	if t == "" || t[0] == '.' {
		t = "0" + t
	}
	return t
}
