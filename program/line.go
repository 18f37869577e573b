// Package program разбирает текст управляющей программы на строки и слова
// ({буква, значение}) и отслеживает модальное состояние станка.
package program

import (
	"math"
	"strconv"
	"strings"
)

// Word - одно адресное слово G-кода, например G1, X10.5, F1000
type Word struct {
	Letter byte
	Value  float64
	Text   string // число в исходной записи
}

// String возвращает слово в исходной записи
func (w Word) String() string {
	return string(w.Letter) + w.Text
}

// Is сообщает, совпадает ли слово с кодом letter+value (G0 == G00, но G0 != G05.1)
func (w Word) Is(letter byte, value float64) bool {
	return w.Letter == letter && math.Abs(w.Value-value) < 1e-9
}

// Line содержит разобранную строку программы
type Line struct {
	Raw       string
	Words     []Word
	Comment   string   // текст комментария без ';' и скобок
	Percent   bool     // строка-маркер '%'
	Malformed []string // фрагменты, которые не удалось разобрать как слова
}

// Split разбивает текст программы на строки (CRLF нормализуется)
func Split(code string) []string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	if code == "" {
		return []string{}
	}
	return strings.Split(code, "\n")
}

// Join собирает строки обратно в текст
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// CountLines возвращает фактическое число строк текста
func CountLines(code string) int {
	return len(Split(code))
}

// Parse разбирает строку G-кода
func Parse(raw string) Line {
	l := Line{Raw: raw}
	s := strings.TrimSpace(raw)
	if s == "%" {
		l.Percent = true
		return l
	}

	var comments []string
	var body strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case ';':
			comments = append(comments, strings.TrimSpace(s[i+1:]))
			i = len(s)
		case '(':
			end := strings.IndexByte(s[i:], ')')
			if end < 0 {
				comments = append(comments, strings.TrimSpace(s[i+1:]))
				i = len(s)
			} else {
				comments = append(comments, strings.TrimSpace(s[i+1:i+end]))
				i += end
			}
		default:
			body.WriteByte(c)
		}
	}
	l.Comment = strings.Join(comments, " ")

	b := body.String()
	for i := 0; i < len(b); {
		c := b[i]
		if c == ' ' || c == '\t' {
			i++
			continue
		}
		letter := upper(c)
		if letter < 'A' || letter > 'Z' {
			j := i + 1
			for j < len(b) && b[j] != ' ' && b[j] != '\t' && !isLetter(b[j]) {
				j++
			}
			l.Malformed = append(l.Malformed, b[i:j])
			i = j
			continue
		}
		j := i + 1
		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			j++
		}
		for j < len(b) && (isDigit(b[j]) || b[j] == '.') {
			j++
		}
		text := b[i+1 : j]
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			l.Malformed = append(l.Malformed, b[i:j])
			i = j
			continue
		}
		l.Words = append(l.Words, Word{Letter: letter, Value: v, Text: text})
		if letter == 'G' && strings.Contains(text, ".") && j < len(b) && b[j] != ' ' && b[j] != '\t' {
			// G<int>.<дробь> сразу за которым идет не число
			l.Malformed = append(l.Malformed, b[i:j+1])
		}
		i = j
	}
	return l
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isLetter(c byte) bool {
	c = upper(c)
	return c >= 'A' && c <= 'Z'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsBlank сообщает, что строка пустая
func (l Line) IsBlank() bool {
	return strings.TrimSpace(l.Raw) == ""
}

// IsCommentOnly сообщает, что строка содержит только комментарий
func (l Line) IsCommentOnly() bool {
	return !l.Percent && len(l.Words) == 0 && len(l.Malformed) == 0 && l.Comment != ""
}

// Get возвращает первое слово с буквой letter
func (l Line) Get(letter byte) (Word, bool) {
	for _, w := range l.Words {
		if w.Letter == letter {
			return w, true
		}
	}
	return Word{}, false
}

// Value возвращает значение первого слова с буквой letter
func (l Line) Value(letter byte) (float64, bool) {
	w, ok := l.Get(letter)
	return w.Value, ok
}

// Has сообщает, есть ли в строке слово с буквой letter
func (l Line) Has(letter byte) bool {
	_, ok := l.Get(letter)
	return ok
}

// HasCode сообщает, есть ли в строке код letter+value (например G90 или M30)
func (l Line) HasCode(letter byte, value float64) bool {
	for _, w := range l.Words {
		if w.Is(letter, value) {
			return true
		}
	}
	return false
}

// HasAnyCode сообщает, есть ли в строке хотя бы один из кодов letter+values
func (l Line) HasAnyCode(letter byte, values ...float64) bool {
	for _, v := range values {
		if l.HasCode(letter, v) {
			return true
		}
	}
	return false
}

// HasAxis сообщает, есть ли в строке координаты X, Y или Z
func (l Line) HasAxis() bool {
	return l.Has('X') || l.Has('Y') || l.Has('Z')
}

// MotionCode возвращает код движения G0..G3, если он явно указан в строке
func (l Line) MotionCode() (int, bool) {
	for _, w := range l.Words {
		if w.Letter != 'G' {
			continue
		}
		for _, m := range []float64{0, 1, 2, 3} {
			if w.Is('G', m) {
				return int(m), true
			}
		}
	}
	return -1, false
}

// Without возвращает копию строки без слов, для которых drop вернул true
func (l Line) Without(drop func(Word) bool) Line {
	out := l
	out.Words = make([]Word, 0, len(l.Words))
	for _, w := range l.Words {
		if !drop(w) {
			out.Words = append(out.Words, w)
		}
	}
	return out
}

// With возвращает копию строки, в которой слова заменены результатом fn
func (l Line) With(fn func(Word) Word) Line {
	out := l
	out.Words = make([]Word, len(l.Words))
	for i, w := range l.Words {
		out.Words[i] = fn(w)
	}
	return out
}

// Append возвращает копию строки с добавленными словами
func (l Line) Append(words ...Word) Line {
	out := l
	out.Words = append(append([]Word{}, l.Words...), words...)
	return out
}

// String собирает строку из слов; комментарий сохраняется в виде "; текст"
func (l Line) String() string {
	if l.Percent {
		return "%"
	}
	parts := make([]string, 0, len(l.Words)+1)
	for _, w := range l.Words {
		parts = append(parts, w.String())
	}
	parts = append(parts, l.Malformed...)
	if l.Comment != "" {
		parts = append(parts, "; "+l.Comment)
	}
	return strings.Join(parts, " ")
}

// NewWord создает слово с числом, отформатированным через FormatNumber
func NewWord(letter byte, value float64, decimals int) Word {
	return Word{Letter: letter, Value: value, Text: FormatNumber(value, decimals)}
}

// FormatNumber форматирует число с фиксированным количеством знаков;
// decimals < 0 означает минимальную точную запись
func FormatNumber(v float64, decimals int) string {
	if v == 0 {
		v = 0 // -0 -> 0
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if s == "-0" || strings.HasPrefix(s, "-0.") && strings.Trim(s[3:], "0") == "" {
		s = s[1:]
	}
	return s
}
