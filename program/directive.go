package program

import "sort"

// Anchor определяет, куда вставлять строки относительно якорной строки
type Anchor int

const (
	InsertBefore Anchor = iota
	InsertAfter
)

// Directive описывает вставку строк относительно строки с индексом Index.
// Index == len(lines) с InsertBefore означает добавление в конец.
type Directive struct {
	Index    int
	Position Anchor
	Lines    []string
}

// Apply применяет все директивы за один проход к неизменяемому списку строк.
// Индексы директив относятся к исходному списку, поэтому порядок применения не важен.
// При нескольких директивах на одну позицию сохраняется порядок их объявления.
func Apply(lines []string, directives []Directive) []string {
	if len(directives) == 0 {
		return append([]string(nil), lines...)
	}
	ds := append([]Directive(nil), directives...)
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Index < ds[j].Index })

	before := make(map[int][]string)
	after := make(map[int][]string)
	extra := 0
	for _, d := range ds {
		idx := d.Index
		if idx < 0 {
			idx = 0
		}
		if idx > len(lines) {
			idx = len(lines)
		}
		if d.Position == InsertAfter && idx < len(lines) {
			after[idx] = append(after[idx], d.Lines...)
		} else {
			before[idx] = append(before[idx], d.Lines...)
		}
		extra += len(d.Lines)
	}

	out := make([]string, 0, len(lines)+extra)
	for i, l := range lines {
		out = append(out, before[i]...)
		out = append(out, l)
		out = append(out, after[i]...)
	}
	out = append(out, before[len(lines)]...)
	return out
}
