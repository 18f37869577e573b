package heidenhain

import (
	"fmt"
	"strings"

	"github.com/iwtcode/gcodeAdapter/program"
)

const (
	tcpmOn    = "FUNCTION TCPM F TCP AXIS POS PATHCTRL AXIS"
	tcpmReset = "FUNCTION TCPM RESET"
)

// isContinuation сообщает, что строка продолжает предыдущий кадр (Q-параметр цикла)
func isContinuation(block string) bool {
	return strings.HasPrefix(block, " ")
}

func isDrillPoint(block string) bool {
	return strings.HasPrefix(block, "L ") && strings.HasSuffix(block, " FMAX M99")
}

func isProgramEnd(block string) bool {
	return block == "M2" || strings.HasSuffix(block, " M2")
}

// endIndex возвращает индекс кадра с M2, а если его нет - индекс END PGM
func endIndex(blocks []string) int {
	for i := len(blocks) - 1; i >= 0; i-- {
		if isProgramEnd(blocks[i]) {
			return i
		}
	}
	for i := len(blocks) - 1; i >= 0; i-- {
		if strings.HasPrefix(blocks[i], "END PGM") {
			return i
		}
	}
	return len(blocks)
}

// InsertTCPM включает TCPM перед первым ускоренным перемещением после первого TOOL CALL
// и сбрасывает его перед окончанием программы
func InsertTCPM(blocks []string) ([]string, bool) {
	call := -1
	for i, b := range blocks {
		if strings.HasPrefix(b, "TOOL CALL") {
			call = i
			break
		}
	}
	if call < 0 {
		return blocks, false
	}

	on := program.Directive{Index: call, Position: program.InsertAfter, Lines: []string{tcpmOn}}
	for i := call + 1; i < len(blocks); i++ {
		if strings.HasPrefix(blocks[i], "L ") && strings.Contains(blocks[i], "FMAX") {
			on = program.Directive{Index: i, Position: program.InsertBefore, Lines: []string{tcpmOn}}
			break
		}
	}
	off := program.Directive{Index: endIndex(blocks), Position: program.InsertBefore, Lines: []string{tcpmReset}}
	return program.Apply(blocks, []program.Directive{on, off}), true
}

// GroupDrillPoints заменяет серии из двух и более точек выполнения цикла вызовом
// подпрограммы CALL LBL; подпрограммы размещаются после окончания программы
func GroupDrillPoints(blocks []string) (out []string, groups, points int) {
	var labels []string
	out = make([]string, 0, len(blocks))
	for i := 0; i < len(blocks); {
		j := i
		for j < len(blocks) && isDrillPoint(blocks[j]) {
			j++
		}
		if j-i < 2 {
			out = append(out, blocks[i])
			i++
			continue
		}
		groups++
		points += j - i
		out = append(out, fmt.Sprintf("CALL LBL %d", groups))
		labels = append(labels, fmt.Sprintf("LBL %d", groups))
		labels = append(labels, blocks[i:j]...)
		labels = append(labels, "LBL 0")
		i = j
	}
	if groups == 0 {
		return blocks, 0, 0
	}
	end := endIndex(out)
	if end < len(out) && isProgramEnd(out[end]) {
		return program.Apply(out, []program.Directive{{Index: end, Position: program.InsertAfter, Lines: labels}}), groups, points
	}
	return program.Apply(out, []program.Directive{{Index: end, Position: program.InsertBefore, Lines: labels}}), groups, points
}

// Number нумерует кадры с шагом step, начиная с 0; строки продолжения не нумеруются
func Number(blocks []string, step int) []string {
	if step <= 0 {
		step = 1
	}
	out := make([]string, 0, len(blocks))
	n := 0
	for _, b := range blocks {
		if isContinuation(b) {
			out = append(out, b)
			continue
		}
		out = append(out, fmt.Sprintf("%d %s", n, b))
		n += step
	}
	return out
}
