package heidenhain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwtcode/gcodeAdapter/models"
)

// mnemonics - допустимые первые слова нумерованного кадра
var mnemonics = map[string]bool{
	"L": true, "CR": true, "CC": true, "C": true, "CP": true, "CYCL": true, "LBL": true, "CALL": true,
	"TOOL": true, "BLK": true, "BEGIN": true, "END": true, "FN": true, "FUNCTION": true,
}

func knownMnemonic(word string) bool {
	if mnemonics[word] || strings.HasPrefix(word, ";") {
		return true
	}
	if len(word) > 1 && (word[0] == 'M' || word[0] == 'Q') {
		_, err := strconv.Atoi(strings.SplitN(word[1:], "=", 2)[0])
		return err == nil
	}
	return false
}

// Validate проверяет программу в диалоговом формате
func Validate(lines []string) models.Validation {
	var errs, warnings []string
	hasBegin, hasEnd, hasTool := false, false, false

	for i, raw := range lines {
		n := i + 1
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if strings.Contains(s, "BEGIN PGM") {
			hasBegin = true
		}
		if strings.Contains(s, "END PGM") {
			hasEnd = true
		}
		if strings.Contains(s, "TOOL CALL") {
			hasTool = true
		}

		fields := strings.Fields(s)
		if _, err := strconv.Atoi(fields[0]); err != nil {
			if isContinuation(raw) && fields[0][0] == 'Q' {
				continue
			}
			warnings = append(warnings, fmt.Sprintf("Line %d: block without number", n))
			continue
		}
		if len(fields) < 2 || !knownMnemonic(fields[1]) {
			warnings = append(warnings, fmt.Sprintf("Line %d: unrecognized block %q", n, s))
		}
	}

	if !hasBegin {
		errs = append(errs, "Missing BEGIN PGM")
	}
	if !hasEnd {
		errs = append(errs, "Missing END PGM")
	}
	if !hasTool {
		warnings = append(warnings, "No TOOL CALL found")
	}
	return models.NewValidation(errs, warnings)
}
