// Package generic реализует постпроцессор для систем ЧПУ без собственного диалекта
// (Siemens, Mazak, Okuma и обобщенный G-код): только базовая оптимизация.
package generic

import (
	"fmt"
	"strings"

	"github.com/iwtcode/gcodeAdapter/controller/model"
	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/optimizer"
	"github.com/iwtcode/gcodeAdapter/program"
)

// Processor - постпроцессор обобщенного G-кода
type Processor struct {
	controller models.ControllerType
}

// New создает постпроцессор; controller указывается в заголовке программы
func New(controller models.ControllerType) *Processor {
	if controller == "" {
		controller = models.ControllerGeneric
	}
	return &Processor{controller: controller}
}

var _ model.Pipeline = (*Processor)(nil)

// Header возвращает строку-комментарий с названием системы ЧПУ
func Header(controller models.ControllerType) string {
	name := string(controller)
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	return fmt.Sprintf("; Post-processed for %s controller", name)
}

// Process выполняет базовую оптимизацию и добавляет заголовок с названием системы ЧПУ
func (p *Processor) Process(lines []string, opts models.OptimizationOptions) (model.Output, error) {
	base := optimizer.Optimize(lines, opts)

	at := program.Directive{Index: 0, Position: program.InsertBefore, Lines: []string{Header(p.controller)}}
	if len(base.Lines) > 0 && program.Parse(base.Lines[0]).Percent {
		at.Index, at.Position = 0, program.InsertAfter
	}
	out := program.Apply(base.Lines, []program.Directive{at})

	return model.Output{
		Lines:         out,
		Improvements:  base.Improvements,
		MinorWarnings: base.Warnings,
		Validation:    Validate(out),
	}, nil
}

// Validate проверяет программу в формате ISO G-кода: нераспознанные слова - ошибки,
// отсутствие окончания программы - предупреждение
func Validate(lines []string) models.Validation {
	var errs, warnings []string
	hasEnd := false
	for i, raw := range lines {
		l := program.Parse(raw)
		if l.HasAnyCode('M', 30, 2) {
			hasEnd = true
		}
		for _, frag := range l.Malformed {
			errs = append(errs, fmt.Sprintf("Line %d: malformed code %q", i+1, frag))
		}
	}
	if !hasEnd {
		warnings = append(warnings, "Missing program end (M30 or M2)")
	}
	return models.NewValidation(errs, warnings)
}
