// Package toolpath генерирует управляющую программу из траектории:
// проходы по глубине, стратегии врезания/выхода и аппроксимацию дугами.
package toolpath

import (
	"fmt"
	"io"
	"time"

	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/pkg/errors"
	"github.com/iwtcode/gcodeAdapter/program"
	"github.com/sirupsen/logrus"
)

const banner = "G-code generated by gcodeAdapter"

// Generator собирает заголовок, инициализацию, тело и завершение программы
type Generator struct {
	logger   logrus.FieldLogger
	maxLines int
	now      func() time.Time
}

// NewGenerator создает генератор. maxLines <= 0 отключает ограничение размера программы.
func NewGenerator(logger logrus.FieldLogger, maxLines int) *Generator {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Generator{
		logger:   logger,
		maxLines: maxLines,
		now:      time.Now,
	}
}

// Generate возвращает текст программы для траектории
func (g *Generator) Generate(tp models.Toolpath, params models.GenerationParams) (string, error) {
	p := params.WithDefaults()
	emitter := NewEmitter(p)

	lines := g.header(tp, p)
	lines = append(lines, g.initialization(p)...)

	if len(tp.Operations) == 0 {
		g.logger.WithField("toolpath", tp.Name).Warn("Toolpath has no operations, generating empty program")
	}

	for i, op := range tp.Operations {
		body, err := emitter.Emit(op)
		if err != nil {
			return "", errors.NewPipelineError("generic", errors.StageGenerate,
				fmt.Errorf("operation %d (%s): %w", i+1, op.Type, err))
		}
		lines = append(lines, "", fmt.Sprintf("; Operation %d: %s", i+1, op.Type))
		lines = append(lines, body...)

		g.logger.WithFields(logrus.Fields{
			"operation": i + 1,
			"type":      op.Type,
			"points":    len(op.Points),
			"lines":     len(body),
		}).Debug("Operation emitted")

		if g.maxLines > 0 && len(lines) > g.maxLines {
			return "", errors.NewPipelineError("generic", errors.StageGuardLimit,
				fmt.Errorf("%w: more than %d lines after operation %d", errors.ErrProgramTooLarge, g.maxLines, i+1))
		}
	}

	lines = append(lines, g.footer(p)...)

	if p.Optimization.RemoveRedundantMoves {
		before := len(lines)
		lines = RemoveRedundantMoves(lines)
		g.logger.WithField("removed", before-len(lines)).Debug("Redundant moves removed")
	}

	return program.Join(lines), nil
}

func (g *Generator) header(tp models.Toolpath, p models.GenerationParams) []string {
	unit := "mm"
	if p.UseInches {
		unit = "in"
	}
	material := "Unknown"
	if tp.Workpiece != nil && tp.Workpiece.Material != "" {
		material = tp.Workpiece.Material
	}
	coolant := "Off"
	if p.Coolant {
		coolant = "On"
	}

	lines := []string{
		"%",
		"; ========================================",
		"; " + banner,
		"; ========================================",
		"; Toolpath: " + tp.Name,
		"; Generated: " + g.now().Format(time.RFC3339),
		"; Machine: " + p.MachineType,
		fmt.Sprintf("; Tool: %s, D%s%s, %s", p.Tool.Name, program.FormatNumber(p.Tool.Diameter, coordDecimals), unit, p.Tool.Type),
		"; Material: " + material,
	}
	if wp := tp.Workpiece; wp != nil && wp.Width > 0 && wp.Height > 0 && wp.Thickness > 0 {
		lines = append(lines, fmt.Sprintf("; Workpiece: %s x %s x %s %s",
			program.FormatNumber(wp.Width, -1), program.FormatNumber(wp.Height, -1),
			program.FormatNumber(wp.Thickness, -1), unit))
	}
	lines = append(lines,
		fmt.Sprintf("; Feed rate: %s %s/min", program.FormatNumber(p.Feedrate, -1), unit),
		fmt.Sprintf("; Plunge rate: %s %s/min", program.FormatNumber(p.Plungerate, -1), unit),
		fmt.Sprintf("; Spindle speed: %s RPM", program.FormatNumber(p.SpindleSpeed, -1)),
		"; Coolant: "+coolant,
	)
	return lines
}

func (g *Generator) initialization(p models.GenerationParams) []string {
	units := "G21"
	if p.UseInches {
		units = "G20"
	}
	lines := []string{
		"",
		units,
		"G90",
		"G17",
		"G94",
		p.CoordinateSystem,
		"M3 S" + program.FormatNumber(p.SpindleSpeed, -1),
	}
	if p.Coolant {
		lines = append(lines, "M8")
	}
	return append(lines, move("G0", coord('Z', p.ClearanceHeight)))
}

func (g *Generator) footer(p models.GenerationParams) []string {
	lines := []string{
		"",
		move("G0", coord('Z', p.ClearanceHeight)),
		"M5",
	}
	if p.Coolant {
		lines = append(lines, "M9")
	}
	return append(lines, "M30", "%")
}
