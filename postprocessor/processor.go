// Package postprocessor направляет программу в постпроцессор нужной системы ЧПУ
// и гарантирует, что при любой внутренней ошибке вызывающий получит исходный код без изменений.
package postprocessor

import (
	"fmt"
	"io"
	"math"

	"github.com/iwtcode/gcodeAdapter/controller/model"
	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/pkg/errors"
	"github.com/iwtcode/gcodeAdapter/program"
	"github.com/sirupsen/logrus"
)

// blockOverheadShare - доля времени обработки, приходящаяся на разбор и подготовку кадров
const blockOverheadShare = 0.5

// Processor - диспетчер постпроцессоров
type Processor struct {
	logger   logrus.FieldLogger
	registry map[models.ControllerType]model.Pipeline
	maxLines int
}

// New создает диспетчер с постпроцессорами по умолчанию.
// maxLines <= 0 отключает ограничение размера входной программы.
func New(logger logrus.FieldLogger, maxLines int) *Processor {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Processor{
		logger:   logger,
		registry: DefaultRegistry(),
		maxLines: maxLines,
	}
}

// Register заменяет постпроцессор для системы ЧПУ
func (p *Processor) Register(controller models.ControllerType, pipeline model.Pipeline) {
	p.registry[controller] = pipeline
}

// Process обрабатывает программу для указанной системы ЧПУ.
// Ошибки и паники постпроцессора не передаются вызывающему: в этом случае
// возвращается исходный код с одним серьезным предупреждением.
func (p *Processor) Process(code string, controller models.ControllerType, opts models.OptimizationOptions) models.OptimizationResult {
	lines := program.Split(code)
	log := p.logger.WithFields(logrus.Fields{
		"controller": controller,
		"lines":      len(lines),
	})

	if p.maxLines > 0 && len(lines) > p.maxLines {
		err := errors.NewPipelineError(string(controller), errors.StageGuardLimit,
			fmt.Errorf("%w: %d lines, limit %d", errors.ErrProgramTooLarge, len(lines), p.maxLines))
		log.WithError(err).Error("Program rejected by size guard")
		return failSoft(code, len(lines), err)
	}

	var minor []string
	ct, err := ParseController(string(controller))
	if err != nil {
		minor = append(minor, fmt.Sprintf("Unknown controller type %q, using generic post-processing", controller))
		log.WithError(err).Warn("Falling back to generic post-processing")
	}
	pipeline, ok := p.registry[ct]
	if !ok {
		pipeline = GetPipeline(ct)
	}

	out, err := run(pipeline, ct, lines, opts)
	if err != nil {
		log.WithError(err).Error("Post-processing failed, returning original program")
		return failSoft(code, len(lines), err)
	}

	result := program.Join(out.Lines)
	optimized := program.CountLines(result)
	stats := models.OptimizationStats{
		OriginalLines:          len(lines),
		OptimizedLines:         optimized,
		ReductionPercent:       reductionPercent(len(lines), optimized),
		EstimatedTimeReduction: estimateTimeReduction(lines, out.Lines),
		MinorWarnings:          append(minor, out.MinorWarnings...),
		MajorWarnings:          []string{},
	}
	if stats.MinorWarnings == nil {
		stats.MinorWarnings = []string{}
	}
	improvements := out.Improvements
	if improvements == nil {
		improvements = []string{}
	}

	log.WithFields(logrus.Fields{
		"optimized_lines": optimized,
		"reduction":       stats.ReductionPercent,
		"valid":           out.Validation.IsValid,
	}).Info("Program post-processed")

	return models.OptimizationResult{
		Code:         result,
		Improvements: improvements,
		Stats:        stats,
		Validation:   out.Validation,
	}
}

// run вызывает постпроцессор, превращая панику в ошибку
func run(pipeline model.Pipeline, controller models.ControllerType, lines []string, opts models.OptimizationOptions) (out model.Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewPipelineError(string(controller), errors.StageRecovered,
				fmt.Errorf("%w: %v", errors.ErrUnexpectedPanic, r))
		}
	}()
	out, err = pipeline.Process(append([]string(nil), lines...), opts)
	if err != nil {
		return out, errors.NewPipelineError(string(controller), errors.StageDispatch, err)
	}
	if out.Validation.Errors == nil && out.Validation.Warnings == nil {
		out.Validation = models.NewValidation(nil, nil)
	}
	return out, nil
}

// failSoft возвращает исходную программу без изменений
func failSoft(code string, lines int, err error) models.OptimizationResult {
	return models.OptimizationResult{
		Code:         code,
		Improvements: []string{},
		Stats: models.OptimizationStats{
			OriginalLines:  lines,
			OptimizedLines: lines,
			MinorWarnings:  []string{},
			MajorWarnings:  []string{fmt.Sprintf("Post-processing failed, original program returned: %v", err)},
		},
		Validation: models.NewValidation(nil, nil),
	}
}

func reductionPercent(original, optimized int) float64 {
	if original == 0 {
		return 0
	}
	return round(float64(original-optimized)/float64(original)*100, 2)
}

// estimateTimeReduction оценивает сокращение времени обработки по числу исполняемых кадров
func estimateTimeReduction(before, after []string) float64 {
	b, a := executable(before), executable(after)
	if b == 0 || a >= b {
		return 0
	}
	return round(float64(b-a)/float64(b)*100*blockOverheadShare, 1)
}

func executable(lines []string) int {
	n := 0
	for _, raw := range lines {
		l := program.Parse(raw)
		if len(l.Words) > 0 {
			n++
		}
	}
	return n
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
