package model

import (
	"github.com/iwtcode/gcodeAdapter/models"
)

// Output - результат обработки программы конкретной системой ЧПУ
type Output struct {
	Lines         []string
	Improvements  []string
	MinorWarnings []string
	Validation    models.Validation
}

// Pipeline определяет интерфейс постпроцессора для одной системы ЧПУ.
// Реализация не должна изменять входной срез строк.
type Pipeline interface {
	Process(lines []string, opts models.OptimizationOptions) (Output, error)
}

// PipelineFunc позволяет использовать обычную функцию как Pipeline
type PipelineFunc func(lines []string, opts models.OptimizationOptions) (Output, error)

// Process вызывает f(lines, opts)
func (f PipelineFunc) Process(lines []string, opts models.OptimizationOptions) (Output, error) {
	return f(lines, opts)
}
