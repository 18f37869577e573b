package errors

import (
	"errors"
	"fmt"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
)

const (
	StageGenerate   = "generate"
	StageDispatch   = "dispatch"
	StageRecovered  = "recovered"
	StageGuardLimit = "guard"
)

// PipelineError описывает сбой на одном из этапов постобработки.
type PipelineError struct {
	Controller string `json:"controller"` // Тип системы ЧПУ
	Stage      string `json:"stage"`      // Этап, на котором произошла ошибка
	Err        error  `json:"-"`          // Исходная ошибка
}

func (e *PipelineError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s post-processing failed at %s stage: %v", e.Controller, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s post-processing failed at %s stage", e.Controller, e.Stage)
}

func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewPipelineError создает новый экземпляр PipelineError.
func NewPipelineError(controller, stage string, err error) *PipelineError {
	return &PipelineError{
		Controller: controller,
		Stage:      stage,
		Err:        err,
	}
}

var (
	ErrProgramTooLarge       = errors.New("program exceeds line limit")
	ErrTooManyPasses         = errors.New("operation requires too many depth passes")
	ErrUnsupportedController = errors.New("unsupported controller type")
	ErrInvalidOptions        = errors.New("invalid optimization options")
	ErrUnexpectedPanic       = errors.New("unexpected internal failure")
)
