package postprocessor

import (
	"fmt"
	"strings"

	"github.com/iwtcode/gcodeAdapter/controller/fanuc"
	"github.com/iwtcode/gcodeAdapter/controller/generic"
	"github.com/iwtcode/gcodeAdapter/controller/heidenhain"
	"github.com/iwtcode/gcodeAdapter/controller/model"
	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/pkg/errors"
)

// ParseController приводит название системы ЧПУ к ControllerType
func ParseController(name string) (models.ControllerType, error) {
	ct := models.ControllerType(strings.ToLower(strings.TrimSpace(name)))
	switch ct {
	case models.ControllerFanuc, models.ControllerHeidenhain, models.ControllerSiemens,
		models.ControllerHaas, models.ControllerMazak, models.ControllerOkuma, models.ControllerGeneric:
		return ct, nil
	case "":
		return models.ControllerGeneric, nil
	}
	return models.ControllerGeneric, fmt.Errorf("%w: %q", errors.ErrUnsupportedController, name)
}

// GetPipeline выбирает постпроцессор для системы ЧПУ.
// Siemens, Mazak и Okuma обрабатываются обобщенным постпроцессором, Haas - постпроцессором Fanuc.
func GetPipeline(controller models.ControllerType) model.Pipeline {
	switch controller {
	case models.ControllerFanuc:
		return fanuc.New()
	case models.ControllerHaas:
		return fanuc.NewHaas()
	case models.ControllerHeidenhain:
		return heidenhain.New()
	default:
		return generic.New(controller)
	}
}

// DefaultRegistry возвращает постпроцессоры для всех известных систем ЧПУ
func DefaultRegistry() map[models.ControllerType]model.Pipeline {
	registry := make(map[models.ControllerType]model.Pipeline)
	for _, ct := range []models.ControllerType{
		models.ControllerFanuc,
		models.ControllerHeidenhain,
		models.ControllerSiemens,
		models.ControllerHaas,
		models.ControllerMazak,
		models.ControllerOkuma,
		models.ControllerGeneric,
	} {
		registry[ct] = GetPipeline(ct)
	}
	return registry
}
