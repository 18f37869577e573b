package models

import (
	"time"

	"github.com/iwtcode/gcodeAdapter/models"
)

// GenerateRequest - запрос на генерацию программы по траектории.
// Если Controller задан, программа сразу адаптируется под систему ЧПУ.
type GenerateRequest struct {
	Toolpath   models.Toolpath         `json:"toolpath"`
	Params     models.GenerationParams `json:"params"`
	Controller models.ControllerType   `json:"controller,omitempty"`
	Options    *models.OptionsOverride `json:"options,omitempty"`
}

// ProcessRequest - запрос на постобработку готовой программы
type ProcessRequest struct {
	Code       string                  `json:"code" binding:"required"`
	Controller models.ControllerType   `json:"controller,omitempty"`
	Options    *models.OptionsOverride `json:"options,omitempty"`
}

// BatchRequest - запрос на пакетную постобработку
type BatchRequest struct {
	Jobs []ProcessRequest `json:"jobs" binding:"required,min=1,dive"`
}

// CuttingRequest - запрос на проверку режимов резания
type CuttingRequest struct {
	Settings models.CuttingSettings `json:"settings"`
	Language string                 `json:"language,omitempty"`
}

// GenerateResponse - ответ на запрос генерации
type GenerateResponse struct {
	ID     string                     `json:"id"`
	Code   string                     `json:"code"`
	Result *models.OptimizationResult `json:"result,omitempty"`
}

// ProcessResponse - ответ на запрос постобработки
type ProcessResponse struct {
	ID     string                    `json:"id"`
	Result models.OptimizationResult `json:"result"`
}

// BatchResponse - ответ на запрос пакетной постобработки
type BatchResponse struct {
	ID      string                      `json:"id"`
	Results []models.OptimizationResult `json:"results"`
}

// Report - сводка постобработки, публикуемая во внешние системы
type Report struct {
	ID           string                   `json:"id"`
	Controller   models.ControllerType    `json:"controller"`
	Stats        models.OptimizationStats `json:"stats"`
	Validation   models.Validation        `json:"validation"`
	Improvements []string                 `json:"improvements"`
	CreatedAt    time.Time                `json:"created_at"`
}

// ErrorResponse представляет стандартный ответ с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  struct {
		Code    int    `json:"code" example:"400"`
		Message string `json:"message" example:"bad request"`
	} `json:"error"`
}
