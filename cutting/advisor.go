// Package cutting рассчитывает показатели режимов резания и проверяет подачу на зуб.
package cutting

import (
	"math"
	"strings"

	"github.com/iwtcode/gcodeAdapter/models"
)

// Tolerance - допустимое отклонение подачи на зуб от оптимальной
const Tolerance = 0.15

// referenceDiameter - диаметр фрезы (мм), для которого заданы табличные подачи на зуб
const referenceDiameter = 6.0

// defaultChipLoad используется для материалов, которых нет в таблице
const defaultChipLoad = 0.020

// chipLoads - рекомендуемая подача на зуб (мм) для фрезы диаметром 6 мм
var chipLoads = map[string]float64{
	"aluminum":  0.033,
	"steel":     0.018,
	"wood":      0.076,
	"plastic":   0.038,
	"brass":     0.033,
	"titanium":  0.013,
	"composite": 0.025,
}

// CalculateOptimalChipLoad возвращает рекомендуемую подачу на зуб для материала,
// пересчитанную на диаметр фрезы как (d/6)^0.3. Число зубьев на результат не влияет.
func CalculateOptimalChipLoad(material string, toolDiameter float64, flutes int) float64 {
	base, ok := chipLoads[strings.ToLower(strings.TrimSpace(material))]
	if !ok {
		base = defaultChipLoad
	}
	if toolDiameter <= 0 {
		return base
	}
	return base * math.Pow(toolDiameter/referenceDiameter, 0.3)
}

// CalculateCuttingStatistics рассчитывает подачу на зуб, скорость резания,
// фактический шаг и производительность съема материала
func CalculateCuttingStatistics(s models.CuttingSettings) models.CuttingStatistics {
	var chipLoad float64
	if s.SpindleSpeed > 0 && s.Flutes > 0 {
		chipLoad = s.Feedrate / (s.SpindleSpeed * float64(s.Flutes))
	}
	stepover := s.Stepover / 100 * s.ToolDiameter
	return models.CuttingStatistics{
		ChipLoad:            round(chipLoad, 3),
		CuttingSpeed:        round(math.Pi*s.ToolDiameter*s.SpindleSpeed/1000, 1),
		EffectiveStepover:   round(stepover, 2),
		MaterialRemovalRate: round(s.Feedrate*stepover*s.Stepdown/1000, 2),
	}
}

// IsFeedRateOptimal сообщает, что подача на зуб отличается от оптимальной не более чем на 15%
func IsFeedRateOptimal(actual, optimal float64) bool {
	if optimal <= 0 {
		return false
	}
	return math.Abs(actual-optimal) <= optimal*Tolerance
}

// Evaluate рассчитывает показатели и возвращает вердикт на языке lang
func Evaluate(s models.CuttingSettings, lang string) models.CuttingEvaluation {
	stats := CalculateCuttingStatistics(s)
	optimal := CalculateOptimalChipLoad(s.Material, s.ToolDiameter, s.Flutes)
	var actual float64
	if s.SpindleSpeed > 0 && s.Flutes > 0 {
		actual = s.Feedrate / (s.SpindleSpeed * float64(s.Flutes))
	}
	return models.CuttingEvaluation{
		Statistics:      stats,
		OptimalChipLoad: round(optimal, 3),
		IsOptimal:       IsFeedRateOptimal(actual, optimal),
		Feedback:        GetCuttingFeedback(actual, optimal, lang),
	}
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
