package models

// CuttingSettings содержит режимы резания для проверки перед генерацией
type CuttingSettings struct {
	Material     string  `json:"material" yaml:"material"`
	ToolDiameter float64 `json:"tool_diameter" yaml:"toolDiameter"`
	Flutes       int     `json:"flutes" yaml:"flutes"`
	Feedrate     float64 `json:"feedrate" yaml:"feedrate"`         // мм/мин
	SpindleSpeed float64 `json:"spindle_speed" yaml:"spindleSpeed"` // об/мин
	Stepover     float64 `json:"stepover" yaml:"stepover"`         // % от диаметра
	Stepdown     float64 `json:"stepdown" yaml:"stepdown"`         // мм
}

// CuttingStatistics содержит расчетные показатели резания
type CuttingStatistics struct {
	ChipLoad            float64 `json:"chip_load"`             // мм/зуб
	CuttingSpeed        float64 `json:"cutting_speed"`         // м/мин
	EffectiveStepover   float64 `json:"effective_stepover"`    // мм
	MaterialRemovalRate float64 `json:"material_removal_rate"` // см³/мин
}

// CuttingEvaluation содержит итог проверки режимов резания
type CuttingEvaluation struct {
	Statistics      CuttingStatistics `json:"statistics"`
	OptimalChipLoad float64           `json:"optimal_chip_load"`
	IsOptimal       bool              `json:"is_optimal"`
	Feedback        string            `json:"feedback"`
}
