package models

// Point содержит координаты точки в рабочей системе координат (мм или дюймы)
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// OperationType определяет тип операции траектории
type OperationType string

const (
	OperationProfile OperationType = "profile"
	OperationPocket  OperationType = "pocket"
	OperationDrill   OperationType = "drill"
	OperationContour OperationType = "contour"
	OperationEngrave OperationType = "engrave"
	OperationFacing  OperationType = "facing"
)

// EntryType определяет стратегию врезания в материал
type EntryType string

const (
	EntryDirect EntryType = "direct"
	EntryRamp   EntryType = "ramp"
	EntryHelix  EntryType = "helix"
	EntryPlunge EntryType = "plunge"
)

// ExitType определяет стратегию выхода из материала
type ExitType string

const (
	ExitDirect ExitType = "direct"
	ExitRamp   ExitType = "ramp"
	ExitLoop   ExitType = "loop"
)

// ToolpathOperation содержит одну операцию траектории: упорядоченный список точек и параметры глубины
type ToolpathOperation struct {
	Type          OperationType `json:"type" yaml:"type"`
	Points        []Point       `json:"points" yaml:"points"`
	Depth         float64       `json:"depth" yaml:"depth"`
	Stepdown      float64       `json:"stepdown,omitempty" yaml:"stepdown,omitempty"`
	ToolDiameter  float64       `json:"tool_diameter" yaml:"toolDiameter"`
	EntryType     EntryType     `json:"entry_type,omitempty" yaml:"entryType,omitempty"`
	ExitType      ExitType      `json:"exit_type,omitempty" yaml:"exitType,omitempty"`
	EntryDistance float64       `json:"entry_distance,omitempty" yaml:"entryDistance,omitempty"`
	ExitDistance  float64       `json:"exit_distance,omitempty" yaml:"exitDistance,omitempty"`
}

// Workpiece содержит размеры и материал заготовки
type Workpiece struct {
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
	Thickness float64 `json:"thickness" yaml:"thickness"`
	Material  string  `json:"material" yaml:"material"`
}

// Toolpath содержит полную траекторию, подготовленную модулем планирования
type Toolpath struct {
	ID         string              `json:"id" yaml:"id"`
	Name       string              `json:"name" yaml:"name"`
	Elements   []string            `json:"elements,omitempty" yaml:"elements,omitempty"`
	Operations []ToolpathOperation `json:"operations" yaml:"operations"`
	Parameters map[string]float64  `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Workpiece  *Workpiece          `json:"workpiece,omitempty" yaml:"workpiece,omitempty"`
}

// Tool описывает инструмент
type Tool struct {
	Name     string  `json:"name" yaml:"name"`
	Diameter float64 `json:"diameter" yaml:"diameter"`
	Type     string  `json:"type" yaml:"type"`
}

// GenerationOptimization содержит настройки постобработки при генерации
type GenerationOptimization struct {
	RemoveRedundantMoves bool `json:"remove_redundant_moves" yaml:"removeRedundantMoves"`
}

// GenerationParams содержит параметры генерации G-кода.
// Нулевые значения заменяются значениями по умолчанию (см. WithDefaults).
type GenerationParams struct {
	MachineType      string                 `json:"machine_type" yaml:"machineType"`
	Tool             Tool                   `json:"tool" yaml:"tool"`
	Feedrate         float64                `json:"feedrate" yaml:"feedrate"`
	Plungerate       float64                `json:"plungerate" yaml:"plungerate"`
	SpindleSpeed     float64                `json:"spindle_speed" yaml:"spindleSpeed"`
	Coolant          bool                   `json:"coolant" yaml:"coolant"`
	CoordinateSystem string                 `json:"coordinate_system" yaml:"coordinateSystem"`
	UseInches        bool                   `json:"use_inches" yaml:"useInches"`
	SafeHeight       float64                `json:"safe_height" yaml:"safeHeight"`
	ClearanceHeight  float64                `json:"clearance_height" yaml:"clearanceHeight"`
	ArcTolerance     float64                `json:"arc_tolerance" yaml:"arcTolerance"`
	Optimization     GenerationOptimization `json:"optimization" yaml:"optimization"`
}

const (
	DefaultFeedrate         = 1000.0
	DefaultPlungerate       = 300.0
	DefaultSpindleSpeed     = 12000.0
	DefaultSafeHeight       = 5.0
	DefaultClearanceHeight  = 10.0
	DefaultCoordinateSystem = "G54"
	DefaultArcTolerance     = 0.01
	DefaultMachineType      = "CNC Mill"
	DefaultToolName         = "End Mill"
	DefaultToolDiameter     = 6.0
	DefaultToolType         = "endmill"
)

// WithDefaults возвращает копию параметров, в которой отсутствующие значения заменены значениями по умолчанию
func (p GenerationParams) WithDefaults() GenerationParams {
	if p.Feedrate <= 0 {
		p.Feedrate = DefaultFeedrate
	}
	if p.Plungerate <= 0 {
		p.Plungerate = DefaultPlungerate
	}
	if p.SpindleSpeed <= 0 {
		p.SpindleSpeed = DefaultSpindleSpeed
	}
	if p.SafeHeight == 0 {
		p.SafeHeight = DefaultSafeHeight
	}
	if p.ClearanceHeight == 0 {
		p.ClearanceHeight = DefaultClearanceHeight
	}
	if p.CoordinateSystem == "" {
		p.CoordinateSystem = DefaultCoordinateSystem
	}
	if p.ArcTolerance <= 0 {
		p.ArcTolerance = DefaultArcTolerance
	}
	if p.MachineType == "" {
		p.MachineType = DefaultMachineType
	}
	if p.Tool.Name == "" {
		p.Tool.Name = DefaultToolName
	}
	if p.Tool.Diameter <= 0 {
		p.Tool.Diameter = DefaultToolDiameter
	}
	if p.Tool.Type == "" {
		p.Tool.Type = DefaultToolType
	}
	return p
}

// ControllerType определяет семейство системы ЧПУ для постпроцессора
type ControllerType string

const (
	ControllerFanuc      ControllerType = "fanuc"
	ControllerHeidenhain ControllerType = "heidenhain"
	ControllerSiemens    ControllerType = "siemens"
	ControllerHaas       ControllerType = "haas"
	ControllerMazak      ControllerType = "mazak"
	ControllerOkuma      ControllerType = "okuma"
	ControllerGeneric    ControllerType = "generic"
)

// OptimizationStats содержит статистику оптимизации.
// OriginalLines и OptimizedLines всегда считаются по фактическому тексту.
type OptimizationStats struct {
	OriginalLines          int      `json:"original_lines"`
	OptimizedLines         int      `json:"optimized_lines"`
	ReductionPercent       float64  `json:"reduction_percent"`
	EstimatedTimeReduction float64  `json:"estimated_time_reduction"`
	MinorWarnings          []string `json:"minor_warnings"`
	MajorWarnings          []string `json:"major_warnings"`
}

// Validation содержит результат статической проверки программы
type Validation struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewValidation собирает Validation; программа корректна, если ошибок нет
func NewValidation(errs, warnings []string) Validation {
	if errs == nil {
		errs = []string{}
	}
	if warnings == nil {
		warnings = []string{}
	}
	return Validation{
		IsValid:  len(errs) == 0,
		Errors:   errs,
		Warnings: warnings,
	}
}

// OptimizationResult содержит итог постобработки
type OptimizationResult struct {
	Code         string            `json:"code"`
	Improvements []string          `json:"improvements"`
	Stats        OptimizationStats `json:"stats"`
	Validation   Validation        `json:"validation"`
}
