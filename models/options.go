package models

// FanucOptions содержит настройки, специфичные для Fanuc
type FanucOptions struct {
	UseDecimalFormat     bool `json:"use_decimal_format" yaml:"useDecimalFormat"`
	UseModalGCodes       bool `json:"use_modal_g_codes" yaml:"useModalGCodes"`
	UseAI                bool `json:"use_ai" yaml:"useAI"`
	UseNanoSmoothing     bool `json:"use_nano_smoothing" yaml:"useNanoSmoothing"`
	UseCornerRounding    bool `json:"use_corner_rounding" yaml:"useCornerRounding"`
	UseHighPrecisionMode bool `json:"use_high_precision_mode" yaml:"useHighPrecisionMode"`
	UseCompactGCode      bool `json:"use_compact_g_code" yaml:"useCompactGCode"`
}

// HeidenhainOptions содержит настройки, специфичные для Heidenhain
type HeidenhainOptions struct {
	UseConversationalFormat bool `json:"use_conversational_format" yaml:"useConversationalFormat"`
	UseFunctionBlocks       bool `json:"use_function_blocks" yaml:"useFunctionBlocks"`
	UseCycleDefine          bool `json:"use_cycle_define" yaml:"useCycleDefine"`
	UseParameterProgramming bool `json:"use_parameter_programming" yaml:"useParameterProgramming"`
	UseTCP                  bool `json:"use_tcp" yaml:"useTCP"`
	UseRadiusCompensation3D bool `json:"use_radius_compensation_3d" yaml:"useRadiusCompensation3D"`
	UseSmartTurning         bool `json:"use_smart_turning" yaml:"useSmartTurning"`
}

// OptimizationOptions содержит полный набор настроек постпроцессора
type OptimizationOptions struct {
	RemoveRedundantMoves bool `json:"remove_redundant_moves" yaml:"removeRedundantMoves"`
	RemoveRedundantCodes bool `json:"remove_redundant_codes" yaml:"removeRedundantCodes"`
	OptimizeRapidMoves   bool `json:"optimize_rapid_moves" yaml:"optimizeRapidMoves"`
	OptimizeFeedrates    bool `json:"optimize_feedrates" yaml:"optimizeFeedrates"`
	UseHighSpeedMode     bool `json:"use_high_speed_mode" yaml:"useHighSpeedMode"`
	UseArcOptimization   bool `json:"use_arc_optimization" yaml:"useArcOptimization"`
	ConsolidateGCodes    bool `json:"consolidate_g_codes" yaml:"consolidateGCodes"`
	RemoveEmptyLines     bool `json:"remove_empty_lines" yaml:"removeEmptyLines"`
	RemoveComments       bool `json:"remove_comments" yaml:"removeComments"`
	MinimizeAxisMovement bool `json:"minimize_axis_movement" yaml:"minimizeAxisMovement"`
	SafetyChecks         bool `json:"safety_checks" yaml:"safetyChecks"`
	UseLookAhead         bool `json:"use_look_ahead" yaml:"useLookAhead"`
	UseTCPMode           bool `json:"use_tcp_mode" yaml:"useTCPMode"`

	Fanuc      FanucOptions      `json:"fanuc" yaml:"fanuc"`
	Heidenhain HeidenhainOptions `json:"heidenhain" yaml:"heidenhain"`
}

// DefaultOptimizationOptions возвращает настройки по умолчанию
func DefaultOptimizationOptions() OptimizationOptions {
	return OptimizationOptions{
		RemoveRedundantMoves: true,
		RemoveRedundantCodes: true,
		OptimizeRapidMoves:   true,
		OptimizeFeedrates:    true,
		UseHighSpeedMode:     false,
		UseArcOptimization:   false,
		ConsolidateGCodes:    true,
		RemoveEmptyLines:     true,
		RemoveComments:       false,
		MinimizeAxisMovement: false,
		SafetyChecks:         true,
		UseLookAhead:         false,
		UseTCPMode:           false,
		Fanuc: FanucOptions{
			UseDecimalFormat:     true,
			UseModalGCodes:       true,
			UseAI:                false,
			UseNanoSmoothing:     false,
			UseCornerRounding:    false,
			UseHighPrecisionMode: false,
			UseCompactGCode:      false,
		},
		Heidenhain: HeidenhainOptions{
			UseConversationalFormat: true,
			UseFunctionBlocks:       true,
			UseCycleDefine:          true,
			UseParameterProgramming: false,
			UseTCP:                  false,
			UseRadiusCompensation3D: false,
			UseSmartTurning:         false,
		},
	}
}

// FanucOverride - частичные настройки Fanuc; nil означает "не задано"
type FanucOverride struct {
	UseDecimalFormat     *bool `json:"use_decimal_format,omitempty" yaml:"useDecimalFormat,omitempty"`
	UseModalGCodes       *bool `json:"use_modal_g_codes,omitempty" yaml:"useModalGCodes,omitempty"`
	UseAI                *bool `json:"use_ai,omitempty" yaml:"useAI,omitempty"`
	UseNanoSmoothing     *bool `json:"use_nano_smoothing,omitempty" yaml:"useNanoSmoothing,omitempty"`
	UseCornerRounding    *bool `json:"use_corner_rounding,omitempty" yaml:"useCornerRounding,omitempty"`
	UseHighPrecisionMode *bool `json:"use_high_precision_mode,omitempty" yaml:"useHighPrecisionMode,omitempty"`
	UseCompactGCode      *bool `json:"use_compact_g_code,omitempty" yaml:"useCompactGCode,omitempty"`
}

// HeidenhainOverride - частичные настройки Heidenhain; nil означает "не задано"
type HeidenhainOverride struct {
	UseConversationalFormat *bool `json:"use_conversational_format,omitempty" yaml:"useConversationalFormat,omitempty"`
	UseFunctionBlocks       *bool `json:"use_function_blocks,omitempty" yaml:"useFunctionBlocks,omitempty"`
	UseCycleDefine          *bool `json:"use_cycle_define,omitempty" yaml:"useCycleDefine,omitempty"`
	UseParameterProgramming *bool `json:"use_parameter_programming,omitempty" yaml:"useParameterProgramming,omitempty"`
	UseTCP                  *bool `json:"use_tcp,omitempty" yaml:"useTCP,omitempty"`
	UseRadiusCompensation3D *bool `json:"use_radius_compensation_3d,omitempty" yaml:"useRadiusCompensation3D,omitempty"`
	UseSmartTurning         *bool `json:"use_smart_turning,omitempty" yaml:"useSmartTurning,omitempty"`
}

// OptionsOverride - частичные пользовательские настройки.
// Каждое заданное поле полностью заменяет значение по умолчанию.
type OptionsOverride struct {
	RemoveRedundantMoves *bool `json:"remove_redundant_moves,omitempty" yaml:"removeRedundantMoves,omitempty"`
	RemoveRedundantCodes *bool `json:"remove_redundant_codes,omitempty" yaml:"removeRedundantCodes,omitempty"`
	OptimizeRapidMoves   *bool `json:"optimize_rapid_moves,omitempty" yaml:"optimizeRapidMoves,omitempty"`
	OptimizeFeedrates    *bool `json:"optimize_feedrates,omitempty" yaml:"optimizeFeedrates,omitempty"`
	UseHighSpeedMode     *bool `json:"use_high_speed_mode,omitempty" yaml:"useHighSpeedMode,omitempty"`
	UseArcOptimization   *bool `json:"use_arc_optimization,omitempty" yaml:"useArcOptimization,omitempty"`
	ConsolidateGCodes    *bool `json:"consolidate_g_codes,omitempty" yaml:"consolidateGCodes,omitempty"`
	RemoveEmptyLines     *bool `json:"remove_empty_lines,omitempty" yaml:"removeEmptyLines,omitempty"`
	RemoveComments       *bool `json:"remove_comments,omitempty" yaml:"removeComments,omitempty"`
	MinimizeAxisMovement *bool `json:"minimize_axis_movement,omitempty" yaml:"minimizeAxisMovement,omitempty"`
	SafetyChecks         *bool `json:"safety_checks,omitempty" yaml:"safetyChecks,omitempty"`
	UseLookAhead         *bool `json:"use_look_ahead,omitempty" yaml:"useLookAhead,omitempty"`
	UseTCPMode           *bool `json:"use_tcp_mode,omitempty" yaml:"useTCPMode,omitempty"`

	Fanuc      *FanucOverride      `json:"fanuc,omitempty" yaml:"fanuc,omitempty"`
	Heidenhain *HeidenhainOverride `json:"heidenhain,omitempty" yaml:"heidenhain,omitempty"`
}

// Bool возвращает указатель на значение; удобно для заполнения OptionsOverride
func Bool(v bool) *bool {
	return &v
}

func set(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// Merge накладывает частичные настройки поверх base и возвращает результат.
// base не изменяется.
func (o *OptionsOverride) Merge(base OptimizationOptions) OptimizationOptions {
	if o == nil {
		return base
	}
	out := base
	set(&out.RemoveRedundantMoves, o.RemoveRedundantMoves)
	set(&out.RemoveRedundantCodes, o.RemoveRedundantCodes)
	set(&out.OptimizeRapidMoves, o.OptimizeRapidMoves)
	set(&out.OptimizeFeedrates, o.OptimizeFeedrates)
	set(&out.UseHighSpeedMode, o.UseHighSpeedMode)
	set(&out.UseArcOptimization, o.UseArcOptimization)
	set(&out.ConsolidateGCodes, o.ConsolidateGCodes)
	set(&out.RemoveEmptyLines, o.RemoveEmptyLines)
	set(&out.RemoveComments, o.RemoveComments)
	set(&out.MinimizeAxisMovement, o.MinimizeAxisMovement)
	set(&out.SafetyChecks, o.SafetyChecks)
	set(&out.UseLookAhead, o.UseLookAhead)
	set(&out.UseTCPMode, o.UseTCPMode)

	if f := o.Fanuc; f != nil {
		set(&out.Fanuc.UseDecimalFormat, f.UseDecimalFormat)
		set(&out.Fanuc.UseModalGCodes, f.UseModalGCodes)
		set(&out.Fanuc.UseAI, f.UseAI)
		set(&out.Fanuc.UseNanoSmoothing, f.UseNanoSmoothing)
		set(&out.Fanuc.UseCornerRounding, f.UseCornerRounding)
		set(&out.Fanuc.UseHighPrecisionMode, f.UseHighPrecisionMode)
		set(&out.Fanuc.UseCompactGCode, f.UseCompactGCode)
	}
	if h := o.Heidenhain; h != nil {
		set(&out.Heidenhain.UseConversationalFormat, h.UseConversationalFormat)
		set(&out.Heidenhain.UseFunctionBlocks, h.UseFunctionBlocks)
		set(&out.Heidenhain.UseCycleDefine, h.UseCycleDefine)
		set(&out.Heidenhain.UseParameterProgramming, h.UseParameterProgramming)
		set(&out.Heidenhain.UseTCP, h.UseTCP)
		set(&out.Heidenhain.UseRadiusCompensation3D, h.UseRadiusCompensation3D)
		set(&out.Heidenhain.UseSmartTurning, h.UseSmartTurning)
	}
	return out
}
