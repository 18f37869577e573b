// Package gcode генерирует управляющие программы из траекторий и адаптирует их
// под диалекты систем ЧПУ (Fanuc, Haas, Heidenhain и обобщенный G-код).
package gcode

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/iwtcode/gcodeAdapter/cutting"
	"github.com/iwtcode/gcodeAdapter/internal/config"
	"github.com/iwtcode/gcodeAdapter/internal/logging"
	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/postprocessor"
	"github.com/iwtcode/gcodeAdapter/toolpath"
	"github.com/sirupsen/logrus"
)

// Client является основной точкой входа для взаимодействия с библиотекой.
type Client struct {
	config     *Config
	logger     *logging.Logger
	generator  *toolpath.Generator
	processor  *postprocessor.Processor
	defaults   models.OptimizationOptions
	controller models.ControllerType
	cache      *lru.Cache[string, models.OptimizationResult]
}

// New создает и возвращает новый экземпляр клиента.
// Если cfg равен nil, конфигурация загружается из окружения.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = Load()
	}

	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		LogsDir: cfg.LogsDir,
	})

	controller, err := postprocessor.ParseController(cfg.DefaultController)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("invalid default controller: %w", err)
	}

	preset, err := config.LoadOptions(cfg.OptionsFile)
	if err != nil {
		logger.Close()
		return nil, fmt.Errorf("failed to load options preset: %w", err)
	}

	c := &Client{
		config:     cfg,
		logger:     logger,
		generator:  toolpath.NewGenerator(logger.WithField("component", "generator"), cfg.MaxProgramLines),
		processor:  postprocessor.New(logger.WithField("component", "postprocessor"), cfg.MaxProgramLines),
		defaults:   preset.Merge(models.DefaultOptimizationOptions()),
		controller: controller,
	}

	if cfg.CacheSize > 0 {
		c.cache, err = lru.New[string, models.OptimizationResult](cfg.CacheSize)
		if err != nil {
			logger.Close()
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
	}

	logger.WithFields(logrus.Fields{
		"controller": controller,
		"cache_size": cfg.CacheSize,
		"workers":    cfg.Workers,
		"preset":     cfg.OptionsFile,
	}).Debug("Client initialized")

	return c, nil
}

// Close закрывает файл лога.
func (c *Client) Close() error {
	return c.logger.Close()
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger.Logger
}

// Options возвращает итоговые настройки постпроцессора для частичных настроек override.
func (c *Client) Options(override *models.OptionsOverride) models.OptimizationOptions {
	return override.Merge(c.defaults)
}

// GenerateGcode генерирует программу для траектории.
func (c *Client) GenerateGcode(tp models.Toolpath, params models.GenerationParams) (string, error) {
	return c.generator.Generate(tp, params)
}

// ProcessGCode адаптирует программу под систему ЧПУ.
// Пустой controller означает систему ЧПУ из конфигурации.
// Ошибки постобработки возвращаются в виде предупреждений вместе с исходным кодом.
func (c *Client) ProcessGCode(code string, controller models.ControllerType, override *models.OptionsOverride) models.OptimizationResult {
	if controller == "" {
		controller = c.controller
	}
	opts := c.Options(override)

	if c.cache == nil {
		return c.processor.Process(code, controller, opts)
	}

	key := cacheKey(code, controller, opts)
	if res, ok := c.cache.Get(key); ok {
		c.logger.WithField("controller", controller).Debug("Post-processing result served from cache")
		return cloneResult(res)
	}

	res := c.processor.Process(code, controller, opts)
	if len(res.Stats.MajorWarnings) == 0 {
		c.cache.Add(key, cloneResult(res))
	}
	return res
}

// GenerateAndProcess генерирует программу и сразу адаптирует ее под систему ЧПУ.
func (c *Client) GenerateAndProcess(tp models.Toolpath, params models.GenerationParams, controller models.ControllerType, override *models.OptionsOverride) (models.OptimizationResult, error) {
	code, err := c.GenerateGcode(tp, params)
	if err != nil {
		return models.OptimizationResult{}, err
	}
	return c.ProcessGCode(code, controller, override), nil
}

// EvaluateCutting проверяет режимы резания и возвращает вердикт на языке lang (en, de, ru).
func (c *Client) EvaluateCutting(settings models.CuttingSettings, lang string) models.CuttingEvaluation {
	return cutting.Evaluate(settings, lang)
}

// CalculateCuttingStatistics возвращает расчетные показатели режимов резания.
func (c *Client) CalculateCuttingStatistics(settings models.CuttingSettings) models.CuttingStatistics {
	return cutting.CalculateCuttingStatistics(settings)
}

func cacheKey(code string, controller models.ControllerType, opts models.OptimizationOptions) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%+v\x00", controller, opts)
	h.Write([]byte(code))
	return hex.EncodeToString(h.Sum(nil))
}

func cloneResult(r models.OptimizationResult) models.OptimizationResult {
	r.Improvements = append([]string{}, r.Improvements...)
	r.Stats.MinorWarnings = append([]string{}, r.Stats.MinorWarnings...)
	r.Stats.MajorWarnings = append([]string{}, r.Stats.MajorWarnings...)
	r.Validation.Errors = append([]string{}, r.Validation.Errors...)
	r.Validation.Warnings = append([]string{}, r.Validation.Warnings...)
	return r
}
