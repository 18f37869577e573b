package gcode

import (
	"github.com/iwtcode/gcodeAdapter/internal/config"
)

// Config хранит модель конфигурации библиотеки
type Config struct {
	LogLevel          string
	LogsDir           string
	MaxProgramLines   int    // Ограничение размера программы; <= 0 - без ограничения
	CacheSize         int    // Размер кэша результатов постобработки; <= 0 - без кэша
	Workers           int    // Число параллельных задач в ProcessBatch
	DefaultController string // Система ЧПУ, если она не указана в запросе
	OptionsFile       string // YAML с предустановками постпроцессора
}

// Load загружает конфигурацию из .env файла и переменных окружения
func Load() *Config {
	app := config.LoadConfiguration()
	return &Config{
		LogLevel:          app.Logging.Level,
		LogsDir:           app.Logging.LogsDir,
		MaxProgramLines:   app.MaxProgramLines,
		CacheSize:         app.CacheSize,
		Workers:           app.Workers,
		DefaultController: app.DefaultController,
		OptionsFile:       app.OptionsFile,
	}
}
