package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	ServerPort        string
	GinMode           string
	KafkaBroker       string
	KafkaTopic        string
	MaxProgramLines   int
	CacheSize         int
	Workers           int
	DefaultController string
	OptionsFile       string
	Logging           LoggerConfig
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Level      string
	LogsDir    string
	SavingDays int
}

// LoadConfiguration загружает конфигурацию из .env файла или переменных окружения
func LoadConfiguration() *AppConfig {
	_ = godotenv.Load()

	return &AppConfig{
		ServerPort:        getEnv("GCODE_HTTP_PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "release"),
		KafkaBroker:       getEnv("GCODE_KAFKA_BROKER", ""),
		KafkaTopic:        getEnv("GCODE_KAFKA_TOPIC", "gcode_results"),
		MaxProgramLines:   getEnvAsInt("GCODE_MAX_LINES", 200000),
		CacheSize:         getEnvAsInt("GCODE_CACHE_SIZE", 128),
		Workers:           getEnvAsInt("GCODE_WORKERS", 4),
		DefaultController: getEnv("GCODE_CONTROLLER", "generic"),
		OptionsFile:       getEnv("GCODE_OPTIONS_FILE", ""),
		Logging: LoggerConfig{
			Level:      getEnv("GCODE_LOG_LEVEL", "info"),
			LogsDir:    getEnv("GCODE_LOGS_DIR", ""),
			SavingDays: getEnvAsInt("GCODE_LOGS_SAVING_DAYS", 7),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}
