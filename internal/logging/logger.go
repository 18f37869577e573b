package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Config содержит настройки логгера
type Config struct {
	Level      string // debug, info, warn, error; off или none отключают вывод
	LogsDir    string // Директория для логов; пустая строка - только stdout
	SavingDays int    // Сколько дней хранить логи
}

// Logger - logrus-логгер с необязательным файлом в LogsDir
type Logger struct {
	*logrus.Logger
	file *os.File
}

// NewLogger создает логгер. Если LogsDir задан, записи дублируются
// в файл <LogsDir>/<yyyy-mm-dd>.log, а файлы старше SavingDays удаляются.
func NewLogger(cfg Config) *Logger {
	l := &Logger{Logger: logrus.New()}

	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     cfg.LogsDir == "",
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level := strings.ToLower(strings.TrimSpace(cfg.Level))
	if level == "off" || level == "none" {
		l.SetOutput(io.Discard)
		return l
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	var output io.Writer = os.Stdout
	if cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0755); err == nil {
			logFile := filepath.Join(cfg.LogsDir, time.Now().Format("2006-01-02")+".log")
			if file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
				l.file = file
				output = io.MultiWriter(os.Stdout, file)
			}
		}
		if cfg.SavingDays > 0 {
			l.cleanOldLogs(cfg.LogsDir, cfg.SavingDays)
		}
	}
	l.SetOutput(output)

	return l
}

// cleanOldLogs удаляет файлы логов старше days дней
func (l *Logger) cleanOldLogs(dir string, days int) {
	files, err := os.ReadDir(dir)
	if err != nil {
		l.WithError(err).Warn("Failed to read logs directory")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".log" {
			continue
		}
		if info, err := file.Info(); err == nil && info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(dir, file.Name())); err != nil {
				l.WithError(err).WithField("file", file.Name()).Warn("Failed to delete old log file")
			}
		}
	}
}

// Close закрывает файл лога
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
