package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/iwtcode/gcodeAdapter/models"
	"github.com/iwtcode/gcodeAdapter/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadOptions читает YAML-файл с частичными настройками постпроцессора.
// Пустой путь означает отсутствие предустановок.
func LoadOptions(path string) (*models.OptionsOverride, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open options file %s: %w", path, err)
	}
	defer f.Close()

	return DecodeOptions(f)
}

// DecodeOptions разбирает YAML-документ в OptionsOverride.
// Неизвестные ключи считаются ошибкой.
func DecodeOptions(r io.Reader) (*models.OptionsOverride, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var override models.OptionsOverride
	if err := dec.Decode(&override); err != nil {
		if stderrors.Is(err, io.EOF) {
			return &override, nil
		}
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidOptions, err)
	}
	return &override, nil
}
