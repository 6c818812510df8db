package config

import (
	_ "embed"
	"fmt"
	"os"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() (Config, error) {
	dto, err := defaultDTO()
	if err != nil {
		return Config{}, err
	}
	return Map("default.yaml", dto)
}

// Load reads the YAML file at path on top of the built-in defaults.
// An empty path yields the defaults. A calc.lang section in the file replaces
// the built-in languages as a whole.
func Load(path string) (Config, error) {
	if path == "" {
		return Default()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	dto, err := defaultDTO()
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w: %w", path, ErrInvalidConfig, err)
	}

	// yaml.v3 merges maps into existing ones; a file listing languages replaces
	// the built-in table instead.
	var langs struct {
		Calc struct {
			Lang map[string]YAMLLanguage `yaml:"lang"`
		} `yaml:"calc"`
	}
	if err := yaml.Unmarshal(b, &langs); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w: %w", path, ErrInvalidConfig, err)
	}
	if langs.Calc.Lang != nil {
		dto.Calc.Lang = langs.Calc.Lang
	}

	return Map(path, dto)
}

func defaultDTO() (YAMLConfig, error) {
	var dto YAMLConfig
	if err := yaml.Unmarshal(defaultYAML, &dto); err != nil {
		return YAMLConfig{}, fmt.Errorf("parse built-in config: %w", err)
	}
	return dto, nil
}
