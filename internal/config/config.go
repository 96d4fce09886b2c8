// Package config loads user settings for the shelf.
//
// Settings are layered: a .env file in the working directory seeds the
// process environment, config.yaml in the config directory provides the
// persisted values, and SHELF_* environment variables override them. The
// result is validated before it is returned.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// FileName is the settings file inside the config directory.
	FileName = "config.yaml"

	dotEnvFile = ".env"
)

// Config keys in config.yaml.
const (
	KeyDataDir      = "data_dir"
	KeyLegacyDir    = "legacy_dir"
	KeyTheme        = "theme"
	KeyLogLevel     = "log_level"
	KeyLogFile      = "log_file"
	KeyScreenHeight = "screen_height"
)

// Theme names.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ErrInvalidSetting is returned when a loaded value fails validation.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings is the merged user configuration.
type Settings struct {
	DataDir      string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	LegacyDir    string `mapstructure:"legacy_dir" yaml:"legacy_dir,omitempty"`
	Theme        string `mapstructure:"theme" yaml:"theme" env:"SHELF_THEME" validate:"oneof=light dark"`
	LogLevel     string `mapstructure:"log_level" yaml:"log_level" env:"SHELF_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFile      string `mapstructure:"log_file" yaml:"log_file,omitempty" env:"SHELF_LOG_FILE"`
	ScreenHeight int    `mapstructure:"screen_height" yaml:"screen_height,omitempty" env:"SHELF_SCREEN_HEIGHT" validate:"min=0"`
}

// Defaults returns the settings written on first run.
func Defaults() Settings {
	return Settings{
		Theme:    ThemeLight,
		LogLevel: "info",
	}
}

// Dark reports whether the dark theme is selected.
func (s *Settings) Dark() bool { return s.Theme == ThemeDark }

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads settings from configDir, creating the directory and a default
// config.yaml on first run. A missing .env or config.yaml is not an error.
func Load(configDir string) (*Settings, error) {
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	path := filepath.Join(configDir, FileName)
	if err := WriteIfMissing(path, Defaults()); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	defaults := Defaults()
	v.SetDefault(KeyTheme, defaults.Theme)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks every constrained field.
func (s *Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s=%v (must satisfy %s)", ErrInvalidSetting, yamlKey(fe.StructField()), fe.Value(), fe.Tag()+paramSuffix(fe.Param()))
	}
	return fmt.Errorf("validating settings: %w", err)
}

func paramSuffix(p string) string {
	if p == "" {
		return ""
	}
	return " " + p
}

// yamlKey maps a Settings field name to its config.yaml key.
func yamlKey(field string) string {
	switch field {
	case "DataDir":
		return KeyDataDir
	case "LegacyDir":
		return KeyLegacyDir
	case "Theme":
		return KeyTheme
	case "LogLevel":
		return KeyLogLevel
	case "LogFile":
		return KeyLogFile
	case "ScreenHeight":
		return KeyScreenHeight
	}
	return field
}

// WriteIfMissing writes s to path as YAML unless the file already exists.
func WriteIfMissing(path string, s Settings) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# RPG Shelf configuration\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}

// loadDotEnv exports the variables in path without overriding ones that
// are already set.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
