package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration for the calculator CLI.
type Config struct {
	// Format is a fmt verb for results. Empty means the shortest exact form.
	Format  string        `yaml:"format" toml:"format" env:"FORMAT"`
	// Degrees measures trigonometric angles in degrees instead of radians.
	Degrees bool          `yaml:"degrees" toml:"degrees" env:"DEGREES"`
	Check   CheckConfig   `yaml:"check" toml:"check"`
	History HistoryConfig `yaml:"history" toml:"history"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// CheckConfig controls cross-checking results at arbitrary precision.
type CheckConfig struct {
	Enabled   bool    `yaml:"enabled" toml:"enabled" env:"CHECK"`
	Prec      uint    `yaml:"prec" toml:"prec" env:"CHECK_PREC"`
	Tolerance float64 `yaml:"tolerance" toml:"tolerance" env:"CHECK_TOLERANCE"`
}

// HistoryConfig controls the persistent result history.
type HistoryConfig struct {
	// Path is a .json or .db file. Empty disables persistence.
	Path  string `yaml:"path" toml:"path" env:"HISTORY"`
	Limit int    `yaml:"limit" toml:"limit" env:"HISTORY_LIMIT"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" toml:"format" env:"LOG_FORMAT"`
	Output     string `yaml:"output" toml:"output" env:"LOG_OUTPUT"`
	FilePath   string `yaml:"file_path" toml:"file_path" env:"LOG_FILE"`
	MaxSize    int    `yaml:"max_size" toml:"max_size" env:"LOG_MAX_SIZE"` // MB
	MaxBackups int    `yaml:"max_backups" toml:"max_backups" env:"LOG_MAX_BACKUPS"`
	MaxAge     int    `yaml:"max_age" toml:"max_age" env:"LOG_MAX_AGE"` // days
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Check: CheckConfig{
			Enabled:   false,
			Prec:      256,
			Tolerance: 1e-9,
		},
		History: HistoryConfig{
			Limit: 10,
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "console",
			Output:     "stderr",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Loader handles configuration loading from multiple sources.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{envPrefix: "CALC_"}
}

// WithConfigPath sets the path to the configuration file. Files ending in
// .toml are decoded as TOML and all others as YAML.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix sets the prefix for environment variables.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Load loads configuration from all sources with proper precedence:
// defaults < file < environment variables. The result is validated.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := l.applyEnvToStruct(reflect.ValueOf(cfg).Elem()); err != nil {
		return nil, fmt.Errorf("applying environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile loads configuration from a file. A missing file leaves the
// defaults in place.
func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	switch strings.ToLower(filepath.Ext(l.configPath)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", l.configPath, err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", l.configPath, err)
		}
	}
	return nil
}

// applyEnvToStruct recursively applies environment variables to struct fields.
func (l *Loader) applyEnvToStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if field.Kind() == reflect.Struct {
			if err := l.applyEnvToStruct(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}
		name := l.envPrefix + envTag
		envValue, ok := os.LookupEnv(name)
		if !ok {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

// setFieldValue converts s to the field's type and stores it.
func setFieldValue(field reflect.Value, s string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(s)
	case reflect.Bool:
		b, err := cast.ToBoolE(s)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int64:
		n, err := cast.ToInt64E(s)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint64:
		n, err := cast.ToUint64E(s)
		if err != nil {
			return err
		}
		field.SetUint(n)
	case reflect.Float64:
		f, err := cast.ToFloat64E(s)
		if err != nil {
			return err
		}
		field.SetFloat(f)
	default:
		panic("config: unsupported field kind " + field.Kind().String())
	}
	return nil
}

// LoadFromFile loads configuration from a file, then the environment.
func LoadFromFile(path string) (*Config, error) {
	return NewLoader().WithConfigPath(path).Load()
}
