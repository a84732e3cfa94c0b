// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for vectorize.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.vectorize/config.toml
//   - ~/.vectorize/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/vectorize-tui/internal/util"
	"github.com/jeranaias/vectorize-tui/internal/vectorize"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete vectorize configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Conversion service
	Service ServiceConfig `toml:"service" json:"service"`

	// Where saved SVGs go
	Output OutputConfig `toml:"output" json:"output"`

	// Log file settings
	Log LogConfig `toml:"log" json:"log"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// ServiceConfig contains settings for the vectorization service.
type ServiceConfig struct {
	// Endpoint is the URL images are POSTed to.
	Endpoint string `toml:"endpoint" json:"endpoint"`

	// TimeoutSecs bounds a single conversion (0 = transport default).
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`

	// Debug forces debug level logging.
	Debug bool `toml:"debug" json:"debug"`
}

// Timeout returns TimeoutSecs as a duration.
func (s ServiceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSecs) * time.Second
}

// OutputConfig contains settings for saved results.
type OutputConfig struct {
	// Dir receives <name>.svg when a result is saved. Empty = working dir.
	Dir string `toml:"dir" json:"dir"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"` // json or console
	Path   string `toml:"path" json:"path"`     // TUI log file
}

// UIConfig contains UI settings.
type UIConfig struct {
	Theme   string `toml:"theme" json:"theme"` // dark or light
	NoColor bool   `toml:"no_color" json:"no_color"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// CurrentVersion is written into new config files.
const CurrentVersion = "1"

// Default returns a new Config with default values.
func Default() *Config {
	logPath := ""
	if dir, err := ConfigDir(); err == nil {
		logPath = filepath.Join(dir, "vectorize.log")
	}

	return &Config{
		Version: CurrentVersion,
		Service: ServiceConfig{
			Endpoint: vectorize.DefaultEndpoint,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Path:   logPath,
		},
		UI: UIConfig{
			Theme: "dark",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// HomeEnv overrides the configuration directory.
const HomeEnv = "VECTORIZE_HOME"

// ConfigDir returns the vectorize configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".vectorize"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the config file Load would read, or the TOML path when
// neither file exists.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// A .env file in the working directory is loaded before environment
// overrides are applied. A broken file yields defaults plus the load error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var loadErr error
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		cfg, err := LoadFromPath(path)
		if err != nil {
			loadErr = err
			break
		}
		return cfg, nil
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return fillDefaults(cfg)
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) error {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}
	if cfg.Service.Endpoint == "" {
		cfg.Service.Endpoint = defaults.Service.Endpoint
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = defaults.Log.Format
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = defaults.Log.Path
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# vectorize configuration file\n")
	b.WriteString("# Generated by vectorize - edit with care\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Service.Endpoint == "" {
		errs = append(errs, ValidationError{"service.endpoint", "must not be empty"})
	} else if u, err := url.Parse(c.Service.Endpoint); err != nil {
		errs = append(errs, ValidationError{"service.endpoint", fmt.Sprintf("invalid URL: %v", err)})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{"service.endpoint", "scheme must be http or https"})
	} else if u.Host == "" {
		errs = append(errs, ValidationError{"service.endpoint", "missing host"})
	}

	if c.Service.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{"service.timeout_secs", "must not be negative"})
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "disabled", "off", "none":
	default:
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("unknown level %q", c.Log.Level)})
	}

	switch c.Log.Format {
	case "", "json", "console":
	default:
		errs = append(errs, ValidationError{"log.format", "must be json or console"})
	}

	switch c.UI.Theme {
	case "", "dark", "light":
	default:
		errs = append(errs, ValidationError{"ui.theme", "must be dark or light"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LogLevel returns the effective log level, honoring service.debug.
func (c *Config) LogLevel() string {
	if c.Service.Debug {
		return "debug"
	}
	return c.Log.Level
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - VECTORIZE_ENDPOINT: overrides service.endpoint
//   - VECTORIZE_TIMEOUT: overrides service.timeout_secs
//   - VECTORIZE_OUTPUT_DIR: overrides output.dir
//   - VECTORIZE_LOG_LEVEL: overrides log.level
//   - NO_COLOR: any non-empty value sets ui.no_color
func (c *Config) ApplyEnvOverrides() {
	if endpoint := os.Getenv("VECTORIZE_ENDPOINT"); endpoint != "" {
		c.Service.Endpoint = endpoint
	}

	if timeout := os.Getenv("VECTORIZE_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			c.Service.TimeoutSecs = secs
		} else if d, err := time.ParseDuration(timeout); err == nil {
			c.Service.TimeoutSecs = int(d.Seconds())
		}
	}

	if dir := os.Getenv("VECTORIZE_OUTPUT_DIR"); dir != "" {
		c.Output.Dir = dir
	}

	if level := os.Getenv("VECTORIZE_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}

	if os.Getenv("NO_COLOR") != "" {
		c.UI.NoColor = true
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "service.endpoint").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "service.timeout_secs").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("field '%s' is a section", key)
			}
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// AllKeys returns all configuration keys in dot notation.
func AllKeys() []string {
	return []string{
		"version",
		"service.endpoint",
		"service.timeout_secs",
		"service.debug",
		"output.dir",
		"log.level",
		"log.format",
		"log.path",
		"ui.theme",
		"ui.no_color",
	}
}

// String returns the config as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
