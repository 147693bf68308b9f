// Package config loads devconsole configuration from flags, environment
// variables, .env files and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"devconsole/internal/logger"
	"devconsole/internal/output"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "DEVCONSOLE"

// Config keys. Flags are bound to the same keys.
const (
	KeyName          = "name"
	KeyLogLevel      = "log_level"
	KeyLogFile       = "log_file"
	KeyTestMode      = "test_mode"
	KeyHistoryLimit  = "history_limit"
	KeyQueueCapacity = "queue_capacity"
	KeyTickInterval  = "tick_interval"
	KeyTheme         = "theme"
	KeyOutput        = "output"
	KeyQuiet         = "quiet"
	KeySettings      = "settings"
)

// Config is the resolved configuration of one devconsole process.
type Config struct {
	Name          string
	LogLevel      string
	LogFile       string
	TestMode      bool
	HistoryLimit  int
	QueueCapacity int
	TickInterval  time.Duration
	Theme         string
	// Output is the printer mode: auto, styled, plain or json.
	Output string
	// Quiet silences command output; diagnostics still reach the logger.
	Quiet bool
	// Settings are startup values for registered console settings, keyed by
	// lower-case setting name. They are applied once and never written back.
	Settings map[string]any
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyName, "console")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTestMode, false)
	v.SetDefault(KeyHistoryLimit, 1000)
	v.SetDefault(KeyQueueCapacity, 0)
	v.SetDefault(KeyTickInterval, 50*time.Millisecond)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyOutput, "auto")
	v.SetDefault(KeyQuiet, false)
}

// LoadDotEnv loads KEY=value pairs from dir/.env into the process
// environment. Variables that are already set win. A missing file is not an
// error.
func LoadDotEnv(dir string) error {
	envPath := filepath.Join(dir, ".env")
	data, err := os.ReadFile(envPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read .env file %s: %w", envPath, err)
	}

	envMap, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse .env file %s: %w", envPath, err)
	}

	for key, value := range envMap {
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Load resolves configuration with precedence flag > env > file > default.
// configFile may be empty, in which case devconsole.yaml is searched in the
// working directory and the user config directory.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("devconsole")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "devconsole"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else {
		logger.Debug("Loaded config file", "path", v.ConfigFileUsed())
	}

	cfg := &Config{
		Name:          v.GetString(KeyName),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFile:       v.GetString(KeyLogFile),
		TestMode:      v.GetBool(KeyTestMode),
		HistoryLimit:  v.GetInt(KeyHistoryLimit),
		QueueCapacity: v.GetInt(KeyQueueCapacity),
		TickInterval:  v.GetDuration(KeyTickInterval),
		Theme:         v.GetString(KeyTheme),
		Output:        v.GetString(KeyOutput),
		Quiet:         v.GetBool(KeyQuiet),
		Settings:      v.GetStringMap(KeySettings),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs error
	if c.Name == "" || strings.ContainsAny(c.Name, " \t") {
		errs = multierr.Append(errs, fmt.Errorf("%s must be a single non-empty word, got %q", KeyName, c.Name))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = multierr.Append(errs, fmt.Errorf("%s %q is not one of debug, info, warn, error, fatal", KeyLogLevel, c.LogLevel))
	}
	if c.HistoryLimit < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s cannot be negative", KeyHistoryLimit))
	}
	if c.QueueCapacity < 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s cannot be negative", KeyQueueCapacity))
	}
	if c.TickInterval <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("%s must be positive", KeyTickInterval))
	}
	if c.Theme != "default" && c.Theme != "plain" {
		errs = multierr.Append(errs, fmt.Errorf("%s %q is not one of default, plain", KeyTheme, c.Theme))
	}
	if _, err := output.ParseMode(c.Output); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", KeyOutput, err))
	}
	return errs
}
