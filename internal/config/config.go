// Package config provides configuration loading and validation for the
// panostat CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidTopK   = errors.New("report top-k must be positive")
	ErrInvalidFormat = errors.New("unknown report format")
	ErrInvalidLevel  = errors.New("unknown logging level")
)

// Report output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default configuration values.
const (
	defaultTopK   = 10
	defaultFormat = FormatText
	defaultLevel  = "info"
)

// Config holds all configuration for the panostat CLI.
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan"`
	Report  ReportConfig  `mapstructure:"report"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ScanConfig controls corpus discovery.
type ScanConfig struct {
	Recursive bool `mapstructure:"recursive"`
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Format string `mapstructure:"format"`
	TopK   int    `mapstructure:"top_k"`
	Color  bool   `mapstructure:"color"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from an optional YAML file and PANOSTAT_*
// environment variables. A missing config file is not an error; defaults
// apply.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("panostat")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME/.config/panostat")
	}

	viperCfg.SetEnvPrefix("PANOSTAT")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("scan.recursive", true)

	viperCfg.SetDefault("report.format", defaultFormat)
	viperCfg.SetDefault("report.top_k", defaultTopK)
	viperCfg.SetDefault("report.color", true)

	viperCfg.SetDefault("logging.level", defaultLevel)
}

// Validate checks the configuration, including values overridden by
// command-line flags after Load.
func (c *Config) Validate() error {
	if c.Report.TopK <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTopK, c.Report.TopK)
	}

	switch c.Report.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Report.Format)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, c.Logging.Level)
	}

	return nil
}
