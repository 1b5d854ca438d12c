// =============================================================================
// Wise to LexOffice Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION SOURCES (later sources win):
//   1. Built-in defaults (applyMainConfigDefaults)
//   2. The YAML configuration file (config.yaml by default)
//   3. WISELEX_* environment variables (applyEnvOverrides)
//
// A missing configuration file is not an error when the caller asks for
// LoadMainConfigOrDefault; every key has a usable default.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultOutputDir      = "./output"
	DefaultFilePrefix     = "lexoffice_import_"
	DefaultAccountHolder  = "Kontoinhaber"
	DefaultCurrency       = "EUR"
	DefaultInputEncoding  = "UTF-8"
	DefaultMaxFileSize    = 5 * 1024 * 1024
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultConfigFileName = "config.yaml"
	envPrefix             = "WISELEX_"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is where converted files are written when no explicit
	// output path is given.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// FilePrefix is prepended to the ISO date in generated file names.
	// Default: "lexoffice_import_"
	FilePrefix string `yaml:"file_prefix"`

	// WriteBOM prefixes the output with a UTF-8 byte-order-mark so that
	// spreadsheet tools pick the right encoding.
	// Default: true
	WriteBOM *bool `yaml:"write_bom"`

	// XLSXPreview additionally writes an .xlsx copy of the converted rows.
	// Default: false
	XLSXPreview bool `yaml:"xlsx_preview"`

	// =========================================================================
	// CONVERSION SETTINGS
	// =========================================================================

	// AccountHolder is the label used for the account owner's own side of
	// a transaction.
	// Default: "Kontoinhaber"
	AccountHolder string `yaml:"account_holder"`

	// DefaultCurrency is reported in the statistics of an empty export.
	// Default: "EUR"
	DefaultCurrency string `yaml:"default_currency"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// InputEncoding is the IANA name of the export's character encoding.
	// Common values: "UTF-8", "ISO-8859-1", "Windows-1252"
	// Default: "UTF-8"
	InputEncoding string `yaml:"input_encoding"`

	// MaxFileSize is the largest accepted input file in bytes.
	// Default: 5 MiB
	MaxFileSize int64 `yaml:"max_file_size"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the log formatter.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `yaml:"log_format"`
}

// BOMEnabled reports whether output files get a byte-order-mark.
func (c *MainConfig) BOMEnabled() bool {
	return c.WriteBOM == nil || *c.WriteBOM
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return finish(&config)
}

// LoadMainConfigOrDefault behaves like LoadMainConfig but falls back to the
// defaults when the file does not exist.
func LoadMainConfigOrDefault(configPath string) (*MainConfig, error) {
	if configPath == "" {
		return finish(&MainConfig{})
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return finish(&MainConfig{})
	}

	return LoadMainConfig(configPath)
}

// finish applies defaults and environment overrides, then validates.
func finish(config *MainConfig) (*MainConfig, error) {
	applyMainConfigDefaults(config)

	if err := applyEnvOverrides(config, os.Getenv); err != nil {
		return nil, fmt.Errorf("invalid environment override: %w", err)
	}

	if err := validateMainConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = DefaultOutputDir
	}
	if config.FilePrefix == "" {
		config.FilePrefix = DefaultFilePrefix
	}
	if config.AccountHolder == "" {
		config.AccountHolder = DefaultAccountHolder
	}
	if config.DefaultCurrency == "" {
		config.DefaultCurrency = DefaultCurrency
	}
	if config.InputEncoding == "" {
		config.InputEncoding = DefaultInputEncoding
	}
	if config.MaxFileSize == 0 {
		config.MaxFileSize = DefaultMaxFileSize
	}
	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevel
	}
	if config.LogFormat == "" {
		config.LogFormat = DefaultLogFormat
	}
	if config.WriteBOM == nil {
		enabled := true
		config.WriteBOM = &enabled
	}
}

// applyEnvOverrides reads WISELEX_* variables. Empty variables are ignored.
func applyEnvOverrides(config *MainConfig, getenv func(string) string) error {
	textKeys := map[string]*string{
		"OUTPUT_DIR":       &config.OutputDir,
		"FILE_PREFIX":      &config.FilePrefix,
		"ACCOUNT_HOLDER":   &config.AccountHolder,
		"DEFAULT_CURRENCY": &config.DefaultCurrency,
		"INPUT_ENCODING":   &config.InputEncoding,
		"LOG_LEVEL":        &config.LogLevel,
		"LOG_FORMAT":       &config.LogFormat,
	}

	for key, target := range textKeys {
		if value := getenv(envPrefix + key); len(value) != 0 {
			*target = value
		}
	}

	if value := getenv(envPrefix + "MAX_FILE_SIZE"); len(value) != 0 {
		size, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%sMAX_FILE_SIZE: %w", envPrefix, err)
		}
		config.MaxFileSize = size
	}

	if value := getenv(envPrefix + "WRITE_BOM"); len(value) != 0 {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%sWRITE_BOM: %w", envPrefix, err)
		}
		config.WriteBOM = &enabled
	}

	if value := getenv(envPrefix + "XLSX_PREVIEW"); len(value) != 0 {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%sXLSX_PREVIEW: %w", envPrefix, err)
		}
		config.XLSXPreview = enabled
	}

	return nil
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	if config.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative (got %d)", config.MaxFileSize)
	}

	if len(config.DefaultCurrency) != 3 {
		return fmt.Errorf("default_currency must be a three-letter ISO code (got %q)", config.DefaultCurrency)
	}
	config.DefaultCurrency = strings.ToUpper(config.DefaultCurrency)

	switch strings.ToLower(config.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", config.LogLevel)
	}

	switch strings.ToLower(config.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", config.LogFormat)
	}

	return nil
}
