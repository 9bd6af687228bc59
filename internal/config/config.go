// =============================================================================
// Travel Voucher Generator - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing the application
// configuration. Everything lives in a single YAML file; every setting has a
// sensible default so the tool runs without any configuration at all.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no explicit --config flag is given.
const DefaultPath = "config.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the global application configuration.
type Config struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// SuppliersFile is the path to the supplier directory YAML file.
	// Default: "./configs/suppliers.yaml"
	SuppliersFile string `yaml:"suppliers_file"`

	// OutputDir is the directory where finished travel packs are placed.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// WorkDir is the directory where per-run scratch directories are created.
	// Each generation run gets its own subdirectory so concurrent runs never
	// collide.
	// Default: "./work"
	WorkDir string `yaml:"work_dir"`

	// =========================================================================
	// GENERATION SETTINGS
	// =========================================================================

	// DefaultRegion is the region assumed when no --region flag is given.
	// Valid values: "SA", "EU"
	// Default: "SA"
	DefaultRegion string `yaml:"default_region"`

	// OutputFormat selects the final packaging of a run.
	// Valid values: "pdf" (single merged PDF), "zip" (archive of documents)
	// Default: "pdf"
	OutputFormat string `yaml:"output_format"`

	// =========================================================================
	// PDF CONVERSION SETTINGS
	// =========================================================================

	// SofficePath is an explicit path to the LibreOffice binary used for
	// document to PDF conversion. When empty the binary is discovered from a
	// list of well known install locations and PATH.
	SofficePath string `yaml:"soffice_path"`

	// ConvertTimeoutSeconds is the per-document timeout for PDF conversion.
	// Default: 60
	ConvertTimeoutSeconds int `yaml:"convert_timeout_seconds"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// CONFIGURATION LOADING
// =============================================================================

// Load reads the configuration from a YAML file.
//
// A missing file at the default path is not an error: the tool falls back to
// the built-in defaults so it can run out of the box. A missing file at an
// explicitly requested path is always an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// Run on defaults.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.SuppliersFile == "" {
		cfg.SuppliersFile = "./configs/suppliers.yaml"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "./work"
	}
	if cfg.DefaultRegion == "" {
		cfg.DefaultRegion = "SA"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "pdf"
	}
	if cfg.ConvertTimeoutSeconds == 0 {
		cfg.ConvertTimeoutSeconds = 60
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// validate checks value ranges and creates the working directories.
func validate(cfg *Config) error {
	switch strings.ToUpper(cfg.DefaultRegion) {
	case "SA", "EU":
		cfg.DefaultRegion = strings.ToUpper(cfg.DefaultRegion)
	default:
		return fmt.Errorf("unknown default_region %q (expected SA or EU)", cfg.DefaultRegion)
	}

	switch strings.ToLower(cfg.OutputFormat) {
	case "pdf", "zip":
		cfg.OutputFormat = strings.ToLower(cfg.OutputFormat)
	default:
		return fmt.Errorf("unknown output_format %q (expected pdf or zip)", cfg.OutputFormat)
	}

	if cfg.ConvertTimeoutSeconds < 0 {
		return fmt.Errorf("convert_timeout_seconds must be positive, got %d", cfg.ConvertTimeoutSeconds)
	}

	for _, dir := range []string{cfg.OutputDir, cfg.WorkDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
	}

	return nil
}
