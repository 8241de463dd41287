//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for shopgen.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// DateFormat is the layout used for date values in config files and flags.
const DateFormat = "2006-01-02"

// Config holds all configuration for shopgen.
type Config struct {
	// Connection is the PostgreSQL connection string for the analytic store.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Serve holds configuration for the serve subcommand.
	Serve ServeConfig `mapstructure:"serve"`
}

// GenerateConfig holds configuration for dataset generation.
type GenerateConfig struct {
	// Preset selects a bundled size preset: "full" or "minimal".
	// An empty preset uses the explicit counts below.
	Preset string `mapstructure:"preset"`

	// Customers is the number of customers to generate.
	Customers int `mapstructure:"customers"`

	// Products is the number of products to generate.
	Products int `mapstructure:"products"`

	// Orders is the target order count. Seasonality-driven skipping makes
	// this a soft target; the final count may be lower.
	Orders int `mapstructure:"orders"`

	// StartDate and EndDate bound the generated date range (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	// Seed seeds the random source. Runs with the same seed and counts
	// produce byte-identical datasets.
	Seed uint64 `mapstructure:"seed"`

	// OutputDir is where CSV files are written.
	OutputDir string `mapstructure:"output_dir"`

	// SkipCSV disables CSV export (store load only).
	SkipCSV bool `mapstructure:"skip_csv"`

	// SkipStore disables the analytic store load (CSV export only).
	SkipStore bool `mapstructure:"skip_store"`

	// DropExisting drops existing tables before loading.
	DropExisting bool `mapstructure:"drop_existing"`
}

// ServeConfig holds configuration for the analytics API server.
type ServeConfig struct {
	// Listen is the address the API server binds to.
	Listen string `mapstructure:"listen"`

	// CORSOrigins lists allowed CORS origins ("*" allows any).
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Presets bundled with the generator. "full" matches the published demo
// dataset; "minimal" is sized for CI and local smoke testing.
var presets = map[string]GenerateConfig{
	"full": {
		Customers: 10000,
		Products:  1000,
		Orders:    50000,
		StartDate: "2022-01-01",
		EndDate:   "2024-12-31",
	},
	"minimal": {
		Customers: 100,
		Products:  50,
		Orders:    200,
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
	},
}

// PresetNames returns the available preset names.
func PresetNames() []string {
	return []string{"full", "minimal"}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Generate: GenerateConfig{
			Preset:    "full",
			Seed:      42,
			OutputDir: "data",
		},
		Serve: ServeConfig{
			Listen:      ":8000",
			CORSOrigins: []string{"*"},
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./shopgen.yaml
// 3. ~/.config/shopgen/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("shopgen")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "shopgen"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyPreset fills in counts and dates from the named preset. Values
// already set explicitly are left alone, so a preset can be partially
// overridden from flags or the config file.
func (g *GenerateConfig) ApplyPreset() error {
	if g.Preset == "" {
		return nil
	}
	p, ok := presets[g.Preset]
	if !ok {
		return fmt.Errorf("unknown preset: %s (available: full, minimal)", g.Preset)
	}
	if g.Customers == 0 {
		g.Customers = p.Customers
	}
	if g.Products == 0 {
		g.Products = p.Products
	}
	if g.Orders == 0 {
		g.Orders = p.Orders
	}
	if g.StartDate == "" {
		g.StartDate = p.StartDate
	}
	if g.EndDate == "" {
		g.EndDate = p.EndDate
	}
	return nil
}

// DateRange parses and validates the configured date range.
func (g *GenerateConfig) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse(DateFormat, g.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid start_date %q: %w", g.StartDate, err)
	}
	end, err = time.Parse(DateFormat, g.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("invalid end_date %q: %w", g.EndDate, err)
	}
	if !end.After(start) {
		return start, end, fmt.Errorf("end_date %s must be after start_date %s", g.EndDate, g.StartDate)
	}
	return start, end, nil
}

// ValidateGenerate checks configuration required for the generate command.
// All failures here are fatal configuration errors: generation never starts.
func (c *Config) ValidateGenerate() error {
	g := &c.Generate
	if err := g.ApplyPreset(); err != nil {
		return err
	}
	if g.Customers < 1 {
		return fmt.Errorf("customers must be at least 1")
	}
	if g.Products < 1 {
		return fmt.Errorf("products must be at least 1")
	}
	if g.Orders < 1 {
		return fmt.Errorf("orders must be at least 1")
	}
	if _, _, err := g.DateRange(); err != nil {
		return err
	}
	if g.SkipCSV && g.SkipStore {
		return fmt.Errorf("skip_csv and skip_store together leave nothing to do")
	}
	if !g.SkipStore && c.Connection == "" {
		return fmt.Errorf("connection string is required to load the analytic store (or use --skip-store)")
	}
	if !g.SkipCSV && g.OutputDir == "" {
		return fmt.Errorf("output_dir is required for CSV export")
	}
	return nil
}

// ValidateServe checks configuration required for the serve command.
func (c *Config) ValidateServe() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.Serve.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}
