//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.Generate.Preset != "full" {
		t.Errorf("Expected Generate.Preset 'full', got '%s'", cfg.Generate.Preset)
	}
	if cfg.Generate.Seed != 42 {
		t.Errorf("Expected Generate.Seed 42, got %d", cfg.Generate.Seed)
	}
	if cfg.Generate.OutputDir != "data" {
		t.Errorf("Expected Generate.OutputDir 'data', got '%s'", cfg.Generate.OutputDir)
	}
	if cfg.Serve.Listen != ":8000" {
		t.Errorf("Expected Serve.Listen ':8000', got '%s'", cfg.Serve.Listen)
	}
}

func TestApplyPresetFull(t *testing.T) {
	g := GenerateConfig{Preset: "full"}
	if err := g.ApplyPreset(); err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}

	if g.Customers != 10000 {
		t.Errorf("Expected 10000 customers, got %d", g.Customers)
	}
	if g.Products != 1000 {
		t.Errorf("Expected 1000 products, got %d", g.Products)
	}
	if g.Orders != 50000 {
		t.Errorf("Expected 50000 orders, got %d", g.Orders)
	}
	if g.StartDate != "2022-01-01" || g.EndDate != "2024-12-31" {
		t.Errorf("Unexpected date range: %s .. %s", g.StartDate, g.EndDate)
	}
}

func TestApplyPresetMinimal(t *testing.T) {
	g := GenerateConfig{Preset: "minimal"}
	if err := g.ApplyPreset(); err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}

	if g.Customers != 100 || g.Products != 50 || g.Orders != 200 {
		t.Errorf("Unexpected minimal counts: %d/%d/%d", g.Customers, g.Products, g.Orders)
	}
	if g.StartDate != "2024-01-01" || g.EndDate != "2024-12-31" {
		t.Errorf("Unexpected date range: %s .. %s", g.StartDate, g.EndDate)
	}
}

func TestApplyPresetDoesNotOverrideExplicitValues(t *testing.T) {
	g := GenerateConfig{Preset: "minimal", Customers: 7, StartDate: "2023-06-01"}
	if err := g.ApplyPreset(); err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}

	if g.Customers != 7 {
		t.Errorf("Explicit customer count was overridden: %d", g.Customers)
	}
	if g.StartDate != "2023-06-01" {
		t.Errorf("Explicit start date was overridden: %s", g.StartDate)
	}
	// Unset fields still come from the preset
	if g.Products != 50 {
		t.Errorf("Expected preset products 50, got %d", g.Products)
	}
}

func TestApplyPresetUnknown(t *testing.T) {
	g := GenerateConfig{Preset: "gigantic"}
	if err := g.ApplyPreset(); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestDateRange(t *testing.T) {
	g := GenerateConfig{StartDate: "2024-01-01", EndDate: "2024-12-31"}
	start, end, err := g.DateRange()
	if err != nil {
		t.Fatalf("DateRange failed: %v", err)
	}
	if !end.After(start) {
		t.Error("end should be after start")
	}
	if got := end.Sub(start).Hours() / 24; got != 365 {
		t.Errorf("Expected 365 days, got %v", got)
	}
}

func TestDateRangeInvalid(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"garbage start", "not-a-date", "2024-12-31"},
		{"garbage end", "2024-01-01", "soon"},
		{"end equals start", "2024-01-01", "2024-01-01"},
		{"end before start", "2024-12-31", "2024-01-01"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := GenerateConfig{StartDate: tc.start, EndDate: tc.end}
			if _, _, err := g.DateRange(); err == nil {
				t.Errorf("Expected error for %s..%s", tc.start, tc.end)
			}
		})
	}
}

func TestValidateGenerate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection = "postgres://localhost/shopgen"
	cfg.Generate.Preset = "minimal"

	if err := cfg.ValidateGenerate(); err != nil {
		t.Errorf("Expected valid config, got: %v", err)
	}
}

func TestValidateGenerateRequiresConnection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.Preset = "minimal"

	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("Expected error without connection string")
	}

	cfg.Generate.SkipStore = true
	if err := cfg.ValidateGenerate(); err != nil {
		t.Errorf("skip_store should not require a connection, got: %v", err)
	}
}

func TestValidateGenerateNothingToDo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generate.Preset = "minimal"
	cfg.Generate.SkipStore = true
	cfg.Generate.SkipCSV = true

	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("Expected error when both outputs are disabled")
	}
}

func TestValidateGenerateZeroCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection = "postgres://localhost/shopgen"
	cfg.Generate.Preset = ""
	cfg.Generate.Customers = 10
	cfg.Generate.Products = 0
	cfg.Generate.Orders = 10
	cfg.Generate.StartDate = "2024-01-01"
	cfg.Generate.EndDate = "2024-12-31"

	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("Expected error for zero product count")
	}
}

func TestValidateServe(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.ValidateServe(); err == nil {
		t.Error("Expected error without connection string")
	}

	cfg.Connection = "postgres://localhost/shopgen"
	if err := cfg.ValidateServe(); err != nil {
		t.Errorf("Expected valid config, got: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	defer os.Chdir(oldWd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Generate.Preset != "full" {
		t.Errorf("Expected default preset 'full', got '%s'", cfg.Generate.Preset)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shopgen.yaml")
	content := []byte(`
connection: postgres://localhost/shopgen
log_level: debug
generate:
  preset: minimal
  seed: 7
  output_dir: /tmp/shopgen
serve:
  listen: ":9000"
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Connection != "postgres://localhost/shopgen" {
		t.Errorf("Unexpected connection: %s", cfg.Connection)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.Generate.Preset != "minimal" {
		t.Errorf("Unexpected preset: %s", cfg.Generate.Preset)
	}
	if cfg.Generate.Seed != 7 {
		t.Errorf("Unexpected seed: %d", cfg.Generate.Seed)
	}
	if cfg.Serve.Listen != ":9000" {
		t.Errorf("Unexpected listen address: %s", cfg.Serve.Listen)
	}
}
