//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopgen/shopgen/internal/datagen"
	"github.com/shopgen/shopgen/internal/ecommerce"
	"github.com/shopgen/shopgen/internal/logging"
	"github.com/shopgen/shopgen/internal/store"
)

var (
	genPreset       string
	genCustomers    int
	genProducts     int
	genOrders       int
	genStartDate    string
	genEndDate      string
	genSeed         uint64
	genOutputDir    string
	genSkipCSV      bool
	genSkipStore    bool
	genDropExisting bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the dataset, export CSV, and load the analytic store",
	Long: `Generate the synthetic e-commerce dataset, write one CSV file per
table, and load the analytic store with tables and views.

Example:
  shopgen generate --preset minimal --seed 7 --connection "postgres://..."
  shopgen generate --preset full --skip-store --output-dir ./data`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genPreset, "preset", "",
		"dataset preset: full or minimal (default: full)")
	generateCmd.Flags().IntVar(&genCustomers, "customers", 0,
		"number of customers to generate")
	generateCmd.Flags().IntVar(&genProducts, "products", 0,
		"number of products to generate")
	generateCmd.Flags().IntVar(&genOrders, "orders", 0,
		"target number of orders to generate")
	generateCmd.Flags().StringVar(&genStartDate, "start-date", "",
		"start of the generated date range (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&genEndDate, "end-date", "",
		"end of the generated date range (YYYY-MM-DD)")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0,
		"random seed (default: 42)")
	generateCmd.Flags().StringVar(&genOutputDir, "output-dir", "",
		"directory for CSV export (default: data)")
	generateCmd.Flags().BoolVar(&genSkipCSV, "skip-csv", false,
		"skip CSV export")
	generateCmd.Flags().BoolVar(&genSkipStore, "skip-store", false,
		"skip loading the analytic store")
	generateCmd.Flags().BoolVar(&genDropExisting, "drop-existing", false,
		"drop existing tables before loading")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if genPreset != "" {
		cfg.Generate.Preset = genPreset
	}
	if genCustomers > 0 {
		cfg.Generate.Customers = genCustomers
	}
	if genProducts > 0 {
		cfg.Generate.Products = genProducts
	}
	if genOrders > 0 {
		cfg.Generate.Orders = genOrders
	}
	if genStartDate != "" {
		cfg.Generate.StartDate = genStartDate
	}
	if genEndDate != "" {
		cfg.Generate.EndDate = genEndDate
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generate.Seed = genSeed
	}
	if genOutputDir != "" {
		cfg.Generate.OutputDir = genOutputDir
	}
	if genSkipCSV {
		cfg.Generate.SkipCSV = true
	}
	if genSkipStore {
		cfg.Generate.SkipStore = true
	}
	if genDropExisting {
		cfg.Generate.DropExisting = true
	}

	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	g := cfg.Generate
	start, end, err := g.DateRange()
	if err != nil {
		return err
	}

	logging.Info().
		Str("preset", g.Preset).
		Int("customers", g.Customers).
		Int("products", g.Products).
		Int("orders", g.Orders).
		Uint64("seed", g.Seed).
		Msg("Generating dataset")

	faker := datagen.NewFakerWithSeed(g.Seed)
	gen := ecommerce.NewGenerator(faker, ecommerce.Config{
		Customers: g.Customers,
		Products:  g.Products,
		Orders:    g.Orders,
		StartDate: start,
		EndDate:   end,
	})

	ds, err := gen.GenerateAll()
	if err != nil {
		return fmt.Errorf("failed to generate dataset: %w", err)
	}

	if !g.SkipCSV {
		logging.Info().Str("dir", g.OutputDir).Msg("Writing CSV files")
		if err := ds.WriteCSV(g.OutputDir); err != nil {
			return fmt.Errorf("failed to write CSV files: %w", err)
		}
	}

	if !g.SkipStore {
		if err := loadStore(cmd.Context(), ds); err != nil {
			return err
		}
	}

	logging.Info().Msg("Generation complete")
	return nil
}

func loadStore(ctx context.Context, ds *ecommerce.Dataset) error {
	pool, err := store.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Generate.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := store.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	logging.Info().Msg("Creating schema")
	if err := store.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := store.LoadDataset(ctx, pool, ds); err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	logging.Info().Msg("Creating views")
	if err := store.CreateViews(ctx, pool); err != nil {
		return fmt.Errorf("failed to create views: %w", err)
	}

	info := store.RunInfo{Preset: cfg.Generate.Preset, Seed: cfg.Generate.Seed}
	if err := store.SaveMetadata(ctx, pool, info, ds); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	return nil
}
