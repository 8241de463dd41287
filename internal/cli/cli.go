//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for shopgen.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shopgen/shopgen/internal/config"
	"github.com/shopgen/shopgen/internal/logging"
	"github.com/shopgen/shopgen/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "shopgen",
		Short: "Synthetic e-commerce dataset generator and analytics service",
		Long: `shopgen generates a realistic synthetic e-commerce dataset (customers,
products, orders, order items, and web sessions), exports it to CSV,
loads it into a PostgreSQL analytic store, and serves business analytics
over a REST API and a scripted report.

The generated data has the statistical texture of a real online store:
segment-conditioned spending, seasonal order volume, skewed product
prices, and a sessions-to-orders conversion funnel. Runs are fully
deterministic for a given seed.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./shopgen.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(presetsCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available dataset presets",
	Long: `List the bundled dataset size presets. A preset fixes the entity
counts and date range; individual values can still be overridden with
flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available presets:")
		cmd.Println()
		cmd.Println("  full     - 10000 customers, 1000 products, 50000 orders")
		cmd.Println("             (2022-01-01 to 2024-12-31)")
		cmd.Println("  minimal  - 100 customers, 50 products, 200 orders")
		cmd.Println("             (2024-01-01 to 2024-12-31)")
		cmd.Println()
		cmd.Println("The order count is a soft target: seasonal skipping keeps")
		cmd.Println("realistic month-to-month volume, so the final count is lower.")
	},
}
