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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopgen/shopgen/internal/report"
	"github.com/shopgen/shopgen/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the scripted analytics report",
	Long: `Print the full analytics report to stdout: revenue trends, customer
segmentation, product performance, and marketing attribution, all read
from the analytic store.

Example:
  shopgen report --connection "postgres://..."`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := store.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	return report.Run(ctx, pool, cmd.OutOrStdout())
}
