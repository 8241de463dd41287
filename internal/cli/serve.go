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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shopgen/shopgen/internal/api"
	"github.com/shopgen/shopgen/internal/store"
)

var (
	serveListen      string
	serveCORSOrigins []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analytics REST API",
	Long: `Serve the analytics REST API over the analytic store. The server
runs until interrupted and shuts down gracefully.

Example:
  shopgen serve --listen :8000 --connection "postgres://..."`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "",
		"listen address (default: :8000)")
	serveCmd.Flags().StringSliceVar(&serveCORSOrigins, "cors-origin", nil,
		"allowed CORS origin (repeatable; default: any)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveListen != "" {
		cfg.Serve.Listen = serveListen
	}
	if len(serveCORSOrigins) > 0 {
		cfg.Serve.CORSOrigins = serveCORSOrigins
	}

	if err := cfg.ValidateServe(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := store.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	server := api.NewServer(pool, cfg.Serve.CORSOrigins)
	return server.Run(ctx, cfg.Serve.Listen)
}
