//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopgen/shopgen/internal/ecommerce"
	"github.com/shopgen/shopgen/internal/logging"
	"github.com/shopgen/shopgen/pkg/version"
)

const metadataTable = "shopgen_metadata"

const createMetadataTableSQL = `
CREATE TABLE IF NOT EXISTS shopgen_metadata (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`

// RunInfo describes one generation run. It is persisted alongside the
// dataset so a store can always answer how it was produced.
type RunInfo struct {
	Preset string
	Seed   uint64
}

// SaveMetadata records the generation parameters and row counts of the
// loaded dataset.
func SaveMetadata(ctx context.Context, pool *pgxpool.Pool, info RunInfo, ds *ecommerce.Dataset) error {
	_, err := pool.Exec(ctx, createMetadataTableSQL)
	if err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	metadata := map[string]string{
		"version":        version.Short(),
		"schema_version": version.SchemaVersion,
		"preset":         info.Preset,
		"seed":           strconv.FormatUint(info.Seed, 10),
		"generated_at":   time.Now().UTC().Format(time.RFC3339),
		"customers":      strconv.Itoa(len(ds.Customers)),
		"products":       strconv.Itoa(len(ds.Products)),
		"orders":         strconv.Itoa(len(ds.Orders)),
		"order_items":    strconv.Itoa(len(ds.OrderItems)),
		"web_sessions":   strconv.Itoa(len(ds.Sessions)),
	}

	for key, value := range metadata {
		_, err := pool.Exec(ctx, `
            INSERT INTO shopgen_metadata (key, value) VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
        `, key, value)
		if err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Str("preset", info.Preset).
		Uint64("seed", info.Seed).
		Msg("Saved metadata")

	return nil
}

// GetMetadataValue retrieves a single metadata value by key.
func GetMetadataValue(ctx context.Context, pool *pgxpool.Pool, key string) (string, error) {
	var value string
	err := pool.QueryRow(ctx, `
        SELECT value FROM shopgen_metadata WHERE key = $1
    `, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// GetAllMetadata retrieves all metadata as a map.
func GetAllMetadata(ctx context.Context, pool *pgxpool.Pool) (map[string]string, error) {
	rows, err := pool.Query(ctx, `SELECT key, value FROM shopgen_metadata`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// MetadataExists checks if the metadata table exists.
func MetadataExists(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT FROM information_schema.tables
            WHERE table_name = $1
        )
    `, metadataTable).Scan(&exists)
	return exists, err
}
