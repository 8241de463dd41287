//-------------------------------------------------------------------------
//
// shopgen - Synthetic E-commerce Analytics
//
// Copyright (c) 2025 - 2026, the shopgen authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import "github.com/shopgen/shopgen/internal/logging"

// ProgressReporter tracks and reports table load progress.
type ProgressReporter struct {
	tableName string
	totalRows int64
	current   int64
	interval  int64
}

// NewProgressReporter creates a new progress reporter that logs every
// interval rows.
func NewProgressReporter(tableName string, totalRows, interval int64) *ProgressReporter {
	if interval < 1 {
		interval = 1
	}
	return &ProgressReporter{
		tableName: tableName,
		totalRows: totalRows,
		interval:  interval,
	}
}

// Update advances the row count and logs when an interval is crossed.
func (p *ProgressReporter) Update(rows int64) {
	old := p.current
	p.current += rows

	if p.current/p.interval > old/p.interval {
		pct := float64(p.current) / float64(p.totalRows) * 100
		logging.Info().
			Str("table", p.tableName).
			Int64("rows", p.current).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Loading data")
	}
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.current).
		Msg("Table complete")
}
