// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// DuckDB driver registration for database/sql.
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/seqprep/internal/interactions"
	"github.com/tomtom215/seqprep/internal/logging"
	"github.com/tomtom215/seqprep/internal/metrics"
)

// OpenDuckDB opens a DuckDB database file. An empty path opens an
// in-memory database.
func OpenDuckDB(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb database: %w", err)
	}
	return db, nil
}

// LoadDuckDB streams (user_id, item_id) rows from a DuckDB query. The
// query's row order is taken as interaction order, so callers should
// order by user and event time:
//
//	SELECT user_id, item_id FROM events ORDER BY user_id, event_ts
func LoadDuckDB(ctx context.Context, db *sql.DB, query string, opts Options) (*interactions.Log, *Mapping, error) {
	start := time.Now()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var pairs []pair
	for rows.Next() {
		var p pair
		if err := rows.Scan(&p.user, &p.item); err != nil {
			return nil, nil, fmt.Errorf("scan interaction row: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("read interaction rows: %w", err)
	}

	log, m, err := buildLog(pairs, opts)
	if err != nil {
		return nil, nil, err
	}

	metrics.ObserveDatasetLoad("duckdb", log.Len(), start)
	lg := logging.Ctx(ctx)
	lg.Info().
		Int("interactions", log.Len()).
		Int("users", log.NumUsers()).
		Int("items", log.NumItems()-1).
		Dur("elapsed", time.Since(start)).
		Msg("DuckDB dataset loaded")

	return log, m, nil
}
