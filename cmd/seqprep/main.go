// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

// Package main is the entry point for the seqprep preparation tool.
//
// Seqprep converts a raw log of (user, item) interactions into the sparse
// matrix and fixed-length window tables consumed by sequential
// recommendation models. The tool runs as a single pass:
//
//  1. Configuration: Koanf v2 layered sources (defaults, YAML, SEQPREP_* env)
//  2. Dataset: triplet file, JSON document, or DuckDB query
//  3. Sparse view: COO/CSR user-item matrix
//  4. Windowing: sliding and/or prefix window tables
//
// An optional Prometheus listener (metrics.enabled) exposes preparation
// metrics while a long-running prep is in flight.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/seqprep/internal/config"
	"github.com/tomtom215/seqprep/internal/dataset"
	"github.com/tomtom215/seqprep/internal/interactions"
	"github.com/tomtom215/seqprep/internal/logging"
	"github.com/tomtom215/seqprep/internal/metrics"
	"github.com/tomtom215/seqprep/internal/sparse"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (default: search standard locations)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seqprep: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Preparation failed")
	}
}

func run(cfg *config.Config) error {
	ctx := logging.ContextWithNewCorrelationID(context.Background())
	log := logging.Ctx(ctx)

	if cfg.Metrics.Enabled {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           promhttp.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error().Err(err).Str("addr", cfg.Metrics.Addr).Msg("Metrics listener failed")
			}
		}()
		defer srv.Close()
		log.Info().Str("addr", cfg.Metrics.Addr).Msg("Metrics listener started")
	}

	ilog, mapping, err := loadDataset(ctx, cfg)
	if err != nil {
		return err
	}
	log.Info().
		Int("users", mapping.NumUsers()).
		Int("items", mapping.NumItems()-1).
		Int("interactions", ilog.Len()).
		Msg("Dataset ready")

	csr := sparse.FromLog(ilog).ToCSR()
	log.Info().Int("nnz", csr.NNZ()).Msg("Sparse matrix built")

	wcfg := interactions.WindowConfig{
		SequenceLength: cfg.Windowing.SequenceLength,
		TargetLength:   cfg.Windowing.TargetLength,
		NumWorkers:     cfg.Windowing.NumWorkers,
	}

	if cfg.Windowing.Variant == "sliding" || cfg.Windowing.Variant == "both" {
		start := time.Now()
		train, eval, err := ilog.SlidingWindows(wcfg)
		if err != nil {
			return fmt.Errorf("sliding windows: %w", err)
		}
		metrics.ObserveWindowing("sliding", train.Rows(), eval.Rows(), start)
		log.Info().
			Int("train_rows", train.Rows()).
			Int("eval_rows", eval.Rows()).
			Dur("elapsed", time.Since(start)).
			Msg("Sliding windows built")
	}

	if cfg.Windowing.Variant == "prefix" || cfg.Windowing.Variant == "both" {
		start := time.Now()
		train, eval, err := ilog.PrefixWindows(wcfg)
		if err != nil {
			return fmt.Errorf("prefix windows: %w", err)
		}
		metrics.ObserveWindowing("prefix", train.Rows(), eval.Rows(), start)
		log.Info().
			Int("train_rows", train.Rows()).
			Int("eval_rows", eval.Rows()).
			Dur("elapsed", time.Since(start)).
			Msg("Prefix windows built")
	}

	return nil
}

func loadDataset(ctx context.Context, cfg *config.Config) (*interactions.Log, *dataset.Mapping, error) {
	opts := dataset.Options{MinSequenceLength: cfg.Dataset.MinSequenceLength}

	switch cfg.Dataset.Format {
	case "triplets":
		return dataset.LoadTriplets(cfg.Dataset.Path, opts)
	case "json":
		return dataset.LoadJSON(cfg.Dataset.Path, opts)
	case "duckdb":
		db, err := dataset.OpenDuckDB(cfg.Dataset.Path)
		if err != nil {
			return nil, nil, err
		}
		defer db.Close()
		return dataset.LoadDuckDB(ctx, db, cfg.Dataset.Query, opts)
	default:
		// Unreachable: config validation rejects unknown formats.
		return nil, nil, fmt.Errorf("unsupported dataset format %q", cfg.Dataset.Format)
	}
}
