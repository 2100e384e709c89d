// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

// Package metrics exposes Prometheus instrumentation for the preparation
// pipeline: dataset loading throughput, windowing durations, and emitted
// row counts.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Dataset loading metrics.
	DatasetLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seqprep_dataset_load_duration_seconds",
			Help:    "Duration of dataset loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	DatasetInteractionsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seqprep_dataset_interactions_loaded_total",
			Help: "Total number of interactions loaded from datasets",
		},
		[]string{"format"},
	)

	// Windowing metrics.
	WindowingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seqprep_windowing_duration_seconds",
			Help:    "Duration of windowing transforms in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"variant"},
	)

	WindowRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seqprep_window_rows_total",
			Help: "Total number of window rows emitted",
		},
		[]string{"variant", "table"},
	)
)

// ObserveDatasetLoad records a completed dataset load.
func ObserveDatasetLoad(format string, interactions int, start time.Time) {
	DatasetLoadDuration.WithLabelValues(format).Observe(time.Since(start).Seconds())
	DatasetInteractionsLoaded.WithLabelValues(format).Add(float64(interactions))
}

// ObserveWindowing records a completed windowing transform.
func ObserveWindowing(variant string, trainRows, evalRows int, start time.Time) {
	WindowingDuration.WithLabelValues(variant).Observe(time.Since(start).Seconds())
	WindowRows.WithLabelValues(variant, "train").Add(float64(trainRows))
	WindowRows.WithLabelValues(variant, "eval").Add(float64(evalRows))
}
