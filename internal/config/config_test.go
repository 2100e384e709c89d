// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seqprep.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
dataset:
  format: triplets
  path: /data/ratings.dat
  min_sequence_length: 5
windowing:
  variant: both
  sequence_length: 8
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Dataset.Path != "/data/ratings.dat" {
		t.Errorf("Dataset.Path = %q", cfg.Dataset.Path)
	}
	if cfg.Windowing.SequenceLength != 8 {
		t.Errorf("Windowing.SequenceLength = %d, want 8", cfg.Windowing.SequenceLength)
	}
	// Unset fields keep their defaults.
	if cfg.Windowing.TargetLength != 1 {
		t.Errorf("Windowing.TargetLength = %d, want default 1", cfg.Windowing.TargetLength)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
dataset:
  format: json
  path: /data/seqs.json
windowing:
  sequence_length: 5
`)

	t.Setenv("SEQPREP_WINDOWING_SEQUENCE_LENGTH", "12")
	t.Setenv("SEQPREP_DATASET_PATH", "/override/seqs.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Windowing.SequenceLength != 12 {
		t.Errorf("Windowing.SequenceLength = %d, want env override 12", cfg.Windowing.SequenceLength)
	}
	if cfg.Dataset.Path != "/override/seqs.json" {
		t.Errorf("Dataset.Path = %q, want env override", cfg.Dataset.Path)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() *Config {
		cfg := defaultConfig()
		cfg.Dataset.Path = "/data/ratings.dat"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Dataset.Format = "parquet" },
			wantErr: "dataset.format",
		},
		{
			name:    "triplets without path",
			mutate:  func(c *Config) { c.Dataset.Path = "" },
			wantErr: "dataset.path",
		},
		{
			name:    "duckdb without query",
			mutate:  func(c *Config) { c.Dataset.Format = "duckdb" },
			wantErr: "dataset.query",
		},
		{
			name:    "unknown variant",
			mutate:  func(c *Config) { c.Windowing.Variant = "rolling" },
			wantErr: "windowing.variant",
		},
		{
			name:    "zero sequence length",
			mutate:  func(c *Config) { c.Windowing.SequenceLength = 0 },
			wantErr: "windowing.sequence_length",
		},
		{
			name:    "zero target length",
			mutate:  func(c *Config) { c.Windowing.TargetLength = 0 },
			wantErr: "windowing.target_length",
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Windowing.NumWorkers = -1 },
			wantErr: "windowing.num_workers",
		},
		{
			name: "metrics enabled without addr",
			mutate: func(c *Config) {
				c.Metrics.Enabled = true
				c.Metrics.Addr = ""
			},
			wantErr: "metrics.addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := base()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
