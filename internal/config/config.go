// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

// Package config loads and validates seqprep tool configuration using
// layered sources: built-in defaults, an optional YAML file, and
// SEQPREP_-prefixed environment variables, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where a config file is searched, in order.
var DefaultConfigPaths = []string{
	"seqprep.yaml",
	"seqprep.yml",
	"/etc/seqprep/config.yaml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "SEQPREP_CONFIG"

// envPrefix is stripped from environment variables before mapping them to
// koanf paths: SEQPREP_DATASET_PATH -> dataset.path.
const envPrefix = "SEQPREP_"

// Config is the root tool configuration.
type Config struct {
	Dataset   DatasetConfig   `koanf:"dataset"`
	Windowing WindowingConfig `koanf:"windowing"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// DatasetConfig selects the input source.
type DatasetConfig struct {
	// Format is the source format: triplets, json, or duckdb.
	Format string `koanf:"format"`

	// Path is the dataset file path (triplets and json formats) or the
	// DuckDB database file (duckdb format; empty means in-memory).
	Path string `koanf:"path"`

	// Query is the SQL statement yielding (user_id, item_id) rows, in
	// interaction order. Required for the duckdb format.
	Query string `koanf:"query"`

	// MinSequenceLength drops users with shorter histories before dense
	// ids are assigned.
	MinSequenceLength int `koanf:"min_sequence_length"`
}

// WindowingConfig selects the windowing transform.
type WindowingConfig struct {
	// Variant is the windowing variant: sliding, prefix, or both.
	Variant string `koanf:"variant"`

	// SequenceLength is the fixed window width L.
	SequenceLength int `koanf:"sequence_length"`

	// TargetLength is the fixed target width T.
	TargetLength int `koanf:"target_length"`

	// NumWorkers is the parallel fill worker count; 0 uses all CPUs.
	NumWorkers int `koanf:"num_workers"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsConfig controls the optional Prometheus listener that runs for
// the duration of a preparation.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// defaultConfig returns the built-in defaults, applied before file and
// environment layers.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Format:            "triplets",
			Path:              "",
			Query:             "",
			MinSequenceLength: 0,
		},
		Windowing: WindowingConfig{
			Variant:        "sliding",
			SequenceLength: 5,
			TargetLength:   1,
			NumWorkers:     0, // 0 = use runtime.NumCPU()
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9090",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, then validates it. An explicit path skips the
// default search; an empty path falls back to ConfigPathEnvVar and then
// DefaultConfigPaths, and missing files are not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	configPath := path
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	// SEQPREP_WINDOWING_SEQUENCE_LENGTH -> windowing.sequence_length.
	// Section names are single words, so only the first underscore is a
	// path separator.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.Replace(s, "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first config file that exists, or empty.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	switch c.Dataset.Format {
	case "triplets", "json":
		if c.Dataset.Path == "" {
			return fmt.Errorf("dataset.path is required for format %q", c.Dataset.Format)
		}
	case "duckdb":
		if c.Dataset.Query == "" {
			return fmt.Errorf("dataset.query is required for format %q", c.Dataset.Format)
		}
	default:
		return fmt.Errorf("dataset.format must be triplets, json, or duckdb, got %q", c.Dataset.Format)
	}

	if c.Dataset.MinSequenceLength < 0 {
		return fmt.Errorf("dataset.min_sequence_length must be non-negative, got %d", c.Dataset.MinSequenceLength)
	}

	switch c.Windowing.Variant {
	case "sliding", "prefix", "both":
	default:
		return fmt.Errorf("windowing.variant must be sliding, prefix, or both, got %q", c.Windowing.Variant)
	}
	if c.Windowing.SequenceLength < 1 {
		return fmt.Errorf("windowing.sequence_length must be positive, got %d", c.Windowing.SequenceLength)
	}
	if c.Windowing.TargetLength < 1 {
		return fmt.Errorf("windowing.target_length must be positive, got %d", c.Windowing.TargetLength)
	}
	if c.Windowing.NumWorkers < 0 {
		return fmt.Errorf("windowing.num_workers must be non-negative, got %d", c.Windowing.NumWorkers)
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics.enabled is true")
	}

	return nil
}
