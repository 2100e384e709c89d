// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package dataset

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/seqprep/internal/interactions"
	"github.com/tomtom215/seqprep/internal/logging"
	"github.com/tomtom215/seqprep/internal/metrics"
)

// LoadJSON reads a per-user sequence document: an object mapping user ids
// (as strings, JSON object keys being strings) to ordered item arrays:
//
//	{"17": [3, 9, 4], "42": [1, 1, 8]}
//
// Array order is taken as interaction order. Users are processed in
// ascending numeric id, so loading is deterministic regardless of key
// order in the document.
func LoadJSON(path string, opts Options) (*interactions.Log, *Mapping, error) {
	start := time.Now()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read json dataset: %w", err)
	}

	var doc map[string][]int
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("decode json dataset: %w", err)
	}

	users := make([]int, 0, len(doc))
	seqs := make(map[int][]int, len(doc))
	for key, seq := range doc {
		uid, err := strconv.Atoi(key)
		if err != nil {
			return nil, nil, fmt.Errorf("decode json dataset: user key %q is not an integer: %w", key, err)
		}
		users = append(users, uid)
		seqs[uid] = seq
	}
	sort.Ints(users)

	var pairs []pair
	for _, uid := range users {
		for _, item := range seqs[uid] {
			pairs = append(pairs, pair{user: uid, item: item})
		}
	}

	log, m, err := buildLog(pairs, opts)
	if err != nil {
		return nil, nil, err
	}

	metrics.ObserveDatasetLoad("json", log.Len(), start)
	logging.Info().
		Str("path", path).
		Int("interactions", log.Len()).
		Int("users", log.NumUsers()).
		Int("items", log.NumItems()-1).
		Dur("elapsed", time.Since(start)).
		Msg("JSON dataset loaded")

	return log, m, nil
}
