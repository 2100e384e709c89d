// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/seqprep/internal/interactions"
	"github.com/tomtom215/seqprep/internal/logging"
	"github.com/tomtom215/seqprep/internal/metrics"
)

// LoadTriplets reads a MovieLens-style triplet file: one interaction per
// line as "user item [rating [timestamp]]", separated by whitespace,
// commas, or "::". Rating and timestamp fields are ignored; line order is
// taken as interaction order. Blank lines and lines starting with '#' are
// skipped.
func LoadTriplets(path string, opts Options) (*interactions.Log, *Mapping, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open triplet file: %w", err)
	}
	defer f.Close()

	var pairs []pair

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := splitTriplet(line)
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("%s:%d: want at least user and item fields, got %q", path, lineNo, line)
		}

		user, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: parse user id %q: %w", path, lineNo, fields[0], err)
		}
		item, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: parse item id %q: %w", path, lineNo, fields[1], err)
		}

		pairs = append(pairs, pair{user: user, item: item})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read triplet file: %w", err)
	}

	log, m, err := buildLog(pairs, opts)
	if err != nil {
		return nil, nil, err
	}

	metrics.ObserveDatasetLoad("triplets", log.Len(), start)
	logging.Info().
		Str("path", path).
		Int("interactions", log.Len()).
		Int("users", log.NumUsers()).
		Int("items", log.NumItems()-1).
		Dur("elapsed", time.Since(start)).
		Msg("Triplet dataset loaded")

	return log, m, nil
}

// splitTriplet tokenizes a triplet line. MovieLens 1M uses "::", other
// dumps use tabs, spaces, or commas.
func splitTriplet(line string) []string {
	if strings.Contains(line, "::") {
		return strings.Split(line, "::")
	}
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
}
