// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tomtom215/seqprep/internal/interactions"
)

// ErrEmptyDataset indicates that no usable interactions survived loading
// and filtering.
var ErrEmptyDataset = errors.New("dataset contains no usable interactions")

// Options controls the shared loading pipeline.
type Options struct {
	// MinSequenceLength drops users with fewer interactions before dense
	// ids are assigned. Zero keeps every user that appears in the source.
	MinSequenceLength int
}

// Mapping translates between raw source ids and the dense ids used by an
// interactions.Log. Dense item id 0 is the padding sentinel and maps to
// no raw item.
type Mapping struct {
	users []int // dense user index -> raw user id
	items []int // dense item id -> raw item id; index 0 reserved

	userIndex map[int]int
	itemIndex map[int]int
}

// NumUsers returns the number of mapped users.
func (m *Mapping) NumUsers() int {
	return len(m.users)
}

// NumItems returns the item cardinality including the reserved padding
// slot, i.e. the value passed to interactions.NewLog.
func (m *Mapping) NumItems() int {
	return len(m.items)
}

// UserIndex returns the dense index for a raw user id.
func (m *Mapping) UserIndex(raw int) (int, bool) {
	idx, ok := m.userIndex[raw]
	return idx, ok
}

// ItemIndex returns the dense id for a raw item id.
func (m *Mapping) ItemIndex(raw int) (int, bool) {
	idx, ok := m.itemIndex[raw]
	return idx, ok
}

// RawUser returns the raw id behind a dense user index.
func (m *Mapping) RawUser(dense int) (int, bool) {
	if dense < 0 || dense >= len(m.users) {
		return 0, false
	}
	return m.users[dense], true
}

// RawItem returns the raw id behind a dense item id. Dense id 0 (padding)
// has no raw counterpart.
func (m *Mapping) RawItem(dense int) (int, bool) {
	if dense < 1 || dense >= len(m.items) {
		return 0, false
	}
	return m.items[dense], true
}

// pair is one raw (user, item) interaction in source order.
type pair struct {
	user int
	item int
}

// buildLog runs the shared pipeline: group by raw user preserving source
// order, filter short histories, assign dense ids, and construct the Log.
// Users are ordered by ascending raw id; items are numbered from 1 in
// first-appearance order across that traversal.
func buildLog(pairs []pair, opts Options) (*interactions.Log, *Mapping, error) {
	byUser := make(map[int][]int)
	for _, p := range pairs {
		byUser[p.user] = append(byUser[p.user], p.item)
	}

	rawUsers := make([]int, 0, len(byUser))
	for u, seq := range byUser {
		if len(seq) < opts.MinSequenceLength {
			continue
		}
		rawUsers = append(rawUsers, u)
	}
	if len(rawUsers) == 0 {
		return nil, nil, fmt.Errorf("%w (min_sequence_length=%d)", ErrEmptyDataset, opts.MinSequenceLength)
	}
	sort.Ints(rawUsers)

	m := &Mapping{
		users:     rawUsers,
		items:     []int{interactions.PaddingID},
		userIndex: make(map[int]int, len(rawUsers)),
		itemIndex: make(map[int]int),
	}

	sequences := make([][]int, len(rawUsers))
	for dense, raw := range rawUsers {
		m.userIndex[raw] = dense

		seq := byUser[raw]
		out := make([]int, len(seq))
		for i, rawItem := range seq {
			idx, ok := m.itemIndex[rawItem]
			if !ok {
				idx = len(m.items)
				m.items = append(m.items, rawItem)
				m.itemIndex[rawItem] = idx
			}
			out[i] = idx
		}
		sequences[dense] = out
	}

	log, err := interactions.NewLog(sequences, len(rawUsers), len(m.items))
	if err != nil {
		return nil, nil, fmt.Errorf("build interaction log: %w", err)
	}
	return log, m, nil
}
