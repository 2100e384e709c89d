// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package interactions

import (
	"errors"
	"fmt"
)

// PaddingID is the item id reserved for padding fixed-width windows.
// Real item ids must start at 1.
const PaddingID = 0

// ErrOutOfRange indicates a user or item id outside the declared
// cardinalities, or a real item carrying the padding id.
var ErrOutOfRange = errors.New("id out of range")

// Log holds a flattened record of (user, item) interactions together with
// the dataset cardinalities. Interactions are stored as parallel slices
// grouped by user; within a user, order is the caller-supplied interaction
// order and is trusted as-is.
//
// A Log is immutable after construction.
type Log struct {
	numUsers int
	numItems int

	// userIDs and itemIDs are parallel: interaction i is
	// (userIDs[i], itemIDs[i]).
	userIDs []int
	itemIDs []int

	// offsets[u] is the index of user u's first interaction;
	// offsets[numUsers] is the total count. Users past the end of the
	// input sequences have empty ranges.
	offsets []int
}

// NewLog flattens per-user ordered item lists into a Log. The slice index
// of sequences is the dense 0-based user id; users beyond len(sequences)
// up to numUsers have empty histories.
//
// Every item id must be in [1, numItems). Item id 0 is rejected because it
// is reserved for padding; dataset loaders offset raw ids to satisfy this.
func NewLog(sequences [][]int, numUsers, numItems int) (*Log, error) {
	if numUsers < 1 {
		return nil, fmt.Errorf("num_users must be positive, got %d", numUsers)
	}
	if numItems < 2 {
		return nil, fmt.Errorf("num_items must be at least 2 (id 0 is reserved for padding), got %d", numItems)
	}
	if len(sequences) > numUsers {
		return nil, fmt.Errorf("%w: got sequences for %d users, declared num_users %d",
			ErrOutOfRange, len(sequences), numUsers)
	}

	total := 0
	for _, seq := range sequences {
		total += len(seq)
	}

	l := &Log{
		numUsers: numUsers,
		numItems: numItems,
		userIDs:  make([]int, 0, total),
		itemIDs:  make([]int, 0, total),
		offsets:  make([]int, numUsers+1),
	}

	for uid, seq := range sequences {
		l.offsets[uid] = len(l.itemIDs)
		for _, iid := range seq {
			if iid == PaddingID {
				return nil, fmt.Errorf("%w: user %d references item id 0, which is reserved for padding",
					ErrOutOfRange, uid)
			}
			if iid < 0 || iid >= numItems {
				return nil, fmt.Errorf("%w: user %d references item id %d, want [1, %d)",
					ErrOutOfRange, uid, iid, numItems)
			}
			l.userIDs = append(l.userIDs, uid)
			l.itemIDs = append(l.itemIDs, iid)
		}
	}
	for uid := len(sequences); uid <= numUsers; uid++ {
		l.offsets[uid] = len(l.itemIDs)
	}

	return l, nil
}

// Len returns the total interaction count.
func (l *Log) Len() int {
	return len(l.userIDs)
}

// NumUsers returns the declared user cardinality.
func (l *Log) NumUsers() int {
	return l.numUsers
}

// NumItems returns the declared item cardinality, including the reserved
// padding slot at id 0.
func (l *Log) NumItems() int {
	return l.numItems
}

// UserIDs returns a copy of the per-interaction user id slice.
func (l *Log) UserIDs() []int {
	out := make([]int, len(l.userIDs))
	copy(out, l.userIDs)
	return out
}

// ItemIDs returns a copy of the per-interaction item id slice.
func (l *Log) ItemIDs() []int {
	out := make([]int, len(l.itemIDs))
	copy(out, l.itemIDs)
	return out
}

// History returns a copy of user u's ordered item history. The history is
// empty for users with no interactions.
func (l *Log) History(u int) ([]int, error) {
	if u < 0 || u >= l.numUsers {
		return nil, fmt.Errorf("%w: user id %d, want [0, %d)", ErrOutOfRange, u, l.numUsers)
	}
	h := l.history(u)
	out := make([]int, len(h))
	copy(out, h)
	return out, nil
}

// history returns user u's history as a subslice of the backing storage.
// Callers must not mutate it.
func (l *Log) history(u int) []int {
	return l.itemIDs[l.offsets[u]:l.offsets[u+1]]
}

// count returns the history length of user u.
func (l *Log) count(u int) int {
	return l.offsets[u+1] - l.offsets[u]
}
