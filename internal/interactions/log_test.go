// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package interactions

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		sequences [][]int
		numUsers  int
		numItems  int
		wantErr   bool
		errIs     error
		wantLen   int
	}{
		{
			name:      "two users",
			sequences: [][]int{{1, 2, 3}, {4, 5}},
			numUsers:  2,
			numItems:  6,
			wantLen:   5,
		},
		{
			name:      "trailing users without history",
			sequences: [][]int{{1, 2}},
			numUsers:  4,
			numItems:  3,
			wantLen:   2,
		},
		{
			name:      "empty user in the middle",
			sequences: [][]int{{1}, {}, {2}},
			numUsers:  3,
			numItems:  3,
			wantLen:   2,
		},
		{
			name:      "more sequences than declared users",
			sequences: [][]int{{1}, {2}, {1}},
			numUsers:  2,
			numItems:  3,
			wantErr:   true,
			errIs:     ErrOutOfRange,
		},
		{
			name:      "item id zero is reserved for padding",
			sequences: [][]int{{1, 0, 2}},
			numUsers:  1,
			numItems:  3,
			wantErr:   true,
			errIs:     ErrOutOfRange,
		},
		{
			name:      "item id beyond num_items",
			sequences: [][]int{{1, 7}},
			numUsers:  1,
			numItems:  3,
			wantErr:   true,
			errIs:     ErrOutOfRange,
		},
		{
			name:      "negative item id",
			sequences: [][]int{{-1}},
			numUsers:  1,
			numItems:  3,
			wantErr:   true,
			errIs:     ErrOutOfRange,
		},
		{
			name:      "zero users",
			sequences: nil,
			numUsers:  0,
			numItems:  3,
			wantErr:   true,
		},
		{
			name:      "num_items leaves no room for real items",
			sequences: [][]int{{1}},
			numUsers:  1,
			numItems:  1,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			log, err := NewLog(tt.sequences, tt.numUsers, tt.numItems)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errIs != nil && !errors.Is(err, tt.errIs) {
					t.Fatalf("expected error wrapping %v, got %v", tt.errIs, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if log.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", log.Len(), tt.wantLen)
			}
			if log.NumUsers() != tt.numUsers {
				t.Errorf("NumUsers() = %d, want %d", log.NumUsers(), tt.numUsers)
			}
			if log.NumItems() != tt.numItems {
				t.Errorf("NumItems() = %d, want %d", log.NumItems(), tt.numItems)
			}
		})
	}
}

func TestLogParallelSlices(t *testing.T) {
	t.Parallel()

	log, err := NewLog([][]int{{3, 1}, {}, {2}}, 3, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantUsers := []int{0, 0, 2}
	wantItems := []int{3, 1, 2}

	if got := log.UserIDs(); !reflect.DeepEqual(got, wantUsers) {
		t.Errorf("UserIDs() = %v, want %v", got, wantUsers)
	}
	if got := log.ItemIDs(); !reflect.DeepEqual(got, wantItems) {
		t.Errorf("ItemIDs() = %v, want %v", got, wantItems)
	}
}

func TestLogHistory(t *testing.T) {
	t.Parallel()

	log, err := NewLog([][]int{{5, 6, 7}, {}}, 3, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	h, err := log.History(0)
	if err != nil {
		t.Fatalf("History(0): %v", err)
	}
	if want := []int{5, 6, 7}; !reflect.DeepEqual(h, want) {
		t.Errorf("History(0) = %v, want %v", h, want)
	}

	// Mutating the returned copy must not leak into the log.
	h[0] = 99
	h2, _ := log.History(0)
	if h2[0] != 5 {
		t.Errorf("History returned aliased storage: got %v", h2)
	}

	for _, u := range []int{1, 2} {
		h, err := log.History(u)
		if err != nil {
			t.Fatalf("History(%d): %v", u, err)
		}
		if len(h) != 0 {
			t.Errorf("History(%d) = %v, want empty", u, h)
		}
	}

	if _, err := log.History(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("History(3) error = %v, want ErrOutOfRange", err)
	}
	if _, err := log.History(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("History(-1) error = %v, want ErrOutOfRange", err)
	}
}
