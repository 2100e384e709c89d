// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package dataset

import (
	"context"
	"reflect"
	"testing"
)

func TestLoadDuckDB(t *testing.T) {
	t.Parallel()

	db, err := OpenDuckDB("")
	if err != nil {
		t.Fatalf("OpenDuckDB: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE events (user_id INTEGER, item_id INTEGER, event_ts INTEGER)`); err != nil {
		t.Fatalf("create events: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO events VALUES
		(2, 50, 1), (1, 40, 2), (1, 41, 3), (2, 40, 4), (1, 40, 5)`); err != nil {
		t.Fatalf("seed events: %v", err)
	}

	log, m, err := LoadDuckDB(context.Background(),
		db,
		"SELECT user_id, item_id FROM events ORDER BY user_id, event_ts",
		Options{})
	if err != nil {
		t.Fatalf("LoadDuckDB: %v", err)
	}

	if log.NumUsers() != 2 {
		t.Fatalf("NumUsers() = %d, want 2", log.NumUsers())
	}
	if log.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", log.Len())
	}

	// User 1 is dense index 0; its history in event order is 40, 41, 40.
	h, err := log.History(0)
	if err != nil {
		t.Fatalf("History(0): %v", err)
	}
	if want := []int{1, 2, 1}; !reflect.DeepEqual(h, want) {
		t.Errorf("History(0) = %v, want %v", h, want)
	}
	if idx, ok := m.ItemIndex(40); !ok || idx != 1 {
		t.Errorf("ItemIndex(40) = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestLoadDuckDBBadQuery(t *testing.T) {
	t.Parallel()

	db, err := OpenDuckDB("")
	if err != nil {
		t.Fatalf("OpenDuckDB: %v", err)
	}
	defer db.Close()

	if _, _, err := LoadDuckDB(context.Background(), db, "SELECT FROM nothing", Options{}); err == nil {
		t.Fatal("expected error for invalid query")
	}
}
