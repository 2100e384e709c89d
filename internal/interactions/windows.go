// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package interactions

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ErrInvalidArgument indicates a window configuration that fails
// validation. It is returned before any allocation happens.
var ErrInvalidArgument = errors.New("invalid argument")

// minParallelUsers is the user count below which the fill loop stays
// serial; goroutine overhead dominates for small datasets.
const minParallelUsers = 256

// WindowConfig contains configuration for the windowing transforms.
type WindowConfig struct {
	// SequenceLength is the fixed window width L.
	// Must be at least 1.
	SequenceLength int

	// TargetLength is the fixed target width T.
	// Must be at least 1.
	TargetLength int

	// NumWorkers is the number of parallel workers for the fill pass.
	// Zero or negative selects runtime.NumCPU(); 1 forces a serial fill.
	NumWorkers int
}

// DefaultWindowConfig returns the default windowing configuration.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		SequenceLength: 5,
		TargetLength:   1,
		NumWorkers:     0,
	}
}

// Validate checks the configuration.
func (c WindowConfig) Validate() error {
	if c.SequenceLength < 1 {
		return fmt.Errorf("%w: sequence_length must be at least 1, got %d",
			ErrInvalidArgument, c.SequenceLength)
	}
	if c.TargetLength < 1 {
		return fmt.Errorf("%w: target_length must be at least 1, got %d",
			ErrInvalidArgument, c.TargetLength)
	}
	return nil
}

// workers resolves the effective worker count.
func (c WindowConfig) workers() int {
	if c.NumWorkers > 0 {
		return c.NumWorkers
	}
	return runtime.NumCPU()
}

// TrainWindows holds sliding-window training rows. All three slices are
// parallel: row i is user Users[i] with context Windows[i] (width L) and
// prediction target Targets[i] (width T). Rows are ordered by ascending
// user, then chronologically within a user.
type TrainWindows struct {
	Users   []int
	Windows [][]int
	Targets [][]int
}

// Rows returns the number of training rows.
func (w *TrainWindows) Rows() int {
	return len(w.Users)
}

// EvalWindows holds one held-out evaluation row per user: the most recent
// L items, left-padded with zeros when the history is shorter. Row u
// belongs to user u; users with empty histories get all-zero rows.
type EvalWindows struct {
	Users   []int
	Windows [][]int
}

// Rows returns the number of evaluation rows, which equals NumUsers.
func (w *EvalWindows) Rows() int {
	return len(w.Users)
}

// SlidingWindows enumerates fixed-offset training windows and one
// evaluation window per user.
//
// For a user with history h of length c and M = L + T:
//
//   - c >= M: one row per end offset e in [M, c], holding h[e-M:e] split
//     into a width-L window and a width-T target. A user contributes
//     c - M + 1 rows.
//   - c < M: exactly one row, h left-padded with zeros to width M and
//     split the same way. When L < c < M this places real items in the
//     target half alongside the window padding; the behavior is kept
//     as-is for parity with the evaluation protocol of the models
//     consuming these tables.
//
// Total training rows equal the sum over users of max(1, c - M + 1).
// The evaluation table has exactly NumUsers rows: the last L items of each
// history, left-padded when c < L.
func (l *Log) SlidingWindows(cfg WindowConfig) (*TrainWindows, *EvalWindows, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	seqLen := cfg.SequenceLength
	tgtLen := cfg.TargetLength
	width := seqLen + tgtLen

	// First pass: per-user row counts give each user a disjoint output
	// range, so the fill pass can run in parallel without locks.
	rowStart := make([]int, l.numUsers+1)
	for u := 0; u < l.numUsers; u++ {
		c := l.count(u)
		n := 1
		if c >= width {
			n = c - width + 1
		}
		rowStart[u+1] = rowStart[u] + n
	}
	total := rowStart[l.numUsers]

	train := &TrainWindows{
		Users:   make([]int, total),
		Windows: newMatrix(total, seqLen),
		Targets: newMatrix(total, tgtLen),
	}
	eval := &EvalWindows{
		Users:   make([]int, l.numUsers),
		Windows: newMatrix(l.numUsers, seqLen),
	}

	l.forEachUser(cfg.workers(), func(u int) {
		h := l.history(u)
		c := len(h)
		row := rowStart[u]

		if c >= width {
			for e := width; e <= c; e++ {
				seq := h[e-width : e]
				train.Users[row] = u
				copy(train.Windows[row], seq[:seqLen])
				copy(train.Targets[row], seq[seqLen:])
				row++
			}
		} else {
			// Single left-padded row; rows are zero-initialized so
			// only the real items need placing.
			train.Users[row] = u
			pad := width - c
			for i, iid := range h {
				if p := pad + i; p < seqLen {
					train.Windows[row][p] = iid
				} else {
					train.Targets[row][p-seqLen] = iid
				}
			}
		}

		eval.Users[u] = u
		if c >= seqLen {
			copy(eval.Windows[u], h[c-seqLen:])
		} else {
			copy(eval.Windows[u][seqLen-c:], h)
		}
	})

	return train, eval, nil
}

// PrefixTrainWindows holds growing-prefix training rows. Windows and
// Targets are right-padded to widths L and T; WindowLengths and
// TargetLengths record the unpadded lengths so consumers can mask padding.
// Rows are ordered by ascending user, then increasing prefix length.
type PrefixTrainWindows struct {
	Users         []int
	Windows       [][]int
	Targets       [][]int
	WindowLengths []int
	TargetLengths []int
}

// Rows returns the number of training rows.
func (w *PrefixTrainWindows) Rows() int {
	return len(w.Users)
}

// PrefixEvalWindows holds one evaluation row per user: the last
// min(c, L) items right-padded to width L, with the unpadded length.
type PrefixEvalWindows struct {
	Users   []int
	Windows [][]int
	Lengths []int
}

// Rows returns the number of evaluation rows, which equals NumUsers.
func (w *PrefixEvalWindows) Rows() int {
	return len(w.Users)
}

// PrefixWindows enumerates incremental-growth training windows and one
// evaluation window per user.
//
// Each history is first truncated to its most recent L items, h' of
// length c' = min(c, L). The evaluation row is h' right-padded to width L
// with recorded length c'. Training rows cover every proper prefix of h':
// for p in [1, c'-1], the window is h'[:p] right-padded to L with length
// p, and the target is h'[p:p+T] right-padded to T with length
// min(T, c'-p). A user with c' <= 1 contributes zero training rows but
// still exactly one evaluation row.
func (l *Log) PrefixWindows(cfg WindowConfig) (*PrefixTrainWindows, *PrefixEvalWindows, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	seqLen := cfg.SequenceLength
	tgtLen := cfg.TargetLength

	rowStart := make([]int, l.numUsers+1)
	for u := 0; u < l.numUsers; u++ {
		c := l.count(u)
		if c > seqLen {
			c = seqLen
		}
		n := 0
		if c > 1 {
			n = c - 1
		}
		rowStart[u+1] = rowStart[u] + n
	}
	total := rowStart[l.numUsers]

	train := &PrefixTrainWindows{
		Users:         make([]int, total),
		Windows:       newMatrix(total, seqLen),
		Targets:       newMatrix(total, tgtLen),
		WindowLengths: make([]int, total),
		TargetLengths: make([]int, total),
	}
	eval := &PrefixEvalWindows{
		Users:   make([]int, l.numUsers),
		Windows: newMatrix(l.numUsers, seqLen),
		Lengths: make([]int, l.numUsers),
	}

	l.forEachUser(cfg.workers(), func(u int) {
		h := l.history(u)
		if len(h) > seqLen {
			h = h[len(h)-seqLen:]
		}
		c := len(h)

		eval.Users[u] = u
		copy(eval.Windows[u], h)
		eval.Lengths[u] = c

		row := rowStart[u]
		for p := 1; p < c; p++ {
			train.Users[row] = u
			copy(train.Windows[row], h[:p])
			train.WindowLengths[row] = p

			tgt := h[p:]
			if len(tgt) > tgtLen {
				tgt = tgt[:tgtLen]
			}
			copy(train.Targets[row], tgt)
			train.TargetLengths[row] = len(tgt)
			row++
		}
	})

	return train, eval, nil
}

// newMatrix allocates a rows x cols zero matrix.
func newMatrix(rows, cols int) [][]int {
	m := make([][]int, rows)
	for i := range m {
		m[i] = make([]int, cols)
	}
	return m
}

// forEachUser runs fn for every user id, fanning out across workers in
// contiguous chunks when the user count justifies it. fn must only write
// to output ranges owned by its user.
func (l *Log) forEachUser(workers int, fn func(u int)) {
	if workers <= 1 || l.numUsers < minParallelUsers {
		for u := 0; u < l.numUsers; u++ {
			fn(u)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := (l.numUsers + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if start >= l.numUsers {
			break
		}
		if end > l.numUsers {
			end = l.numUsers
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for u := start; u < end; u++ {
				fn(u)
			}
		}(start, end)
	}

	wg.Wait()
}
