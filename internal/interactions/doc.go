// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

// Package interactions converts a raw log of (user, item) pairs into the
// fixed-shape window tables used to train and evaluate sequential
// recommendation models.
//
// # Architecture
//
// The package has two layers:
//
//   - Log: the flattened, immutable record of per-user item histories,
//     stored as parallel user/item slices grouped by user.
//   - Windowing: pure transforms over the grouped log that enumerate
//     fixed-length training windows with prediction targets, plus one
//     held-out evaluation window per user.
//
// Two windowing variants are provided:
//
//   - SlidingWindows: right-aligned sliding windows of fixed content,
//     suited to models that need a full, same-length context.
//   - PrefixWindows: growing-prefix windows with explicit length fields,
//     suited to models that mask or attend up to the true length, such as
//     recurrent encoders.
//
// # Padding
//
// Item id 0 is reserved as the padding sentinel. Real item ids must start
// at 1; this is asserted at Log construction. Dataset loaders are
// responsible for offsetting raw ids (see the dataset package).
//
// # Design Principles
//
//   - Deterministic: same inputs produce bit-identical outputs, including
//     under the parallel fill path.
//   - Pure: windowing returns its tables; nothing is mutated on the Log.
//   - Total: empty histories yield degenerate all-zero rows, never errors.
//
// # Usage
//
//	log, err := interactions.NewLog(sequences, numUsers, numItems)
//	if err != nil {
//	    return err
//	}
//
//	train, eval, err := log.SlidingWindows(interactions.WindowConfig{
//	    SequenceLength: 5,
//	    TargetLength:   3,
//	})
//
// # Thread Safety
//
// A Log is immutable after construction and safe for concurrent use. The
// windowing operations may fan work out across workers internally; the
// output row ranges are precomputed and disjoint, so no locking is needed.
package interactions
