// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

// Package dataset loads raw interaction data into an interactions.Log.
//
// Loaders exist for three sources:
//
//   - Triplet files: MovieLens-style "user item rating [timestamp]" lines
//     separated by whitespace, commas, or "::".
//   - JSON documents mapping user ids to ordered item lists.
//   - DuckDB queries yielding (user_id, item_id) rows.
//
// All loaders share the same pipeline: interactions are grouped per user
// in source order (the source is trusted to be chronologically ordered,
// per the input contract), users below the configured minimum history
// length are dropped, and the surviving raw ids are remapped to dense
// indices. Users become 0-based contiguous indices; items are remapped
// starting at 1 because item id 0 is the padding sentinel reserved by the
// interactions package. The returned Mapping translates between raw and
// dense ids in both directions.
package dataset
