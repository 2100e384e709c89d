// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

// Package sparse provides sparse user-item matrix views of an interaction
// log for matrix-factorization consumers.
//
// Two representations are supported: COO (coordinate triplets, cheap to
// build) and CSR (compressed rows, cheap to scan per user). Converting
// COO to CSR collapses duplicate coordinates additively, matching the
// semantics of the usual scientific-computing libraries; callers that
// need binary entries should deduplicate interactions first.
package sparse
