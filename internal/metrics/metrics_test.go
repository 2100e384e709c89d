// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveDatasetLoad(t *testing.T) {
	before := testutil.ToFloat64(DatasetInteractionsLoaded.WithLabelValues("test-format"))

	ObserveDatasetLoad("test-format", 42, time.Now())

	after := testutil.ToFloat64(DatasetInteractionsLoaded.WithLabelValues("test-format"))
	if diff := after - before; diff != 42 {
		t.Errorf("interactions counter moved by %v, want 42", diff)
	}
}

func TestObserveWindowing(t *testing.T) {
	trainBefore := testutil.ToFloat64(WindowRows.WithLabelValues("test-variant", "train"))
	evalBefore := testutil.ToFloat64(WindowRows.WithLabelValues("test-variant", "eval"))

	ObserveWindowing("test-variant", 10, 3, time.Now())

	if diff := testutil.ToFloat64(WindowRows.WithLabelValues("test-variant", "train")) - trainBefore; diff != 10 {
		t.Errorf("train row counter moved by %v, want 10", diff)
	}
	if diff := testutil.ToFloat64(WindowRows.WithLabelValues("test-variant", "eval")) - evalBefore; diff != 3 {
		t.Errorf("eval row counter moved by %v, want 3", diff)
	}
}
