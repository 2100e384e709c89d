// Seqprep - Sequential Recommendation Dataset Preparation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/seqprep

package sparse

import (
	"sort"

	"github.com/tomtom215/seqprep/internal/interactions"
)

// COO is a sparse matrix in coordinate form. The three slices are
// parallel: entry k is (RowIndices[k], ColIndices[k]) = Values[k].
// Duplicate coordinates are allowed and collapse additively on
// conversion to CSR.
type COO struct {
	RowIndices []int
	ColIndices []int
	Values     []float64

	NumRows int
	NumCols int
}

// FromLog builds the (num_users x num_items) interaction matrix with a
// 1.0 entry per observed (user, item) pair, in interaction order.
func FromLog(log *interactions.Log) *COO {
	values := make([]float64, log.Len())
	for i := range values {
		values[i] = 1.0
	}

	return &COO{
		RowIndices: log.UserIDs(),
		ColIndices: log.ItemIDs(),
		Values:     values,
		NumRows:    log.NumUsers(),
		NumCols:    log.NumItems(),
	}
}

// NNZ returns the number of stored entries, counting duplicates.
func (m *COO) NNZ() int {
	return len(m.Values)
}

// CSR is a sparse matrix in compressed-row form. Row i occupies
// ColIndices[RowPtr[i]:RowPtr[i+1]] and Values likewise; columns within a
// row are sorted ascending and unique.
type CSR struct {
	RowPtr     []int
	ColIndices []int
	Values     []float64

	NumRows int
	NumCols int
}

// ToCSR converts to compressed-row form. Entries sharing a coordinate are
// summed.
func (m *COO) ToCSR() *CSR {
	// Bucket entries by row, preserving insertion order.
	counts := make([]int, m.NumRows)
	for _, r := range m.RowIndices {
		counts[r]++
	}

	type entry struct {
		col int
		val float64
	}
	rows := make([][]entry, m.NumRows)
	for i, c := range counts {
		if c > 0 {
			rows[i] = make([]entry, 0, c)
		}
	}
	for k, r := range m.RowIndices {
		rows[r] = append(rows[r], entry{col: m.ColIndices[k], val: m.Values[k]})
	}

	out := &CSR{
		RowPtr:     make([]int, m.NumRows+1),
		ColIndices: make([]int, 0, len(m.Values)),
		Values:     make([]float64, 0, len(m.Values)),
		NumRows:    m.NumRows,
		NumCols:    m.NumCols,
	}

	for i, row := range rows {
		sort.SliceStable(row, func(a, b int) bool { return row[a].col < row[b].col })

		for j := 0; j < len(row); {
			col := row[j].col
			sum := 0.0
			for ; j < len(row) && row[j].col == col; j++ {
				sum += row[j].val
			}
			out.ColIndices = append(out.ColIndices, col)
			out.Values = append(out.Values, sum)
		}
		out.RowPtr[i+1] = len(out.Values)
	}

	return out
}

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int {
	return len(m.Values)
}

// Row returns the column indices and values of row i. The returned slices
// alias the matrix storage and must not be mutated.
func (m *CSR) Row(i int) (cols []int, vals []float64) {
	start, end := m.RowPtr[i], m.RowPtr[i+1]
	return m.ColIndices[start:end], m.Values[start:end]
}

// At returns the value at (i, j), or 0 if no entry is stored.
func (m *CSR) At(i, j int) float64 {
	start, end := m.RowPtr[i], m.RowPtr[i+1]
	cols := m.ColIndices[start:end]

	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return m.Values[start+k]
	}
	return 0
}
