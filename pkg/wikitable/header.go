package wikitable

import (
	"fmt"
	"strings"
)

// ResolveHeaderRow resolves a table using one of its own rows as the
// column labels. headerRow is 1-based; rows strictly after it become the
// dataset body, and rows above it are discarded. Every body row must match
// the header's cell count, otherwise a ShapeMismatchError is returned and
// no dataset is produced.
func ResolveHeaderRow(raw RawTable, headerRow int) (*Dataset, error) {
	if raw.IsEmpty() {
		return nil, ErrEmptyTable
	}
	if headerRow < 1 || headerRow > raw.RowCount() {
		return nil, fmt.Errorf("header row %d out of range [1, %d]", headerRow, raw.RowCount())
	}
	return NewDataset(raw.Rows[headerRow-1], raw.Rows[headerRow:])
}

// ResolveCustomHeader resolves a table using caller-supplied column
// labels. firstDataRow is 1-based and, unlike the header-row strategy, the
// marked row itself stays in the body. labels is a comma-separated list;
// each label is trimmed, and the count must equal the cell count of the
// first data row or a LabelCountMismatchError is returned.
func ResolveCustomHeader(raw RawTable, firstDataRow int, labels string) (*Dataset, error) {
	if raw.IsEmpty() {
		return nil, ErrEmptyTable
	}
	if firstDataRow < 1 || firstDataRow > raw.RowCount() {
		return nil, fmt.Errorf("first data row %d out of range [1, %d]", firstDataRow, raw.RowCount())
	}
	if labels == "" {
		return nil, ErrMissingLabels
	}

	parsed := SplitLabels(labels)
	want := len(raw.Rows[firstDataRow-1])
	if len(parsed) != want {
		return nil, &LabelCountMismatchError{Got: len(parsed), Want: want}
	}
	return NewDataset(parsed, raw.Rows[firstDataRow-1:])
}

// SplitLabels splits a comma-separated label list, trimming whitespace
// around each label. Empty labels are kept so the count stays honest.
func SplitLabels(s string) []string {
	parts := strings.Split(s, ",")
	labels := make([]string, len(parts))
	for i, p := range parts {
		labels[i] = strings.TrimSpace(p)
	}
	return labels
}
