package wikitable

import (
	"errors"
	"testing"
)

// quarterly returns the raw rows of the quarterly fixture table: a
// one-cell banner row followed by a 3-wide header row and three body rows.
func quarterly(t *testing.T) RawTable {
	t.Helper()
	tables, err := FindTables(readTestdata(t, "quarterly_page.html"), "")
	if err != nil {
		t.Fatalf("FindTables() error = %v, want nil", err)
	}
	return tables[0]
}

// --- ResolveHeaderRow Tests ---

func TestResolveHeaderRow_ConsumesHeaderRow(t *testing.T) {
	raw := quarterly(t)

	d, err := ResolveHeaderRow(raw, 2)
	if err != nil {
		t.Fatalf("ResolveHeaderRow() error = %v, want nil", err)
	}

	wantHeaders := []string{"Quarter", "Revenue", "Profit"}
	for i, want := range wantHeaders {
		if d.Headers[i] != want {
			t.Errorf("Headers[%d] = %q, want %q", i, d.Headers[i], want)
		}
	}
	// Rows above and including the header row are gone.
	if d.RowCount() != 3 {
		t.Fatalf("RowCount() = %d, want 3", d.RowCount())
	}
	if got := d.Rows[0][0]; got != TextCell("Q1") {
		t.Errorf("first body cell = %v, want Q1", got)
	}
}

func TestResolveHeaderRow_ShapeMismatch(t *testing.T) {
	raw := quarterly(t)

	// The banner row has one cell; every body row has three.
	_, err := ResolveHeaderRow(raw, 1)
	var shapeErr *ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("ResolveHeaderRow() error = %v, want ShapeMismatchError", err)
	}
	if shapeErr.HeaderLen != 1 || shapeErr.RowLen != 3 {
		t.Errorf("HeaderLen/RowLen = %d/%d, want 1/3", shapeErr.HeaderLen, shapeErr.RowLen)
	}
	if shapeErr.Row != 1 {
		t.Errorf("Row = %d, want 1", shapeErr.Row)
	}
}

func TestResolveHeaderRow_LastRowAsHeader(t *testing.T) {
	raw := RawTable{Rows: [][]string{
		{"A", "B"},
		{"C", "D"},
	}}

	d, err := ResolveHeaderRow(raw, 2)
	if err != nil {
		t.Fatalf("ResolveHeaderRow() error = %v, want nil", err)
	}
	if d.RowCount() != 0 {
		t.Errorf("RowCount() = %d, want 0 (header row was the last row)", d.RowCount())
	}
}

func TestResolveHeaderRow_EmptyTable(t *testing.T) {
	_, err := ResolveHeaderRow(RawTable{}, 1)
	if !errors.Is(err, ErrEmptyTable) {
		t.Errorf("ResolveHeaderRow() error = %v, want ErrEmptyTable", err)
	}
}

func TestResolveHeaderRow_OutOfRange(t *testing.T) {
	raw := RawTable{Rows: [][]string{{"A"}}}

	for _, headerRow := range []int{0, 2} {
		if _, err := ResolveHeaderRow(raw, headerRow); err == nil {
			t.Errorf("ResolveHeaderRow(%d) error = nil, want out of range error", headerRow)
		}
	}
}

// --- ResolveCustomHeader Tests ---

func TestResolveCustomHeader_KeepsFirstDataRow(t *testing.T) {
	raw := quarterly(t)

	d, err := ResolveCustomHeader(raw, 3, "Period, Sales, Net")
	if err != nil {
		t.Fatalf("ResolveCustomHeader() error = %v, want nil", err)
	}

	wantHeaders := []string{"Period", "Sales", "Net"}
	for i, want := range wantHeaders {
		if d.Headers[i] != want {
			t.Errorf("Headers[%d] = %q, want %q", i, d.Headers[i], want)
		}
	}
	// Unlike the header-row strategy, the marked row stays in the body.
	if d.RowCount() != 3 {
		t.Fatalf("RowCount() = %d, want 3", d.RowCount())
	}
	if got := d.Rows[0][0]; got != TextCell("Q1") {
		t.Errorf("first body cell = %v, want Q1", got)
	}
}

func TestResolveCustomHeader_MissingLabels(t *testing.T) {
	raw := quarterly(t)

	_, err := ResolveCustomHeader(raw, 3, "")
	if !errors.Is(err, ErrMissingLabels) {
		t.Errorf("ResolveCustomHeader() error = %v, want ErrMissingLabels", err)
	}
}

func TestResolveCustomHeader_LabelCountMismatch(t *testing.T) {
	raw := quarterly(t)

	_, err := ResolveCustomHeader(raw, 3, "Period, Sales")
	var countErr *LabelCountMismatchError
	if !errors.As(err, &countErr) {
		t.Fatalf("ResolveCustomHeader() error = %v, want LabelCountMismatchError", err)
	}
	if countErr.Got != 2 || countErr.Want != 3 {
		t.Errorf("Got/Want = %d/%d, want 2/3", countErr.Got, countErr.Want)
	}
}

func TestResolveCustomHeader_EmptyTable(t *testing.T) {
	_, err := ResolveCustomHeader(RawTable{}, 1, "A, B")
	if !errors.Is(err, ErrEmptyTable) {
		t.Errorf("ResolveCustomHeader() error = %v, want ErrEmptyTable", err)
	}
}

// --- SplitLabels Tests ---

func TestSplitLabels(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "A,B,C", []string{"A", "B", "C"}},
		{"padded", " Rank , Country ,GDP", []string{"Rank", "Country", "GDP"}},
		{"single", "Only", []string{"Only"}},
		{"empty_label_kept", "A,,C", []string{"A", "", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLabels(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitLabels() returned %d labels, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("label[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
