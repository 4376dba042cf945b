package wikitable

import (
	"errors"
	"testing"
)

// --- Cell Tests ---

func TestCell_String(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{"text", TextCell("Japan"), "Japan"},
		{"empty_text", TextCell(""), ""},
		{"whole_number", NumberCell(1234), "1234"},
		{"decimal", NumberCell(1234.5), "1234.5"},
		{"negative", NumberCell(-0.5), "-0.5"},
		{"null", NullCell(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCell_NullIsNotZeroOrEmptyText(t *testing.T) {
	null := NullCell()
	zero := NumberCell(0)
	empty := TextCell("")

	if !null.IsNull() {
		t.Error("NullCell() should report IsNull()")
	}
	if zero.IsNull() || empty.IsNull() {
		t.Error("zero and empty text must not report IsNull()")
	}
	if null == zero || null == empty {
		t.Error("null must stay distinct from zero and empty text")
	}
}

// --- Dataset Tests ---

func TestNewDataset_Rectangular(t *testing.T) {
	d, err := NewDataset([]string{"Year", "Growth"}, [][]string{
		{"2021", "5.9%"},
		{"2022", "2.1%"},
	})
	if err != nil {
		t.Fatalf("NewDataset() error = %v, want nil", err)
	}
	if d.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", d.RowCount())
	}
	if d.ColumnCount() != 2 {
		t.Errorf("ColumnCount() = %d, want 2", d.ColumnCount())
	}
	if got := d.Rows[0][1]; got != TextCell("5.9%") {
		t.Errorf("cell = %v, want text 5.9%%", got)
	}
}

func TestNewDataset_ShapeMismatch(t *testing.T) {
	_, err := NewDataset([]string{"A", "B", "C"}, [][]string{
		{"1", "2", "3"},
		{"4", "5"},
	})
	var shapeErr *ShapeMismatchError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("NewDataset() error = %v, want ShapeMismatchError", err)
	}
	if shapeErr.Row != 2 {
		t.Errorf("Row = %d, want 2", shapeErr.Row)
	}
	if shapeErr.RowLen != 2 || shapeErr.HeaderLen != 3 {
		t.Errorf("RowLen/HeaderLen = %d/%d, want 2/3", shapeErr.RowLen, shapeErr.HeaderLen)
	}
}

func TestDataset_ColumnIndex(t *testing.T) {
	d, err := NewDataset([]string{"Rank", "Country"}, nil)
	if err != nil {
		t.Fatalf("NewDataset() error = %v, want nil", err)
	}
	if got := d.ColumnIndex("Country"); got != 1 {
		t.Errorf("ColumnIndex(Country) = %d, want 1", got)
	}
	if got := d.ColumnIndex("Population"); got != -1 {
		t.Errorf("ColumnIndex(Population) = %d, want -1", got)
	}
}

func TestDataset_CopyIsDeep(t *testing.T) {
	d, err := NewDataset([]string{"A"}, [][]string{{"original"}})
	if err != nil {
		t.Fatalf("NewDataset() error = %v, want nil", err)
	}

	c := d.Copy()
	c.Headers[0] = "changed"
	c.Rows[0][0] = TextCell("changed")

	if d.Headers[0] != "A" {
		t.Errorf("source header = %q, want %q", d.Headers[0], "A")
	}
	if d.Rows[0][0] != TextCell("original") {
		t.Errorf("source cell = %v, want original text", d.Rows[0][0])
	}
}
