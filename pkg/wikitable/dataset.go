// Package wikitable turns raw HTML table content into rectangular,
// export-ready datasets.
//
// The pipeline runs in fixed stages: extract rows from a table element,
// resolve a header strategy against them, reshape columns and rows, then
// coerce designated columns to nullable numbers. Every stage is a pure
// function over its input; nothing here fetches pages or writes files.
package wikitable

import "strconv"

// CellType tags the value stored in a Cell.
type CellType int

const (
	// CellText holds trimmed source text, possibly empty.
	CellText CellType = iota
	// CellNumber holds a parsed numeric value.
	CellNumber
	// CellNull marks a failed or guarded numeric coercion. Null is
	// distinct from both the number zero and the empty string.
	CellNull
)

// Cell is a single table value: text, a number, or null.
type Cell struct {
	Type   CellType
	Text   string
	Number float64
}

// TextCell returns a text-valued cell.
func TextCell(s string) Cell { return Cell{Type: CellText, Text: s} }

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell { return Cell{Type: CellNumber, Number: v} }

// NullCell returns a null cell.
func NullCell() Cell { return Cell{Type: CellNull} }

// IsNull reports whether the cell is null.
func (c Cell) IsNull() bool { return c.Type == CellNull }

// String renders the cell for display and CSV export. Null renders as the
// empty string; numbers use the shortest decimal form that round-trips.
func (c Cell) String() string {
	switch c.Type {
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellNull:
		return ""
	default:
		return c.Text
	}
}

// Dataset is a rectangular table: column labels plus body rows. Every row
// holds exactly len(Headers) cells; NewDataset rejects anything else, so
// holders of a Dataset can rely on the shape.
type Dataset struct {
	Headers []string
	Rows    [][]Cell
}

// NewDataset builds a Dataset from text rows, enforcing the shape
// invariant. Row numbers in the returned error are 1-based within rows.
func NewDataset(headers []string, rows [][]string) (*Dataset, error) {
	hs := make([]string, len(headers))
	copy(hs, headers)

	body := make([][]Cell, len(rows))
	for i, row := range rows {
		if len(row) != len(hs) {
			return nil, &ShapeMismatchError{HeaderLen: len(hs), Row: i + 1, RowLen: len(row)}
		}
		cells := make([]Cell, len(row))
		for j, text := range row {
			cells[j] = TextCell(text)
		}
		body[i] = cells
	}
	return &Dataset{Headers: hs, Rows: body}, nil
}

// RowCount returns the number of body rows.
func (d *Dataset) RowCount() int { return len(d.Rows) }

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return len(d.Headers) }

// ColumnIndex returns the 0-based position of the labelled column, or -1
// when no column carries the label.
func (d *Dataset) ColumnIndex(label string) int {
	for i, h := range d.Headers {
		if h == label {
			return i
		}
	}
	return -1
}

// Copy returns a deep copy. Pipeline stages copy rather than mutate, so a
// caller can hold the output of one stage while re-running another.
func (d *Dataset) Copy() *Dataset {
	out := &Dataset{
		Headers: make([]string, len(d.Headers)),
		Rows:    make([][]Cell, len(d.Rows)),
	}
	copy(out.Headers, d.Headers)
	for i, row := range d.Rows {
		cells := make([]Cell, len(row))
		copy(cells, row)
		out.Rows[i] = cells
	}
	return out
}
