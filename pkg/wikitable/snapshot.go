package wikitable

import "fmt"

// cellRef addresses one cell of the base dataset by 1-based row and
// column label.
type cellRef struct {
	row    int
	column string
}

// Snapshot layers manual cell overrides over an immutable base dataset.
// An override replaces the base value outright; overrides and base values
// never combine. Because the base is kept untouched, the pipeline can
// rebuild it from source at any time without losing recorded edits.
type Snapshot struct {
	base      *Dataset
	overrides map[cellRef]Cell
}

// NewSnapshot wraps a dataset for manual patching. The dataset is copied,
// so later mutation by the caller does not leak into the snapshot.
func NewSnapshot(base *Dataset) *Snapshot {
	return &Snapshot{
		base:      base.Copy(),
		overrides: make(map[cellRef]Cell),
	}
}

// Set records an override for the 1-based row and labelled column.
// Setting the same cell twice keeps the last value.
func (s *Snapshot) Set(row int, column string, value Cell) error {
	if s.base.ColumnIndex(column) < 0 {
		return fmt.Errorf("unknown column %q", column)
	}
	if row < 1 || row > s.base.RowCount() {
		return fmt.Errorf("row %d out of range [1, %d]", row, s.base.RowCount())
	}
	s.overrides[cellRef{row: row, column: column}] = value
	return nil
}

// Cell returns the effective value at the 1-based row and labelled
// column: the recorded override when one exists, the base cell otherwise.
// The second return is false when the address is invalid.
func (s *Snapshot) Cell(row int, column string) (Cell, bool) {
	j := s.base.ColumnIndex(column)
	if j < 0 || row < 1 || row > s.base.RowCount() {
		return Cell{}, false
	}
	if c, ok := s.overrides[cellRef{row: row, column: column}]; ok {
		return c, true
	}
	return s.base.Rows[row-1][j], true
}

// Len returns the number of recorded overrides.
func (s *Snapshot) Len() int { return len(s.overrides) }

// Base returns a copy of the underlying dataset without any overrides
// applied.
func (s *Snapshot) Base() *Dataset { return s.base.Copy() }

// Merged materializes the export view: a copy of the base with every
// override applied.
func (s *Snapshot) Merged() *Dataset {
	out := s.base.Copy()
	for ref, cell := range s.overrides {
		out.Rows[ref.row-1][s.base.ColumnIndex(ref.column)] = cell
	}
	return out
}
