package wikitable

import (
	"errors"
	"fmt"
)

// Error types for distinguishing pipeline validation failures. Each one is
// terminal for a run: no dataset is produced, and the caller adjusts a
// parameter and runs again.
// Check with errors.Is(err, wikitable.ErrNoTables).
var (
	// ErrNoTables indicates the page contained no matching table elements.
	ErrNoTables = errors.New("no tables found on page")
	// ErrEmptyTable indicates extraction produced a table with no rows.
	ErrEmptyTable = errors.New("table has no rows")
	// ErrMissingLabels indicates the custom-header strategy was selected
	// without any column labels.
	ErrMissingLabels = errors.New("no column labels supplied")
)

// ShapeMismatchError reports a body row whose cell count disagrees with
// the header row, usually because the chosen header row sits above a
// colspan-heavy band of the table. Row is 1-based within the body.
// Use errors.As to check for this error type.
type ShapeMismatchError struct {
	HeaderLen int
	Row       int
	RowLen    int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("data row %d has %d cells but the header row has %d: select a different header row",
		e.Row, e.RowLen, e.HeaderLen)
}

// LabelCountMismatchError reports a custom label list whose length does
// not match the column count of the first data row.
// Use errors.As to check for this error type.
type LabelCountMismatchError struct {
	Got  int
	Want int
}

func (e *LabelCountMismatchError) Error() string {
	return fmt.Sprintf("got %d column labels but the first data row has %d cells", e.Got, e.Want)
}
