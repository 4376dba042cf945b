package output

import (
	"encoding/csv"
	"io"

	"github.com/tablegrab/tablegrab/pkg/wikitable"
)

// CSVWriter writes datasets as CSV with a header row.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// Write outputs the header row followed by every body row. Null cells
// render as empty fields; numbers keep the shortest decimal form that
// round-trips.
func (w *CSVWriter) Write(d *wikitable.Dataset) error {
	if err := w.w.Write(d.Headers); err != nil {
		return err
	}

	record := make([]string, d.ColumnCount())
	for _, row := range d.Rows {
		for i, cell := range row {
			record[i] = cell.String()
		}
		if err := w.w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Flush writes buffered records to the underlying writer.
func (w *CSVWriter) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Close flushes the writer.
func (w *CSVWriter) Close() error {
	return w.Flush()
}
