// Package output serializes finished datasets to export files.
package output

import (
	"fmt"
	"io"

	"github.com/tablegrab/tablegrab/pkg/wikitable"
)

// Format represents output format types.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Writer handles dataset serialization.
type Writer interface {
	// Write outputs a dataset.
	Write(d *wikitable.Dataset) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatXLSX:
		return NewXLSXWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
