package tablegrab

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/tablegrab/tablegrab/internal/logger"
	"github.com/tablegrab/tablegrab/pkg/wikitable"
)

var validate = validator.New()

// Params collects every knob of one pipeline run. The zero value is not
// usable; start from DefaultParams and adjust.
type Params struct {
	// Table selects which matched table on the page to extract, 1-based.
	Table int `validate:"gte=1"`

	// UseHeaderRow selects the header strategy. True consumes the 1-based
	// HeaderRow as column labels; false applies the comma-separated
	// CustomLabels and keeps the 1-based FirstDataRow in the body.
	UseHeaderRow bool
	HeaderRow    int `validate:"omitempty,gte=1"`
	CustomLabels string
	FirstDataRow int `validate:"omitempty,gte=1"`

	// Drop lists column labels removed before disambiguation.
	Drop []string

	// RowStart and RowEnd window the body rows, 1-based inclusive. Zero
	// leaves that side of the window open.
	RowStart int `validate:"gte=0"`
	RowEnd   int `validate:"gte=0"`

	// NumericColumns designates columns for numeric cleaning by their
	// final (post-disambiguation) labels. AllNumeric coerces every column
	// and makes NumericColumns irrelevant.
	NumericColumns []string
	AllNumeric     bool
	Round          int `validate:"gte=0"`
	MaxDigits      int `validate:"gte=0"`
}

// DefaultParams returns the parameters of a plain run: first table, first
// row as header, no drops, full row range, default cleaning knobs.
func DefaultParams() Params {
	return Params{
		Table:        1,
		UseHeaderRow: true,
		HeaderRow:    1,
		FirstDataRow: 1,
		Round:        wikitable.DefaultRound,
		MaxDigits:    wikitable.DefaultMaxDigits,
	}
}

// Validate checks the structural bounds of the parameters. Bounds that
// depend on the extracted table (row counts, label matches) are checked by
// the pipeline itself.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}
	if p.RowStart > 0 && p.RowEnd > 0 && p.RowStart > p.RowEnd {
		return fmt.Errorf("invalid row window: start %d is past end %d", p.RowStart, p.RowEnd)
	}
	return nil
}

// IsNumericColumn reports whether the labelled column is designated for
// numeric cleaning.
func (p Params) IsNumericColumn(label string) bool {
	if p.AllNumeric {
		return true
	}
	for _, c := range p.NumericColumns {
		if c == label {
			return true
		}
	}
	return false
}

// Run executes the pure pipeline over an extracted table: header
// resolution, column selection, then numeric cleaning. Run holds no state
// between calls; the same raw table and parameters always produce the
// same dataset, so callers re-run from the raw table whenever any
// parameter changes instead of patching a previous result.
func Run(raw wikitable.RawTable, p Params) (*wikitable.Dataset, *wikitable.CleanReport, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		resolved *wikitable.Dataset
		err      error
	)
	if p.UseHeaderRow {
		resolved, err = wikitable.ResolveHeaderRow(raw, p.HeaderRow)
	} else {
		resolved, err = wikitable.ResolveCustomHeader(raw, p.FirstDataRow, p.CustomLabels)
	}
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("header resolved",
		"use_header_row", p.UseHeaderRow,
		"columns", resolved.ColumnCount(),
		"rows", resolved.RowCount())

	reshaped := wikitable.Reshape(resolved, p.Drop, wikitable.RowWindow{Start: p.RowStart, End: p.RowEnd})
	logger.Debug("columns selected",
		"dropped", len(p.Drop),
		"columns", reshaped.ColumnCount(),
		"rows", reshaped.RowCount())

	cleaned, report := wikitable.CleanNumeric(reshaped, wikitable.NumericSpec{
		Columns:   p.NumericColumns,
		All:       p.AllNumeric,
		Round:     p.Round,
		MaxDigits: p.MaxDigits,
	})
	for _, col := range report.Columns {
		logger.Debug("column cleaned",
			"column", col.Column,
			"parsed", col.Parsed,
			"nulled", col.Nulled,
			"guarded", col.Guarded)
	}

	return cleaned, report, nil
}

// Edit is one manual cell patch applied after cleaning, addressed by the
// 1-based row and final column label of the run's dataset.
type Edit struct {
	Row    int
	Column string
	Value  string
}

// ApplyEdits records the edits on a snapshot. A value aimed at a numeric
// column must parse as a number, with the empty string clearing the cell
// to null; text columns take the value verbatim.
func ApplyEdits(s *wikitable.Snapshot, p Params, edits []Edit) error {
	for _, e := range edits {
		cell, err := editCell(p, e)
		if err != nil {
			return err
		}
		if err := s.Set(e.Row, e.Column, cell); err != nil {
			return fmt.Errorf("edit %d,%s: %w", e.Row, e.Column, err)
		}
	}
	return nil
}

func editCell(p Params, e Edit) (wikitable.Cell, error) {
	if !p.IsNumericColumn(e.Column) {
		return wikitable.TextCell(e.Value), nil
	}
	if e.Value == "" {
		return wikitable.NullCell(), nil
	}
	v, err := strconv.ParseFloat(e.Value, 64)
	if err != nil {
		return wikitable.Cell{}, fmt.Errorf("edit %d,%s: %q is not a number for a numeric column", e.Row, e.Column, e.Value)
	}
	return wikitable.NumberCell(v), nil
}
