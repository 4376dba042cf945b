package output

import (
	"fmt"
	"io"

	"github.com/tablegrab/tablegrab/pkg/wikitable"
	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the worksheet name the first dataset is written to.
const DefaultSheet = "Sheet1"

// XLSXWriter writes datasets as Excel workbooks. Datasets are buffered on
// Write and materialized on Flush, one worksheet per dataset.
type XLSXWriter struct {
	out      io.Writer
	datasets []*wikitable.Dataset
	flushed  bool
}

// NewXLSXWriter creates an XLSX writer.
func NewXLSXWriter(w io.Writer) *XLSXWriter {
	return &XLSXWriter{out: w}
}

// Write buffers a dataset for workbook output.
func (w *XLSXWriter) Write(d *wikitable.Dataset) error {
	w.datasets = append(w.datasets, d)
	return nil
}

// Flush builds the workbook and writes it out. The first dataset lands on
// Sheet1, later ones on Sheet2 onward. Numbers become native numeric
// cells and nulls stay blank, so spreadsheet formulas see real values.
func (w *XLSXWriter) Flush() error {
	if w.flushed {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, d := range w.datasets {
		sheet := DefaultSheet
		if i > 0 {
			sheet = fmt.Sprintf("Sheet%d", i+1)
			if _, err := f.NewSheet(sheet); err != nil {
				return err
			}
		}
		if err := writeSheet(f, sheet, d); err != nil {
			return err
		}
	}

	if err := f.Write(w.out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	w.flushed = true
	return nil
}

func writeSheet(f *excelize.File, sheet string, d *wikitable.Dataset) error {
	for j, h := range d.Headers {
		name, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, h); err != nil {
			return err
		}
	}

	for r, row := range d.Rows {
		for j, cell := range row {
			if cell.IsNull() {
				continue
			}
			name, err := excelize.CoordinatesToCellName(j+1, r+2)
			if err != nil {
				return err
			}
			var v any
			if cell.Type == wikitable.CellNumber {
				v = cell.Number
			} else {
				v = cell.Text
			}
			if err := f.SetCellValue(sheet, name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close writes the workbook if Flush has not run yet.
func (w *XLSXWriter) Close() error {
	return w.Flush()
}
