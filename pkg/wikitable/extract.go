package wikitable

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTableClass is the CSS class wiki-style pages put on data tables.
const DefaultTableClass = "wikitable"

// RawTable holds the ordered cell text of one extracted table element.
// Rows are not guaranteed rectangular; header resolution validates shape
// later, once a header strategy fixes the expected column count.
type RawTable struct {
	Rows [][]string
}

// RowCount returns the number of extracted rows.
func (t RawTable) RowCount() int { return len(t.Rows) }

// IsEmpty reports whether extraction produced no rows.
func (t RawTable) IsEmpty() bool { return len(t.Rows) == 0 }

// ColumnCount returns the cell count of the first row, or 0 for an empty
// table. Useful for describing a table before a header strategy runs.
func (t RawTable) ColumnCount() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Extract collects the trimmed text of every cell in a table element, row
// by row. Header cells (th) and data cells (td) both count, so column
// positions survive into the raw rows. A cell with no text stays "", never
// disappears.
func Extract(sel *goquery.Selection) RawTable {
	var rows [][]string
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		rows = append(rows, row)
	})
	return RawTable{Rows: rows}
}

// FindTables parses page HTML and extracts every table carrying the given
// CSS class, in document order. An empty class falls back to
// DefaultTableClass. Returns ErrNoTables when nothing matches.
func FindTables(html, class string) ([]RawTable, error) {
	if class == "" {
		class = DefaultTableClass
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	var tables []RawTable
	doc.Find("table." + class).Each(func(_ int, sel *goquery.Selection) {
		tables = append(tables, Extract(sel))
	})
	if len(tables) == 0 {
		return nil, ErrNoTables
	}
	return tables, nil
}
