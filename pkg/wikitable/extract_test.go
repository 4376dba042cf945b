package wikitable

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// readTestdata reads a file from the testdata directory
func readTestdata(t *testing.T, filename string) string {
	t.Helper()
	path := filepath.Join("testdata", filename)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read testdata %s: %v", filename, err)
	}
	return string(data)
}

// --- FindTables Tests ---

func TestFindTables_DefaultClass(t *testing.T) {
	html := readTestdata(t, "gdp_page.html")

	tables, err := FindTables(html, "")
	if err != nil {
		t.Fatalf("FindTables() error = %v, want nil", err)
	}
	// The infobox table does not carry the wikitable class.
	if len(tables) != 2 {
		t.Fatalf("FindTables() returned %d tables, want 2", len(tables))
	}

	first := tables[0]
	if first.RowCount() != 4 {
		t.Errorf("first table RowCount() = %d, want 4", first.RowCount())
	}
	if first.ColumnCount() != 3 {
		t.Errorf("first table ColumnCount() = %d, want 3", first.ColumnCount())
	}

	second := tables[1]
	if second.RowCount() != 3 {
		t.Errorf("second table RowCount() = %d, want 3", second.RowCount())
	}
	if second.ColumnCount() != 2 {
		t.Errorf("second table ColumnCount() = %d, want 2", second.ColumnCount())
	}
}

func TestFindTables_CellText(t *testing.T) {
	html := readTestdata(t, "gdp_page.html")

	tables, err := FindTables(html, "wikitable")
	if err != nil {
		t.Fatalf("FindTables() error = %v, want nil", err)
	}

	rows := tables[0].Rows
	if got := rows[0][1]; got != "Country" {
		t.Errorf("header cell = %q, want %q", got, "Country")
	}
	// Surrounding whitespace is trimmed.
	if got := rows[1][1]; got != "United States" {
		t.Errorf("cell = %q, want %q", got, "United States")
	}
	// Footnote markup text is kept; cleaning deals with it later.
	if got := rows[1][2]; got != "25,462,700[1]" {
		t.Errorf("cell = %q, want %q", got, "25,462,700[1]")
	}
}

func TestFindTables_CustomClass(t *testing.T) {
	html := readTestdata(t, "gdp_page.html")

	tables, err := FindTables(html, "infobox")
	if err != nil {
		t.Fatalf("FindTables() error = %v, want nil", err)
	}
	if len(tables) != 1 {
		t.Fatalf("FindTables() returned %d tables, want 1", len(tables))
	}
	if got := tables[0].Rows[0][0]; got != "Sidebar box, not a data table" {
		t.Errorf("cell = %q, want sidebar text", got)
	}
}

func TestFindTables_NoMatch(t *testing.T) {
	html := readTestdata(t, "gdp_page.html")

	_, err := FindTables(html, "collapsible")
	if !errors.Is(err, ErrNoTables) {
		t.Errorf("FindTables() error = %v, want ErrNoTables", err)
	}
}

func TestFindTables_NoTablesOnPage(t *testing.T) {
	_, err := FindTables("<html><body><p>prose only</p></body></html>", "")
	if !errors.Is(err, ErrNoTables) {
		t.Errorf("FindTables() error = %v, want ErrNoTables", err)
	}
}

func TestFindTables_EmptyTableElement(t *testing.T) {
	tables, err := FindTables(`<table class="wikitable"></table>`, "")
	if err != nil {
		t.Fatalf("FindTables() error = %v, want nil", err)
	}
	if len(tables) != 1 {
		t.Fatalf("FindTables() returned %d tables, want 1", len(tables))
	}
	if !tables[0].IsEmpty() {
		t.Error("table without rows should report IsEmpty()")
	}
	if tables[0].ColumnCount() != 0 {
		t.Errorf("empty table ColumnCount() = %d, want 0", tables[0].ColumnCount())
	}
}

// --- Extract Tests ---

func TestExtract_MixedHeaderAndDataCells(t *testing.T) {
	html := readTestdata(t, "quarterly_page.html")

	tables, err := FindTables(html, "")
	if err != nil {
		t.Fatalf("FindTables() error = %v, want nil", err)
	}
	raw := tables[0]

	// The banner row collapses to a single cell.
	if got := len(raw.Rows[0]); got != 1 {
		t.Errorf("banner row has %d cells, want 1", got)
	}
	// Body rows mix th and td; both are extracted in position.
	if got := len(raw.Rows[2]); got != 3 {
		t.Errorf("body row has %d cells, want 3", got)
	}
	if got := raw.Rows[2][0]; got != "Q1" {
		t.Errorf("row label cell = %q, want %q", got, "Q1")
	}
	if got := raw.Rows[2][1]; got != "$1,000" {
		t.Errorf("data cell = %q, want %q", got, "$1,000")
	}
}

func TestExtract_RaggedRowsSurvive(t *testing.T) {
	html := readTestdata(t, "quarterly_page.html")

	tables, err := FindTables(html, "")
	if err != nil {
		t.Fatalf("FindTables() error = %v, want nil", err)
	}
	raw := tables[0]

	// Extraction preserves ragged shapes; resolution validates later.
	lengths := make([]int, len(raw.Rows))
	for i, row := range raw.Rows {
		lengths[i] = len(row)
	}
	want := []int{1, 3, 3, 3, 3}
	for i := range want {
		if lengths[i] != want[i] {
			t.Errorf("row %d has %d cells, want %d", i, lengths[i], want[i])
		}
	}
}
