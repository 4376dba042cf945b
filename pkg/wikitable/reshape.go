package wikitable

import "fmt"

// RowWindow is a 1-based inclusive range over a dataset's body rows.
// The zero value means "no windowing".
type RowWindow struct {
	Start int
	End   int
}

// IsZero reports whether the window is unset.
func (w RowWindow) IsZero() bool { return w.Start == 0 && w.End == 0 }

// clamp bounds the window to [1, rows]. A zero Start or End opens that
// side of the window fully.
func (w RowWindow) clamp(rows int) RowWindow {
	if w.Start < 1 {
		w.Start = 1
	}
	if w.End < 1 || w.End > rows {
		w.End = rows
	}
	return w
}

// DropColumns removes every column whose label appears in drop, matching
// labels by exact value. Dropping all occurrences of a duplicated label is
// intentional; disambiguation has not run yet. An empty drop list returns
// an unchanged copy.
func DropColumns(d *Dataset, drop []string) *Dataset {
	if len(drop) == 0 {
		return d.Copy()
	}

	dropped := make(map[string]bool, len(drop))
	for _, label := range drop {
		dropped[label] = true
	}

	keep := make([]int, 0, len(d.Headers))
	for i, h := range d.Headers {
		if !dropped[h] {
			keep = append(keep, i)
		}
	}

	headers := make([]string, len(keep))
	for i, idx := range keep {
		headers[i] = d.Headers[idx]
	}
	rows := make([][]Cell, len(d.Rows))
	for r, row := range d.Rows {
		cells := make([]Cell, len(keep))
		for i, idx := range keep {
			cells[i] = row[idx]
		}
		rows[r] = cells
	}
	return &Dataset{Headers: headers, Rows: rows}
}

// DisambiguateHeaders rewrites every occurrence of a duplicated label to
// "label_position" using the column's 0-based position, first occurrence
// included. Unique labels pass through untouched. Runs over the post-drop
// column order, so positions match the dataset the caller sees.
func DisambiguateHeaders(d *Dataset) *Dataset {
	counts := make(map[string]int, len(d.Headers))
	for _, h := range d.Headers {
		counts[h]++
	}

	out := d.Copy()
	for i, h := range out.Headers {
		if counts[h] > 1 {
			out.Headers[i] = fmt.Sprintf("%s_%d", h, i)
		}
	}
	return out
}

// WindowRows keeps the body rows inside the 1-based inclusive window.
// Out-of-range bounds are clamped to the valid row range, so a window that
// overshoots simply keeps everything that exists.
func WindowRows(d *Dataset, w RowWindow) *Dataset {
	w = w.clamp(d.RowCount())
	out := &Dataset{Headers: make([]string, len(d.Headers))}
	copy(out.Headers, d.Headers)

	if w.Start > w.End {
		out.Rows = [][]Cell{}
		return out
	}
	out.Rows = make([][]Cell, 0, w.End-w.Start+1)
	for _, row := range d.Rows[w.Start-1 : w.End] {
		cells := make([]Cell, len(row))
		copy(cells, row)
		out.Rows = append(out.Rows, cells)
	}
	return out
}

// Reshape applies the column-selection stage in its fixed order: drop
// columns, disambiguate the surviving labels, then window the rows.
// Disambiguation positions are always computed after dropping, never
// before, so exported labels match the final column layout.
func Reshape(d *Dataset, drop []string, w RowWindow) *Dataset {
	return WindowRows(DisambiguateHeaders(DropColumns(d, drop)), w)
}
