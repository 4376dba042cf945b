package wikitable

import (
	"math"
	"regexp"
	"strconv"

	"github.com/montanaflynn/stats"
)

// NumericSpec designates the columns to coerce and the cleaning knobs.
type NumericSpec struct {
	// Columns lists the labels to coerce, matched against the current
	// headers. Labels that match nothing are skipped.
	Columns []string

	// All coerces every column and makes Columns irrelevant.
	All bool

	// Round is the number of decimal places kept after parsing.
	Round int

	// MaxDigits bounds the magnitude of a parsed value: anything with
	// |v| > 10^MaxDigits becomes null. Catches garbage like footnote
	// markers concatenated onto real numbers.
	MaxDigits int
}

// DefaultRound and DefaultMaxDigits are the cleaning defaults: round to
// whole numbers, null anything past 16 digits.
const (
	DefaultRound     = 0
	DefaultMaxDigits = 16
)

// DefaultNumericSpec returns a spec with the default cleaning knobs and
// no columns designated.
func DefaultNumericSpec() NumericSpec {
	return NumericSpec{Round: DefaultRound, MaxDigits: DefaultMaxDigits}
}

// nonNumeric matches every character stripped before parsing. Digits, '.'
// and '-' survive; the parser downstream decides validity, not the strip.
var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)

// StripNumeric removes every character that cannot appear in a plain
// decimal number. "€1,234.50" becomes "1234.50"; "N/A" becomes "".
func StripNumeric(s string) string {
	return nonNumeric.ReplaceAllString(s, "")
}

// ColumnReport summarizes what cleaning did to one column.
type ColumnReport struct {
	Column  string
	Parsed  int // cells that became numbers
	Nulled  int // cells nulled because nothing parseable survived the strip
	Guarded int // cells nulled by the magnitude guard
	Min     float64
	Max     float64
	Mean    float64
}

// CleanReport aggregates per-column outcomes of one cleaning pass, in
// column order. Min/Max/Mean cover only the cells that parsed.
type CleanReport struct {
	Columns []ColumnReport
}

// Nulled returns the total cells nulled across all columns, guard
// included.
func (r *CleanReport) Nulled() int {
	total := 0
	for _, c := range r.Columns {
		total += c.Nulled + c.Guarded
	}
	return total
}

// CleanNumeric coerces the designated columns to nullable numbers and
// reports what happened per column. Each cell goes through the same
// steps: render to text, strip non-numeric characters, parse, round to
// spec.Round places, then null anything whose magnitude exceeds
// 10^spec.MaxDigits. A failed parse becomes null, never an error, and
// columns outside the spec pass through untouched. Running CleanNumeric
// over its own output changes nothing.
func CleanNumeric(d *Dataset, spec NumericSpec) (*Dataset, *CleanReport) {
	out := d.Copy()
	report := &CleanReport{}

	limit := math.Pow10(spec.MaxDigits)
	scale := math.Pow10(spec.Round)

	for _, j := range spec.targets(d) {
		col := ColumnReport{Column: out.Headers[j]}
		var parsed []float64

		for r := range out.Rows {
			cell := out.Rows[r][j]
			v, err := strconv.ParseFloat(StripNumeric(cell.String()), 64)
			if err != nil {
				out.Rows[r][j] = NullCell()
				col.Nulled++
				continue
			}
			v = math.Round(v*scale) / scale
			if math.Abs(v) > limit {
				out.Rows[r][j] = NullCell()
				col.Guarded++
				continue
			}
			out.Rows[r][j] = NumberCell(v)
			col.Parsed++
			parsed = append(parsed, v)
		}

		if len(parsed) > 0 {
			col.Min, _ = stats.Min(parsed)
			col.Max, _ = stats.Max(parsed)
			col.Mean, _ = stats.Mean(parsed)
		}
		report.Columns = append(report.Columns, col)
	}
	return out, report
}

// targets resolves the spec to 0-based column indexes in header order.
func (s NumericSpec) targets(d *Dataset) []int {
	if s.All {
		idx := make([]int, len(d.Headers))
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	want := make(map[string]bool, len(s.Columns))
	for _, label := range s.Columns {
		want[label] = true
	}
	var idx []int
	for i, h := range d.Headers {
		if want[h] {
			idx = append(idx, i)
		}
	}
	return idx
}
