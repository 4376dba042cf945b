// Package job loads declarative grab descriptions from JSON or YAML
// files. A job file captures everything one export needs: the page, the
// table, the header strategy, column selection, numeric cleaning, manual
// edits, and the output target, so a grab can be re-run without retyping
// flags.
package job

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tablegrab/tablegrab/pkg/tablegrab"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Job describes one table grab end to end.
type Job struct {
	URL        string `json:"url" yaml:"url" validate:"required,url"`
	FetchMode  string `json:"fetch_mode,omitempty" yaml:"fetch_mode,omitempty" validate:"omitempty,oneof=static dynamic auto"`
	TableClass string `json:"table_class,omitempty" yaml:"table_class,omitempty"`
	Table      int    `json:"table,omitempty" yaml:"table,omitempty" validate:"omitempty,gte=1"`

	Header  Header   `json:"header,omitempty" yaml:"header,omitempty"`
	Drop    []string `json:"drop,omitempty" yaml:"drop,omitempty"`
	Rows    Window   `json:"rows,omitempty" yaml:"rows,omitempty"`
	Numeric Numeric  `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	Edits   []Edit   `json:"edits,omitempty" yaml:"edits,omitempty" validate:"dive"`
	Output  Output   `json:"output,omitempty" yaml:"output,omitempty"`
}

// Header picks the header strategy. Row consumes the 1-based table row as
// column labels. Setting Labels switches to the custom strategy instead:
// the comma-separated labels are applied and FirstDataRow marks where the
// body starts. Row and Labels are mutually exclusive.
type Header struct {
	Row          int    `json:"row,omitempty" yaml:"row,omitempty" validate:"omitempty,gte=1"`
	Labels       string `json:"labels,omitempty" yaml:"labels,omitempty"`
	FirstDataRow int    `json:"first_data_row,omitempty" yaml:"first_data_row,omitempty" validate:"omitempty,gte=1"`
}

// Window keeps the 1-based inclusive row range. A zero side leaves that
// side of the window open.
type Window struct {
	Start int `json:"start,omitempty" yaml:"start,omitempty" validate:"omitempty,gte=1"`
	End   int `json:"end,omitempty" yaml:"end,omitempty" validate:"omitempty,gte=1"`
}

// Numeric designates columns for numeric cleaning. A zero MaxDigits
// applies the default 16-digit magnitude guard.
type Numeric struct {
	Columns   []string `json:"columns,omitempty" yaml:"columns,omitempty"`
	All       bool     `json:"all,omitempty" yaml:"all,omitempty"`
	Round     int      `json:"round,omitempty" yaml:"round,omitempty" validate:"omitempty,gte=0"`
	MaxDigits int      `json:"max_digits,omitempty" yaml:"max_digits,omitempty" validate:"omitempty,gte=0"`
}

// Edit patches one cell of the finished dataset, addressed by 1-based row
// and final column label.
type Edit struct {
	Row    int    `json:"row" yaml:"row" validate:"required,gte=1"`
	Column string `json:"column" yaml:"column" validate:"required"`
	Value  string `json:"value" yaml:"value"`
}

// Output names the export target. Path wins over Name when both are set;
// Name is the file basename without extension.
type Output struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,oneof=csv xlsx"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
}

// FromFile loads a job from a JSON or YAML file.
func FromFile(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("failed to read job file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return FromJSON(data)
	case ".yaml", ".yml":
		return FromYAML(data)
	default:
		return Job{}, fmt.Errorf("unsupported job file format: %s", ext)
	}
}

// FromJSON creates a job from JSON data.
func FromJSON(data []byte) (Job, error) {
	var j Job
	if err := json.Unmarshal(data, &j); err != nil {
		return Job{}, fmt.Errorf("failed to parse JSON job: %w", err)
	}
	if err := j.Validate(); err != nil {
		return Job{}, err
	}
	return j, nil
}

// FromYAML creates a job from YAML data.
func FromYAML(data []byte) (Job, error) {
	var j Job
	if err := yaml.Unmarshal(data, &j); err != nil {
		return Job{}, fmt.Errorf("failed to parse YAML job: %w", err)
	}
	if err := j.Validate(); err != nil {
		return Job{}, err
	}
	return j, nil
}

// Validate checks field bounds and cross-field consistency.
func (j Job) Validate() error {
	if err := validate.Struct(j); err != nil {
		return fmt.Errorf("invalid job: %w", err)
	}
	if j.Header.Row > 0 && j.Header.Labels != "" {
		return fmt.Errorf("invalid job: header.row and header.labels are mutually exclusive")
	}
	if j.Rows.Start > 0 && j.Rows.End > 0 && j.Rows.Start > j.Rows.End {
		return fmt.Errorf("invalid job: rows.start %d is past rows.end %d", j.Rows.Start, j.Rows.End)
	}
	return nil
}

// Params lowers the job description to pipeline parameters, filling
// defaults for everything the file leaves out.
func (j Job) Params() tablegrab.Params {
	p := tablegrab.DefaultParams()

	if j.Table > 0 {
		p.Table = j.Table
	}
	if j.Header.Labels != "" {
		p.UseHeaderRow = false
		p.CustomLabels = j.Header.Labels
		if j.Header.FirstDataRow > 0 {
			p.FirstDataRow = j.Header.FirstDataRow
		}
	} else if j.Header.Row > 0 {
		p.HeaderRow = j.Header.Row
	}

	p.Drop = j.Drop
	p.RowStart = j.Rows.Start
	p.RowEnd = j.Rows.End

	p.NumericColumns = j.Numeric.Columns
	p.AllNumeric = j.Numeric.All
	p.Round = j.Numeric.Round
	if j.Numeric.MaxDigits > 0 {
		p.MaxDigits = j.Numeric.MaxDigits
	}
	return p
}

// PipelineEdits lowers the job's edits to pipeline edits.
func (j Job) PipelineEdits() []tablegrab.Edit {
	if len(j.Edits) == 0 {
		return nil
	}
	edits := make([]tablegrab.Edit, len(j.Edits))
	for i, e := range j.Edits {
		edits[i] = tablegrab.Edit{Row: e.Row, Column: e.Column, Value: e.Value}
	}
	return edits
}
