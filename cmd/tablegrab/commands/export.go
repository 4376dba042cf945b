package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tablegrab/tablegrab/internal/logger"
	"github.com/tablegrab/tablegrab/internal/output"
	"github.com/tablegrab/tablegrab/pkg/job"
	"github.com/tablegrab/tablegrab/pkg/tablegrab"
	"github.com/tablegrab/tablegrab/pkg/wikitable"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Grab one table and export it to CSV or XLSX",
	Long: `Grab a table from a page, shape and clean it, and write the result
to a file.

The header comes from a table row (--header-row, consumed) or from your
own labels (--custom-headers, with --first-row marking where the data
starts). Duplicate header labels are suffixed with their column
position. Numeric columns are stripped of footnotes and separators,
parsed, rounded, and capped; cells that do not survive become empty.

A job file carries the same settings declaratively; flags set on the
command line override it.

Examples:
  # First table, first row as header, clean one column
  tablegrab export -u "https://en.wikipedia.org/wiki/World_population" \
      --numeric "Population" -o population.csv

  # Skip a banner row by supplying labels, keep rows 2-50
  tablegrab export -u "https://example.com/report" \
      --custom-headers "Quarter, Revenue, Profit" --first-row 2 \
      --rows 2:50 --all-numeric --round 2 --format xlsx

  # Patch a cell the source got wrong, then export
  tablegrab export --job report.yaml --set "3,Revenue=1200.5"`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()

	// Page selection
	flags.StringP("url", "u", "", "URL of the page to grab")
	flags.String("job", "", "path to a JSON or YAML job file")
	flags.IntP("table", "t", 1, "which matching table to use, first is 1")

	// Header strategy
	flags.Int("header-row", 1, "table row to consume as the header, 1-based")
	flags.String("custom-headers", "", "comma-separated header labels replacing a header row")
	flags.Int("first-row", 1, "first data row when using --custom-headers, 1-based")

	// Column and row selection
	flags.StringArray("drop", nil, "column label to drop before export (repeatable)")
	flags.String("rows", "", "row range to keep, 1-based inclusive START:END")

	// Numeric cleaning
	flags.StringArray("numeric", nil, "column label to clean as numeric (repeatable)")
	flags.Bool("all-numeric", false, "clean every column as numeric")
	flags.Int("round", 0, "decimal places to round numeric values to")
	flags.Int("max-digits", wikitable.DefaultMaxDigits, "null numeric values with more digits than this")

	// Manual edits
	flags.StringArray("set", nil, "patch a cell, ROW,COLUMN=VALUE (repeatable)")

	// Output
	flags.StringP("output", "o", "", "output file path (default: name plus format extension)")
	flags.String("format", "csv", "output format: csv, xlsx")
	flags.String("name", "my_wikitable", "output file basename when --output is not set")

	addFetchFlags(flags)

	exportCmd.MarkFlagsMutuallyExclusive("header-row", "custom-headers")
}

func runExport(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load the job file if given; flags override it below
	var j job.Job
	if jobPath, _ := cmd.Flags().GetString("job"); jobPath != "" {
		loaded, err := job.FromFile(jobPath)
		if err != nil {
			logger.Error("failed to load job", "path", jobPath, "error", err)
			return err
		}
		j = loaded
		logger.Debug("job loaded", "path", jobPath, "url", j.URL)
	}

	url, _ := cmd.Flags().GetString("url")
	if url == "" {
		url = j.URL
	}
	if url == "" {
		return cmd.Help()
	}

	p, err := resolveParams(cmd, j)
	if err != nil {
		return err
	}

	edits, err := resolveEdits(cmd, j)
	if err != nil {
		return err
	}

	fetchMode, _ := cmd.Flags().GetString("fetch-mode")
	if !cmd.Flags().Changed("fetch-mode") && j.FetchMode != "" {
		fetchMode = j.FetchMode
	}
	tableClass, _ := cmd.Flags().GetString("table-class")
	if !cmd.Flags().Changed("table-class") && j.TableClass != "" {
		tableClass = j.TableClass
	}

	g, err := newGrabber(cmd, fetchMode, tableClass)
	if err != nil {
		return err
	}
	defer func() { _ = g.Close() }()

	result, err := g.Grab(ctx, url, p)
	if err != nil {
		logger.Error("grab failed", "url", url, "error", err)
		return err
	}
	logger.Info("table grabbed",
		"url", url,
		"table", result.TableIndex,
		"rows", result.Dataset.RowCount(),
		"columns", result.Dataset.ColumnCount(),
		"fetch_duration", result.FetchDuration)

	for _, col := range result.Report.Columns {
		if col.Guarded > 0 {
			logger.Warn("oversized values nulled", "column", col.Column, "count", col.Guarded, "max_digits", p.MaxDigits)
		}
	}

	// Manual edits go through a snapshot so the grabbed dataset stays intact
	final := result.Dataset
	if len(edits) > 0 {
		snap := wikitable.NewSnapshot(result.Dataset)
		if err := tablegrab.ApplyEdits(snap, p, edits); err != nil {
			logger.Error("failed to apply edits", "error", err)
			return err
		}
		final = snap.Merged()
		logger.Debug("edits applied", "count", snap.Len())
	}

	format, outPath := resolveOutput(cmd, j)

	f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
	if err != nil {
		logger.Error("failed to create output file", "path", outPath, "error", err)
		return err
	}
	defer func() { _ = f.Close() }()

	writer, err := output.NewWriter(f, output.Format(format))
	if err != nil {
		logger.Error("failed to create output writer", "format", format, "error", err)
		return err
	}
	if err := writer.Write(final); err != nil {
		logger.Error("failed to write output", "error", err)
		return err
	}
	// Close materializes the file for formats that buffer, so its error matters
	if err := writer.Close(); err != nil {
		logger.Error("failed to finish output", "error", err)
		return err
	}

	logger.Info("export complete",
		"path", outPath,
		"format", format,
		"rows", final.RowCount(),
		"columns", final.ColumnCount())
	return nil
}

// resolveParams lowers the job file to pipeline parameters, then applies
// every flag the user actually set on top.
func resolveParams(cmd *cobra.Command, j job.Job) (tablegrab.Params, error) {
	p := j.Params()
	flags := cmd.Flags()

	if flags.Changed("table") {
		p.Table, _ = flags.GetInt("table")
	}
	if flags.Changed("custom-headers") {
		p.UseHeaderRow = false
		p.CustomLabels, _ = flags.GetString("custom-headers")
	}
	if flags.Changed("header-row") {
		p.UseHeaderRow = true
		p.HeaderRow, _ = flags.GetInt("header-row")
	}
	if flags.Changed("first-row") {
		p.FirstDataRow, _ = flags.GetInt("first-row")
	}
	if flags.Changed("drop") {
		p.Drop, _ = flags.GetStringArray("drop")
	}
	if flags.Changed("rows") {
		rowsStr, _ := flags.GetString("rows")
		start, end, err := parseRowWindow(rowsStr)
		if err != nil {
			return p, err
		}
		p.RowStart, p.RowEnd = start, end
	}
	if flags.Changed("numeric") {
		p.NumericColumns, _ = flags.GetStringArray("numeric")
	}
	if flags.Changed("all-numeric") {
		p.AllNumeric, _ = flags.GetBool("all-numeric")
	}
	if flags.Changed("round") {
		p.Round, _ = flags.GetInt("round")
	}
	if flags.Changed("max-digits") {
		p.MaxDigits, _ = flags.GetInt("max-digits")
	}
	return p, nil
}

// resolveEdits combines job file edits with --set flags. Flag edits come
// last so they win when both touch the same cell.
func resolveEdits(cmd *cobra.Command, j job.Job) ([]tablegrab.Edit, error) {
	edits := j.PipelineEdits()
	setValues, _ := cmd.Flags().GetStringArray("set")
	for _, s := range setValues {
		e, err := parseEdit(s)
		if err != nil {
			return nil, err
		}
		edits = append(edits, e)
	}
	return edits, nil
}

// resolveOutput picks the format and file path: flags first, then the job
// file, then the name-plus-extension default.
func resolveOutput(cmd *cobra.Command, j job.Job) (format, path string) {
	flags := cmd.Flags()

	format, _ = flags.GetString("format")
	if !flags.Changed("format") && j.Output.Format != "" {
		format = j.Output.Format
	}

	path, _ = flags.GetString("output")
	if path == "" {
		path = j.Output.Path
	}
	if path == "" {
		name, _ := flags.GetString("name")
		if !flags.Changed("name") && j.Output.Name != "" {
			name = j.Output.Name
		}
		path = name + "." + format
	}
	return format, path
}

// parseRowWindow parses a 1-based inclusive START:END range. Either side
// may be empty to leave the window open on that side.
func parseRowWindow(s string) (start, end int, err error) {
	before, after, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid row range %q: use START:END", s)
	}
	if v := strings.TrimSpace(before); v != "" {
		start, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid row range %q: %w", s, err)
		}
	}
	if v := strings.TrimSpace(after); v != "" {
		end, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid row range %q: %w", s, err)
		}
	}
	return start, end, nil
}

// parseEdit parses one --set value of the form ROW,COLUMN=VALUE. The value
// is kept verbatim, commas included.
func parseEdit(s string) (tablegrab.Edit, error) {
	addr, value, ok := strings.Cut(s, "=")
	if !ok {
		return tablegrab.Edit{}, fmt.Errorf("invalid edit %q: use ROW,COLUMN=VALUE", s)
	}
	rowStr, column, ok := strings.Cut(addr, ",")
	if !ok {
		return tablegrab.Edit{}, fmt.Errorf("invalid edit %q: use ROW,COLUMN=VALUE", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(rowStr))
	if err != nil {
		return tablegrab.Edit{}, fmt.Errorf("invalid edit row in %q: %w", s, err)
	}
	return tablegrab.Edit{Row: row, Column: strings.TrimSpace(column), Value: value}, nil
}
