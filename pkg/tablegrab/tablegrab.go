package tablegrab

import (
	"context"
	"fmt"
	"time"

	"github.com/tablegrab/tablegrab/internal/logger"
	"github.com/tablegrab/tablegrab/pkg/fetcher"
	"github.com/tablegrab/tablegrab/pkg/wikitable"
)

// Result is the outcome of one grab: the finished dataset plus page and
// run metadata.
type Result struct {
	URL           string
	Title         string
	FetchedAt     time.Time
	FetchDuration time.Duration
	TableCount    int // tables matched on the page
	TableIndex    int // 1-based index of the table used
	Dataset       *wikitable.Dataset
	Report        *wikitable.CleanReport
}

// TableInfo describes one matched table on a page.
type TableInfo struct {
	Index   int // 1-based position on the page
	Rows    int
	Columns int // cell count of the first row
}

// PageTables lists the matching tables found on a page.
type PageTables struct {
	URL       string
	Title     string
	FetchedAt time.Time
	Tables    []TableInfo
}

// Grabber is the main entry point for scraping tables from web pages.
type Grabber struct {
	fetcher fetcher.Fetcher
	config  Config
}

// New creates a new Grabber.
func New(opts ...Option) *Grabber {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Use the injected fetcher or create a default static one
	f := cfg.Fetcher
	if f == nil {
		f = fetcher.NewStatic(fetcher.StaticConfig{
			UserAgent:   cfg.UserAgent,
			Timeout:     cfg.Timeout,
			MaxBodySize: cfg.MaxBodySize,
		})
	}

	return &Grabber{fetcher: f, config: cfg}
}

// Grab fetches a page, extracts the selected table, and runs the pipeline
// over it with the given parameters.
func (g *Grabber) Grab(ctx context.Context, url string, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	content, fetchDuration, err := g.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	tables, err := wikitable.FindTables(content.HTML, g.config.TableClass)
	if err != nil {
		return nil, err
	}
	logger.Info("tables found", "url", url, "count", len(tables))

	if p.Table > len(tables) {
		return nil, fmt.Errorf("table %d requested but the page has %d matching table(s)", p.Table, len(tables))
	}
	raw := tables[p.Table-1]

	dataset, report, err := Run(raw, p)
	if err != nil {
		return nil, err
	}

	return &Result{
		URL:           url,
		Title:         content.Title,
		FetchedAt:     content.FetchedAt,
		FetchDuration: fetchDuration,
		TableCount:    len(tables),
		TableIndex:    p.Table,
		Dataset:       dataset,
		Report:        report,
	}, nil
}

// Tables fetches a page and reports the shape of every matching table
// without running the pipeline. Useful for picking a table index.
func (g *Grabber) Tables(ctx context.Context, url string) (*PageTables, error) {
	content, _, err := g.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	tables, err := wikitable.FindTables(content.HTML, g.config.TableClass)
	if err != nil {
		return nil, err
	}

	page := &PageTables{
		URL:       url,
		Title:     content.Title,
		FetchedAt: content.FetchedAt,
	}
	for i, raw := range tables {
		page.Tables = append(page.Tables, TableInfo{
			Index:   i + 1,
			Rows:    raw.RowCount(),
			Columns: raw.ColumnCount(),
		})
	}
	return page, nil
}

func (g *Grabber) fetch(ctx context.Context, url string) (fetcher.Content, time.Duration, error) {
	fetchOpts := fetcher.Options{
		UserAgent:       g.config.UserAgent,
		Timeout:         g.config.Timeout,
		MaxBodySize:     g.config.MaxBodySize,
		WaitForSelector: g.config.WaitForSelector,
		WaitDuration:    g.config.WaitDuration,
	}

	fetchStart := time.Now()
	content, err := g.fetcher.Fetch(ctx, url, fetchOpts)
	fetchDuration := time.Since(fetchStart)
	if err != nil {
		return content, fetchDuration, fmt.Errorf("fetch failed: %w", err)
	}
	logger.Debug("page fetched",
		"url", url,
		"fetcher", g.fetcher.Type(),
		"status", content.StatusCode,
		"duration", fetchDuration)
	return content, fetchDuration, nil
}

// Close releases fetcher resources.
func (g *Grabber) Close() error {
	return g.fetcher.Close()
}
