package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/dustin/go-humanize"
	"github.com/tablegrab/tablegrab/internal/logger"
)

// DynamicConfig holds configuration for the dynamic fetcher.
type DynamicConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int64
}

// DefaultDynamicConfig returns sensible defaults.
func DefaultDynamicConfig() DynamicConfig {
	return DynamicConfig{
		UserAgent:   defaultUserAgent,
		Timeout:     60 * time.Second,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// DynamicFetcher uses chromedp for JavaScript-rendered pages.
// It implements the Fetcher interface.
type DynamicFetcher struct {
	config    DynamicConfig
	allocCtx  context.Context
	cancelCtx context.CancelFunc
}

// NewDynamic creates a new dynamic fetcher with a headless browser instance.
func NewDynamic(cfg DynamicConfig) (*DynamicFetcher, error) {
	logger.Debug("creating dynamic fetcher")

	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultDynamicConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultDynamicConfig().Timeout
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = DefaultDynamicConfig().MaxBodySize
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)
	logger.Debug("dynamic fetcher browser options configured",
		"user_agent", cfg.UserAgent,
		"timeout", cfg.Timeout)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	return &DynamicFetcher{
		config:    cfg,
		allocCtx:  allocCtx,
		cancelCtx: cancelAlloc,
	}, nil
}

// Fetch retrieves page content using a headless browser.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	logger.Debug("dynamic fetch starting", "url", targetURL)

	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	// A fresh browser tab per request
	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	var title string

	actions := []chromedp.Action{
		chromedp.Navigate(targetURL),
	}

	// Wait for the caller's selector, or for the body to exist
	waitSelector := "body"
	if opts.WaitForSelector != "" {
		waitSelector = opts.WaitForSelector
	}
	actions = append(actions, chromedp.WaitVisible(waitSelector))
	logger.Debug("dynamic fetch waiting for selector", "selector", waitSelector)

	if opts.WaitDuration > 0 {
		actions = append(actions, chromedp.Sleep(opts.WaitDuration))
		logger.Debug("dynamic fetch additional wait", "duration", opts.WaitDuration)
	}

	actions = append(actions,
		chromedp.OuterHTML("html", &html),
		chromedp.Title(&title),
	)

	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		logger.Debug("dynamic fetch browser automation failed", "url", targetURL, "error", err)
		return result, fmt.Errorf("browser automation failed: %w", err)
	}
	logger.Debug("dynamic fetch browser actions complete", "html_size", len(html), "title", title)

	maxBody := opts.MaxBodySize
	if maxBody == 0 {
		maxBody = f.config.MaxBodySize
	}
	if int64(len(html)) > maxBody {
		return result, fmt.Errorf("%w: rendered page exceeds %s", ErrBodyTooLarge, humanize.Bytes(uint64(maxBody)))
	}

	result.HTML = html
	result.Title = title
	result.StatusCode = 200 // chromedp doesn't easily expose status codes

	logger.Debug("dynamic fetch complete", "url", targetURL)
	return result, nil
}

// Close releases browser resources.
func (f *DynamicFetcher) Close() error {
	if f.cancelCtx != nil {
		f.cancelCtx()
	}
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return "dynamic"
}
