package fetcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dustin/go-humanize"
	"github.com/gocolly/colly/v2"
	"github.com/tablegrab/tablegrab/internal/logger"
)

// StaticConfig holds configuration for the static fetcher.
type StaticConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int64
}

// DefaultStaticConfig returns sensible defaults.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		UserAgent:   defaultUserAgent,
		Timeout:     30 * time.Second,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// Chrome user agent for better compatibility
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// StaticFetcher uses Colly for static HTML fetching.
// It implements the Fetcher interface.
type StaticFetcher struct {
	config StaticConfig
}

// NewStatic creates a new static fetcher.
func NewStatic(cfg StaticConfig) *StaticFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultStaticConfig().UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultStaticConfig().Timeout
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = DefaultStaticConfig().MaxBodySize
	}
	return &StaticFetcher{config: cfg}
}

// Fetch retrieves page content using Colly.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	logger.Debug("static fetch starting", "url", targetURL)

	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	// Create a new collector for each request
	userAgent := coalesce(opts.UserAgent, f.config.UserAgent)
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
	)
	logger.Debug("static fetch configured", "user_agent", userAgent)

	// Set timeout
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	c.SetRequestTimeout(timeout)

	// Bound the body buffer one byte past the limit so an overrun is
	// detectable instead of silently truncated.
	maxBody := opts.MaxBodySize
	if maxBody == 0 {
		maxBody = f.config.MaxBodySize
	}
	c.MaxBodySize = int(maxBody) + 1
	logger.Debug("static fetch limits set", "timeout", timeout, "max_body_size", humanize.Bytes(uint64(maxBody)))

	// Set custom headers
	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

	var fetchErr error

	// Handle response
	c.OnResponse(func(r *colly.Response) {
		if int64(len(r.Body)) > maxBody {
			fetchErr = fmt.Errorf("%w: body exceeds %s", ErrBodyTooLarge, humanize.Bytes(uint64(maxBody)))
			logger.Debug("static fetch body over limit", "body_size", len(r.Body))
			return
		}
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		result.HTML = string(r.Body)
		logger.Debug("static fetch response received",
			"status", r.StatusCode,
			"content_type", result.ContentType,
			"body_size", len(r.Body))
	})

	// Handle errors
	c.OnError(func(r *colly.Response, err error) {
		statusCode := 0
		if r != nil {
			statusCode = r.StatusCode
			result.StatusCode = statusCode
		}
		fetchErr = fmt.Errorf("fetch error: %w", err)
		logger.Debug("static fetch error", "status", statusCode, "error", err)
	})

	// Perform the request
	logger.Debug("static fetch visiting URL", "url", targetURL)
	if err := c.Visit(targetURL); err != nil {
		logger.Debug("static fetch visit failed", "url", targetURL, "error", err)
		return result, fmt.Errorf("failed to visit URL: %w", err)
	}

	if fetchErr != nil {
		return result, fetchErr
	}

	// Extract the page title for result metadata
	if result.HTML != "" {
		if err := f.parseTitle(&result); err != nil {
			logger.Debug("static fetch title parse failed", "error", err)
			return result, fmt.Errorf("failed to parse content: %w", err)
		}
	}

	logger.Debug("static fetch complete", "url", targetURL, "title", result.Title)
	return result, nil
}

// parseTitle extracts the document title from HTML.
func (f *StaticFetcher) parseTitle(content *Content) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.HTML))
	if err != nil {
		return err
	}
	content.Title = strings.TrimSpace(doc.Find("title").First().Text())
	return nil
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *StaticFetcher) Type() string {
	return "static"
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
