// Package fetcher defines the interface for web page fetching.
// Implement the Fetcher interface to plug in custom fetching strategies
// with specific authentication, caching, or rendering requirements.
package fetcher

import (
	"context"
	"errors"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static", "dynamic").
	Type() string
}

// Options controls fetching behavior for a single request.
type Options struct {
	UserAgent       string
	Timeout         time.Duration
	MaxBodySize     int64         // Response body limit in bytes (0 uses the fetcher default)
	WaitForSelector string        // CSS selector to wait for (dynamic fetcher)
	WaitDuration    time.Duration // Additional wait after load (dynamic fetcher)
	Headers         map[string]string
}

// Content represents fetched page data.
type Content struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// DefaultMaxBodySize bounds how much of a response body is buffered.
const DefaultMaxBodySize int64 = 10 * 1024 * 1024

// Error types for distinguishing failure reasons.
// Check with errors.Is(err, fetcher.ErrBodyTooLarge).
var (
	// ErrBodyTooLarge indicates the response body exceeded the configured limit.
	ErrBodyTooLarge = errors.New("response body too large")
)
