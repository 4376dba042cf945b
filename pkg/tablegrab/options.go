// Package tablegrab provides the public API for scraping HTML tables into
// clean, export-ready datasets.
package tablegrab

import (
	"time"

	"github.com/tablegrab/tablegrab/pkg/fetcher"
	"github.com/tablegrab/tablegrab/pkg/wikitable"
)

// Config holds all Grabber configuration.
type Config struct {
	// Page settings
	TableClass string

	// Fetching settings
	Fetcher         fetcher.Fetcher
	UserAgent       string
	Timeout         time.Duration
	MaxBodySize     int64
	WaitForSelector string
	WaitDuration    time.Duration
}

// Chrome user agent for better compatibility with picky sites
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		TableClass:  wikitable.DefaultTableClass,
		UserAgent:   defaultUserAgent,
		Timeout:     30 * time.Second,
		MaxBodySize: fetcher.DefaultMaxBodySize,
	}
}

// Option configures a Grabber.
type Option func(*Config)

// WithTableClass sets the CSS class matched against table elements.
func WithTableClass(class string) Option {
	return func(c *Config) {
		c.TableClass = class
	}
}

// WithFetcher injects a custom fetcher implementation.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

// WithUserAgent sets the HTTP user agent.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithMaxBodySize caps the fetched response body in bytes.
func WithMaxBodySize(n int64) Option {
	return func(c *Config) {
		c.MaxBodySize = n
	}
}

// WithWaitForSelector sets the CSS selector a dynamic fetch waits for
// before reading the page.
func WithWaitForSelector(selector string) Option {
	return func(c *Config) {
		c.WaitForSelector = selector
	}
}

// WithWaitDuration adds a fixed wait after page load for dynamic fetches.
func WithWaitDuration(d time.Duration) Option {
	return func(c *Config) {
		c.WaitDuration = d
	}
}
