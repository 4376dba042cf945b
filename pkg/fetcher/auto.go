package fetcher

import (
	"context"
	"strings"

	"github.com/tablegrab/tablegrab/internal/logger"
)

// AutoFetcher tries a static fetch first and retries with the headless
// browser when the page looks JavaScript-rendered. The browser only
// starts if a fallback actually happens.
type AutoFetcher struct {
	static  *StaticFetcher
	dynamic *DynamicFetcher
}

// NewAuto creates a fetcher that detects whether a page needs JavaScript
// to render its tables.
func NewAuto(static StaticConfig, dynamic DynamicConfig) (*AutoFetcher, error) {
	d, err := NewDynamic(dynamic)
	if err != nil {
		return nil, err
	}
	return &AutoFetcher{
		static:  NewStatic(static),
		dynamic: d,
	}, nil
}

// Fetch retrieves the page statically, then falls back to the browser if
// the static fetch failed or returned an unrendered app shell.
func (f *AutoFetcher) Fetch(ctx context.Context, url string, opts Options) (Content, error) {
	content, err := f.static.Fetch(ctx, url, opts)
	if err != nil {
		logger.Debug("static fetch failed, retrying with browser", "url", url, "error", err)
		return f.dynamic.Fetch(ctx, url, opts)
	}

	if needsJavaScript(content.HTML) {
		logger.Debug("page looks JavaScript-rendered, retrying with browser", "url", url)
		return f.dynamic.Fetch(ctx, url, opts)
	}

	return content, nil
}

// needsJavaScript reports whether a page without server-rendered tables
// looks like a client-side app shell. A page that already carries a table
// element never triggers a fallback.
func needsJavaScript(html string) bool {
	lower := strings.ToLower(html)

	if strings.Contains(lower, "<table") {
		return false
	}

	// Empty SPA mount points that fill in from script
	spaMarkers := []string{
		`<div id="root"></div>`,
		`<div id="app"></div>`,
		`<app-root></app-root>`,
		`<div id="__next"></div>`,
		`<div id="__nuxt"></div>`,
		`<div data-reactroot`,
	}
	for _, marker := range spaMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}

	// A noscript block warning about JavaScript
	if strings.Contains(lower, "<noscript>") {
		noscript := extractBetween(lower, "<noscript>", "</noscript>")
		for _, indicator := range []string{"javascript", "enable", "required"} {
			if strings.Contains(noscript, indicator) {
				return true
			}
		}
	}

	// A tiny tableless document is usually a shell still loading
	return len(strings.TrimSpace(lower)) < 2048
}

// extractBetween returns the content between two markers, or "" when
// either marker is missing.
func extractBetween(s, start, end string) string {
	i := strings.Index(s, start)
	if i == -1 {
		return ""
	}
	i += len(start)
	j := strings.Index(s[i:], end)
	if j == -1 {
		return ""
	}
	return s[i : i+j]
}

// Close releases the resources of both fetchers.
func (f *AutoFetcher) Close() error {
	if err := f.static.Close(); err != nil {
		return err
	}
	return f.dynamic.Close()
}

// Type returns the fetcher type.
func (f *AutoFetcher) Type() string {
	return "auto"
}
