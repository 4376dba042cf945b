package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// Compile-time interface compliance checks.
var (
	_ Fetcher = (*StaticFetcher)(nil)
	_ Fetcher = (*DynamicFetcher)(nil)
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Sample - Testpedia</title></head>
<body><table class="wikitable"><tr><th>A</th></tr></table></body>
</html>`

// --- NewStatic Tests ---

func TestNewStatic_Defaults(t *testing.T) {
	f := NewStatic(StaticConfig{})

	if f.config.UserAgent == "" {
		t.Error("default user agent should be set")
	}
	if f.config.Timeout != 30*time.Second {
		t.Errorf("default timeout = %v, want 30s", f.config.Timeout)
	}
	if f.config.MaxBodySize != DefaultMaxBodySize {
		t.Errorf("default max body size = %d, want %d", f.config.MaxBodySize, DefaultMaxBodySize)
	}
}

func TestNewStatic_ConfigOverrides(t *testing.T) {
	f := NewStatic(StaticConfig{UserAgent: "custom-agent", Timeout: time.Second, MaxBodySize: 1024})

	if f.config.UserAgent != "custom-agent" {
		t.Errorf("user agent = %q, want custom-agent", f.config.UserAgent)
	}
	if f.config.Timeout != time.Second {
		t.Errorf("timeout = %v, want 1s", f.config.Timeout)
	}
	if f.config.MaxBodySize != 1024 {
		t.Errorf("max body size = %d, want 1024", f.config.MaxBodySize)
	}
}

// --- Fetch Tests ---

func TestStaticFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(samplePage)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{})
	defer func() {
		if err := f.Close(); err != nil {
			t.Errorf("Close() error = %v, want nil", err)
		}
	}()

	content, err := f.Fetch(context.Background(), srv.URL, Options{})
	if err != nil {
		t.Fatalf("Fetch() error = %v, want nil", err)
	}

	if content.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", content.StatusCode)
	}
	if content.Title != "Sample - Testpedia" {
		t.Errorf("Title = %q, want %q", content.Title, "Sample - Testpedia")
	}
	if !strings.Contains(content.HTML, "wikitable") {
		t.Error("HTML should contain the page body")
	}
	if !strings.Contains(content.ContentType, "text/html") {
		t.Errorf("ContentType = %q, want text/html", content.ContentType)
	}
	if content.URL != srv.URL {
		t.Errorf("URL = %q, want %q", content.URL, srv.URL)
	}
	if content.FetchedAt.IsZero() {
		t.Error("FetchedAt should be set")
	}
}

func TestStaticFetcher_Fetch_UserAgentAndHeaders(t *testing.T) {
	var gotUA, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotHeader = r.Header.Get("X-Requested-With")
		if _, err := w.Write([]byte(samplePage)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{})
	_, err := f.Fetch(context.Background(), srv.URL, Options{
		UserAgent: "tablegrab-test/1.0",
		Headers:   map[string]string{"X-Requested-With": "tablegrab"},
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v, want nil", err)
	}

	if gotUA != "tablegrab-test/1.0" {
		t.Errorf("request user agent = %q, want override", gotUA)
	}
	if gotHeader != "tablegrab" {
		t.Errorf("custom header = %q, want tablegrab", gotHeader)
	}
}

func TestStaticFetcher_Fetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{})
	_, err := f.Fetch(context.Background(), srv.URL, Options{})
	if err == nil {
		t.Fatal("Fetch() error = nil, want error for 404 response")
	}
}

func TestStaticFetcher_Fetch_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(strings.Repeat("x", 2048))); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer srv.Close()

	f := NewStatic(StaticConfig{MaxBodySize: 1024})
	_, err := f.Fetch(context.Background(), srv.URL, Options{})
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("Fetch() error = %v, want ErrBodyTooLarge", err)
	}
}

func TestStaticFetcher_Fetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewStatic(StaticConfig{})
	_, err := f.Fetch(ctx, "http://127.0.0.1:0/", Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

// --- Type Tests ---

func TestFetcherTypes(t *testing.T) {
	if got := NewStatic(StaticConfig{}).Type(); got != "static" {
		t.Errorf("Type() = %q, want static", got)
	}
}

// --- coalesce Tests ---

func TestCoalesce(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"first_non_empty", []string{"", "b", "c"}, "b"},
		{"all_empty", []string{"", ""}, ""},
		{"first_wins", []string{"a", "b"}, "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coalesce(tt.values...); got != tt.want {
				t.Errorf("coalesce(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
