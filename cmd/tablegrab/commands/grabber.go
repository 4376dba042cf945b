package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tablegrab/tablegrab/internal/logger"
	"github.com/tablegrab/tablegrab/pkg/fetcher"
	"github.com/tablegrab/tablegrab/pkg/tablegrab"
	"github.com/tablegrab/tablegrab/pkg/wikitable"
)

// addFetchFlags registers the flags shared by every command that fetches a
// page.
func addFetchFlags(flags *pflag.FlagSet) {
	flags.String("table-class", wikitable.DefaultTableClass, "CSS class matched against table elements")
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic, auto")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("user-agent", "", "override the HTTP user agent")
	flags.String("max-body-size", "", "max fetched page size (e.g. 512KB, 10MB, default 10MB)")
	flags.String("wait-for", "", "CSS selector a dynamic fetch waits for before reading the page")
	flags.Duration("wait", 0, "extra wait after page load for dynamic fetches")
}

// newGrabber builds a Grabber from the shared fetch flags. The fetch mode
// and table class are passed in because a job file can supply them too.
func newGrabber(cmd *cobra.Command, mode, tableClass string) (*tablegrab.Grabber, error) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	userAgent, _ := cmd.Flags().GetString("user-agent")
	waitFor, _ := cmd.Flags().GetString("wait-for")
	wait, _ := cmd.Flags().GetDuration("wait")

	// Max body size accepts human-readable values (0 or empty means default)
	maxBodyStr, _ := cmd.Flags().GetString("max-body-size")
	var maxBody int64
	if s := strings.TrimSpace(maxBodyStr); s != "" && s != "0" {
		bytes, err := humanize.ParseBytes(s)
		if err != nil {
			logger.Error("invalid max-body-size", "value", maxBodyStr, "error", err)
			return nil, err
		}
		maxBody = int64(bytes)
	}

	opts := []tablegrab.Option{
		tablegrab.WithTableClass(tableClass),
		tablegrab.WithTimeout(timeout),
	}
	if userAgent != "" {
		opts = append(opts, tablegrab.WithUserAgent(userAgent))
	}
	if maxBody > 0 {
		opts = append(opts, tablegrab.WithMaxBodySize(maxBody))
	}
	if waitFor != "" {
		opts = append(opts, tablegrab.WithWaitForSelector(waitFor))
	}
	if wait > 0 {
		opts = append(opts, tablegrab.WithWaitDuration(wait))
	}

	switch mode {
	case "dynamic":
		dyn, err := fetcher.NewDynamic(fetcher.DynamicConfig{
			UserAgent:   userAgent,
			Timeout:     timeout,
			MaxBodySize: maxBody,
		})
		if err != nil {
			logger.Error("failed to create dynamic fetcher", "error", err)
			return nil, err
		}
		opts = append(opts, tablegrab.WithFetcher(dyn))
	case "auto":
		auto, err := fetcher.NewAuto(
			fetcher.StaticConfig{UserAgent: userAgent, Timeout: timeout, MaxBodySize: maxBody},
			fetcher.DynamicConfig{UserAgent: userAgent, Timeout: timeout, MaxBodySize: maxBody},
		)
		if err != nil {
			logger.Error("failed to create auto fetcher", "error", err)
			return nil, err
		}
		opts = append(opts, tablegrab.WithFetcher(auto))
	case "static", "":
		// New builds the default static fetcher itself
	default:
		return nil, fmt.Errorf("unknown fetch mode: %s (use 'static', 'dynamic', or 'auto')", mode)
	}

	return tablegrab.New(opts...), nil
}
