package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tablegrab/tablegrab/internal/logger"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the matching tables on a page",
	Long: `Fetch a page and report the shape of every matching table without
extracting anything. Use it to pick the --table index for export.

Examples:
  tablegrab tables -u "https://en.wikipedia.org/wiki/World_population"

  # Pages that build their tables with JavaScript need the dynamic fetcher
  tablegrab tables -u "https://example.com/stats" --fetch-mode dynamic`,
	RunE: runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)

	flags := tablesCmd.Flags()
	flags.StringP("url", "u", "", "URL of the page to inspect (required)")
	addFetchFlags(flags)

	_ = tablesCmd.MarkFlagRequired("url")
}

func runTables(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	url, _ := cmd.Flags().GetString("url")
	fetchMode, _ := cmd.Flags().GetString("fetch-mode")
	tableClass, _ := cmd.Flags().GetString("table-class")

	g, err := newGrabber(cmd, fetchMode, tableClass)
	if err != nil {
		return err
	}
	defer func() { _ = g.Close() }()

	page, err := g.Tables(ctx, url)
	if err != nil {
		logger.Error("failed to list tables", "url", url, "error", err)
		return err
	}

	if page.Title != "" {
		fmt.Println(page.Title)
	}
	fmt.Printf("%d matching table(s) on %s\n", len(page.Tables), page.URL)
	for _, t := range page.Tables {
		fmt.Printf("  %d: %d rows x %d columns\n", t.Index, t.Rows, t.Columns)
	}
	return nil
}
