// Package commands implements the CLI commands for tablegrab.
package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tablegrab/tablegrab/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tablegrab",
	Short: "Scrape HTML tables into clean CSV or XLSX files",
	Long: `Tablegrab pulls tables out of web pages, Wikipedia especially, and
turns them into clean datasets ready for a spreadsheet.

Pick a table, choose where its header comes from, drop the columns you
do not need, coerce the numeric ones, patch stray cells, and export.

Examples:
  # See what tables a page has before grabbing one
  tablegrab tables -u "https://en.wikipedia.org/wiki/World_population"

  # Export the first table, cleaning the Population column
  tablegrab export -u "https://en.wikipedia.org/wiki/World_population" \
      --numeric "Population" -o population.csv

  # Table 3, custom header labels, rows 2 through 50, XLSX output
  tablegrab export -u "https://en.wikipedia.org/wiki/World_population" \
      --table 3 --custom-headers "Rank, Country, Population" \
      --rows 2:50 --format xlsx -o population.xlsx

  # Re-run a saved job file
  tablegrab export --job population.yaml`,
	Version: version.String(),
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.tablegrab.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".tablegrab")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("TABLEGRAB")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
