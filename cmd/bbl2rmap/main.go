// Package main provides the bbl2rmap CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbl2rmap/bbl2rmap/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bbl2rmap",
	Short: "Convert ADS .bbl exports into researchmap paper tables",
	Long: `bbl2rmap converts a BibTeX bibliography exported from ADS into the
24-column paper table accepted by researchmap's bulk import.

Output formats: csv (default), xlsx, parquet, jsonl, sqlite.
Settings are read from flags, BBL2RMAP_* environment variables (.env is
loaded from the working directory) and ~/.config/bbl2rmap/config.yml.
Command summaries are JSON by default for scripting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
