package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bbl2rmap/bbl2rmap/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long: `Show the configuration convert would use, after merging
environment variables, the .env file and the global config file.

Keys (config.yml):
  last_name    Your surname, used when convert gets no second argument
  max_authors  Authors listed before "et al." (default 5)
  format       Output format (default csv)
  workers      Entries converted in parallel (default 1)
  pdf_dir      Directory of <key>.pdf files used to fill missing DOIs
  log_json     Log as JSON lines instead of text`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(config.Overrides{})
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if humanOutput {
		fmt.Printf("config file: %s\n", cfg.ConfigPath)
		fmt.Printf("last_name:   %s\n", cfg.LastName)
		fmt.Printf("max_authors: %d\n", cfg.MaxAuthors)
		fmt.Printf("format:      %s\n", cfg.Format)
		fmt.Printf("workers:     %d\n", cfg.Workers)
		fmt.Printf("pdf_dir:     %s\n", cfg.PDFDir)
		fmt.Printf("log_json:    %v\n", cfg.LogJSON)
		return nil
	}
	return outputJSON(cfg)
}
