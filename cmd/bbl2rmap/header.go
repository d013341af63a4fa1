package main

import (
	"encoding/csv"
	"os"

	"github.com/spf13/cobra"

	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
)

func init() {
	rootCmd.AddCommand(headerCmd)
}

var headerCmd = &cobra.Command{
	Use:   "header",
	Short: "Print the researchmap paper table header",
	Long: `Print the 24 column names of the researchmap paper table.

JSON output is an array; --human prints one CSV line.`,
	Args: cobra.NoArgs,
	RunE: runHeader,
}

func runHeader(cmd *cobra.Command, args []string) error {
	if humanOutput {
		w := csv.NewWriter(os.Stdout)
		w.Write(normalize.Header())
		w.Flush()
		return w.Error()
	}
	return outputJSON(normalize.Header())
}
