package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
)

func init() {
	rootCmd.AddCommand(journalsCmd)
}

var journalsCmd = &cobra.Command{
	Use:   "journals [abbrev]",
	Short: "List or look up journal abbreviations",
	Long: `List the journal abbreviation table, or look up one abbreviation.

Lookups strip braces and backslashes like convert does, so "\apj" and
"{\apj}" both resolve.

Examples:
  bbl2rmap journals
  bbl2rmap journals apjl --human`,
	Args: cobra.MaximumNArgs(1),
	RunE: runJournals,
}

func runJournals(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		resp, ok := lookupJournal(args[0])
		if !ok {
			exitWithError(ExitError, "unknown journal abbreviation: %s", args[0])
		}
		if humanOutput {
			fmt.Printf("%s\t%s\n", resp.Abbreviation, resp.Name)
			return nil
		}
		return outputJSON(resp)
	}

	journals := listJournals()
	if humanOutput {
		for _, j := range journals {
			fmt.Printf("%-10s %s\n", j.Abbreviation, j.Name)
		}
		return nil
	}
	return outputJSON(journals)
}

// lookupJournal resolves an abbreviation as it would appear in a journal field.
func lookupJournal(abbrev string) (JournalResponse, bool) {
	f := normalize.ResolveJournal(abbrev, true)
	if f.Fallback {
		return JournalResponse{}, false
	}
	return JournalResponse{Abbreviation: strings.ReplaceAll(normalize.StripBraces(abbrev), `\`, ""), Name: f.Value}, true
}

// listJournals returns the table sorted by abbreviation.
func listJournals() []JournalResponse {
	abbrevs := normalize.JournalAbbreviations()
	journals := make([]JournalResponse, 0, len(abbrevs))
	for _, a := range abbrevs {
		name, _ := normalize.JournalName(a)
		journals = append(journals, JournalResponse{Abbreviation: a, Name: name})
	}
	return journals
}
