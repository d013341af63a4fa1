package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/bbl2rmap/bbl2rmap/internal/bibtex"
	"github.com/bbl2rmap/bbl2rmap/internal/config"
	"github.com/bbl2rmap/bbl2rmap/internal/export"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// exitCodeFor maps an error to the process exit code.
func exitCodeFor(err error) int {
	var syntaxErr *bibtex.SyntaxError
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, bibtex.ErrNotExist),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, config.ErrInvalidMaxAuthors),
		errors.Is(err, config.ErrInvalidWorkers):
		return ExitConfigError
	case errors.As(err, &syntaxErr):
		return ExitDataError
	default:
		return ExitError
	}
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ConvertResponse summarizes a conversion.
type ConvertResponse struct {
	Input     string         `json:"input"`
	Output    string         `json:"output,omitempty"`
	Format    string         `json:"format"`
	Entries   int            `json:"entries"`
	Skipped   int            `json:"skipped,omitempty"`
	PDFDOIs   int            `json:"pdf_dois,omitempty"`
	Rows      int            `json:"rows"`
	Fallbacks map[string]int `json:"fallbacks"`
	Warnings  []string       `json:"warnings,omitempty"`
	DryRun    bool           `json:"dry_run,omitempty"`
}

// JournalResponse is one row of the journal table.
type JournalResponse struct {
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
}
