package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bbl2rmap/bbl2rmap/internal/bibtex"
	"github.com/bbl2rmap/bbl2rmap/internal/config"
	"github.com/bbl2rmap/bbl2rmap/internal/export"
	"github.com/bbl2rmap/bbl2rmap/internal/logging"
	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
	"github.com/bbl2rmap/bbl2rmap/internal/pdf"
)

var (
	convertFormat       string
	convertOutput       string
	convertMaxAuthors   int
	convertWorkers      int
	convertPDFDir       string
	convertSkipExisting string
	convertDryRun       bool
)

func init() {
	convertCmd.Flags().StringVar(&convertFormat, "format", config.DefaultFormat, "Output format: csv, xlsx, parquet, jsonl, sqlite")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output path (default: input path with the format extension)")
	convertCmd.Flags().IntVar(&convertMaxAuthors, "max-authors", config.DefaultMaxAuthors, "Authors listed before \"et al.\"")
	convertCmd.Flags().IntVar(&convertWorkers, "workers", config.DefaultWorkers, "Entries converted in parallel")
	convertCmd.Flags().StringVar(&convertPDFDir, "pdf-dir", "", "Directory of <key>.pdf files used to fill missing DOIs")
	convertCmd.Flags().StringVar(&convertSkipExisting, "skip-existing", "", "BibTeX file of already exported papers to leave out")
	convertCmd.Flags().BoolVar(&convertDryRun, "dry-run", false, "Write rows as JSON lines to stdout instead of a file")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <bblfile> [last_name]",
	Short: "Convert a .bbl export into a researchmap paper table",
	Long: `Convert a BibTeX (.bbl) export from ADS into a researchmap paper table.

The last name marks your position in the author list: when it falls beyond
the listed authors, "(Name as N-th author out of M authors)," is appended.
It may also come from BBL2RMAP_LAST_NAME or last_name in the config file.

Examples:
  bbl2rmap convert enoto_refereed_journal.bbl Enoto
  bbl2rmap convert export.bbl Enoto --format xlsx -o papers.xlsx
  bbl2rmap convert export.bbl --skip-existing uploaded.bib --dry-run`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConvert,
}

// convertOptions are the inputs of one conversion.
type convertOptions struct {
	Input        string
	Output       string
	Format       export.Format
	LastName     string
	MaxAuthors   int
	Workers      int
	PDFDir       string
	SkipExisting string
	DryRun       bool
}

func runConvert(cmd *cobra.Command, args []string) error {
	var overrides config.Overrides
	if len(args) > 1 {
		overrides.LastName = &args[1]
	}
	if cmd.Flags().Changed("format") {
		overrides.Format = &convertFormat
	}
	if cmd.Flags().Changed("max-authors") {
		overrides.MaxAuthors = &convertMaxAuthors
	}
	if cmd.Flags().Changed("workers") {
		overrides.Workers = &convertWorkers
	}
	if cmd.Flags().Changed("pdf-dir") {
		overrides.PDFDir = &convertPDFDir
	}

	cfg, err := config.Resolve(overrides)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	if cfg.LastName == "" {
		exitWithError(ExitConfigError, "%s", config.HelpfulConfigMessage())
	}
	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}

	logger, err := logging.New(cfg.LogJSON)
	if err != nil {
		exitWithError(ExitError, "creating logger: %v", err)
	}
	defer logger.Close()

	opts := convertOptions{
		Input:        args[0],
		Output:       convertOutput,
		Format:       format,
		LastName:     cfg.LastName,
		MaxAuthors:   cfg.MaxAuthors,
		Workers:      cfg.Workers,
		PDFDir:       cfg.PDFDir,
		SkipExisting: convertSkipExisting,
		DryRun:       convertDryRun,
	}

	resp, err := convertFile(cmd.Context(), opts, logger, os.Stdout)
	if err != nil {
		logger.Close()
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if opts.DryRun {
		logger.Info("dry run", "entries", resp.Entries, "rows", resp.Rows)
		return nil
	}
	if humanOutput {
		printConvertHuman(resp)
		return nil
	}
	return outputJSON(resp)
}

// convertFile runs the pipeline: parse, filter, enrich, normalize, write.
// With DryRun set, rows go to stdout as JSON lines and no file is created.
func convertFile(ctx context.Context, opts convertOptions, logger normalize.Logger, stdout io.Writer) (*ConvertResponse, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("input file", "path", opts.Input)
	res, err := bibtex.ParseFile(opts.Input)
	if err != nil {
		return nil, err
	}
	entries := res.Entries
	logger.Info("number of entries", "count", len(entries))

	resp := &ConvertResponse{
		Input:   opts.Input,
		Format:  string(opts.Format),
		Entries: len(entries),
		DryRun:  opts.DryRun,
	}
	for _, w := range res.Warnings {
		logger.Warn("bibtex", "error", w)
		resp.Warnings = append(resp.Warnings, w.Error())
	}

	if opts.SkipExisting != "" {
		idx, err := bibtex.IndexFile(opts.SkipExisting)
		if err != nil {
			return nil, fmt.Errorf("indexing %s: %w", opts.SkipExisting, err)
		}
		entries, resp.Skipped = idx.Filter(entries)
		logger.Info("skipped existing entries", "count", resp.Skipped, "file", opts.SkipExisting)
	}

	if opts.PDFDir != "" {
		entries, resp.PDFDOIs = pdf.FillMissingDOIs(entries, opts.PDFDir, logger)
	}

	nz := normalize.New(opts.LastName,
		normalize.WithMaxAuthors(opts.MaxAuthors),
		normalize.WithLogger(logger),
	)
	rows, report, err := nz.NormalizeAll(ctx, entries, opts.Workers)
	if err != nil {
		return nil, err
	}
	resp.Rows = report.Rows
	resp.Fallbacks = report.Fallbacks

	if opts.DryRun {
		if err := export.NewJSONLWriter(stdout).Write(rows); err != nil {
			return nil, err
		}
		return resp, nil
	}

	resp.Output = opts.Output
	if resp.Output == "" {
		resp.Output = export.DefaultOutputPath(opts.Input, opts.Format)
	}
	if err := export.WriteFile(resp.Output, opts.Format, rows); err != nil {
		return nil, err
	}
	logger.Info("wrote output", "path", resp.Output, "rows", resp.Rows)
	return resp, nil
}

func printConvertHuman(resp *ConvertResponse) {
	outputHuman("Converted %d entries from %s\n", resp.Entries, resp.Input)
	if resp.Skipped > 0 {
		outputHuman("  Skipped (already exported): %d\n", resp.Skipped)
	}
	if resp.PDFDOIs > 0 {
		outputHuman("  DOIs from PDFs: %d\n", resp.PDFDOIs)
	}
	outputHuman("  Rows written: %d (%s)\n", resp.Rows, resp.Format)
	outputHuman("  Output: %s\n", resp.Output)

	if len(resp.Fallbacks) > 0 {
		fields := make([]string, 0, len(resp.Fallbacks))
		for f := range resp.Fallbacks {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		outputHuman("  Fields left at defaults:\n")
		for _, f := range fields {
			outputHuman("    %-8s %d\n", f, resp.Fallbacks[f])
		}
	}
	for _, w := range resp.Warnings {
		outputHuman("  Warning: %s\n", w)
	}
}
