package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bbl2rmap/bbl2rmap/internal/bibtex"
	"github.com/bbl2rmap/bbl2rmap/internal/config"
	"github.com/bbl2rmap/bbl2rmap/internal/export"
	"github.com/bbl2rmap/bbl2rmap/internal/logging"
)

const sampleBBL = `@ARTICLE{2021Sci...372..187E,
       author = {{Enoto}, Teruaki and {Kisaka}, Shota and {Shibata}, Shinpei},
        title = "{Enhanced x-ray emission coinciding with giant radio pulses from the Crab Pulsar}",
      journal = {Science},
         year = 2021,
        month = apr,
       volume = {372},
        pages = {187-190},
          doi = {10.1126/science.abd4659},
       adsurl = {https://ui.adsabs.harvard.edu/abs/2021Sci...372..187E},
}

@ARTICLE{2019PASJ...71...88X,
       author = {{Xu}, Y. and {Alpha}, A. and {Beta}, B. and {Gamma}, G. and {Delta}, D. and {Enoto}, T.},
        title = "{A long paper}",
      journal = {\pasj},
         year = 2019,
       volume = {71},
        pages = {88},
       adsurl = {https://ui.adsabs.harvard.edu/abs/2019PASJ...71...88X},
}
`

func writeBBL(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "enoto_refereed_journal.bbl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testOptions(input string) convertOptions {
	return convertOptions{
		Input:      input,
		Format:     export.FormatCSV,
		LastName:   "Enoto",
		MaxAuthors: config.DefaultMaxAuthors,
		Workers:    1,
	}
}

func TestConvertFile_CSV(t *testing.T) {
	input := writeBBL(t, sampleBBL)

	resp, err := convertFile(context.Background(), testOptions(input), logging.Nop{}, nil)
	if err != nil {
		t.Fatalf("convertFile() error = %v", err)
	}

	wantOutput := strings.TrimSuffix(input, ".bbl") + ".csv"
	if resp.Output != wantOutput {
		t.Errorf("Output = %q, want %q", resp.Output, wantOutput)
	}
	if resp.Entries != 2 || resp.Rows != 2 {
		t.Errorf("Entries, Rows = %d, %d, want 2, 2", resp.Entries, resp.Rows)
	}
	// Second entry: no month, no doi.
	if diff := cmp.Diff(map[string]int{"date": 1, "doi": 1}, resp.Fallbacks); diff != "" {
		t.Errorf("Fallbacks mismatch (-want +got):\n%s", diff)
	}

	f, err := os.Open(resp.Output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := export.ReadCSV(f)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	first := rows[0]
	if first.AuthorEN != "Enoto T., Kisaka S., and Shibata S., " {
		t.Errorf("AuthorEN = %q", first.AuthorEN)
	}
	if first.PublicationDate != "20210400" {
		t.Errorf("PublicationDate = %q, want 20210400", first.PublicationDate)
	}
	if first.Permalink != "https://doi.org/10.1126/science.abd4659" {
		t.Errorf("Permalink = %q", first.Permalink)
	}

	second := rows[1]
	wantAuthors := "Xu Y., Alpha A., Beta B., Gamma G., and Delta D. et al., (Enoto T. as 6-th author out of 6 authors),"
	if second.AuthorEN != wantAuthors {
		t.Errorf("AuthorEN = %q, want %q", second.AuthorEN, wantAuthors)
	}
	if second.JournalEN != "Publications of the Astronomical Society of Japan" {
		t.Errorf("JournalEN = %q", second.JournalEN)
	}
	if second.PublicationDate != "20191200" {
		t.Errorf("PublicationDate = %q, want 20191200", second.PublicationDate)
	}
	if second.StartPage != "88" || second.EndPage != "" {
		t.Errorf("pages = %q-%q, want 88-", second.StartPage, second.EndPage)
	}
}

func TestConvertFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(filepath.Join(dir, "missing.bbl"))

	_, err := convertFile(context.Background(), opts, logging.Nop{}, nil)
	if !errors.Is(err, bibtex.ErrNotExist) {
		t.Fatalf("convertFile() error = %v, want ErrNotExist", err)
	}
	if code := exitCodeFor(err); code != ExitConfigError {
		t.Errorf("exitCodeFor() = %d, want %d", code, ExitConfigError)
	}

	// Nothing written.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory has %d files, want 0", len(entries))
	}
}

func TestConvertFile_SyntaxError(t *testing.T) {
	input := writeBBL(t, "@ARTICLE{broken,\n  title = {unterminated\n")

	_, err := convertFile(context.Background(), testOptions(input), logging.Nop{}, nil)
	if err == nil {
		t.Fatal("convertFile() should fail on malformed input")
	}
	if code := exitCodeFor(err); code != ExitDataError {
		t.Errorf("exitCodeFor(%v) = %d, want %d", err, code, ExitDataError)
	}
}

func TestConvertFile_DryRun(t *testing.T) {
	input := writeBBL(t, sampleBBL)
	opts := testOptions(input)
	opts.DryRun = true

	var stdout bytes.Buffer
	resp, err := convertFile(context.Background(), opts, logging.Nop{}, &stdout)
	if err != nil {
		t.Fatalf("convertFile() error = %v", err)
	}
	if resp.Output != "" {
		t.Errorf("Output = %q, want empty for dry run", resp.Output)
	}
	if n := strings.Count(stdout.String(), "\n"); n != 2 {
		t.Errorf("dry run printed %d lines, want 2", n)
	}
	if _, err := os.Stat(export.DefaultOutputPath(input, export.FormatCSV)); !os.IsNotExist(err) {
		t.Errorf("dry run created an output file (stat err = %v)", err)
	}
}

func TestConvertFile_SkipExisting(t *testing.T) {
	input := writeBBL(t, sampleBBL)
	existing := filepath.Join(t.TempDir(), "uploaded.bib")
	bib := "@article{other, doi = {10.1126/SCIENCE.ABD4659}}\n"
	if err := os.WriteFile(existing, []byte(bib), 0644); err != nil {
		t.Fatal(err)
	}

	opts := testOptions(input)
	opts.SkipExisting = existing
	opts.Output = filepath.Join(t.TempDir(), "out", "new.jsonl")
	opts.Format = export.FormatJSONL

	resp, err := convertFile(context.Background(), opts, logging.Nop{}, nil)
	if err != nil {
		t.Fatalf("convertFile() error = %v", err)
	}
	if resp.Entries != 2 || resp.Skipped != 1 || resp.Rows != 1 {
		t.Errorf("Entries, Skipped, Rows = %d, %d, %d, want 2, 1, 1", resp.Entries, resp.Skipped, resp.Rows)
	}

	data, err := os.ReadFile(opts.Output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "A long paper") || strings.Contains(string(data), "Crab Pulsar") {
		t.Errorf("unexpected output rows:\n%s", data)
	}
}

func TestConvertFile_ParallelMatchesSequential(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "@article{key%02d, title = {Paper %d}, year = 2020, month = %s}\n", i, i, []string{"jan", "jun", "dec"}[i%3])
	}
	input := writeBBL(t, b.String())

	read := func(workers int) string {
		opts := testOptions(input)
		opts.Workers = workers
		opts.Output = filepath.Join(t.TempDir(), "out.csv")
		if _, err := convertFile(context.Background(), opts, logging.Nop{}, nil); err != nil {
			t.Fatalf("convertFile(workers=%d) error = %v", workers, err)
		}
		data, err := os.ReadFile(opts.Output)
		if err != nil {
			t.Fatal(err)
		}
		return string(data)
	}

	if diff := cmp.Diff(read(1), read(8)); diff != "" {
		t.Errorf("parallel output differs (-sequential +parallel):\n%s", diff)
	}
}

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"missing input", fmt.Errorf("wrap: %w", bibtex.ErrNotExist), ExitConfigError},
		{"unknown format", export.ErrUnknownFormat, ExitConfigError},
		{"max authors", config.ErrInvalidMaxAuthors, ExitConfigError},
		{"syntax", &bibtex.SyntaxError{Line: 3, Msg: "bad"}, ExitDataError},
		{"other", errors.New("disk full"), ExitError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}
