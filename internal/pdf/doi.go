// Package pdf recovers DOIs from article PDFs for entries whose export
// lacks one.
package pdf

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/bbl2rmap/bbl2rmap/internal/normalize"
	"github.com/bbl2rmap/bbl2rmap/internal/reference"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// maxScanPages is how many leading pages ExtractDOI searches.
const maxScanPages = 3

// ExtractDOI extracts a DOI from a PDF file.
// It searches the first few pages for DOI patterns.
func ExtractDOI(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pages := min(r.NumPage(), maxScanPages)
	for i := 1; i <= pages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		if doi := findDOI(text); doi != "" {
			return doi, nil
		}
	}

	return "", nil // No DOI found (not an error)
}

// PathFor returns the PDF expected for a citation key under dir.
// Key characters that cannot appear in file names are replaced with '_'.
func PathFor(dir, key string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(dir, name+".pdf")
}

// FillMissingDOIs sets the doi field of entries that have none from
// <dir>/<key>.pdf. Entries with a DOI, without a PDF, or whose PDF yields
// nothing are returned unchanged. The input slice is not modified.
func FillMissingDOIs(entries []reference.Entry, dir string, logger normalize.Logger) ([]reference.Entry, int) {
	out := make([]reference.Entry, len(entries))
	filled := 0
	for i, e := range entries {
		out[i] = e
		if doi, ok := e.Field("doi"); ok && strings.TrimSpace(doi) != "" {
			continue
		}

		path := PathFor(dir, e.Key)
		if _, err := os.Stat(path); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				logger.Warn("pdf not readable", "key", e.Key, "path", path, "error", err)
			}
			continue
		}

		doi, err := ExtractDOI(path)
		if err != nil {
			logger.Warn("pdf doi extraction failed", "key", e.Key, "path", path, "error", err)
			continue
		}
		if doi == "" {
			logger.Debug("no doi in pdf", "key", e.Key, "path", path)
			continue
		}

		logger.Info("doi from pdf", "key", e.Key, "doi", doi)
		out[i] = e.WithField("doi", doi)
		filled++
	}
	return out, filled
}

// findDOI finds a DOI in text.
func findDOI(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		// Remove trailing punctuation
		match = strings.TrimRight(match, ".,;:)")
		if isValidDOI(match) {
			return match
		}
	}
	return ""
}

// isValidDOI performs basic validation on a DOI.
func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	// Must start with 10. and have something after the /
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	if slashIdx == -1 || slashIdx >= len(doi)-1 {
		return false
	}
	return true
}
