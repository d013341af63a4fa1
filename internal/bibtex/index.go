package bibtex

import (
	"errors"
	"strings"

	"github.com/bbl2rmap/bbl2rmap/internal/reference"
)

// Index records the keys and DOIs of entries that were already exported,
// so a later conversion can emit only new papers.
type Index struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// DOIs maps normalized DOI values to citation keys
	DOIs map[string]string
}

// NewIndex builds an index over entries.
func NewIndex(entries []reference.Entry) *Index {
	idx := &Index{
		Keys: make(map[string]bool),
		DOIs: make(map[string]string),
	}
	for _, e := range entries {
		idx.Keys[e.Key] = true
		if doi, ok := e.Field("doi"); ok {
			if doi = normalizeDOI(doi); doi != "" {
				idx.DOIs[doi] = e.Key
			}
		}
	}
	return idx
}

// IndexFile builds an index from an existing .bib or .bbl file.
// Returns an empty index if the file doesn't exist.
func IndexFile(path string) (*Index, error) {
	res, err := ParseFile(path)
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return NewIndex(nil), nil
		}
		return nil, err
	}
	return NewIndex(res.Entries), nil
}

// HasEntry returns true if the entry already exists (by DOI or key).
// DOI is the primary match; citation key is the fallback if no DOI.
func (idx *Index) HasEntry(key, doi string) bool {
	if doi != "" {
		if _, exists := idx.DOIs[normalizeDOI(doi)]; exists {
			return true
		}
	}
	return idx.Keys[key]
}

// Filter returns the entries not present in the index, in order.
func (idx *Index) Filter(entries []reference.Entry) (kept []reference.Entry, skipped int) {
	for _, e := range entries {
		doi, _ := e.Field("doi")
		if idx.HasEntry(e.Key, doi) {
			skipped++
			continue
		}
		kept = append(kept, e)
	}
	return kept, skipped
}

// normalizeDOI normalizes a DOI for comparison.
// Removes braces and common prefixes like "https://doi.org/" and lowercases.
func normalizeDOI(doi string) string {
	doi = strings.NewReplacer("{", "", "}", "").Replace(doi)
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	doi = strings.TrimPrefix(doi, "DOI:")
	doi = strings.TrimPrefix(doi, "doi:")
	return strings.ToLower(doi)
}
