package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bbl2rmap/bbl2rmap/internal/reference"
)

type countingLogger struct {
	warns int
}

func (l *countingLogger) Debug(string, ...interface{}) {}
func (l *countingLogger) Info(string, ...interface{})  {}
func (l *countingLogger) Warn(string, ...interface{})  { l.warns++ }
func (l *countingLogger) Error(string, ...interface{}) {}

func TestFindDOI(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "DOI: 10.3847/1538-4357/ab1234 received", "10.3847/1538-4357/ab1234"},
		{"trailing punctuation", "see (doi 10.1126/science.abd4659).", "10.1126/science.abd4659"},
		{"url form", "https://doi.org/10.1093/pasj/psab001", "10.1093/pasj/psab001"},
		{"first of several", "10.1038/nature01234 and 10.1103/PhysRevLett.1", "10.1038/nature01234"},
		{"none", "no identifiers on this page", ""},
		{"short registrant", "10.12/abc", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := findDOI(tt.text); got != tt.want {
				t.Errorf("findDOI(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsValidDOI(t *testing.T) {
	tests := []struct {
		doi  string
		want bool
	}{
		{"10.1126/science.abd4659", true},
		{"10.1126/", false},
		{"11.1126/science", false},
		{"10.1/x", false},
	}
	for _, tt := range tests {
		if got := isValidDOI(tt.doi); got != tt.want {
			t.Errorf("isValidDOI(%q) = %v, want %v", tt.doi, got, tt.want)
		}
	}
}

func TestPathFor(t *testing.T) {
	if got, want := PathFor("pdfs", "2021Sci...372..187E"), filepath.Join("pdfs", "2021Sci...372..187E.pdf"); got != want {
		t.Errorf("PathFor() = %q, want %q", got, want)
	}
	if got, want := PathFor("pdfs", "a/b:c"), filepath.Join("pdfs", "a_b_c.pdf"); got != want {
		t.Errorf("PathFor() = %q, want %q", got, want)
	}
}

func TestFillMissingDOIs(t *testing.T) {
	dir := t.TempDir()
	// Not a PDF: extraction fails and the entry is left alone.
	if err := os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	entries := []reference.Entry{
		{Key: "hasdoi", Fields: map[string]string{"doi": "10.1126/science.abd4659"}},
		{Key: "nopdf", Fields: map[string]string{"title": "No PDF"}},
		{Key: "broken", Fields: map[string]string{"title": "Broken PDF"}},
	}
	logger := &countingLogger{}

	got, filled := FillMissingDOIs(entries, dir, logger)
	if filled != 0 {
		t.Errorf("filled = %d, want 0", filled)
	}
	if len(got) != len(entries) {
		t.Fatalf("len = %d, want %d", len(got), len(entries))
	}
	for i := range entries {
		if got[i].Key != entries[i].Key {
			t.Errorf("entry %d key = %q, want %q", i, got[i].Key, entries[i].Key)
		}
		if _, ok := got[i].Fields["doi"]; ok != (i == 0) {
			t.Errorf("entry %q has doi = %v", got[i].Key, ok)
		}
	}
	if logger.warns != 1 {
		t.Errorf("warnings = %d, want 1 (broken.pdf)", logger.warns)
	}
}
