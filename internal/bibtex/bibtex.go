// Package bibtex reads BibTeX bibliography files such as the .bbl exports
// produced by the ADS search interface.
package bibtex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bbl2rmap/bbl2rmap/internal/reference"
)

// ErrNotExist is returned by ParseFile when the input file is missing.
var ErrNotExist = errors.New("input bbl file does not exist")

// personFields are split into reference.Person lists instead of kept as text.
var personFields = map[string]bool{
	reference.RoleAuthor: true,
	reference.RoleEditor: true,
}

// rawFields keep their LaTeX untouched.
var rawFields = map[string]bool{
	"adsurl": true,
	"url":    true,
}

// predefined month macros, as in the standard BibTeX styles.
var monthMacros = map[string]string{
	"jan": "January",
	"feb": "February",
	"mar": "March",
	"apr": "April",
	"may": "May",
	"jun": "June",
	"jul": "July",
	"aug": "August",
	"sep": "September",
	"oct": "October",
	"nov": "November",
	"dec": "December",
}

// SyntaxError reports malformed BibTeX that stops parsing.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Result holds parsed entries plus non-fatal problems, such as references
// to undefined @string macros.
type Result struct {
	Entries  []reference.Entry
	Warnings []error
}

// ParseFile parses the BibTeX file at path.
// A missing file is reported as ErrNotExist before anything is read.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads BibTeX from r. Entries are returned in source order.
func Parse(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibtex: %w", err)
	}

	p := &parser{
		src:    string(data),
		line:   1,
		macros: make(map[string]string),
	}
	for k, v := range monthMacros {
		p.macros[k] = v
	}

	if err := p.parse(); err != nil {
		return nil, err
	}
	return &Result{Entries: p.entries, Warnings: p.warnings}, nil
}

// newEntry converts raw field values into a reference.Entry.
func newEntry(typ, key string, raw [][2]string) reference.Entry {
	e := reference.Entry{
		Key:    key,
		Type:   typ,
		Fields: make(map[string]string, len(raw)),
	}
	for _, kv := range raw {
		name, value := kv[0], collapseSpace(kv[1])
		if personFields[name] {
			if e.Persons == nil {
				e.Persons = make(map[string][]reference.Person)
			}
			e.Persons[name] = ParseNames(DecodeLaTeX(value))
		}
		if !rawFields[name] {
			value = DecodeLaTeX(value)
		}
		e.Fields[name] = value
	}
	return e
}

// collapseSpace folds runs of whitespace, including newlines, into one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
