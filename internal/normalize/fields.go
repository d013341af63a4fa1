package normalize

import (
	"errors"
	"fmt"
	"strings"
)

// DOIBaseURL prefixes a DOI to form the permalink column.
const DOIBaseURL = "https://doi.org/"

var (
	// ErrMissingField is reported when an entry lacks a source field.
	ErrMissingField = errors.New("field missing")
	// ErrNotAMonth is returned by MonthNumber for unrecognized month strings.
	ErrNotAMonth = errors.New("not a month")
	// ErrPageRange is reported when a pages field has more than one dash.
	ErrPageRange = errors.New("malformed page range")
)

// Field is the result of deriving one output column.
// Fallback is set when Value is a default rather than source data; Err
// carries the reason for fallbacks that are worth a warning.
type Field struct {
	Value    string
	Fallback bool
	Err      error
}

func derived(v string) Field {
	return Field{Value: v}
}

func fallback(v string, err error) Field {
	return Field{Value: v, Fallback: true, Err: err}
}

var braceStripper = strings.NewReplacer("{", "", "}", "")

// StripBraces removes every literal grouping brace from s.
func StripBraces(s string) string {
	return braceStripper.Replace(s)
}

// Title strips braces from a title. An absent title is an empty string.
func Title(raw string, ok bool) Field {
	if !ok {
		return fallback("", ErrMissingField)
	}
	return derived(StripBraces(raw))
}

// ResolveJournal expands a journal abbreviation to its full name.
// Unknown names pass through unchanged with Fallback set and no error.
func ResolveJournal(raw string, ok bool) Field {
	if !ok {
		return fallback("", ErrMissingField)
	}
	key := strings.ReplaceAll(StripBraces(raw), `\`, "")
	if name, found := journals[key]; found {
		return derived(name)
	}
	return Field{Value: StripBraces(raw), Fallback: true}
}

// Volume renders the volume column as "vol.<n>".
func Volume(raw string, ok bool) Field {
	if !ok {
		return fallback("", ErrMissingField)
	}
	return derived("vol." + StripBraces(raw))
}

// SplitPages splits a "start-end" page range.
// A value without a dash is a start page only; more than one dash yields
// two empty columns.
func SplitPages(raw string, ok bool) (start, end Field) {
	if !ok {
		return fallback("", ErrMissingField), fallback("", ErrMissingField)
	}
	parts := strings.Split(StripBraces(raw), "-")
	switch len(parts) {
	case 1:
		return derived(parts[0]), derived("")
	case 2:
		return derived(parts[0]), derived(parts[1])
	default:
		err := fmt.Errorf("%w: %q", ErrPageRange, raw)
		return fallback("", err), fallback("", err)
	}
}

// MonthNumber resolves a month name from its first three letters,
// ignoring case and surrounding whitespace.
func MonthNumber(s string) (int, error) {
	key := []rune(strings.ToLower(strings.TrimSpace(s)))
	if len(key) > 3 {
		key = key[:3]
	}
	if m, ok := months[string(key)]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrNotAMonth, s)
}

// PublicationDate builds the YYYYMMDD column with the day fixed at 00.
// A missing or unrecognized month falls back to December (YYYY1200).
// Without a year the column is empty.
func PublicationDate(year string, yearOK bool, month string, monthOK bool) Field {
	if !yearOK {
		return fallback("", fmt.Errorf("year: %w", ErrMissingField))
	}
	year = StripBraces(year)
	if !monthOK {
		return fallback(year+"1200", fmt.Errorf("month: %w", ErrMissingField))
	}
	m, err := MonthNumber(StripBraces(month))
	if err != nil {
		return fallback(year+"1200", err)
	}
	return derived(fmt.Sprintf("%s%02d00", year, m))
}

// DOI returns the DOI column and the matching doi.org permalink.
// Both are empty when the entry has no DOI.
func DOI(raw string, ok bool) (doi, permalink Field) {
	if ok {
		raw = strings.TrimSpace(StripBraces(raw))
	}
	if !ok || raw == "" {
		return fallback("", ErrMissingField), fallback("", ErrMissingField)
	}
	return derived(raw), derived(DOIBaseURL + raw)
}

// ADSURL strips braces from the adsurl field.
func ADSURL(raw string, ok bool) Field {
	if !ok {
		return fallback("", ErrMissingField)
	}
	return derived(StripBraces(raw))
}
