package normalize

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bbl2rmap/bbl2rmap/internal/reference"
)

// FormatName formats a person as "Last F." using the initial of the first
// given name, or just "Last" when no given name is available.
func FormatName(p reference.Person) string {
	last := StripBraces(p.Last)
	if len(p.First) == 0 {
		return last
	}
	r, _ := utf8.DecodeRuneInString(StripBraces(p.First[0]))
	if r == utf8.RuneError {
		return last
	}
	return fmt.Sprintf("%s %c.", last, unicode.ToUpper(r))
}

// AuthorOrder returns the 1-based position of the first person whose last
// name contains surname. An empty surname matches nobody.
func AuthorOrder(persons []reference.Person, surname string) (int, bool) {
	if surname == "" {
		return 0, false
	}
	for i, p := range persons {
		if strings.Contains(StripBraces(p.Last), surname) {
			return i + 1, true
		}
	}
	return 0, false
}

// FormatAuthorList renders the author column.
//
// Up to maxListed authors are listed as "A, B, and C, ". Longer lists show
// the first maxListed authors followed by "et al., ", and if the subject
// was cut off a "(Name as N-th author out of M authors)," note is appended.
func FormatAuthorList(persons []reference.Person, surname string, maxListed int) string {
	n := len(persons)
	if n == 0 {
		return ""
	}
	if maxListed < 1 {
		maxListed = DefaultMaxAuthors
	}

	var b strings.Builder
	if n <= maxListed {
		for _, p := range persons[:n-1] {
			b.WriteString(FormatName(p) + ", ")
		}
		b.WriteString("and " + FormatName(persons[n-1]) + ", ")
	} else {
		for _, p := range persons[:maxListed-1] {
			b.WriteString(FormatName(p) + ", ")
		}
		b.WriteString("and " + FormatName(persons[maxListed-1]) + " ")
		b.WriteString("et al., ")
	}

	if order, ok := AuthorOrder(persons, surname); ok && order > maxListed {
		fmt.Fprintf(&b, "(%s as %d-th author out of %d authors),",
			FormatName(persons[order-1]), order, n)
	}

	return b.String()
}
