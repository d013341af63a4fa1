package bibtex

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bbl2rmap/bbl2rmap/internal/reference"
)

// ParseNames splits a BibTeX name list on top-level "and" and parses each name.
func ParseNames(s string) []reference.Person {
	var persons []reference.Person
	var current []string
	flush := func() {
		if len(current) > 0 {
			persons = append(persons, ParseName(strings.Join(current, " ")))
			current = nil
		}
	}
	for _, word := range splitTopLevel(s, isSpaceRune) {
		if strings.EqualFold(word, "and") {
			flush()
			continue
		}
		current = append(current, word)
	}
	flush()
	return persons
}

// ParseName parses one name in any of the three BibTeX forms:
// "First von Last", "von Last, First" and "von Last, Jr, First".
func ParseName(name string) reference.Person {
	parts := splitTopLevel(name, func(r rune) bool { return r == ',' })
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch len(parts) {
	case 0:
		return reference.Person{}
	case 1:
		return parseFirstVonLast(splitTopLevel(parts[0], isSpaceRune))
	default:
		p := parseVonLast(splitTopLevel(parts[0], isSpaceRune))
		first := parts[len(parts)-1]
		if len(parts) > 2 {
			p.Lineage = strings.Join(parts[1:len(parts)-1], ", ")
		}
		p.First = nilIfEmpty(splitTopLevel(first, isSpaceRune))
		return p
	}
}

func parseFirstVonLast(words []string) reference.Person {
	if len(words) == 0 {
		return reference.Person{}
	}
	if len(words) == 1 {
		return reference.Person{Last: words[0]}
	}

	// The von part runs from the first to the last lower-case word,
	// never taking the final word.
	vonStart, vonEnd := -1, -1
	for i, w := range words[:len(words)-1] {
		if isLowerWord(w) {
			if vonStart < 0 {
				vonStart = i
			}
			vonEnd = i + 1
		}
	}
	if vonStart < 0 {
		return reference.Person{
			First: words[:len(words)-1],
			Last:  words[len(words)-1],
		}
	}
	return reference.Person{
		First:   nilIfEmpty(words[:vonStart]),
		Prelast: strings.Join(words[vonStart:vonEnd], " "),
		Last:    strings.Join(words[vonEnd:], " "),
	}
}

func parseVonLast(words []string) reference.Person {
	if len(words) == 0 {
		return reference.Person{}
	}
	vonEnd := 0
	for i, w := range words[:len(words)-1] {
		if isLowerWord(w) {
			vonEnd = i + 1
		}
	}
	return reference.Person{
		Prelast: strings.Join(words[:vonEnd], " "),
		Last:    strings.Join(words[vonEnd:], " "),
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

// isLowerWord reports whether the first letter of w outside braces is lower case.
// Words whose letters are all braced count as upper case.
func isLowerWord(w string) bool {
	depth := 0
	for _, r := range w {
		switch {
		case r == '{':
			depth++
		case r == '}':
			depth--
		case depth == 0 && unicode.IsLetter(r):
			return unicode.IsLower(r)
		}
	}
	return false
}

func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r)
}

// splitTopLevel splits s at runes matching sep outside braces.
// Empty pieces are dropped for whitespace separators only.
func splitTopLevel(s string, sep func(rune) bool) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '{':
			depth++
		case r == '}':
			if depth > 0 {
				depth--
			}
		case depth == 0 && sep(r):
			parts = append(parts, s[start:i])
			start = i + size
		}
		i += size
	}
	parts = append(parts, s[start:])

	if sep(' ') {
		words := parts[:0]
		for _, p := range parts {
			if p != "" {
				words = append(words, p)
			}
		}
		return words
	}
	return parts
}
