package bibtex

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// accents maps LaTeX accent commands to Unicode combining marks.
var accents = map[string]rune{
	"`":  '\u0300',
	"'":  '\u0301',
	"^":  '\u0302',
	"~":  '\u0303',
	"=":  '\u0304',
	"u":  '\u0306',
	".":  '\u0307',
	"\"": '\u0308',
	"r":  '\u030A',
	"H":  '\u030B',
	"v":  '\u030C',
	"d":  '\u0323',
	"c":  '\u0327',
	"k":  '\u0328',
	"b":  '\u0331',
}

// symbols maps argument-less LaTeX commands to their characters.
var symbols = map[string]string{
	"aa": "å", "AA": "Å",
	"ae": "æ", "AE": "Æ",
	"oe": "œ", "OE": "Œ",
	"o": "ø", "O": "Ø",
	"l": "ł", "L": "Ł",
	"ss": "ß",
	"i":  "ı",
	"j":  "ȷ",
}

// escapes are backslash-escaped special characters.
var escapes = map[byte]string{
	'&': "&",
	'%': "%",
	'_': "_",
	'$': "$",
	'#': "#",
}

// DecodeLaTeX replaces LaTeX accent commands, letter commands and escaped
// specials with Unicode, composed to NFC. Braces and unknown commands such
// as journal macros ("\apj") are left as they are.
func DecodeLaTeX(s string) string {
	if !strings.Contains(s, `\`) {
		return norm.NFC.String(s)
	}

	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			i++
			continue
		}

		c := s[i+1]
		if rep, ok := escapes[c]; ok {
			b.WriteString(rep)
			i += 2
			continue
		}

		// Symbol accents are one character; letter commands run to the
		// first non-letter.
		var cmd string
		end := i + 2
		if isASCIILetter(c) {
			for end < len(s) && isASCIILetter(s[end]) {
				end++
			}
		}
		cmd = s[i+1 : end]

		if mark, ok := accents[cmd]; ok {
			base, next, ok := accentArgument(s, end, isASCIILetter(c))
			if ok {
				b.WriteString(base)
				b.WriteRune(mark)
				i = next
				continue
			}
		}
		if sym, ok := symbols[cmd]; ok {
			b.WriteString(sym)
			i = skipControlWordTail(s, end)
			continue
		}

		// Unknown command: keep verbatim.
		b.WriteString(s[i:end])
		i = end
	}
	return norm.NFC.String(b.String())
}

// accentArgument reads the argument of an accent command starting at pos:
// a braced group ("{o}", "{\i}") or a single character. Letter-named
// accents such as \c need a space or brace before a bare argument.
func accentArgument(s string, pos int, letterCmd bool) (base string, next int, ok bool) {
	if letterCmd {
		if pos < len(s) && s[pos] == ' ' {
			pos++
		} else if pos < len(s) && s[pos] != '{' {
			return "", pos, false
		}
	}
	if pos >= len(s) {
		return "", pos, false
	}

	if s[pos] == '{' {
		closeIdx := strings.IndexByte(s[pos:], '}')
		if closeIdx < 0 {
			return "", pos, false
		}
		inner := s[pos+1 : pos+closeIdx]
		switch inner {
		case `\i`:
			inner = "i"
		case `\j`:
			inner = "j"
		}
		return inner, pos + closeIdx + 1, true
	}

	if s[pos] == '\\' {
		// \'\i form
		if strings.HasPrefix(s[pos:], `\i`) && !followedByLetter(s, pos+2) {
			return "i", pos + 2, true
		}
		return "", pos, false
	}

	r, size := utf8.DecodeRuneInString(s[pos:])
	if !unicode.IsLetter(r) {
		return "", pos, false
	}
	return string(r), pos + size, true
}

// skipControlWordTail consumes the "{}" or single space that may terminate
// a control word.
func skipControlWordTail(s string, pos int) int {
	if strings.HasPrefix(s[pos:], "{}") {
		return pos + 2
	}
	if pos < len(s) && s[pos] == ' ' {
		return pos + 1
	}
	return pos
}

func followedByLetter(s string, pos int) bool {
	return pos < len(s) && isASCIILetter(s[pos])
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
