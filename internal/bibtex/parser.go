package bibtex

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bbl2rmap/bbl2rmap/internal/reference"
)

type parser struct {
	src      string
	pos      int
	line     int
	macros   map[string]string
	entries  []reference.Entry
	warnings []error
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) next() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
	}
	return c
}

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.peek()) {
		p.next()
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// isIdentByte reports whether c may appear in an entry type, field name or macro.
func isIdentByte(c byte) bool {
	if c >= 0x80 {
		return true
	}
	r := rune(c)
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_-:.+/'!?*&$;<>[]|", r)
}

func (p *parser) ident() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.peek()) {
		p.next()
	}
	return p.src[start:p.pos]
}

// parse consumes the whole input. Text outside @-commands is ignored, as in BibTeX.
func (p *parser) parse() error {
	for {
		at := strings.IndexByte(p.src[p.pos:], '@')
		if at < 0 {
			return nil
		}
		p.line += strings.Count(p.src[p.pos:p.pos+at], "\n")
		p.pos += at + 1

		p.skipSpace()
		typ := strings.ToLower(p.ident())
		if typ == "" {
			continue
		}
		p.skipSpace()
		open := p.peek()
		var close byte
		switch open {
		case '{':
			close = '}'
		case '(':
			close = ')'
		default:
			return p.errorf("expected { or ( after @%s", typ)
		}
		p.next()

		var err error
		switch typ {
		case "comment", "preamble":
			err = p.skipGroup(close)
		case "string":
			err = p.parseString(close)
		default:
			err = p.parseEntry(typ, close)
		}
		if err != nil {
			return err
		}
	}
}

// skipGroup skips to the delimiter matching an already-consumed opener.
func (p *parser) skipGroup(close byte) error {
	depth := 0
	for !p.eof() {
		c := p.next()
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == close && depth == 0:
			return nil
		}
	}
	return p.errorf("unterminated @-command")
}

func (p *parser) parseString(close byte) error {
	p.skipSpace()
	name := strings.ToLower(p.ident())
	if name == "" {
		return p.errorf("expected macro name in @string")
	}
	p.skipSpace()
	if p.peek() != '=' {
		return p.errorf("expected = after @string name %q", name)
	}
	p.next()
	value, err := p.parseValue("@string " + name)
	if err != nil {
		return err
	}
	p.skipSpace()
	if p.eof() || p.next() != close {
		return p.errorf("expected closing delimiter after @string %s", name)
	}
	p.macros[name] = value
	return nil
}

func (p *parser) parseEntry(typ string, close byte) error {
	startLine := p.line
	p.skipSpace()
	keyStart := p.pos
	for !p.eof() && p.peek() != ',' && p.peek() != close && !isSpace(p.peek()) {
		p.next()
	}
	key := p.src[keyStart:p.pos]

	var fields [][2]string
	for {
		p.skipSpace()
		if p.eof() {
			return &SyntaxError{Line: startLine, Msg: fmt.Sprintf("unterminated entry %q", key)}
		}
		c := p.peek()
		if c == close {
			p.next()
			break
		}
		if c == ',' {
			p.next()
			continue
		}

		name := strings.ToLower(p.ident())
		if name == "" {
			return p.errorf("expected field name in entry %q, found %q", key, c)
		}
		p.skipSpace()
		if p.peek() != '=' {
			return p.errorf("expected = after field %q in entry %q", name, key)
		}
		p.next()
		value, err := p.parseValue(key)
		if err != nil {
			return err
		}
		fields = append(fields, [2]string{name, value})
	}

	p.entries = append(p.entries, newEntry(typ, key, fields))
	return nil
}

// parseValue reads a value made of '#'-joined braced strings, quoted
// strings, numbers and macro names.
func (p *parser) parseValue(context string) (string, error) {
	var b strings.Builder
	for {
		p.skipSpace()
		if p.eof() {
			return "", p.errorf("unexpected end of input in %q", context)
		}
		switch c := p.peek(); {
		case c == '{':
			p.next()
			s, err := p.balanced('}')
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case c == '"':
			p.next()
			s, err := p.balanced('"')
			if err != nil {
				return "", err
			}
			b.WriteString(s)
		case c >= '0' && c <= '9':
			start := p.pos
			for !p.eof() && p.peek() >= '0' && p.peek() <= '9' {
				p.next()
			}
			b.WriteString(p.src[start:p.pos])
		default:
			name := p.ident()
			if name == "" {
				return "", p.errorf("unexpected %q in value of %q", c, context)
			}
			if v, ok := p.macros[strings.ToLower(name)]; ok {
				b.WriteString(v)
			} else {
				p.warnings = append(p.warnings, fmt.Errorf("%s: line %d: undefined macro %q", context, p.line, name))
				b.WriteString(name)
			}
		}

		p.skipSpace()
		if p.peek() != '#' {
			return b.String(), nil
		}
		p.next()
	}
}

// balanced reads up to the terminator at brace depth zero and returns the
// text between, inner braces included.
func (p *parser) balanced(term byte) (string, error) {
	start := p.pos
	startLine := p.line
	depth := 0
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == term && depth == 0:
			s := p.src[start:p.pos]
			p.next()
			return s, nil
		case c == '}':
			return "", p.errorf("unbalanced } in value")
		}
		p.next()
	}
	return "", &SyntaxError{Line: startLine, Msg: "unterminated value"}
}
