package bibtex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("bibtex syntax error")

// monthMacros are the predefined month strings.
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

// ParseFile parses the BibTeX file at path.
func ParseFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	entries, err := ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// Parse parses BibTeX text from r.
func Parse(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return ParseString(string(data))
}

// ParseString parses BibTeX text. Text outside of @-blocks is ignored, as are
// @comment and @preamble blocks. @string definitions are expanded in later
// field values.
func ParseString(s string) ([]Entry, error) {
	p := &parser{src: s, macros: make(map[string]string)}
	return p.parse()
}

type parser struct {
	src    string
	pos    int
	macros map[string]string
}

func (p *parser) errorf(format string, args ...any) error {
	line := strings.Count(p.src[:min(p.pos, len(p.src))], "\n") + 1
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, line, fmt.Sprintf(format, args...))
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

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			p.pos++
		default:
			return
		}
	}
}

func isIdentByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("_-:.+/'!?*&;$<>[]", c) >= 0
}

func (p *parser) readIdent() string {
	start := p.pos
	for !p.eof() && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) parse() ([]Entry, error) {
	var entries []Entry
	for {
		i := strings.IndexByte(p.src[p.pos:], '@')
		if i < 0 {
			return entries, nil
		}
		p.pos += i + 1
		p.skipSpace()

		typ := strings.ToLower(p.readIdent())
		if typ == "" {
			continue // stray '@' in free text
		}
		p.skipSpace()

		var closer byte
		switch p.peek() {
		case '{':
			closer = '}'
		case '(':
			closer = ')'
		default:
			continue // "@name" in free text, not a block
		}
		p.pos++

		switch typ {
		case "comment", "preamble":
			if err := p.skipBlock(closer); err != nil {
				return nil, err
			}
		case "string":
			if err := p.readMacro(closer); err != nil {
				return nil, err
			}
		default:
			e, err := p.readEntry(typ, closer)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
		}
	}
}

// skipBlock consumes input up to and including the closer matching an
// already consumed opener.
func (p *parser) skipBlock(closer byte) error {
	opener := byte('{')
	if closer == ')' {
		opener = '('
	}
	depth := 1
	for !p.eof() {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return nil
			}
		}
	}
	return p.errorf("unterminated block")
}

func (p *parser) readMacro(closer byte) error {
	p.skipSpace()
	name, value, err := p.readField()
	if err != nil {
		return err
	}
	p.macros[name] = value
	p.skipSpace()
	if p.peek() != closer {
		return p.errorf("expected %q after @string definition", closer)
	}
	p.pos++
	return nil
}

func (p *parser) readEntry(typ string, closer byte) (Entry, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && p.src[p.pos] != ',' && p.src[p.pos] != closer {
		p.pos++
	}
	if p.eof() {
		return Entry{}, p.errorf("unterminated @%s entry", typ)
	}
	key := strings.TrimSpace(p.src[start:p.pos])
	if key == "" {
		return Entry{}, p.errorf("@%s entry without citation key", typ)
	}

	e := Entry{Type: typ, Key: key}
	if p.src[p.pos] == closer {
		p.pos++
		return e, nil
	}
	p.pos++ // ','

	for {
		p.skipSpace()
		if p.eof() {
			return Entry{}, p.errorf("unterminated entry %q", key)
		}
		if p.peek() == closer {
			p.pos++
			return e, nil
		}

		name, value, err := p.readField()
		if err != nil {
			return Entry{}, err
		}
		e.Fields = append(e.Fields, Field{Name: name, Value: value})

		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case closer:
			p.pos++
			return e, nil
		default:
			return Entry{}, p.errorf("expected ',' or %q in entry %q", closer, key)
		}
	}
}

func (p *parser) readField() (string, string, error) {
	name := strings.ToLower(p.readIdent())
	if name == "" {
		return "", "", p.errorf("expected field name")
	}
	p.skipSpace()
	if p.peek() != '=' {
		return "", "", p.errorf("expected '=' after field %q", name)
	}
	p.pos++
	p.skipSpace()

	var b strings.Builder
	for {
		part, err := p.readValuePart()
		if err != nil {
			return "", "", err
		}
		b.WriteString(part)

		p.skipSpace()
		if p.peek() != '#' {
			break
		}
		p.pos++
		p.skipSpace()
	}
	return name, b.String(), nil
}

func (p *parser) readValuePart() (string, error) {
	switch c := p.peek(); {
	case c == '{':
		return p.readBraced()
	case c == '"':
		return p.readQuoted()
	case c >= '0' && c <= '9':
		start := p.pos
		for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
			p.pos++
		}
		return p.src[start:p.pos], nil
	default:
		ident := p.readIdent()
		if ident == "" {
			return "", p.errorf("expected field value")
		}
		lower := strings.ToLower(ident)
		if v, ok := p.macros[lower]; ok {
			return v, nil
		}
		if v, ok := monthMacros[lower]; ok {
			return v, nil
		}
		return ident, nil
	}
}

// readBraced returns the text between a balanced pair of braces, keeping
// inner braces verbatim.
func (p *parser) readBraced() (string, error) {
	p.pos++ // '{'
	start := p.pos
	depth := 1
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			if p.pos+1 < len(p.src) {
				p.pos++ // skip escaped character
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				v := p.src[start:p.pos]
				p.pos++
				return v, nil
			}
		}
		p.pos++
	}
	return "", p.errorf("unterminated braced value")
}

func (p *parser) readQuoted() (string, error) {
	p.pos++ // '"'
	start := p.pos
	depth := 0
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			if p.pos+1 < len(p.src) {
				p.pos++
			}
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				v := p.src[start:p.pos]
				p.pos++
				return v, nil
			}
		}
		p.pos++
	}
	return "", p.errorf("unterminated quoted value")
}
