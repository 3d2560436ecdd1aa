package selector

import (
	"fmt"
	"regexp"
	"strings"

	"fap/internal/ferrors"
)

// ParseError reports a syntactic problem in a selector string along
// with the character offset at which it was detected.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("selector parse error at offset %d: %s", e.Offset, e.Message)
}

func parseErr(offset int, format string, args ...any) error {
	pe := &ParseError{Offset: offset, Message: fmt.Sprintf(format, args...)}

	return ferrors.Wrap(pe, ferrors.CodeSelectorParse, pe.Message).WithContext("offset", offset)
}

// Parse compiles a selector string into an AST, or returns an error
// with code SELECTOR_PARSE_ERROR and a character offset.
func Parse(input string) (*AST, error) {
	p := &parser{input: input}

	return p.parseSelector()
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseSelector() (*AST, error) {
	p.skipSpaces()

	if p.pos >= len(p.input) {
		return nil, parseErr(0, "empty selector")
	}

	var segments []*Segment

	for {
		p.skipSpaces()

		seg, err := p.parseSegment()
		if err != nil {
			return nil, err
		}

		segments = append(segments, seg)

		savedPos := p.pos
		p.skipSpaces()

		if p.pos >= len(p.input) {
			seg.Combinator = CombinatorNone

			break
		}

		if p.input[p.pos] == '>' {
			seg.Combinator = CombinatorChild
			p.pos++

			continue
		}

		if p.pos == savedPos {
			return nil, parseErr(p.pos, "expected whitespace or '>' between segments")
		}

		seg.Combinator = CombinatorDescendant
	}

	return &AST{Segments: segments, Source: p.input}, nil
}

func (p *parser) parseSegment() (*Segment, error) {
	if p.pos >= len(p.input) {
		return nil, parseErr(p.pos, "expected a segment")
	}

	if p.input[p.pos] == '#' {
		p.pos++

		value, err := p.parseUnquotedValue()
		if err != nil {
			return nil, err
		}

		if value == "" {
			return nil, parseErr(p.pos, "expected a key value after '#'")
		}

		return &Segment{Attrs: []AttrMatch{{Name: "key", Literal: value}}}, nil
	}

	if isIdentStart(p.input[p.pos]) {
		identStart := p.pos
		for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
			p.pos++
		}

		ident := p.input[identStart:p.pos]

		if p.pos < len(p.input) && p.input[p.pos] == '[' {
			p.pos++

			attrs, err := p.parseAttrList(']')
			if err != nil {
				return nil, err
			}

			if p.pos >= len(p.input) || p.input[p.pos] != ']' {
				return nil, parseErr(p.pos, "expected ']' to close type-qualified segment")
			}

			p.pos++

			return &Segment{TypeName: ident, HasType: true, Attrs: attrs}, nil
		}

		if p.pos >= len(p.input) || p.input[p.pos] != '=' {
			return &Segment{TypeName: ident, HasType: true}, nil
		}

		p.pos = identStart
	}

	attrs, err := p.parseBareAttrList()
	if err != nil {
		return nil, err
	}

	if len(attrs) == 0 {
		return nil, parseErr(p.pos, "expected a type, attribute, or '#key' segment")
	}

	return &Segment{Attrs: attrs}, nil
}

func (p *parser) parseAttrList(terminator byte) ([]AttrMatch, error) {
	var attrs []AttrMatch

	for {
		p.skipSpaces()

		if p.pos >= len(p.input) || p.input[p.pos] == terminator {
			break
		}

		attr, err := p.parseAttr()
		if err != nil {
			return nil, err
		}

		attrs = append(attrs, attr)
	}

	return attrs, nil
}

func (p *parser) parseBareAttrList() ([]AttrMatch, error) {
	attr, err := p.parseAttr()
	if err != nil {
		return nil, err
	}

	attrs := []AttrMatch{attr}

	for {
		saved := p.pos
		p.skipSpaces()

		if p.pos >= len(p.input) || p.input[p.pos] != '&' {
			p.pos = saved

			break
		}

		p.pos++
		p.skipSpaces()

		next, err := p.parseAttr()
		if err != nil {
			return nil, err
		}

		attrs = append(attrs, next)
	}

	return attrs, nil
}

func (p *parser) parseAttr() (AttrMatch, error) {
	nameStart := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}

	name := p.input[nameStart:p.pos]
	if name == "" {
		return AttrMatch{}, parseErr(p.pos, "expected an attribute name")
	}

	if p.pos >= len(p.input) || p.input[p.pos] != '=' {
		return AttrMatch{}, parseErr(p.pos, "expected '=' after attribute name %q", name)
	}

	p.pos++

	return p.parseValue(name)
}

func (p *parser) parseValue(name string) (AttrMatch, error) {
	if strings.HasPrefix(p.input[p.pos:], "~/") {
		start := p.pos + 2

		end := strings.IndexByte(p.input[start:], '/')
		if end == -1 {
			return AttrMatch{}, parseErr(p.pos, "unterminated regex literal for attribute %q", name)
		}

		pattern := p.input[start : start+end]
		p.pos = start + end + 1

		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return AttrMatch{}, parseErr(start, "invalid regex %q: %v", pattern, err)
		}

		return AttrMatch{Name: name, IsRegex: true, Pattern: compiled}, nil
	}

	if p.pos < len(p.input) && (p.input[p.pos] == '"' || p.input[p.pos] == '\'') {
		value, err := p.parseQuotedValue()
		if err != nil {
			return AttrMatch{}, err
		}

		return AttrMatch{Name: name, Literal: value}, nil
	}

	value, err := p.parseUnquotedValue()
	if err != nil {
		return AttrMatch{}, err
	}

	return AttrMatch{Name: name, Literal: value}, nil
}

func (p *parser) parseQuotedValue() (string, error) {
	quote := p.input[p.pos]
	p.pos++

	var b strings.Builder

	for p.pos < len(p.input) {
		c := p.input[p.pos]

		if c == '\\' && p.pos+1 < len(p.input) {
			b.WriteByte(p.input[p.pos+1])
			p.pos += 2

			continue
		}

		if c == quote {
			p.pos++

			return b.String(), nil
		}

		b.WriteByte(c)
		p.pos++
	}

	return "", parseErr(p.pos, "unterminated quoted value")
}

func (p *parser) parseUnquotedValue() (string, error) {
	start := p.pos

	for p.pos < len(p.input) && !isSeparator(p.input[p.pos]) {
		p.pos++
	}

	return p.input[start:p.pos], nil
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && p.input[p.pos] == ' ' {
		p.pos++
	}
}

func isSeparator(c byte) bool {
	return c == ' ' || c == '>' || c == ']' || c == '&'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
