package pogen

import (
	"strconv"
	"strings"
	"unicode"
)

// Parse reads a comma separated argument list, such as
//
//	ws,e,30,0,(bpl,t,l,((0,0),(10,1))),1
//
// into a list Value. Parentheses and brackets both denote nested lists. Items
// in single or double quotes are strings. Inside a bare item, brace groups
// {...} are kept verbatim, so the commas inside them do not split the item. A
// bare item that parses as a number becomes a number, otherwise it becomes a
// string with surrounding whitespace trimmed.
func Parse(s string) (Value, error) {
	p := parser{src: s}
	items, err := p.items(0)
	if err != nil {
		return Value{}, err
	}
	if p.pos < len(p.src) {
		return Value{}, &SyntaxError{Msg: "unbalanced closing bracket", Input: s}
	}
	return NewList(items...), nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) items(closer byte) ([]Value, error) {
	ret := []Value{}
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == closer {
		p.pos++
		return ret, nil
	}
	if p.pos >= len(p.src) && closer == 0 {
		return ret, nil
	}
	for {
		v, err := p.item()
		if err != nil {
			return nil, err
		}
		ret = append(ret, v)
		p.skipSpace()
		if p.pos >= len(p.src) {
			if closer != 0 {
				return nil, &SyntaxError{Msg: "missing closing bracket", Input: p.src}
			}
			return ret, nil
		}
		switch c := p.src[p.pos]; {
		case c == ',':
			p.pos++
		case c == closer:
			p.pos++
			return ret, nil
		case closer == 0 && (c == ')' || c == ']'):
			return ret, nil
		default:
			return nil, &SyntaxError{Msg: "mismatched brackets", Input: p.src}
		}
	}
}

func (p *parser) item() (Value, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return Value{}, &SyntaxError{Msg: "empty argument", Input: p.src}
	}
	switch c := p.src[p.pos]; c {
	case '(', '[':
		p.pos++
		closer := byte(')')
		if c == '[' {
			closer = ']'
		}
		items, err := p.items(closer)
		if err != nil {
			return Value{}, err
		}
		return NewList(items...), nil
	case '"', '\'':
		end := strings.IndexByte(p.src[p.pos+1:], c)
		if end < 0 {
			return Value{}, &SyntaxError{Msg: "unterminated quote", Input: p.src}
		}
		s := p.src[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		return NewString(s), nil
	case ',', ')', ']':
		return Value{}, &SyntaxError{Msg: "empty argument", Input: p.src}
	}
	start, depth := p.pos, 0
loop:
	for ; p.pos < len(p.src); p.pos++ {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return Value{}, &SyntaxError{Msg: "all braces not paired", Input: p.src}
			}
			depth--
		case ',', ')', ']', '(', '[':
			if depth == 0 {
				break loop
			}
		}
	}
	if depth != 0 {
		return Value{}, &SyntaxError{Msg: "all braces not paired", Input: p.src}
	}
	if p.pos < len(p.src) && (p.src[p.pos] == '(' || p.src[p.pos] == '[') {
		return Value{}, &SyntaxError{Msg: "missing comma before bracket", Input: p.src}
	}
	word := strings.TrimSpace(p.src[start:p.pos])
	if f, ok := parseNumber(word); ok {
		return f, nil
	}
	return NewString(word), nil
}

func parseNumber(s string) (Value, bool) {
	if s == "" {
		return Value{}, false
	}
	// strconv accepts inf, nan and hex forms, none of which are numbers here
	for i, c := range s {
		if !(c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' ||
			(c == '-' || c == '+') && (i == 0 || s[i-1] == 'e' || s[i-1] == 'E')) {
			return Value{}, false
		}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(int(i)), true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NewFloat(f), true
	}
	return Value{}, false
}

// ParseNumber parses s the way Parse parses a bare item, returning ok only if s
// is a number.
func ParseNumber(s string) (float64, bool) {
	v, ok := parseNumber(strings.TrimSpace(s))
	return v.Float(), ok
}

// Pair is one key{value} group returned by ParseBraces.
type Pair struct {
	Key, Value string
}

// ParseBraces splits strings like "a{x}b{y}:{a=1|b=2}" into the pairs
// (a, x), (b, y), (:, a=1|b=2). Braces may not nest, and all text must belong
// to a pair; keys and values are whitespace trimmed and may be empty.
func ParseBraces(s string) ([]Pair, error) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	if strings.Count(s, "{") != strings.Count(s, "}") {
		return nil, &SyntaxError{Msg: "all braces not paired", Input: s}
	}
	var ret []Pair
	rest := s
	for {
		rest = strings.TrimSpace(rest)
		if rest == "" {
			return ret, nil
		}
		open := strings.IndexByte(rest, '{')
		close := strings.IndexByte(rest, '}')
		if open < 0 || close < open {
			return nil, &SyntaxError{Msg: "badly placed delimiters", Input: s}
		}
		val := rest[open+1 : close]
		if strings.ContainsRune(val, '{') {
			return nil, &SyntaxError{Msg: "badly placed delimiters", Input: s}
		}
		ret = append(ret, Pair{Key: strings.TrimSpace(rest[:open]), Value: strings.TrimSpace(val)})
		rest = rest[close+1:]
	}
}
