package sgf

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Collection is a parsed SGF file: one or more game trees.
type Collection struct {
	Trees   []*Tree
	Charset string // the charset the input was decoded from, if a CA property named one
}

// Tree is a game tree: a sequence of nodes followed by its variations.
type Tree struct {
	Sequence   []*RawNode
	Variations []*Tree
}

// RawNode is a node as written. Properties keep their order and repeated keys.
type RawNode struct {
	Properties []RawProperty
}

// RawProperty is a property as written. Values are the bracket contents with their
// escapes still in place.
type RawProperty struct {
	Code   string
	Values []string
}

// SyntaxError is returned for input that is not SGF.
type SyntaxError struct {
	Line, Col int
	Msg       string
}

func (err *SyntaxError) Error() string {
	return fmt.Sprintf("sgf: line %d column %d: %s", err.Line, err.Col, err.Msg)
}

// Parse reads a collection. A CA property naming a charset other than UTF-8 makes
// the input be decoded from that charset first. Parse keeps no state between
// calls and may be used from several goroutines at once.
func Parse(r io.Reader) (*Collection, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Cannot read record")
	}
	charset := charsetOf(data)
	decoded, known, err := decode(data, charset)
	if err != nil {
		return nil, err
	}
	p := &parser{src: string(decoded), line: 1, col: 1}
	c, err := p.collection()
	if err != nil {
		return nil, err
	}
	if known {
		c.Charset = charset
	}
	return c, nil
}

// ParseString is Parse on a string.
func ParseString(s string) (*Collection, error) { return Parse(strings.NewReader(s)) }

type parser struct {
	src       string
	pos       int
	line, col int
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &SyntaxError{Line: p.line, Col: p.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) next() byte {
	c := p.src[p.pos]
	p.pos++
	switch {
	case c == '\n':
		p.line++
		p.col = 1
	case c&0xC0 != 0x80: // continuation bytes of a multibyte rune take no column
		p.col++
	}
	return c
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			p.next()
		default:
			return
		}
	}
}

func (p *parser) collection() (*Collection, error) {
	c := new(Collection)
	for {
		// anything outside of a game tree is ignored
		for !p.eof() && p.peek() != '(' {
			p.next()
		}
		if p.eof() {
			break
		}
		t, err := p.tree()
		if err != nil {
			return nil, err
		}
		c.Trees = append(c.Trees, t)
	}
	if len(c.Trees) == 0 {
		return nil, p.errorf("no game tree found")
	}
	return c, nil
}

func (p *parser) tree() (*Tree, error) {
	p.next() // (
	p.skipSpace()
	if p.peek() != ';' {
		return nil, p.errorf("expected ';' to start a node, found %s", p.found())
	}
	t := new(Tree)
	for p.skipSpace(); p.peek() == ';'; p.skipSpace() {
		n, err := p.node()
		if err != nil {
			return nil, err
		}
		t.Sequence = append(t.Sequence, n)
	}
	for p.peek() == '(' {
		v, err := p.tree()
		if err != nil {
			return nil, err
		}
		t.Variations = append(t.Variations, v)
		p.skipSpace()
	}
	if p.peek() != ')' {
		return nil, p.errorf("expected ')' to end a game tree, found %s", p.found())
	}
	p.next()
	return t, nil
}

func (p *parser) node() (*RawNode, error) {
	p.next() // ;
	n := new(RawNode)
	for p.skipSpace(); isLetter(p.peek()); p.skipSpace() {
		prop, err := p.property()
		if err != nil {
			return nil, err
		}
		n.Properties = append(n.Properties, prop)
	}
	return n, nil
}

func (p *parser) property() (RawProperty, error) {
	var code strings.Builder
	for isLetter(p.peek()) {
		// old style long names (AddBlack) keep only their capitals
		if c := p.next(); c >= 'A' && c <= 'Z' {
			code.WriteByte(c)
		}
	}
	prop := RawProperty{Code: code.String()}
	if prop.Code == "" {
		return prop, p.errorf("property name has no capital letters")
	}
	p.skipSpace()
	if p.peek() != '[' {
		return prop, p.errorf("expected '[' after %s, found %s", prop.Code, p.found())
	}
	for p.peek() == '[' {
		v, err := p.value()
		if err != nil {
			return prop, err
		}
		prop.Values = append(prop.Values, v)
		p.skipSpace()
	}
	return prop, nil
}

func (p *parser) value() (string, error) {
	line, col := p.line, p.col
	p.next() // [
	start := p.pos
	for !p.eof() {
		switch p.next() {
		case '\\':
			if !p.eof() {
				p.next()
			}
		case ']':
			return p.src[start : p.pos-1], nil
		}
	}
	return "", &SyntaxError{Line: line, Col: col, Msg: "unterminated value"}
}

func (p *parser) found() string {
	if p.eof() {
		return "end of input"
	}
	return fmt.Sprintf("%q", p.peek())
}

func isLetter(c byte) bool { return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') }
