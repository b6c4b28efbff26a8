// Package preset parses the text form of effect topologies.
//
// Grammar:
//
//	chain   = element { "|" element }
//	element = "-" | call | ref
//	call    = ("split" | "avg") "(" chain { ";" chain } ")"
//	ref     = id [ ":" name "=" value { "," name "=" value } ]
//
// "split" merges branches by summing, "avg" by averaging. Parameter
// names are resolved against the registry at compile time, not here.
//
// Example: "distortion:drive=3|split(delay:time=0.2;-)|gain:db=-6".
package preset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-fxgraph/graph"
)

// ErrSyntax wraps every parse failure.
var ErrSyntax = errors.New("preset: syntax error")

// Parse turns a chain description into a topology. The result is a
// plain description: nothing is validated against a registry until
// graph.Compile.
func Parse(s string) (*graph.Node, error) {
	p := &parser{src: s}

	node, err := p.parseChain()
	if err != nil {
		return nil, err
	}

	p.skipSpace()

	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}

	return node, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, msg)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// peek returns the next significant byte, or 0 at end of input.
func (p *parser) peek() byte {
	p.skipSpace()

	if p.pos >= len(p.src) {
		return 0
	}

	return p.src[p.pos]
}

func (p *parser) parseChain() (*graph.Node, error) {
	var elems []*graph.Node

	for {
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}

		elems = append(elems, el)

		if p.peek() != '|' {
			break
		}

		p.pos++
	}

	if len(elems) == 1 {
		return elems[0], nil
	}

	return graph.NewChain(elems...), nil
}

func (p *parser) parseElement() (*graph.Node, error) {
	switch c := p.peek(); {
	case c == '-':
		p.pos++
		return graph.Passthrough(), nil

	case isIdentStart(c):
		return p.parseCallOrRef()

	case c == 0:
		return nil, p.errorf("missing effect")

	default:
		return nil, p.errorf("unexpected %q", c)
	}
}

func (p *parser) parseCallOrRef() (*graph.Node, error) {
	id := p.readIdent()

	if (id == "split" || id == "avg") && p.peek() == '(' {
		policy := graph.MergeSum
		if id == "avg" {
			policy = graph.MergeAverage
		}

		return p.parseBranches(policy)
	}

	var params []graph.Param

	if p.peek() == ':' {
		p.pos++

		var err error
		if params, err = p.parseParams(); err != nil {
			return nil, err
		}
	}

	return graph.NewRef(id, params...), nil
}

func (p *parser) parseBranches(policy graph.MergePolicy) (*graph.Node, error) {
	p.pos++ // consume '('

	var branches []*graph.Node

	for {
		branch, err := p.parseChain()
		if err != nil {
			return nil, err
		}

		branches = append(branches, branch)

		switch p.peek() {
		case ';':
			p.pos++

		case ')':
			p.pos++
			return graph.NewSplit(policy, branches...), nil

		case 0:
			return nil, p.errorf("unclosed split")

		default:
			return nil, p.errorf("unexpected %q in split", p.src[p.pos])
		}
	}
}

func (p *parser) parseParams() ([]graph.Param, error) {
	var params []graph.Param

	for {
		if !isIdentStart(p.peek()) {
			return nil, p.errorf("missing parameter name")
		}

		name := p.readIdent()

		if p.peek() != '=' {
			return nil, p.errorf("missing '=' after %q", name)
		}

		p.pos++

		raw := p.readNumber()
		if raw == "" {
			return nil, p.errorf("missing value for %q", name)
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, p.errorf("bad value %q for %q", raw, name)
		}

		params = append(params, graph.Param{Name: name, Value: v})

		if p.peek() != ',' {
			return params, nil
		}

		p.pos++
	}
}

func (p *parser) readIdent() string {
	p.skipSpace()
	start := p.pos

	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}

	return p.src[start:p.pos]
}

func (p *parser) readNumber() string {
	p.skipSpace()
	start := p.pos

	for p.pos < len(p.src) && strings.IndexByte("0123456789+-.eE", p.src[p.pos]) >= 0 {
		p.pos++
	}

	return p.src[start:p.pos]
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
