// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strconv"
	"strings"

	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

type parser struct {
	lang hdlgen.Language
	toks []Token
	i    int
}

// Parse parses the assignments in src, written in language l.
//
func Parse(l hdlgen.Language, src string) ([]*Assign, error) {
	toks, err := Scan(l, src)
	if err != nil {
		return nil, err
	}
	p := &parser{lang: l, toks: toks}
	var as []*Assign
	for p.peek().Kind != EOF {
		var a *Assign
		if l == hdlgen.VHDL {
			a, err = p.vhdlAssign()
		} else {
			a, err = p.verilogAssign()
		}
		if err != nil {
			return nil, err
		}
		as = append(as, a)
	}
	return as, nil
}

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) next() Token {
	t := p.toks[p.i]
	if t.Kind != EOF {
		p.i++
	}
	return t
}

// is returns true if the next token is the punctuation or keyword s. VHDL
// keywords are case insensitive.
func (p *parser) is(s string) bool {
	t := p.peek()
	switch t.Kind {
	case Punct:
		return t.Text == s
	case TokIdent:
		if p.lang == hdlgen.VHDL {
			return strings.EqualFold(t.Text, s)
		}
		return t.Text == s
	}
	return false
}

// accept consumes the next token if it is s.
func (p *parser) accept(s string) bool {
	if p.is(s) {
		p.i++
		return true
	}
	return false
}

func (p *parser) expect(s string) error {
	if !p.accept(s) {
		return p.errorf("expected %q, got %q", s, p.peek().Text)
	}
	return nil
}

// acceptAny consumes the next token if it is one of ops and returns it.
func (p *parser) acceptAny(ops ...string) (string, bool) {
	for _, op := range ops {
		if p.accept(op) {
			return op, true
		}
	}
	return "", false
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Errorf("line %d: "+format, append([]interface{}{p.peek().Line}, args...)...)
}

func (p *parser) ident() (string, error) {
	t := p.next()
	if t.Kind != TokIdent {
		return "", errors.Errorf("line %d: expected identifier, got %q", t.Line, t.Text)
	}
	return t.Text, nil
}

func (p *parser) number(t Token) (Expr, error) {
	v, err := strconv.ParseInt(t.Text, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", t.Line)
	}
	return &Number{v}, nil
}
