// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strings"

	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

// Kind is the kind of a token.
//
type Kind int

// Token kinds.
//
const (
	EOF       Kind = iota
	TokIdent       // identifier or keyword
	TokNumber      // unsized decimal integer
	Sized          // Verilog sized literal, Text holds the digits
	Char           // VHDL character literal, Text holds the character
	String         // VHDL bit-string literal, Text holds the characters
	Punct          // operator or punctuation
)

// A Token is a lexical token.
//
type Token struct {
	Kind Kind
	Text string
	Size int // width of Sized tokens
	Line int
}

type lexer struct {
	lang hdlgen.Language
	src  string
	pos  int
	line int
	toks []Token
}

var puncts2 = []string{"<=", ">=", "=>", "/=", "==", "!=", "&&", "||", "<<", ">>"}

const puncts1 = "()[]{},;:&|^~+-*/%?=<>!"

func isLetter(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_' }
func isDigit(c byte) bool  { return '0' <= c && c <= '9' }

// Scan splits src into tokens of language l. The last token is always an EOF
// token.
//
func Scan(l hdlgen.Language, src string) ([]Token, error) {
	lx := &lexer{lang: l, src: src, line: 1}
	for lx.pos < len(src) {
		if err := lx.scan(); err != nil {
			return nil, err
		}
	}
	lx.emit(EOF, "", lx.pos)
	return lx.toks, nil
}

func (lx *lexer) emit(k Kind, text string, end int) {
	lx.toks = append(lx.toks, Token{Kind: k, Text: text, Line: lx.line})
	lx.pos = end
}

func (lx *lexer) errorf(format string, args ...interface{}) error {
	return errors.Errorf("line %d: "+format, append([]interface{}{lx.line}, args...)...)
}

func (lx *lexer) peek(i int) byte {
	if i < len(lx.src) {
		return lx.src[i]
	}
	return 0
}

func (lx *lexer) scan() error {
	src, p := lx.src, lx.pos
	c := src[p]
	switch {
	case c == '\n':
		lx.line++
		lx.pos++
	case c == ' ' || c == '\t' || c == '\r':
		lx.pos++
	case lx.lang == hdlgen.VHDL && c == '-' && lx.peek(p+1) == '-',
		lx.lang == hdlgen.Verilog && c == '/' && lx.peek(p+1) == '/':
		for lx.pos < len(src) && src[lx.pos] != '\n' {
			lx.pos++
		}
	case isLetter(c) || lx.lang == hdlgen.Verilog && c == '$':
		e := p + 1
		for e < len(src) && (isLetter(src[e]) || isDigit(src[e])) {
			e++
		}
		lx.emit(TokIdent, src[p:e], e)
	case isDigit(c):
		e := p + 1
		for e < len(src) && isDigit(src[e]) {
			e++
		}
		if lx.lang == hdlgen.Verilog && lx.peek(e) == '\'' {
			return lx.sized(p, e)
		}
		lx.emit(TokNumber, src[p:e], e)
	case lx.lang == hdlgen.VHDL && c == '\'':
		if lx.peek(p+2) != '\'' {
			return lx.errorf("invalid character literal")
		}
		lx.emit(Char, src[p+1:p+2], p+3)
	case lx.lang == hdlgen.VHDL && c == '"':
		e := strings.IndexByte(src[p+1:], '"')
		if e < 0 {
			return lx.errorf("unterminated string")
		}
		lx.emit(String, src[p+1:p+1+e], p+e+2)
	default:
		for _, s := range puncts2 {
			if strings.HasPrefix(src[p:], s) {
				lx.emit(Punct, s, p+2)
				return nil
			}
		}
		if strings.IndexByte(puncts1, c) < 0 {
			return lx.errorf("unexpected character %q", c)
		}
		lx.emit(Punct, src[p:p+1], p+1)
	}
	return nil
}

// sized scans a Verilog sized binary literal such as 4'b01x0. Size digits
// are src[p:q].
func (lx *lexer) sized(p, q int) error {
	src := lx.src
	n := 0
	for _, d := range src[p:q] {
		n = n*10 + int(d-'0')
	}
	if b := lx.peek(q + 1); b != 'b' && b != 'B' {
		return lx.errorf("unsupported literal base %q", b)
	}
	e := q + 2
	for e < len(src) && strings.IndexByte("01xXzZ?_", src[e]) >= 0 {
		e++
	}
	digits := strings.Replace(src[q+2:e], "_", "", -1)
	if n == 0 || len(digits) == 0 || len(digits) > n {
		return lx.errorf("invalid sized literal %s", src[p:e])
	}
	lx.emit(Sized, digits, e)
	lx.toks[len(lx.toks)-1].Size = n
	return nil
}
