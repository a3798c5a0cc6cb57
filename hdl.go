// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Language is a target hardware description language.
//
type Language int

// Supported languages.
//
const (
	VHDL Language = iota
	Verilog
)

// Languages lists all supported languages.
//
var Languages = []Language{VHDL, Verilog}

func (l Language) String() string {
	switch l {
	case VHDL:
		return "VHDL"
	case Verilog:
		return "Verilog"
	}
	return "Language(" + strconv.Itoa(int(l)) + ")"
}

// Ext returns the file name extension used for l.
//
func (l Language) Ext() string {
	if l == Verilog {
		return ".v"
	}
	return ".vhd"
}

// ParseLanguage returns the language named s (case insensitive).
//
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(s) {
	case "vhdl":
		return VHDL, nil
	case "verilog":
		return Verilog, nil
	}
	return 0, errors.Wrapf(ErrConfig, "unknown language %q", s)
}

func bitString(v uint64, n int) string {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		if v&(1<<uint(n-1-i)) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// Bit returns the literal of a single bit.
//
func (l Language) Bit(b bool) string {
	switch {
	case l == Verilog && b:
		return "1'b1"
	case l == Verilog:
		return "1'b0"
	case b:
		return "'1'"
	}
	return "'0'"
}

// Bits returns the literal for the n low bits of v. A single bit is formatted
// as a scalar.
//
func (l Language) Bits(v uint64, n int) string {
	if n == 1 {
		return l.Bit(v&1 != 0)
	}
	if l == Verilog {
		return strconv.Itoa(n) + "'b" + bitString(v, n)
	}
	return `"` + bitString(v, n) + `"`
}

// Pattern returns a VHDL bit-pattern literal where '-' marks don't-care
// positions. p is written most significant bit first.
//
func (l Language) Pattern(p string) string {
	if len(p) == 1 {
		return "'" + p + "'"
	}
	return `"` + p + `"`
}

// Replicate returns a value made of n copies of the bit expression bit, where
// n is a literal or a generic name. In VHDL, the result is an aggregate and
// must be used as the whole right-hand side of an assignment or of a
// conditional branch.
//
func (l Language) Replicate(bit, n string) string {
	if n == "1" {
		return bit
	}
	if l == Verilog {
		return "{" + n + "{" + bit + "}}"
	}
	return "(OTHERS => " + bit + ")"
}

// Zeros returns an all-zero value of n bits (see Replicate).
//
func (l Language) Zeros(n string) string {
	return l.Replicate(l.Bit(false), n)
}

// Not returns the bitwise complement of x.
//
func (l Language) Not(x string) string {
	if l == Verilog {
		return "~(" + x + ")"
	}
	return "NOT(" + x + ")"
}

// An Op is a bitwise binary operator.
//
type Op int

// Bitwise operators.
//
const (
	And Op = iota
	Or
	Xor
)

// Join folds xs from left to right with operator op.
//
func (l Language) Join(op Op, xs ...string) string {
	var sep string
	switch {
	case l == Verilog && op == And:
		sep = " & "
	case l == Verilog && op == Or:
		sep = " | "
	case l == Verilog:
		sep = " ^ "
	case op == And:
		sep = " AND "
	case op == Or:
		sep = " OR "
	default:
		sep = " XOR "
	}
	return strings.Join(xs, sep)
}

// Concat returns the concatenation of xs, most significant part first.
//
func (l Language) Concat(xs ...string) string {
	if len(xs) == 1 {
		return xs[0]
	}
	if l == Verilog {
		return "{" + strings.Join(xs, ", ") + "}"
	}
	return strings.Join(xs, " & ")
}

// Index returns bit i of vector x.
//
func (l Language) Index(x, i string) string {
	if l == Verilog {
		return x + "[" + i + "]"
	}
	return x + "(" + i + ")"
}

// Slice returns bits hi down to lo of vector x.
//
func (l Language) Slice(x, hi, lo string) string {
	if l == Verilog {
		return x + "[" + hi + ":" + lo + "]"
	}
	return x + "(" + hi + " DOWNTO " + lo + ")"
}

// Arith returns the vector result of folding xs with the arithmetic operator
// op, one of "+", "*", "/" or "rem". Operands are read as unsigned or two's
// complement numbers depending on signed. The operand "1" is the number one.
//
func (l Language) Arith(op string, signed bool, xs ...string) string {
	sep := " " + op + " "
	if op == "rem" {
		sep = " REM "
		if l == Verilog {
			sep = " % "
		}
	}
	cast := "unsigned"
	if signed {
		cast = "signed"
	}
	ops := make([]string, len(xs))
	for i, x := range xs {
		switch {
		case l == Verilog && x == "1":
			ops[i] = "1'b1"
		case l == Verilog && signed:
			ops[i] = "$signed(" + x + ")"
		case l == Verilog || x == "1":
			ops[i] = x
		default:
			ops[i] = cast + "(" + x + ")"
		}
	}
	if l == Verilog {
		return strings.Join(ops, sep)
	}
	return "std_logic_vector(" + strings.Join(ops, sep) + ")"
}

// Sum returns the vector sum of xs (see Arith).
//
func (l Language) Sum(signed bool, xs ...string) string {
	return l.Arith("+", signed, xs...)
}

// Compare returns the condition "a op b" where op is one of "<", ">" or "="
// and a, b are read as unsigned or two's complement numbers.
//
func (l Language) Compare(op string, signed bool, a, b string) string {
	if l == Verilog {
		if op == "=" {
			op = "=="
		}
		if signed {
			a, b = "$signed("+a+")", "$signed("+b+")"
		}
		return a + " " + op + " " + b
	}
	cast := "unsigned"
	if signed {
		cast = "signed"
	}
	return cast + "(" + a + ") " + op + " " + cast + "(" + b + ")"
}

// IsSet returns the condition "bit x is 1".
//
func (l Language) IsSet(x string) string {
	if l == Verilog {
		return x + " == 1'b1"
	}
	return x + " = '1'"
}

// IsClear returns the condition "bit x is 0".
//
func (l Language) IsClear(x string) string {
	if l == Verilog {
		return x + " == 1'b0"
	}
	return x + " = '0'"
}

// Equals returns the condition "integer x equals v".
//
func (l Language) Equals(x string, v int) string {
	if l == Verilog {
		return x + " == " + strconv.Itoa(v)
	}
	return x + " = " + strconv.Itoa(v)
}

// Any returns the disjunction of the conditions cs.
//
func (l Language) Any(cs ...string) string {
	if len(cs) == 1 {
		return cs[0]
	}
	if l == Verilog {
		return "(" + strings.Join(cs, ") || (") + ")"
	}
	return strings.Join(cs, " OR ")
}

// A Case is one guarded branch of a conditional assignment.
//
type Case struct {
	When  string
	Value string
}

const indentUnit = "   "

// Document accumulates HDL source text for one target language.
//
type Document struct {
	Lang   Language
	lines  []string
	indent int
}

// NewDocument returns an empty document for language l.
//
func NewDocument(l Language) *Document {
	return &Document{Lang: l}
}

// Indent increases the indentation of subsequent lines.
//
func (d *Document) Indent() { d.indent++ }

// Dedent decreases the indentation of subsequent lines.
//
func (d *Document) Dedent() {
	if d.indent > 0 {
		d.indent--
	}
}

// Line appends a line of text at the current indentation.
//
func (d *Document) Line(text string) {
	d.lines = append(d.lines, strings.Repeat(indentUnit, d.indent)+text)
}

// Blank appends an empty line unless the document is empty or already ends
// with one.
//
func (d *Document) Blank() {
	if n := len(d.lines); n > 0 && d.lines[n-1] != "" {
		d.lines = append(d.lines, "")
	}
}

// Comment appends a comment line.
//
func (d *Document) Comment(text string) {
	if d.Lang == Verilog {
		d.Line("// " + text)
		return
	}
	d.Line("-- " + text)
}

// Assign appends a continuous assignment of rhs to lhs.
//
func (d *Document) Assign(lhs, rhs string) {
	if d.Lang == Verilog {
		d.Line("assign " + lhs + " = " + rhs + ";")
		return
	}
	d.Line(lhs + " <= " + rhs + ";")
}

// Select appends a priority-ordered conditional assignment: lhs takes the
// value of the first case whose condition holds, or dflt if none does.
// Continuation lines are aligned on the first value.
//
func (d *Document) Select(lhs string, cases []Case, dflt string) {
	if len(cases) == 0 {
		d.Assign(lhs, dflt)
		return
	}
	var head string
	if d.Lang == Verilog {
		head = "assign " + lhs + " = "
	} else {
		head = lhs + " <= "
	}
	pad := strings.Repeat(" ", len(head))
	for i, c := range cases {
		var s string
		if d.Lang == Verilog {
			s = "(" + c.When + ") ? " + c.Value + " :"
		} else {
			s = c.Value + " WHEN " + c.When + " ELSE"
		}
		if i == 0 {
			d.Line(head + s)
		} else {
			d.Line(pad + s)
		}
	}
	d.Line(pad + dflt + ";")
}

// Lines returns the lines of text in d.
//
func (d *Document) Lines() []string {
	return d.lines
}

// String returns the contents of d, one line per row.
//
func (d *Document) String() string {
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes the contents of d to w.
//
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}
