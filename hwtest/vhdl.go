// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"strings"

	"github.com/db47h/hdlgen/internal/hdl"
	"github.com/pkg/errors"
)

// VHDL value types
type vkind int

const (
	vBit      vkind = iota // std_logic
	vVec                   // std_logic_vector
	vUnsigned              // numeric_std unsigned
	vSigned                // numeric_std signed
	vBool
	vInt
	vOthers  // (OTHERS => x), sized by its target
	vPattern // literal with don't care elements
)

var vkindNames = [...]string{"std_logic", "std_logic_vector", "unsigned", "signed", "boolean", "integer", "aggregate", "pattern"}

func (k vkind) String() string { return vkindNames[k] }

type vval struct {
	kind  vkind
	width int    // vectors
	bits  uint64 // std_logic and vectors, element 0 of a descending vector is bit 0
	asc   bool   // ascending range: element 0 is the leftmost, most significant bit
	b     bool
	i     int64
	lit   string // vPattern elements, leftmost first
}

func (v *vval) vector() bool { return v.kind == vVec || v.kind == vUnsigned || v.kind == vSigned }

// sint returns the value of a signed vector.
func (v *vval) sint() int64 {
	if v.width < 64 && v.bits&(1<<uint(v.width-1)) != 0 {
		return int64(v.bits | ^mask(v.width))
	}
	return int64(v.bits)
}

// vhdlEval evaluates VHDL expressions with strict typing: conversions between
// std_logic_vector and numeric types must be explicit, and vector widths must
// match.
type vhdlEval struct {
	s *Sim
}

func (e *vhdlEval) assign(a *hdl.Assign, dst *signal) (uint64, error) {
	return e.target(a.Value, dst)
}

// target evaluates x as the value of an assignment to dst. Aggregates and
// conditional branches take their type from dst.
func (e *vhdlEval) target(x hdl.Expr, dst *signal) (uint64, error) {
	switch x := x.(type) {
	case *hdl.Cond:
		c, err := e.eval(x.Cond)
		if err != nil {
			return 0, err
		}
		if c.kind != vBool {
			return 0, errors.Errorf("condition is %s, not boolean", c.kind)
		}
		t, err := e.target(x.Then, dst)
		if err != nil {
			return 0, err
		}
		f, err := e.target(x.Else, dst)
		if err != nil {
			return 0, err
		}
		if c.b {
			return t, nil
		}
		return f, nil
	case *hdl.Others:
		if dst.scalar {
			return 0, errors.Errorf("aggregate assigned to std_logic %s", dst.name)
		}
		v, err := e.eval(x.X)
		if err != nil {
			return 0, err
		}
		if v.kind != vBit {
			return 0, errors.Errorf("aggregate element is %s, not std_logic", v.kind)
		}
		if v.bits != 0 {
			return mask(dst.width), nil
		}
		return 0, nil
	}
	v, err := e.eval(x)
	if err != nil {
		return 0, err
	}
	switch {
	case dst.scalar && v.kind == vBit:
		return v.bits, nil
	case !dst.scalar && v.kind == vVec && v.width == dst.width:
		if v.asc {
			return 0, errors.Errorf("ascending vector assigned to %s", dst.name)
		}
		return v.bits, nil
	case dst.scalar:
		return 0, errors.Errorf("%s assigned to std_logic %s", vdesc(&v), dst.name)
	}
	return 0, errors.Errorf("%s assigned to std_logic_vector(%d) %s", vdesc(&v), dst.width, dst.name)
}

func vdesc(v *vval) string {
	if v.vector() {
		return v.kind.String() + "(" + itoa(v.width) + ")"
	}
	return v.kind.String()
}

func (e *vhdlEval) eval(x hdl.Expr) (vval, error) {
	switch x := x.(type) {
	case *hdl.Ident:
		return e.ident(x.Name)
	case *hdl.Number:
		return vval{kind: vInt, i: x.Value}, nil
	case *hdl.Lit:
		return literal(x)
	case *hdl.Unary:
		return e.unary(x)
	case *hdl.Binary:
		return e.binary(x)
	case *hdl.Index:
		return e.index(x)
	case *hdl.Slice:
		return e.slice(x)
	case *hdl.Call:
		return e.call(x)
	case *hdl.Others:
		return vval{}, errors.New("aggregate without a target type")
	case *hdl.Cond:
		return vval{}, errors.New("conditional expression outside of an assignment")
	}
	return vval{}, errors.Errorf("unsupported expression %T", x)
}

func (e *vhdlEval) ident(name string) (vval, error) {
	if sig := e.s.signal(name); sig != nil {
		if sig.scalar {
			return vval{kind: vBit, bits: sig.value}, nil
		}
		return vval{kind: vVec, width: sig.width, bits: sig.value}, nil
	}
	if p := e.s.param(name); p != nil {
		if p.bits == 0 {
			return vval{kind: vInt, i: p.value}, nil
		}
		return vval{kind: vVec, width: p.bits, bits: uint64(p.value), asc: true}, nil
	}
	return vval{}, errors.Errorf("undeclared name %s", name)
}

func literal(x *hdl.Lit) (vval, error) {
	var bits uint64
	for _, c := range x.Bits {
		switch c {
		case '0', '1':
			bits = bits<<1 | uint64(c-'0')
		case '-':
			return vval{kind: vPattern, width: len(x.Bits), lit: x.Bits}, nil
		default:
			return vval{}, errors.Errorf("invalid literal element %q", c)
		}
	}
	if x.Scalar {
		return vval{kind: vBit, bits: bits}, nil
	}
	if len(x.Bits) > maxBits {
		return vval{}, errors.Errorf("literal wider than %d bits", maxBits)
	}
	return vval{kind: vVec, width: len(x.Bits), bits: bits}, nil
}

func (e *vhdlEval) unary(x *hdl.Unary) (vval, error) {
	v, err := e.eval(x.X)
	if err != nil {
		return v, err
	}
	switch {
	case x.Op == "-" && v.kind == vInt:
		v.i = -v.i
	case x.Op == "NOT" && v.kind == vBit:
		v.bits ^= 1
	case x.Op == "NOT" && v.vector():
		v.bits = ^v.bits & mask(v.width)
	case x.Op == "NOT" && v.kind == vBool:
		v.b = !v.b
	default:
		return v, errors.Errorf("no operator %s for %s", x.Op, v.kind)
	}
	return v, nil
}

func (e *vhdlEval) binary(x *hdl.Binary) (vval, error) {
	a, err := e.eval(x.X)
	if err != nil {
		return a, err
	}
	b, err := e.eval(x.Y)
	if err != nil {
		return b, err
	}
	switch x.Op {
	case "AND", "OR", "XOR", "NAND", "NOR", "XNOR":
		return logical(x.Op, a, b)
	case "&":
		return concat(a, b)
	case "=", "/=", "<", ">", ">=":
		return relational(x.Op, a, b)
	}
	return arith(x.Op, a, b)
}

func logical(op string, a, b vval) (vval, error) {
	if a.kind != b.kind || a.vector() && a.width != b.width {
		return a, errors.Errorf("operator %s on %s and %s", op, vdesc(&a), vdesc(&b))
	}
	if a.asc != b.asc {
		return a, errors.Errorf("operator %s on vectors of opposite directions", op)
	}
	switch a.kind {
	case vBool:
		switch op {
		case "AND":
			a.b = a.b && b.b
		case "OR":
			a.b = a.b || b.b
		case "XOR":
			a.b = a.b != b.b
		default:
			return a, errors.Errorf("operator %s on boolean", op)
		}
		return a, nil
	case vBit, vVec, vUnsigned, vSigned:
	default:
		return a, errors.Errorf("operator %s on %s", op, a.kind)
	}
	m := uint64(1)
	if a.vector() {
		m = mask(a.width)
	}
	switch op {
	case "AND", "NAND":
		a.bits &= b.bits
	case "OR", "NOR":
		a.bits |= b.bits
	default:
		a.bits ^= b.bits
	}
	if strings.HasPrefix(op, "N") || op == "XNOR" {
		a.bits = ^a.bits
	}
	a.bits &= m
	return a, nil
}

func concat(a, b vval) (vval, error) {
	for _, v := range []*vval{&a, &b} {
		switch {
		case v.kind == vBit:
			v.width = 1
		case v.kind == vVec && !v.asc:
		default:
			return vval{}, errors.Errorf("concatenation of %s", vdesc(v))
		}
	}
	w := a.width + b.width
	if w > maxBits {
		return vval{}, errors.Errorf("concatenation wider than %d bits", maxBits)
	}
	return vval{kind: vVec, width: w, bits: a.bits<<uint(b.width) | b.bits}, nil
}

func relational(op string, a, b vval) (vval, error) {
	var c int
	switch {
	case a.kind == vInt && b.kind == vInt:
		c = cmp(a.i, b.i)
	case (a.kind == vUnsigned || a.kind == vSigned) && b.kind == vInt:
		if a.kind == vSigned {
			c = cmp(a.sint(), b.i)
		} else {
			c = cmp(int64(a.bits), b.i)
		}
	case a.kind == vUnsigned && b.kind == vUnsigned:
		c = ucmp(a.bits, b.bits)
	case a.kind == vSigned && b.kind == vSigned:
		c = cmp(a.sint(), b.sint())
	case op != "=" && op != "/=":
		return vval{}, errors.Errorf("operator %s on %s and %s", op, vdesc(&a), vdesc(&b))
	case a.kind == vBit && b.kind == vBit,
		a.kind == vVec && b.kind == vVec && a.width == b.width,
		a.kind == vBool && b.kind == vBool && a.b == b.b:
		c = ucmp(a.bits, b.bits)
	case a.kind == vBool && b.kind == vBool:
		c = 1
	default:
		return vval{}, errors.Errorf("operator %s on %s and %s", op, vdesc(&a), vdesc(&b))
	}
	r := vval{kind: vBool}
	switch op {
	case "=":
		r.b = c == 0
	case "/=":
		r.b = c != 0
	case "<":
		r.b = c < 0
	case ">":
		r.b = c > 0
	default:
		r.b = c >= 0
	}
	return r, nil
}

func cmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func ucmp(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func arith(op string, a, b vval) (vval, error) {
	if a.kind == vInt && b.kind == vInt {
		switch op {
		case "+":
			a.i += b.i
		case "-":
			a.i -= b.i
		case "*":
			a.i *= b.i
		case "/", "REM":
			if b.i == 0 {
				return a, errors.New("division by zero")
			}
			if op == "/" {
				a.i /= b.i
			} else {
				a.i %= b.i
			}
		default:
			return a, errors.Errorf("operator %s on integers", op)
		}
		return a, nil
	}
	if b.kind == vInt && (op == "+" || op == "-") {
		// numeric_std resizes the integer operand to the vector width
		b = vval{kind: a.kind, width: a.width, bits: uint64(b.i) & mask(a.width)}
	}
	if a.kind != b.kind || a.kind != vUnsigned && a.kind != vSigned {
		return a, errors.Errorf("operator %s on %s and %s", op, vdesc(&a), vdesc(&b))
	}
	r := vval{kind: a.kind}
	sgn := a.kind == vSigned
	switch op {
	case "+", "-":
		r.width = max(a.width, b.width)
		x, y := a.bits, b.bits
		if sgn {
			x, y = uint64(a.sint()), uint64(b.sint())
		}
		if op == "+" {
			r.bits = x + y
		} else {
			r.bits = x - y
		}
	case "*":
		r.width = a.width + b.width
		if r.width > maxBits {
			return r, errors.Errorf("product wider than %d bits", maxBits)
		}
		if sgn {
			r.bits = uint64(a.sint() * b.sint())
		} else {
			r.bits = a.bits * b.bits
		}
	case "/", "REM":
		if b.bits == 0 {
			return r, errors.New("division by zero")
		}
		r.width = a.width
		if op == "REM" {
			r.width = b.width
		}
		switch {
		case sgn && op == "/":
			r.bits = uint64(a.sint() / b.sint())
		case sgn:
			r.bits = uint64(a.sint() % b.sint())
		case op == "/":
			r.bits = a.bits / b.bits
		default:
			r.bits = a.bits % b.bits
		}
	default:
		return r, errors.Errorf("operator %s on %s", op, a.kind)
	}
	r.bits &= mask(r.width)
	return r, nil
}

func (e *vhdlEval) int(x hdl.Expr) (int, error) {
	v, err := e.eval(x)
	if err != nil {
		return 0, err
	}
	if v.kind != vInt {
		return 0, errors.Errorf("index is %s, not integer", v.kind)
	}
	return int(v.i), nil
}

// array returns the value of the vector named by x, for indexing.
func (e *vhdlEval) array(x hdl.Expr) (vval, error) {
	id, ok := x.(*hdl.Ident)
	if !ok {
		return vval{}, errors.New("only names can be indexed")
	}
	v, err := e.ident(id.Name)
	if err != nil {
		return v, err
	}
	if v.kind != vVec {
		return v, errors.Errorf("%s %s cannot be indexed", v.kind, id.Name)
	}
	return v, nil
}

func (e *vhdlEval) index(x *hdl.Index) (vval, error) {
	v, err := e.array(x.X)
	if err != nil {
		return v, err
	}
	i, err := e.int(x.I)
	if err != nil {
		return v, err
	}
	if i < 0 || i >= v.width {
		return v, errors.Errorf("index %d out of range [0, %d]", i, v.width-1)
	}
	if v.asc {
		i = v.width - 1 - i
	}
	return vval{kind: vBit, bits: v.bits >> uint(i) & 1}, nil
}

func (e *vhdlEval) slice(x *hdl.Slice) (vval, error) {
	v, err := e.array(x.X)
	if err != nil {
		return v, err
	}
	if v.asc {
		return v, errors.New("DOWNTO slice of an ascending vector")
	}
	hi, err := e.int(x.Hi)
	if err != nil {
		return v, err
	}
	lo, err := e.int(x.Lo)
	if err != nil {
		return v, err
	}
	if lo < 0 || hi >= v.width || hi < lo {
		return v, errors.Errorf("slice (%d DOWNTO %d) out of range (%d DOWNTO 0)", hi, lo, v.width-1)
	}
	w := hi - lo + 1
	return vval{kind: vVec, width: w, bits: v.bits >> uint(lo) & mask(w)}, nil
}

func (e *vhdlEval) call(x *hdl.Call) (vval, error) {
	var args []vval
	for _, a := range x.Args {
		v, err := e.eval(a)
		if err != nil {
			return v, err
		}
		args = append(args, v)
	}
	if x.Fun == "std_match" {
		if len(args) != 2 {
			return vval{}, errors.New("std_match takes 2 arguments")
		}
		return match(args[0], args[1])
	}
	if len(args) != 1 {
		return vval{}, errors.Errorf("%s takes 1 argument", x.Fun)
	}
	v := args[0]
	if !v.vector() || v.asc {
		return v, errors.Errorf("no conversion of %s to %s", vdesc(&v), x.Fun)
	}
	switch x.Fun {
	case "unsigned":
		v.kind = vUnsigned
	case "signed":
		v.kind = vSigned
	default:
		v.kind = vVec
	}
	return v, nil
}

func match(v, p vval) (vval, error) {
	if v.kind != vBit && (v.kind != vVec || v.asc) {
		return vval{}, errors.Errorf("std_match on %s", vdesc(&v))
	}
	w := 1
	if v.kind == vVec {
		w = v.width
	}
	var pat string
	switch p.kind {
	case vPattern:
		pat = p.lit
	case vBit:
		pat = string('0' + byte(p.bits))
	case vVec:
		pat = bitString(p.bits, p.width)
	default:
		return vval{}, errors.Errorf("std_match pattern is %s", p.kind)
	}
	if len(pat) != w {
		return vval{}, errors.Errorf("std_match of %d bits with a %d bits pattern", w, len(pat))
	}
	r := vval{kind: vBool, b: true}
	for i := 0; i < w; i++ {
		bit := byte('0' + v.bits>>uint(w-1-i)&1)
		if pat[i] != '-' && pat[i] != bit {
			r.b = false
		}
	}
	return r, nil
}
