// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"github.com/db47h/hdlgen/internal/hdl"
	"github.com/pkg/errors"
)

// integer width of unsized numbers and untyped parameters
const intBits = 32

// verilogEval evaluates Verilog expressions. Operand widths are
// context-determined: operands are extended to the width of the widest
// operand or of the assignment target before the operation is applied, with
// sign extension if all the operands are signed.
type verilogEval struct {
	s *Sim
}

// extend extends the w bits value v to n bits.
func extend(v uint64, w, n int, signed bool) uint64 {
	if signed && w < 64 && v&(1<<uint(w-1)) != 0 {
		v |= ^mask(w)
	}
	return v & mask(n)
}

// toInt returns the w bits value v as an integer.
func toInt(v uint64, w int, signed bool) int64 {
	if signed {
		return int64(extend(v, w, 64, true))
	}
	return int64(v)
}

func (e *verilogEval) assign(a *hdl.Assign, dst *signal) (uint64, error) {
	w, err := e.width(a.Value)
	if err != nil {
		return 0, err
	}
	if dst.width > w {
		w = dst.width
	}
	v, err := e.eval(a.Value, w, e.signed(a.Value))
	if err != nil {
		return 0, err
	}
	return v & mask(dst.width), nil
}

// width returns the self-determined width of x.
func (e *verilogEval) width(x hdl.Expr) (int, error) {
	var w int
	switch x := x.(type) {
	case *hdl.Ident:
		if sig := e.s.signal(x.Name); sig != nil {
			return sig.width, nil
		}
		if p := e.s.param(x.Name); p != nil {
			if p.bits == 0 {
				return intBits, nil
			}
			return p.bits, nil
		}
		return 0, errors.Errorf("undeclared name %s", x.Name)
	case *hdl.Number:
		return intBits, nil
	case *hdl.Lit:
		w = len(x.Bits)
	case *hdl.Index:
		return 1, nil
	case *hdl.Slice:
		hi, err := e.int(x.Hi)
		if err != nil {
			return 0, err
		}
		lo, err := e.int(x.Lo)
		if err != nil {
			return 0, err
		}
		w = int(hi - lo + 1)
	case *hdl.Call:
		if len(x.Args) != 1 {
			return 0, errors.Errorf("%s takes 1 argument", x.Fun)
		}
		return e.width(x.Args[0])
	case *hdl.Concat:
		for _, p := range x.Parts {
			if _, ok := p.(*hdl.Number); ok {
				return 0, errors.New("unsized number in concatenation")
			}
			pw, err := e.width(p)
			if err != nil {
				return 0, err
			}
			w += pw
		}
	case *hdl.Repeat:
		n, err := e.int(x.Count)
		if err != nil {
			return 0, err
		}
		if n < 1 {
			return 0, errors.Errorf("replication count %d", n)
		}
		iw, err := e.width(x.X)
		if err != nil {
			return 0, err
		}
		w = int(n) * iw
	case *hdl.Unary:
		if x.Op == "!" {
			return 1, nil
		}
		return e.width(x.X)
	case *hdl.Binary:
		switch x.Op {
		case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
			return 1, nil
		case "<<", ">>":
			return e.width(x.X)
		}
		return e.maxWidth(x.X, x.Y)
	case *hdl.Cond:
		return e.maxWidth(x.Then, x.Else)
	default:
		return 0, errors.Errorf("unsupported expression %T", x)
	}
	if w < 1 || w > maxBits {
		return 0, errors.Errorf("invalid expression width %d", w)
	}
	return w, nil
}

func (e *verilogEval) maxWidth(x, y hdl.Expr) (int, error) {
	a, err := e.width(x)
	if err != nil {
		return 0, err
	}
	b, err := e.width(y)
	if err != nil {
		return 0, err
	}
	return max(a, b), nil
}

// signed returns true if x is a signed expression.
func (e *verilogEval) signed(x hdl.Expr) bool {
	switch x := x.(type) {
	case *hdl.Ident:
		p := e.s.param(x.Name)
		return p != nil && p.bits == 0
	case *hdl.Number:
		return true
	case *hdl.Call:
		return x.Fun == "$signed"
	case *hdl.Unary:
		return x.Op != "!" && e.signed(x.X)
	case *hdl.Binary:
		switch x.Op {
		case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
			return false
		case "<<", ">>":
			return e.signed(x.X)
		}
		return e.signed(x.X) && e.signed(x.Y)
	case *hdl.Cond:
		return e.signed(x.Then) && e.signed(x.Else)
	}
	return false
}

// self evaluates x in a self-determined context.
func (e *verilogEval) self(x hdl.Expr) (uint64, int, error) {
	w, err := e.width(x)
	if err != nil {
		return 0, 0, err
	}
	v, err := e.eval(x, w, e.signed(x))
	return v, w, err
}

// int evaluates the constant expression x.
func (e *verilogEval) int(x hdl.Expr) (int64, error) {
	v, w, err := e.self(x)
	if err != nil {
		return 0, err
	}
	return toInt(v, w, e.signed(x)), nil
}

// eval evaluates x in a context of width w, where operands are sign extended
// if sgn is true.
func (e *verilogEval) eval(x hdl.Expr, w int, sgn bool) (uint64, error) {
	switch x := x.(type) {
	case *hdl.Number:
		v := uint64(x.Value) & mask(intBits)
		return extend(v, intBits, w, sgn), nil
	case *hdl.Ident, *hdl.Lit, *hdl.Index, *hdl.Slice, *hdl.Concat, *hdl.Repeat:
		v, pw, err := e.primary(x)
		if err != nil {
			return 0, err
		}
		return extend(v, pw, w, sgn), nil
	case *hdl.Call:
		if x.Fun != "$signed" && x.Fun != "$unsigned" {
			return 0, errors.Errorf("unsupported function %s", x.Fun)
		}
		v, pw, err := e.self(x.Args[0])
		if err != nil {
			return 0, err
		}
		return extend(v, pw, w, sgn), nil
	case *hdl.Unary:
		if x.Op == "!" {
			v, _, err := e.self(x.X)
			return b2u(v == 0), err
		}
		v, err := e.eval(x.X, w, sgn)
		if err != nil {
			return 0, err
		}
		if x.Op == "-" {
			return -v & mask(w), nil
		}
		return ^v & mask(w), nil
	case *hdl.Binary:
		return e.binary(x, w, sgn)
	case *hdl.Cond:
		c, _, err := e.self(x.Cond)
		if err != nil {
			return 0, err
		}
		// both branches are evaluated to catch errors in either one
		t, err := e.eval(x.Then, w, sgn)
		if err != nil {
			return 0, err
		}
		f, err := e.eval(x.Else, w, sgn)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return t, nil
		}
		return f, nil
	}
	return 0, errors.Errorf("unsupported expression %T", x)
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// primary returns the self-determined value and width of a primary.
func (e *verilogEval) primary(x hdl.Expr) (uint64, int, error) {
	switch x := x.(type) {
	case *hdl.Ident:
		if sig := e.s.signal(x.Name); sig != nil {
			return sig.value, sig.width, nil
		}
		if p := e.s.param(x.Name); p != nil {
			if p.bits == 0 {
				return uint64(p.value) & mask(intBits), intBits, nil
			}
			return uint64(p.value), p.bits, nil
		}
		return 0, 0, errors.Errorf("undeclared name %s", x.Name)
	case *hdl.Lit:
		var v uint64
		for _, c := range x.Bits {
			if c != '0' && c != '1' {
				return 0, 0, errors.Errorf("unsupported literal bit %q", c)
			}
			v = v<<1 | uint64(c-'0')
		}
		return v, len(x.Bits), nil
	case *hdl.Index:
		v, w, asc, err := e.vector(x.X)
		if err != nil {
			return 0, 0, err
		}
		i, err := e.int(x.I)
		if err != nil {
			return 0, 0, err
		}
		if i < 0 || i >= int64(w) {
			return 0, 0, errors.Errorf("index %d out of range", i)
		}
		if asc {
			i = int64(w) - 1 - i
		}
		return v >> uint(i) & 1, 1, nil
	case *hdl.Slice:
		v, w, asc, err := e.vector(x.X)
		if err != nil {
			return 0, 0, err
		}
		if asc {
			return 0, 0, errors.New("part select of an ascending vector")
		}
		hi, err := e.int(x.Hi)
		if err != nil {
			return 0, 0, err
		}
		lo, err := e.int(x.Lo)
		if err != nil {
			return 0, 0, err
		}
		if lo < 0 || hi >= int64(w) || hi < lo {
			return 0, 0, errors.Errorf("part select [%d:%d] out of range [%d:0]", hi, lo, w-1)
		}
		n := int(hi - lo + 1)
		return v >> uint(lo) & mask(n), n, nil
	case *hdl.Concat:
		var v uint64
		var w int
		for _, p := range x.Parts {
			pv, pw, err := e.self(p)
			if err != nil {
				return 0, 0, err
			}
			v, w = v<<uint(pw)|pv, w+pw
		}
		if w > maxBits {
			return 0, 0, errors.Errorf("concatenation wider than %d bits", maxBits)
		}
		return v, w, nil
	case *hdl.Repeat:
		n, err := e.int(x.Count)
		if err != nil {
			return 0, 0, err
		}
		iv, iw, err := e.self(x.X)
		if err != nil {
			return 0, 0, err
		}
		if n < 1 || n*int64(iw) > maxBits {
			return 0, 0, errors.Errorf("invalid replication count %d", n)
		}
		var v uint64
		for i := int64(0); i < n; i++ {
			v = v<<uint(iw) | iv
		}
		return v, int(n) * iw, nil
	}
	return 0, 0, errors.Errorf("unsupported primary %T", x)
}

// vector returns the value, width and direction of the vector named by x.
func (e *verilogEval) vector(x hdl.Expr) (uint64, int, bool, error) {
	id, ok := x.(*hdl.Ident)
	if !ok {
		return 0, 0, false, errors.New("only names can be indexed")
	}
	if sig := e.s.signal(id.Name); sig != nil {
		return sig.value, sig.width, false, nil
	}
	p := e.s.param(id.Name)
	switch {
	case p == nil:
		return 0, 0, false, errors.Errorf("undeclared name %s", id.Name)
	case p.bits == 0:
		return 0, 0, false, errors.Errorf("integer parameter %s cannot be indexed", id.Name)
	}
	return uint64(p.value), p.bits, true, nil
}

func (e *verilogEval) binary(x *hdl.Binary, w int, sgn bool) (uint64, error) {
	switch x.Op {
	case "==", "!=", "<", "<=", ">", ">=":
		ow, err := e.maxWidth(x.X, x.Y)
		if err != nil {
			return 0, err
		}
		os := e.signed(x.X) && e.signed(x.Y)
		a, err := e.eval(x.X, ow, os)
		if err != nil {
			return 0, err
		}
		b, err := e.eval(x.Y, ow, os)
		if err != nil {
			return 0, err
		}
		c := ucmp(a, b)
		if os {
			c = cmp(toInt(a, ow, true), toInt(b, ow, true))
		}
		var r bool
		switch x.Op {
		case "==":
			r = c == 0
		case "!=":
			r = c != 0
		case "<":
			r = c < 0
		case "<=":
			r = c <= 0
		case ">":
			r = c > 0
		default:
			r = c >= 0
		}
		return b2u(r), nil
	case "&&", "||":
		a, _, err := e.self(x.X)
		if err != nil {
			return 0, err
		}
		b, _, err := e.self(x.Y)
		if err != nil {
			return 0, err
		}
		if x.Op == "&&" {
			return b2u(a != 0 && b != 0), nil
		}
		return b2u(a != 0 || b != 0), nil
	case "<<", ">>":
		a, err := e.eval(x.X, w, sgn)
		if err != nil {
			return 0, err
		}
		n, _, err := e.self(x.Y)
		if err != nil {
			return 0, err
		}
		if n >= 64 {
			return 0, nil
		}
		if x.Op == "<<" {
			return a << n & mask(w), nil
		}
		return a >> n, nil
	}

	a, err := e.eval(x.X, w, sgn)
	if err != nil {
		return 0, err
	}
	b, err := e.eval(x.Y, w, sgn)
	if err != nil {
		return 0, err
	}
	var r uint64
	switch x.Op {
	case "+":
		r = a + b
	case "-":
		r = a - b
	case "*":
		r = a * b
	case "&":
		r = a & b
	case "|":
		r = a | b
	case "^":
		r = a ^ b
	case "/", "%":
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		switch {
		case sgn && x.Op == "/":
			r = uint64(toInt(a, w, true) / toInt(b, w, true))
		case sgn:
			r = uint64(toInt(a, w, true) % toInt(b, w, true))
		case x.Op == "/":
			r = a / b
		default:
			r = a % b
		}
	default:
		return 0, errors.Errorf("unsupported operator %s", x.Op)
	}
	return r & mask(w), nil
}
