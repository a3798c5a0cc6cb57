// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strings"
)

// functions and type conversions
var vhdlFuncs = map[string]bool{
	"unsigned":         true,
	"signed":           true,
	"std_logic_vector": true,
	"std_match":        true,
}

// target <= value [WHEN cond ELSE value]... ;
func (p *parser) vhdlAssign() (*Assign, error) {
	line := p.peek().Line
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err = p.expect("<="); err != nil {
		return nil, err
	}
	v, err := p.vhdlWaveform()
	if err != nil {
		return nil, err
	}
	if err = p.expect(";"); err != nil {
		return nil, err
	}
	return &Assign{Target: name, Value: v, Line: line}, nil
}

func (p *parser) vhdlWaveform() (Expr, error) {
	v, err := p.vhdlExpr()
	if err != nil {
		return nil, err
	}
	if !p.accept("WHEN") {
		return v, nil
	}
	c, err := p.vhdlExpr()
	if err != nil {
		return nil, err
	}
	if err = p.expect("ELSE"); err != nil {
		return nil, err
	}
	e, err := p.vhdlWaveform()
	if err != nil {
		return nil, err
	}
	return &Cond{Cond: c, Then: v, Else: e}, nil
}

// logical operators
func (p *parser) vhdlExpr() (Expr, error) {
	x, err := p.vhdlRelation()
	if err != nil {
		return nil, err
	}
	prev := ""
	for {
		op, ok := p.acceptAny("AND", "OR", "XOR", "NAND", "NOR", "XNOR")
		if !ok {
			return x, nil
		}
		if prev != "" && prev != op {
			return nil, p.errorf("%s after %s needs parentheses", op, prev)
		}
		prev = op
		y, err := p.vhdlRelation()
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: op, X: x, Y: y}
	}
}

func (p *parser) vhdlRelation() (Expr, error) {
	x, err := p.vhdlSimple()
	if err != nil {
		return nil, err
	}
	// "<=" is only ever an assignment in the statements we parse.
	op, ok := p.acceptAny("=", "/=", "<", ">", ">=")
	if !ok {
		return x, nil
	}
	y, err := p.vhdlSimple()
	if err != nil {
		return nil, err
	}
	return &Binary{Op: op, X: x, Y: y}, nil
}

// adding operators
func (p *parser) vhdlSimple() (Expr, error) {
	x, err := p.vhdlTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptAny("+", "-", "&")
		if !ok {
			return x, nil
		}
		y, err := p.vhdlTerm()
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: op, X: x, Y: y}
	}
}

// multiplying operators
func (p *parser) vhdlTerm() (Expr, error) {
	x, err := p.vhdlFactor()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptAny("*", "/", "REM", "MOD")
		if !ok {
			return x, nil
		}
		y, err := p.vhdlFactor()
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: op, X: x, Y: y}
	}
}

func (p *parser) vhdlFactor() (Expr, error) {
	if p.accept("NOT") {
		x, err := p.vhdlFactor()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: "NOT", X: x}, nil
	}
	return p.vhdlPrimary()
}

func (p *parser) vhdlPrimary() (Expr, error) {
	t := p.peek()
	switch t.Kind {
	case Char:
		p.next()
		return &Lit{Bits: t.Text, Scalar: true}, nil
	case String:
		p.next()
		return &Lit{Bits: t.Text}, nil
	case TokNumber:
		p.next()
		return p.number(t)
	case TokIdent:
		return p.vhdlName()
	}
	if !p.accept("(") {
		return nil, p.errorf("unexpected %q", t.Text)
	}
	var x Expr
	if p.accept("OTHERS") {
		if err := p.expect("=>"); err != nil {
			return nil, err
		}
		v, err := p.vhdlExpr()
		if err != nil {
			return nil, err
		}
		x = &Others{v}
	} else {
		var err error
		if x, err = p.vhdlExpr(); err != nil {
			return nil, err
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return x, nil
}

// name, name(index), name(hi DOWNTO lo) or f(args)
func (p *parser) vhdlName() (Expr, error) {
	name := p.next().Text
	if !p.accept("(") {
		return &Ident{name}, nil
	}
	if fn := strings.ToLower(name); vhdlFuncs[fn] {
		var args []Expr
		for {
			a, err := p.vhdlExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if !p.accept(",") {
				break
			}
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return &Call{Fun: fn, Args: args}, nil
	}
	i, err := p.vhdlExpr()
	if err != nil {
		return nil, err
	}
	var x Expr = &Index{X: &Ident{name}, I: i}
	if p.accept("DOWNTO") {
		lo, err := p.vhdlExpr()
		if err != nil {
			return nil, err
		}
		x = &Slice{X: &Ident{name}, Hi: i, Lo: lo}
	}
	if err = p.expect(")"); err != nil {
		return nil, err
	}
	return x, nil
}
