// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

// binary operators by increasing precedence
var verilogOps = [][]string{
	{"||"},
	{"&&"},
	{"|"},
	{"^"},
	{"&"},
	{"==", "!="},
	{"<", "<=", ">", ">="},
	{"<<", ">>"},
	{"+", "-"},
	{"*", "/", "%"},
}

// assign target = expr ;
func (p *parser) verilogAssign() (*Assign, error) {
	line := p.peek().Line
	if err := p.expect("assign"); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if err = p.expect("="); err != nil {
		return nil, err
	}
	v, err := p.verilogExpr()
	if err != nil {
		return nil, err
	}
	if err = p.expect(";"); err != nil {
		return nil, err
	}
	return &Assign{Target: name, Value: v, Line: line}, nil
}

// conditional operator, right associative
func (p *parser) verilogExpr() (Expr, error) {
	c, err := p.verilogBinary(0)
	if err != nil {
		return nil, err
	}
	if !p.accept("?") {
		return c, nil
	}
	t, err := p.verilogExpr()
	if err != nil {
		return nil, err
	}
	if err = p.expect(":"); err != nil {
		return nil, err
	}
	e, err := p.verilogExpr()
	if err != nil {
		return nil, err
	}
	return &Cond{Cond: c, Then: t, Else: e}, nil
}

func (p *parser) verilogBinary(level int) (Expr, error) {
	if level == len(verilogOps) {
		return p.verilogUnary()
	}
	x, err := p.verilogBinary(level + 1)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptAny(verilogOps[level]...)
		if !ok {
			return x, nil
		}
		y, err := p.verilogBinary(level + 1)
		if err != nil {
			return nil, err
		}
		x = &Binary{Op: op, X: x, Y: y}
	}
}

func (p *parser) verilogUnary() (Expr, error) {
	if op, ok := p.acceptAny("~", "!", "-"); ok {
		x, err := p.verilogUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, X: x}, nil
	}
	return p.verilogPrimary()
}

func (p *parser) verilogPrimary() (Expr, error) {
	t := p.peek()
	switch t.Kind {
	case Sized:
		p.next()
		bits := t.Text
		for len(bits) < t.Size {
			bits = "0" + bits
		}
		return &Lit{Bits: bits}, nil
	case TokNumber:
		p.next()
		return p.number(t)
	case TokIdent:
		return p.verilogName()
	}
	switch {
	case p.accept("("):
		x, err := p.verilogExpr()
		if err != nil {
			return nil, err
		}
		if err = p.expect(")"); err != nil {
			return nil, err
		}
		return x, nil
	case p.accept("{"):
		return p.verilogConcat()
	}
	return nil, p.errorf("unexpected %q", t.Text)
}

// {a, b, ...} or {n{a, ...}}, after the opening brace.
func (p *parser) verilogConcat() (Expr, error) {
	first, err := p.verilogExpr()
	if err != nil {
		return nil, err
	}
	if p.accept("{") {
		x, err := p.verilogConcat()
		if err != nil {
			return nil, err
		}
		if err = p.expect("}"); err != nil {
			return nil, err
		}
		return &Repeat{Count: first, X: x}, nil
	}
	c := &Concat{Parts: []Expr{first}}
	for p.accept(",") {
		x, err := p.verilogExpr()
		if err != nil {
			return nil, err
		}
		c.Parts = append(c.Parts, x)
	}
	if err = p.expect("}"); err != nil {
		return nil, err
	}
	return c, nil
}

// name, name[index], name[hi:lo] or $f(args)
func (p *parser) verilogName() (Expr, error) {
	name := p.next().Text
	if name[0] == '$' {
		if err := p.expect("("); err != nil {
			return nil, err
		}
		x, err := p.verilogExpr()
		if err != nil {
			return nil, err
		}
		if err = p.expect(")"); err != nil {
			return nil, err
		}
		return &Call{Fun: name, Args: []Expr{x}}, nil
	}
	if !p.accept("[") {
		return &Ident{name}, nil
	}
	i, err := p.verilogExpr()
	if err != nil {
		return nil, err
	}
	var x Expr = &Index{X: &Ident{name}, I: i}
	if p.accept(":") {
		lo, err := p.verilogExpr()
		if err != nil {
			return nil, err
		}
		x = &Slice{X: &Ident{name}, Hi: i, Lo: lo}
	}
	if err = p.expect("]"); err != nil {
		return nil, err
	}
	return x, nil
}
