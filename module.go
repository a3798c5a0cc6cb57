// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"strings"

	"github.com/pkg/errors"
)

// WriteModule writes the complete module generated by g to d: library
// clauses, interface, wire declarations and behavior. Nothing is written if
// g fails.
//
func WriteModule(d *Document, g Generator) error {
	body := NewDocument(d.Lang)
	body.Indent()
	if err := g.Behavior(body); err != nil {
		return errors.Wrap(err, g.ModuleName())
	}
	var hdr *Document
	var err error
	if d.Lang == Verilog {
		hdr, err = verilogModule(g)
	} else {
		hdr, err = vhdlEntity(g)
	}
	if err != nil {
		return errors.Wrap(err, g.ModuleName())
	}
	d.lines = append(d.lines, hdr.lines...)
	d.lines = append(d.lines, body.lines...)
	d.Blank()
	if d.Lang == Verilog {
		d.Line("endmodule")
	} else {
		d.Line("END PlatformIndependent;")
	}
	return nil
}

func pad(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

func maxLen(ds ...Decls) int {
	m := 0
	for _, d := range ds {
		for _, dl := range d {
			if len(dl.Name) > m {
				m = len(dl.Name)
			}
		}
	}
	return m
}

// list writes items as a parenthesized, comma separated list with one item
// per line, the first one following head.
//
func list(d *Document, head string, items []string, tail string) {
	p := strings.Repeat(" ", len(head))
	for i, it := range items {
		s := p
		if i == 0 {
			s = head
		}
		if i < len(items)-1 {
			d.Line(s + it + ",")
		} else {
			d.Line(s + it + tail)
		}
	}
}

func vhdlEntity(g Generator) (*Document, error) {
	d := NewDocument(VHDL)
	name := g.ModuleName()
	gs := g.Generics()
	d.Line("LIBRARY ieee;")
	d.Line("USE ieee.std_logic_1164.all;")
	d.Line("USE ieee.numeric_std.all;")
	d.Blank()
	d.Line("ENTITY " + name + " IS")
	d.Indent()
	if len(gs) > 0 {
		n := 0
		for _, p := range gs {
			if len(p.Name) > n {
				n = len(p.Name)
			}
		}
		items := make([]string, len(gs))
		for i, p := range gs {
			decl := VHDL.GenericDecl(p)
			items[i] = pad(p.Name, n) + decl[len(p.Name):]
		}
		list(d, "GENERIC ( ", items, " );")
	}
	n := maxLen(g.Inputs(), g.Outputs())
	var items []string
	for _, dir := range []struct {
		mode string
		ds   Decls
	}{{"IN ", g.Inputs()}, {"OUT", g.Outputs()}} {
		for _, p := range dir.ds {
			t, err := VHDL.Type(p.Width, gs)
			if err != nil {
				return nil, errors.Wrap(err, p.Name)
			}
			items = append(items, pad(p.Name, n)+" : "+dir.mode+" "+t)
		}
	}
	list(d, "PORT ( ", items, " );")
	d.Dedent()
	d.Line("END ENTITY " + name + ";")
	d.Blank()
	d.Line("ARCHITECTURE PlatformIndependent OF " + name + " IS")
	d.Blank()
	d.Indent()
	n = maxLen(g.Wires())
	for _, w := range g.Wires() {
		t, err := VHDL.Type(w.Width, gs)
		if err != nil {
			return nil, errors.Wrap(err, w.Name)
		}
		d.Line("SIGNAL " + pad(w.Name, n) + " : " + t + ";")
	}
	d.Dedent()
	d.Blank()
	d.Line("BEGIN")
	d.Blank()
	return d, nil
}

func verilogModule(g Generator) (*Document, error) {
	d := NewDocument(Verilog)
	gs := g.Generics()
	ports := append(g.Inputs().Names(), g.Outputs().Names()...)
	list(d, "module "+g.ModuleName()+"( ", ports, " );")
	d.Blank()
	d.Indent()
	for _, p := range gs {
		d.Line(Verilog.GenericDecl(p))
	}
	d.Blank()
	for _, dir := range []struct {
		kw string
		ds Decls
	}{{"input", g.Inputs()}, {"output", g.Outputs()}, {"wire", g.Wires()}} {
		if dir.kw == "wire" {
			d.Blank()
		}
		for _, p := range dir.ds {
			r, err := Verilog.Type(p.Width, gs)
			if err != nil {
				return nil, errors.Wrap(err, p.Name)
			}
			if r != "" {
				r += " "
			}
			d.Line(dir.kw + " " + r + p.Name + ";")
		}
	}
	d.Dedent()
	d.Blank()
	return d, nil
}

// WriteInstance writes the instantiation of the module generated by g, labeled
// name, with the generic values of g and the given port connections.
//
func WriteInstance(d *Document, g Generator, name string, ports map[int]string) error {
	decls := append(append(Decls(nil), g.Inputs()...), g.Outputs()...)
	if len(ports) != len(decls) {
		return errors.Errorf("%s: %d port connections for %d ports", name, len(ports), len(decls))
	}
	gs := g.Generics()
	vals := g.GenericValues()
	if d.Lang == Verilog {
		head := g.ModuleName()
		if len(gs) > 0 {
			items := make([]string, len(gs))
			for i, p := range gs {
				items[i] = "." + p.Name + "(" + Verilog.GenericValue(p, vals[p.ID]) + ")"
			}
			list(d, head+" #( ", items, " )")
			d.Indent()
			head = name
		} else {
			head += " " + name
		}
		items := make([]string, len(decls))
		for i, p := range decls {
			items[i] = "." + p.Name + "(" + ports[i] + ")"
		}
		list(d, head+" ( ", items, " );")
		if len(gs) > 0 {
			d.Dedent()
		}
		return nil
	}
	d.Line(name + " : ENTITY work." + g.ModuleName())
	d.Indent()
	if len(gs) > 0 {
		items := make([]string, len(gs))
		for i, p := range gs {
			items[i] = p.Name + " => " + VHDL.GenericValue(p, vals[p.ID])
		}
		list(d, "GENERIC MAP ( ", items, " )")
	}
	items := make([]string, len(decls))
	for i, p := range decls {
		items[i] = p.Name + " => " + ports[i]
	}
	list(d, "PORT MAP ( ", items, " );")
	d.Dedent()
	return nil
}
