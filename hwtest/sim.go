// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"strings"

	"github.com/db47h/hdlgen"
	"github.com/db47h/hdlgen/internal/hdl"
	"github.com/pkg/errors"
)

// maxBits is the width of the widest vector the evaluators support.
const maxBits = 64

func mask(w int) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(w) - 1
}

// signal is a port or wire.
type signal struct {
	name   string
	width  int
	scalar bool
	input  bool
	output bool
	value  uint64
}

// param is a generic parameter.
type param struct {
	name  string
	bits  int // 0 for integers
	value int64
}

// evaluator computes the value assigned by one statement.
type evaluator interface {
	assign(a *hdl.Assign, dst *signal) (uint64, error)
}

// A Sim simulates the behavior of a generated module by evaluating its
// statements.
//
type Sim struct {
	lang   hdlgen.Language
	name   string
	ins    []*signal
	outs   []*signal
	sigs   map[string]*signal
	params map[string]*param
	stmts  []*hdl.Assign // in evaluation order
	eval   evaluator
}

// Simulate parses the behavior of g written in language l and returns a
// simulator for it. It checks that the module text can be written, that
// every statement assigns a declared output or wire exactly once, that every
// output and wire is driven and that there are no combinational loops.
//
func Simulate(g hdlgen.Generator, l hdlgen.Language) (*Sim, error) {
	name := g.ModuleName()
	if err := hdlgen.WriteModule(hdlgen.NewDocument(l), g); err != nil {
		return nil, errors.Wrap(err, name)
	}
	d := hdlgen.NewDocument(l)
	if err := g.Behavior(d); err != nil {
		return nil, errors.Wrap(err, name)
	}
	stmts, err := hdl.Parse(l, d.String())
	if err != nil {
		return nil, errors.Wrapf(err, "%s (%s)", name, l)
	}
	s := &Sim{
		lang:   l,
		name:   name,
		sigs:   make(map[string]*signal),
		params: make(map[string]*param),
	}
	vals := g.GenericValues()
	for _, p := range g.Generics() {
		s.params[s.key(p.Name)] = &param{name: p.Name, bits: p.Bits, value: int64(vals[p.ID])}
	}
	add := func(ds hdlgen.Decls, in, out bool) ([]*signal, error) {
		var ss []*signal
		for _, d := range ds {
			w, err := hdlgen.Bits(d.Width, vals)
			if err != nil {
				return nil, err
			}
			if w > maxBits {
				return nil, errors.Errorf("%s: %s is %d bits wide, maximum is %d", name, d.Name, w, maxBits)
			}
			key := s.key(d.Name)
			if s.sigs[key] != nil || s.params[key] != nil {
				return nil, errors.Errorf("%s: duplicate name %s", name, d.Name)
			}
			sig := &signal{name: d.Name, width: w, scalar: hdlgen.Scalar(d.Width), input: in, output: out}
			s.sigs[key] = sig
			ss = append(ss, sig)
		}
		return ss, nil
	}
	if s.ins, err = add(g.Inputs(), true, false); err != nil {
		return nil, err
	}
	if s.outs, err = add(g.Outputs(), false, true); err != nil {
		return nil, err
	}
	if _, err = add(g.Wires(), false, false); err != nil {
		return nil, err
	}
	if err = s.sort(stmts); err != nil {
		return nil, errors.Wrapf(err, "%s (%s)", name, l)
	}
	if l == hdlgen.VHDL {
		s.eval = &vhdlEval{s}
	} else {
		s.eval = &verilogEval{s}
	}
	return s, nil
}

// key returns the lookup key of a name. VHDL names are case insensitive.
func (s *Sim) key(name string) string {
	if s.lang == hdlgen.VHDL {
		return strings.ToLower(name)
	}
	return name
}

func (s *Sim) signal(name string) *signal { return s.sigs[s.key(name)] }
func (s *Sim) param(name string) *param   { return s.params[s.key(name)] }

// refs appends the names referenced by e to ns.
func refs(e hdl.Expr, ns []string) []string {
	switch e := e.(type) {
	case *hdl.Ident:
		ns = append(ns, e.Name)
	case *hdl.Unary:
		ns = refs(e.X, ns)
	case *hdl.Binary:
		ns = refs(e.Y, refs(e.X, ns))
	case *hdl.Index:
		ns = refs(e.I, refs(e.X, ns))
	case *hdl.Slice:
		ns = refs(e.Lo, refs(e.Hi, refs(e.X, ns)))
	case *hdl.Call:
		for _, a := range e.Args {
			ns = refs(a, ns)
		}
	case *hdl.Concat:
		for _, p := range e.Parts {
			ns = refs(p, ns)
		}
	case *hdl.Repeat:
		ns = refs(e.X, refs(e.Count, ns))
	case *hdl.Others:
		ns = refs(e.X, ns)
	case *hdl.Cond:
		ns = refs(e.Else, refs(e.Then, refs(e.Cond, ns)))
	}
	return ns
}

// sort checks the drivers of all signals and sorts the statements so that
// each one comes after the statements driving the signals it reads.
func (s *Sim) sort(stmts []*hdl.Assign) error {
	driver := make(map[*signal]*hdl.Assign)
	for _, a := range stmts {
		sig := s.signal(a.Target)
		switch {
		case sig == nil:
			return errors.Errorf("line %d: assignment to undeclared signal %s", a.Line, a.Target)
		case sig.input:
			return errors.Errorf("line %d: assignment to input %s", a.Line, a.Target)
		case driver[sig] != nil:
			return errors.Errorf("line %d: %s has multiple drivers", a.Line, a.Target)
		}
		driver[sig] = a
	}
	for _, sig := range s.sigs {
		if !sig.input && driver[sig] == nil {
			return errors.Errorf("%s is not driven", sig.name)
		}
	}

	const (
		todo = iota
		visiting
		done
	)
	state := make(map[*hdl.Assign]int)
	var visit func(a *hdl.Assign) error
	visit = func(a *hdl.Assign) error {
		switch state[a] {
		case visiting:
			return errors.Errorf("line %d: combinational loop through %s", a.Line, a.Target)
		case done:
			return nil
		}
		state[a] = visiting
		for _, n := range refs(a.Value, nil) {
			sig := s.signal(n)
			if sig == nil {
				if s.param(n) == nil {
					return errors.Errorf("line %d: undeclared name %s", a.Line, n)
				}
				continue
			}
			if sig.output && s.lang == hdlgen.VHDL {
				return errors.Errorf("line %d: output port %s cannot be read", a.Line, n)
			}
			if d := driver[sig]; d != nil {
				if err := visit(d); err != nil {
					return err
				}
			}
		}
		state[a] = done
		s.stmts = append(s.stmts, a)
		return nil
	}
	for _, a := range stmts {
		if err := visit(a); err != nil {
			return err
		}
	}
	return nil
}

// Inputs returns the widths of the input ports.
//
func (s *Sim) Inputs() []int { return widths(s.ins) }

// Outputs returns the widths of the output ports.
//
func (s *Sim) Outputs() []int { return widths(s.outs) }

func widths(ss []*signal) []int {
	w := make([]int, len(ss))
	for i, s := range ss {
		w[i] = s.width
	}
	return w
}

// Eval sets the input ports to the given values, in port order, and returns
// the values of the output ports.
//
func (s *Sim) Eval(in []uint64) ([]uint64, error) {
	if len(in) != len(s.ins) {
		return nil, errors.Errorf("%s: got %d input values for %d inputs", s.name, len(in), len(s.ins))
	}
	for i, sig := range s.ins {
		sig.value = in[i] & mask(sig.width)
	}
	for _, a := range s.stmts {
		dst := s.signal(a.Target)
		v, err := s.eval.assign(a, dst)
		if err != nil {
			return nil, errors.Wrapf(err, "%s (%s) line %d", s.name, s.lang, a.Line)
		}
		dst.value = v
	}
	out := make([]uint64, len(s.outs))
	for i, sig := range s.outs {
		out[i] = sig.value
	}
	return out, nil
}
