// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// A Generator is the blueprint of one HDL module, built for a given language
// and attribute set.
//
type Generator interface {
	// ModuleName returns the module name. Two generators with the same
	// module name must produce the same module text; everything baked in at
	// generation time (sign mode, stage count, ...) is part of the name.
	ModuleName() string
	// Inputs returns the input ports.
	Inputs() Decls
	// Outputs returns the output ports.
	Outputs() Decls
	// Wires returns the internal wires.
	Wires() Decls
	// Generics returns the generic parameters of the module.
	Generics() []Generic
	// GenericValues returns the generic values for this instance.
	GenericValues() Values
	// PortMap returns the HDL expression connected to each port of c.
	PortMap(nl Netlist, c *Component) (map[int]string, error)
	// Behavior writes the module's statements to d. Statements only
	// reference declared ports, wires and generics.
	Behavior(d *Document) error
}

// Spec implements everything in Generator but Behavior. Component families
// embed a Spec and add their Behavior method.
//
type Spec struct {
	Name   string
	Lang   Language
	In     Decls
	Out    Decls
	Wire   Decls
	Params []Generic
	Vals   Values
}

// ModuleName implements Generator.
//
func (s *Spec) ModuleName() string { return s.Name }

// Inputs implements Generator.
//
func (s *Spec) Inputs() Decls { return s.In }

// Outputs implements Generator.
//
func (s *Spec) Outputs() Decls { return s.Out }

// Wires implements Generator.
//
func (s *Spec) Wires() Decls { return s.Wire }

// Generics implements Generator.
//
func (s *Spec) Generics() []Generic { return s.Params }

// GenericValues implements Generator.
//
func (s *Spec) GenericValues() Values { return s.Vals }

// Param declares a generic parameter with its value for this instance.
//
func (s *Spec) Param(id ParamID, name string, bits int, val int) {
	if s.Vals == nil {
		s.Vals = make(Values)
	}
	s.Params = append(s.Params, Generic{id, name, bits})
	s.Vals[id] = val
}

// PortMap implements Generator.
//
func (s *Spec) PortMap(nl Netlist, c *Component) (map[int]string, error) {
	n := len(s.In) + len(s.Out)
	for idx := range c.Connections {
		if idx < 0 || idx >= n {
			return nil, errors.Errorf("invalid port index %d for %s", idx, s.Name)
		}
	}
	m := make(map[int]string, n)
	for i := 0; i < n; i++ {
		var d Decl
		out := i >= len(s.In)
		if out {
			d = s.Out[i-len(s.In)]
		} else {
			d = s.In[i]
		}
		bits, err := Bits(d.Width, s.Vals)
		if err != nil {
			return nil, errors.Wrap(err, d.Name)
		}
		sig, err := s.Lang.Signal(nl.Net(c, i), bits, out)
		if err != nil {
			return nil, errors.Wrap(err, s.Name+"."+d.Name)
		}
		m[i] = sig
	}
	return m, nil
}

// A Family builds generators for one component type.
//
type Family struct {
	Name string
	// Supports reports whether the family can be generated for l with
	// attributes a. A nil Supports accepts all combinations.
	Supports func(l Language, a AttributeSet) bool
	// New builds a generator. It is only called for supported combinations.
	New func(l Language, a AttributeSet) (Generator, error)
}

// Generator returns a new generator of family f. It fails if the combination
// of language and attributes is not supported or if the generator breaks the
// generic contract.
//
func (f *Family) Generator(l Language, a AttributeSet) (Generator, error) {
	if f.Supports != nil && !f.Supports(l, a) {
		return nil, errors.Wrapf(ErrUnsupported, "%s in %s", f.Name, l)
	}
	g, err := f.New(l, a)
	if err != nil {
		return nil, errors.Wrap(err, f.Name)
	}
	if err = CheckGenerics(g.Generics(), g.GenericValues()); err != nil {
		return nil, errors.Wrap(err, f.Name)
	}
	return g, nil
}

// Library maps component types to families.
//
type Library map[string]*Family

// Types returns the component types in l in sorted order.
//
func (l Library) Types() []string {
	ts := make([]string, 0, len(l))
	for t := range l {
		ts = append(ts, t)
	}
	sort.Strings(ts)
	return ts
}

// Lookup returns the family for component type t.
//
func (l Library) Lookup(t string) (*Family, error) {
	f, ok := l[t]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupported, "unknown component type %s", strconv.Quote(t))
	}
	return f, nil
}
