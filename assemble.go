// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Module is the source text of one generated HDL module.
//
type Module struct {
	Name string
	Lang Language
	Text string
}

// FileName returns the file name for m.
//
func (m *Module) FileName() string {
	return m.Name + m.Lang.Ext()
}

// Project is the output of the Assembler.
//
type Project struct {
	// Modules holds one entry per distinct module, in order of first use in
	// the netlist.
	Modules []*Module
	// Instances holds the instantiation text of every component, in netlist
	// order.
	Instances string
}

// An Assembler generates the HDL modules of all components in a Netlist.
//
type Assembler struct {
	Lang Language
	Lib  Library
	// Jobs is the number of components generated concurrently. If less or
	// equal to 0, the value of GOMAXPROCS is used.
	Jobs int
	// Logger, if not nil, receives a debug entry for every generated
	// component.
	Logger logrus.FieldLogger
}

type result struct {
	module string
	text   string
	inst   []string
}

func (a *Assembler) generate(nl Netlist, c *Component) (*result, error) {
	f, err := a.Lib.Lookup(c.Type)
	if err != nil {
		return nil, err
	}
	g, err := f.Generator(a.Lang, c.Attrs)
	if err != nil {
		return nil, err
	}
	ports, err := g.PortMap(nl, c)
	if err != nil {
		return nil, err
	}
	md := NewDocument(a.Lang)
	if err = WriteModule(md, g); err != nil {
		return nil, err
	}
	id := NewDocument(a.Lang)
	id.Indent()
	if err = WriteInstance(id, g, c.Name, ports); err != nil {
		return nil, err
	}
	if a.Logger != nil {
		a.Logger.WithFields(logrus.Fields{
			"component": c.Name,
			"type":      c.Type,
			"module":    g.ModuleName(),
			"lang":      a.Lang.String(),
		}).Debug("component generated")
	}
	return &result{g.ModuleName(), md.String(), id.Lines()}, nil
}

// Assemble generates all components in nl. Components are generated
// concurrently; the result does not depend on scheduling.
//
func (a *Assembler) Assemble(nl Netlist) (*Project, error) {
	cs := nl.Components()
	res := make([]*result, len(cs))
	// VHDL labels are case insensitive.
	names := make(map[string]string, len(cs))
	for _, c := range cs {
		if Reserved(c.Name) {
			return nil, errors.Wrapf(ErrConfig, "component name %s is a reserved word", c.Name)
		}
		if !validName(c.Name) {
			return nil, errors.Wrapf(ErrConfig, "invalid component name %q", c.Name)
		}
		k := strings.ToLower(c.Name)
		if prev, ok := names[k]; ok {
			return nil, errors.Wrapf(ErrConfig, "duplicate component name %s (%s)", c.Name, prev)
		}
		names[k] = c.Name
	}

	jobs := a.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(-1)
	}
	var eg errgroup.Group
	eg.SetLimit(jobs)
	for i, c := range cs {
		i, c := i, c
		eg.Go(func() error {
			r, err := a.generate(nl, c)
			if err != nil {
				return errors.Wrapf(err, "component %s (%s)", c.Name, c.Type)
			}
			res[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	p := new(Project)
	seen := make(map[string]*Module)
	inst := NewDocument(a.Lang)
	for i, r := range res {
		if m, ok := seen[r.module]; ok {
			if m.Text != r.text {
				return nil, errors.Wrapf(ErrGenericContract, "component %s: module %s generated with a different shape", cs[i].Name, r.module)
			}
		} else {
			m = &Module{Name: r.module, Lang: a.Lang, Text: r.text}
			seen[r.module] = m
			p.Modules = append(p.Modules, m)
		}
		inst.Blank()
		inst.lines = append(inst.lines, r.inst...)
	}
	p.Instances = inst.String()
	if a.Logger != nil {
		a.Logger.WithFields(logrus.Fields{
			"components": len(cs),
			"modules":    len(p.Modules),
		}).Info("netlist assembled")
	}
	return p, nil
}
