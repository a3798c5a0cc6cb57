// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hdlgen turns configured circuit components into synthesizable VHDL or
Verilog source text.

A component family (adder, shifter, gate, ...) is described by a Family. Given
a target Language and an AttributeSet, a Family builds a Generator: the
blueprint of one HDL module. A Generator declares its ports, internal wires and
generic parameters, and writes its behavior into a Document.

Widths are either Fixed or GenericRef. Instances of width 1 use scalar signals
and declare no width generic:

	g, err := lib["Adder"].Generator(hdlgen.VHDL, hdlgen.Attrs(map[string]interface{}{
		hdlgen.AttrWidth: 8,
	}))
	if err != nil {
		// unsupported target or invalid attributes
	}
	d := hdlgen.NewDocument(hdlgen.VHDL)
	err = hdlgen.WriteModule(d, g)

The Assembler drives a whole Netlist: it generates every component, keeps one
module per distinct module name and renders the instantiation of each component
with its generic values and port connections.

Generation is a pure function of the component type, its attributes and its
connections. The sub-package hwlib provides the component families and hwtest
provides tools to check that both backends of a family behave identically.
*/
package hdlgen
