// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen_test

import (
	"strings"
	"testing"

	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

const pNrOfBits hdlgen.ParamID = 1

// inverter is a minimal generator used to check module and instance layout.
//
type inverter struct {
	hdlgen.Spec
	fail bool
}

func (g *inverter) Behavior(d *hdlgen.Document) error {
	if g.fail {
		return errors.New("broken behavior")
	}
	d.Assign("Result", d.Lang.Not("DataX"))
	return nil
}

func newInverter(l hdlgen.Language, w int) *inverter {
	g := &inverter{Spec: hdlgen.Spec{Name: "Inverter", Lang: l}}
	g.Param(pNrOfBits, "NrOfBits", 0, w)
	g.In.Add("DataX", hdlgen.GenericRef(pNrOfBits))
	g.Out.Add("Result", hdlgen.GenericRef(pNrOfBits))
	return g
}

func TestWriteModule(t *testing.T) {
	data := []struct {
		l   hdlgen.Language
		exp string
	}{
		{vhdl, `LIBRARY ieee;
USE ieee.std_logic_1164.all;
USE ieee.numeric_std.all;

ENTITY Inverter IS
   GENERIC ( NrOfBits : INTEGER );
   PORT ( DataX  : IN  std_logic_vector( NrOfBits-1 DOWNTO 0 ),
          Result : OUT std_logic_vector( NrOfBits-1 DOWNTO 0 ) );
END ENTITY Inverter;

ARCHITECTURE PlatformIndependent OF Inverter IS

BEGIN

   Result <= NOT(DataX);

END PlatformIndependent;
`},
		{verilog, `module Inverter( DataX,
                 Result );

   parameter NrOfBits = 1;

   input [NrOfBits-1:0] DataX;
   output [NrOfBits-1:0] Result;

   assign Result = ~(DataX);

endmodule
`},
	}
	for _, d := range data {
		t.Run(d.l.String(), func(t *testing.T) {
			doc := hdlgen.NewDocument(d.l)
			if err := hdlgen.WriteModule(doc, newInverter(d.l, 4)); err != nil {
				t.Fatal(err)
			}
			if s := doc.String(); s != d.exp {
				t.Fatalf("expected\n%s\ngot\n%s", d.exp, s)
			}
		})
	}
}

func TestWriteModule_wires(t *testing.T) {
	g := newInverter(vhdl, 4)
	g.Wire.Add("s_tmp", hdlgen.Fixed(1))
	g.Wire.Add("s_x", hdlgen.GenericRef(pNrOfBits))
	doc := hdlgen.NewDocument(vhdl)
	if err := hdlgen.WriteModule(doc, g); err != nil {
		t.Fatal(err)
	}
	s := doc.String()
	for _, l := range []string{
		"   SIGNAL s_tmp : std_logic;\n",
		"   SIGNAL s_x   : std_logic_vector( NrOfBits-1 DOWNTO 0 );\n",
	} {
		if !strings.Contains(s, l) {
			t.Errorf("missing %q in\n%s", l, s)
		}
	}

	g = newInverter(verilog, 4)
	g.Wire.Add("s_tmp", hdlgen.Fixed(1))
	doc = hdlgen.NewDocument(verilog)
	if err := hdlgen.WriteModule(doc, g); err != nil {
		t.Fatal(err)
	}
	if s := doc.String(); !strings.Contains(s, "\n\n   wire s_tmp;\n") {
		t.Errorf("missing wire declaration in\n%s", s)
	}
}

func TestWriteModule_errors(t *testing.T) {
	g := newInverter(vhdl, 4)
	g.fail = true
	doc := hdlgen.NewDocument(vhdl)
	if err := hdlgen.WriteModule(doc, g); err == nil {
		t.Fatal("expected behavior error")
	}
	if len(doc.Lines()) != 0 {
		t.Fatalf("failed module left %d lines in document", len(doc.Lines()))
	}

	g = newInverter(verilog, 4)
	g.Out.Add("Bad", hdlgen.GenericRef(42))
	if err := hdlgen.WriteModule(doc, g); errors.Cause(err) != hdlgen.ErrGenericContract {
		t.Fatalf("expected ErrGenericContract, got %v", err)
	}
}

func TestWriteInstance(t *testing.T) {
	data := []struct {
		l   hdlgen.Language
		exp string
	}{
		{vhdl, `inv0 : ENTITY work.Inverter
   GENERIC MAP ( NrOfBits => 4 )
   PORT MAP ( DataX => a,
              Result => r );
`},
		{verilog, `Inverter #( .NrOfBits(4) )
   inv0 ( .DataX(a),
          .Result(r) );
`},
	}
	for _, d := range data {
		t.Run(d.l.String(), func(t *testing.T) {
			doc := hdlgen.NewDocument(d.l)
			if err := hdlgen.WriteInstance(doc, newInverter(d.l, 4), "inv0", map[int]string{0: "a", 1: "r"}); err != nil {
				t.Fatal(err)
			}
			if s := doc.String(); s != d.exp {
				t.Fatalf("expected\n%s\ngot\n%s", d.exp, s)
			}
		})
	}
}

func TestWriteInstance_noGenerics(t *testing.T) {
	g := &inverter{Spec: hdlgen.Spec{Name: "Inverter_Bit", Lang: verilog}}
	g.In.Add("DataX", hdlgen.Fixed(1))
	g.Out.Add("Result", hdlgen.Fixed(1))
	doc := hdlgen.NewDocument(verilog)
	if err := hdlgen.WriteInstance(doc, g, "inv1", map[int]string{0: "a", 1: "r"}); err != nil {
		t.Fatal(err)
	}
	exp := "Inverter_Bit inv1 ( .DataX(a),\n" +
		"                    .Result(r) );\n"
	if s := doc.String(); s != exp {
		t.Fatalf("expected\n%s\ngot\n%s", exp, s)
	}

	doc = hdlgen.NewDocument(vhdl)
	g.Lang = vhdl
	if err := hdlgen.WriteInstance(doc, g, "inv1", map[int]string{0: "a", 1: "r"}); err != nil {
		t.Fatal(err)
	}
	if s := doc.String(); strings.Contains(s, "GENERIC") {
		t.Fatalf("unexpected generic map in\n%s", s)
	}

	if err := hdlgen.WriteInstance(doc, g, "inv2", map[int]string{0: "a"}); err == nil {
		t.Fatal("expected error for missing port connection")
	}
}
