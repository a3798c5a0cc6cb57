// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen_test

import (
	"testing"

	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

func TestCheckGenerics(t *testing.T) {
	nb := hdlgen.Generic{ID: 1, Name: "NrOfBits"}
	mask := hdlgen.Generic{ID: 2, Name: "BubblesMask", Bits: 3}
	data := []struct {
		name string
		gs   []hdlgen.Generic
		v    hdlgen.Values
		ok   bool
	}{
		{"empty", nil, nil, true},
		{"match", []hdlgen.Generic{nb, mask}, hdlgen.Values{1: 8, 2: 7}, true},
		{"unresolved", []hdlgen.Generic{nb, mask}, hdlgen.Values{1: 8}, false},
		{"undeclared", []hdlgen.Generic{nb}, hdlgen.Values{1: 8, 2: 0}, false},
		{"overflow", []hdlgen.Generic{mask}, hdlgen.Values{2: 8}, false},
		{"negative", []hdlgen.Generic{mask}, hdlgen.Values{2: -1}, false},
		{"dup_id", []hdlgen.Generic{nb, {ID: 1, Name: "Other"}}, hdlgen.Values{1: 8}, false},
		{"dup_name", []hdlgen.Generic{nb, {ID: 3, Name: "NrOfBits"}}, hdlgen.Values{1: 8, 3: 8}, false},
		{"no_name", []hdlgen.Generic{{ID: 1}}, hdlgen.Values{1: 8}, false},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			err := hdlgen.CheckGenerics(d.gs, d.v)
			if d.ok {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				return
			}
			if errors.Cause(err) != hdlgen.ErrGenericContract {
				t.Fatalf("expected ErrGenericContract, got %v", err)
			}
		})
	}
}

func TestGenericDecl(t *testing.T) {
	nb := hdlgen.Generic{ID: 1, Name: "NrOfBits"}
	mask := hdlgen.Generic{ID: 2, Name: "BubblesMask", Bits: 3}
	data := []struct {
		l   hdlgen.Language
		g   hdlgen.Generic
		val int
		dcl string
		lit string
	}{
		{vhdl, nb, 12, "NrOfBits : INTEGER", "12"},
		{verilog, nb, 12, "parameter NrOfBits = 1;", "12"},
		{vhdl, mask, 6, "BubblesMask : std_logic_vector( 0 TO 2 )", `"110"`},
		{verilog, mask, 6, "parameter [0:2] BubblesMask = 3'b000;", "3'b110"},
		{vhdl, hdlgen.Generic{ID: 3, Name: "M", Bits: 1}, 1, "M : std_logic_vector( 0 TO 0 )", `"1"`},
		{verilog, hdlgen.Generic{ID: 3, Name: "M", Bits: 1}, 1, "parameter [0:0] M = 1'b0;", "1'b1"},
	}
	for _, d := range data {
		t.Run(d.l.String()+"_"+d.g.Name, func(t *testing.T) {
			if s := d.l.GenericDecl(d.g); s != d.dcl {
				t.Errorf("expected declaration %s, got %s", d.dcl, s)
			}
			if s := d.l.GenericValue(d.g, d.val); s != d.lit {
				t.Errorf("expected value %s, got %s", d.lit, s)
			}
		})
	}
}

func TestWidth(t *testing.T) {
	v := hdlgen.Values{1: 8}
	if n, err := hdlgen.Bits(hdlgen.Fixed(3), v); err != nil || n != 3 {
		t.Errorf("Fixed(3): %d, %v", n, err)
	}
	if n, err := hdlgen.Bits(hdlgen.GenericRef(1), v); err != nil || n != 8 {
		t.Errorf("GenericRef(1): %d, %v", n, err)
	}
	if _, err := hdlgen.Bits(hdlgen.GenericRef(2), v); errors.Cause(err) != hdlgen.ErrGenericContract {
		t.Errorf("GenericRef(2): expected ErrGenericContract, got %v", err)
	}
	if _, err := hdlgen.Bits(hdlgen.Fixed(0), v); err == nil {
		t.Error("Fixed(0): expected error")
	}
	if !hdlgen.Scalar(hdlgen.Fixed(1)) || hdlgen.Scalar(hdlgen.Fixed(2)) || hdlgen.Scalar(hdlgen.GenericRef(1)) {
		t.Error("Scalar")
	}

	gs := []hdlgen.Generic{{ID: 1, Name: "NrOfBits"}}
	data := []struct {
		l   hdlgen.Language
		w   hdlgen.Width
		exp string
	}{
		{vhdl, hdlgen.Fixed(1), "std_logic"},
		{verilog, hdlgen.Fixed(1), ""},
		{vhdl, hdlgen.Fixed(4), "std_logic_vector( 4-1 DOWNTO 0 )"},
		{verilog, hdlgen.GenericRef(1), "[NrOfBits-1:0]"},
		{vhdl, hdlgen.GenericRef(1), "std_logic_vector( NrOfBits-1 DOWNTO 0 )"},
	}
	for _, d := range data {
		s, err := d.l.Type(d.w, gs)
		if err != nil {
			t.Fatal(err)
		}
		if s != d.exp {
			t.Errorf("%s %v: expected %q, got %q", d.l, d.w, d.exp, s)
		}
	}
	if _, err := vhdl.Type(hdlgen.GenericRef(9), gs); errors.Cause(err) != hdlgen.ErrGenericContract {
		t.Errorf("expected ErrGenericContract, got %v", err)
	}
}
