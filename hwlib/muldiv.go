// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

// vhdlOnly is the Supports function of families without a Verilog
// implementation.
func vhdlOnly(l hdlgen.Language, _ hdlgen.AttributeSet) bool {
	return l == hdlgen.VHDL
}

func unsupported(name string, l hdlgen.Language) error {
	return errors.Wrapf(hdlgen.ErrUnsupported, "%s in %s", name, l)
}

type multiplier struct {
	hdlgen.Spec
	width  int
	signed bool
}

// newMultiplier returns a multiplier with a carry input added to the
// product. Only VHDL is supported.
//
//	Inputs: DataA, DataB, CarryIn
//	Outputs: Result, ProductHi
//	Function: ProductHi:Result = DataA * DataB + CarryIn
//
func newMultiplier(l hdlgen.Language, a hdlgen.AttributeSet) (hdlgen.Generator, error) {
	if l != hdlgen.VHDL {
		return nil, unsupported("Multiplier", l)
	}
	w, err := dataWidth(a)
	if err != nil {
		return nil, err
	}
	sgn, err := signed(a)
	if err != nil {
		return nil, err
	}
	name := "Multiplier_Unsigned"
	if sgn {
		name = "Multiplier_Signed"
	}
	g := &multiplier{Spec: newSpec(name, l, w), width: w, signed: sgn}
	g.In.Add(pDataA, data(w))
	g.In.Add(pDataB, data(w))
	g.In.Add("CarryIn", data(w))
	g.Out.Add(pResult, data(w))
	g.Out.Add("ProductHi", data(w))
	if w > 1 {
		dbl := double(&g.Spec, w)
		g.Wire.Add("s_carry_hi", data(w))
		g.Wire.Add("s_extended_carry", dbl)
		g.Wire.Add("s_product", dbl)
		g.Wire.Add("s_result", dbl)
	}
	return g, nil
}

func (g *multiplier) Behavior(d *hdlgen.Document) error {
	if err := checkLang(&g.Spec, d); err != nil {
		return err
	}
	if d.Lang != hdlgen.VHDL {
		return unsupported("Multiplier", d.Lang)
	}
	l := d.Lang
	if g.width == 1 {
		// a*b + cin on one bit. The high bit is the carry of the sum when
		// unsigned, and the sign of the sum when signed, where 1 is -1.
		d.Assign(pResult, l.Join(hdlgen.Xor, "("+l.Join(hdlgen.And, pDataA, pDataB)+")", "CarryIn"))
		if g.signed {
			d.Assign("ProductHi", l.Join(hdlgen.And, "CarryIn", l.Not(l.Join(hdlgen.And, pDataA, pDataB))))
		} else {
			d.Assign("ProductHi", l.Join(hdlgen.And, pDataA, pDataB, "CarryIn"))
		}
		return nil
	}
	if g.signed {
		d.Assign("s_carry_hi", l.Replicate(l.Index("CarryIn", msb(g.width)), gNrOfBits))
	} else {
		d.Assign("s_carry_hi", l.Zeros(gNrOfBits))
	}
	d.Assign("s_extended_carry", l.Concat("s_carry_hi", "CarryIn"))
	d.Assign("s_product", l.Arith("*", g.signed, pDataA, pDataB))
	d.Assign("s_result", l.Sum(g.signed, "s_product", "s_extended_carry"))
	d.Blank()
	d.Assign(pResult, low(l, "s_result", g.width))
	d.Assign("ProductHi", l.Slice("s_result", gDoubleBits+"-1", gNrOfBits))
	return nil
}

type divider struct {
	hdlgen.Spec
	width  int
	signed bool
}

// newDivider returns a divider of a double width dividend. Only VHDL is
// supported.
//
//	Inputs: DataA, DataB, Upper
//	Outputs: Quotient, Remainder
//	Function: Quotient = lsb(Upper:DataA / DataB)
//	          Remainder = Upper:DataA rem DataB
//
func newDivider(l hdlgen.Language, a hdlgen.AttributeSet) (hdlgen.Generator, error) {
	if l != hdlgen.VHDL {
		return nil, unsupported("Divider", l)
	}
	w, err := dataWidth(a)
	if err != nil {
		return nil, err
	}
	sgn, err := signed(a)
	if err != nil {
		return nil, err
	}
	name := "Divider_Unsigned"
	if sgn {
		name = "Divider_Signed"
	}
	g := &divider{Spec: newSpec(name, l, w), width: w, signed: sgn}
	g.In.Add(pDataA, data(w))
	g.In.Add(pDataB, data(w))
	g.In.Add("Upper", data(w))
	g.Out.Add("Quotient", data(w))
	g.Out.Add("Remainder", data(w))
	if w > 1 {
		dbl := double(&g.Spec, w)
		g.Wire.Add("s_dividend", dbl)
		g.Wire.Add("s_quotient", dbl)
	}
	return g, nil
}

func (g *divider) Behavior(d *hdlgen.Document) error {
	if err := checkLang(&g.Spec, d); err != nil {
		return err
	}
	if d.Lang != hdlgen.VHDL {
		return unsupported("Divider", d.Lang)
	}
	l := d.Lang
	if g.width == 1 {
		// the only valid divisor is 1
		d.Assign("Quotient", pDataA)
		d.Assign("Remainder", l.Bit(false))
		return nil
	}
	d.Assign("s_dividend", l.Concat("Upper", pDataA))
	d.Assign("s_quotient", l.Arith("/", g.signed, "s_dividend", pDataB))
	d.Blank()
	d.Assign("Quotient", low(l, "s_quotient", g.width))
	d.Assign("Remainder", l.Arith("rem", g.signed, "s_dividend", pDataB))
	return nil
}
