// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/hdlgen"
)

type adder struct {
	hdlgen.Spec
	width int
	sub   bool
}

// adderFamily returns the constructor of adders or subtractors.
//
// Adder:
//
//	Inputs: DataA, DataB, CarryIn
//	Outputs: Result, CarryOut
//	Function: Result = lsb(DataA + DataB + CarryIn)
//	          CarryOut = msb(DataA + DataB + CarryIn)
//
// Subtractor:
//
//	Inputs: DataA, DataB, BorrowIn
//	Outputs: Result, BorrowOut
//	Function: Result = lsb(DataA - DataB - BorrowIn)
//	          BorrowOut = 1 if the subtraction borrows
//
func adderFamily(sub bool) func(hdlgen.Language, hdlgen.AttributeSet) (hdlgen.Generator, error) {
	return func(l hdlgen.Language, a hdlgen.AttributeSet) (hdlgen.Generator, error) {
		w, err := dataWidth(a)
		if err != nil {
			return nil, err
		}
		name, cin, cout := "Adder", "CarryIn", "CarryOut"
		if sub {
			name, cin, cout = "Subtractor", "BorrowIn", "BorrowOut"
		}
		g := &adder{Spec: newSpec(name, l, w), width: w, sub: sub}
		ext := extend(&g.Spec, w)
		g.In.Add(pDataA, data(w))
		g.In.Add(pDataB, data(w))
		g.In.Add(cin, hdlgen.Fixed(1))
		g.Out.Add(pResult, data(w))
		g.Out.Add(cout, hdlgen.Fixed(1))
		g.Wire.Add("s_extended_dataA", ext)
		g.Wire.Add("s_extended_dataB", ext)
		g.Wire.Add("s_zeros", data(w))
		g.Wire.Add("s_extended_carry", ext)
		g.Wire.Add("s_sum_result", ext)
		return g, nil
	}
}

func (g *adder) Behavior(d *hdlgen.Document) error {
	if err := checkLang(&g.Spec, d); err != nil {
		return err
	}
	l := d.Lang
	b, cin := pDataB, g.In[2].Name
	if g.sub {
		b, cin = l.Not(b), l.Not(cin)
	}
	d.Assign("s_extended_dataA", l.Concat(l.Bit(false), pDataA))
	d.Assign("s_extended_dataB", l.Concat(l.Bit(false), b))
	d.Assign("s_zeros", l.Zeros(size(g.width)))
	d.Assign("s_extended_carry", l.Concat("s_zeros", cin))
	d.Assign("s_sum_result", l.Sum(false, "s_extended_dataA", "s_extended_dataB", "s_extended_carry"))
	d.Blank()
	d.Assign(pResult, low(l, "s_sum_result", g.width))
	top := "1"
	if g.width > 1 {
		top = gExtendedBits + "-1"
	}
	cout := l.Index("s_sum_result", top)
	if g.sub {
		cout = l.Not(cout)
	}
	d.Assign(g.Out[1].Name, cout)
	return nil
}

type negator struct {
	hdlgen.Spec
	width int
}

// newNegator returns a two's complement negator.
//
//	Inputs: DataX
//	Outputs: Result
//	Function: Result = -DataX
//
func newNegator(l hdlgen.Language, a hdlgen.AttributeSet) (hdlgen.Generator, error) {
	w, err := dataWidth(a)
	if err != nil {
		return nil, err
	}
	g := &negator{Spec: newSpec("Negator", l, w), width: w}
	g.In.Add("DataX", data(w))
	g.Out.Add(pResult, data(w))
	return g, nil
}

func (g *negator) Behavior(d *hdlgen.Document) error {
	if err := checkLang(&g.Spec, d); err != nil {
		return err
	}
	l := d.Lang
	if g.width == 1 {
		// -x == x on one bit
		d.Assign(pResult, "DataX")
		return nil
	}
	d.Assign(pResult, l.Sum(false, l.Not("DataX"), "1"))
	return nil
}
