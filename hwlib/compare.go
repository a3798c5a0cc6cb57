// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/hdlgen"
)

type comparator struct {
	hdlgen.Spec
	width  int
	signed bool
}

// newComparator returns a magnitude comparator. The sign mode is fixed at
// generation time and is part of the module name.
//
//	Inputs: DataA, DataB
//	Outputs: A_GT_B, A_EQ_B, A_LT_B
//	Function: A_GT_B = DataA > DataB
//	          A_EQ_B = DataA == DataB
//	          A_LT_B = DataA < DataB
//
func newComparator(l hdlgen.Language, a hdlgen.AttributeSet) (hdlgen.Generator, error) {
	w, err := dataWidth(a)
	if err != nil {
		return nil, err
	}
	sgn, err := signed(a)
	if err != nil {
		return nil, err
	}
	name := "Comparator_Unsigned"
	if sgn {
		name = "Comparator_Signed"
	}
	g := &comparator{Spec: newSpec(name, l, w), width: w, signed: sgn}
	g.In.Add(pDataA, data(w))
	g.In.Add(pDataB, data(w))
	g.Out.Add("A_GT_B", hdlgen.Fixed(1))
	g.Out.Add("A_EQ_B", hdlgen.Fixed(1))
	g.Out.Add("A_LT_B", hdlgen.Fixed(1))
	return g, nil
}

func (g *comparator) Behavior(d *hdlgen.Document) error {
	if err := checkLang(&g.Spec, d); err != nil {
		return err
	}
	l := d.Lang
	if g.width == 1 {
		gt := l.Join(hdlgen.And, pDataA, l.Not(pDataB))
		lt := l.Join(hdlgen.And, l.Not(pDataA), pDataB)
		if g.signed {
			// 1 is -1 in two's complement
			gt, lt = lt, gt
		}
		d.Assign("A_GT_B", gt)
		d.Assign("A_EQ_B", l.Not(l.Join(hdlgen.Xor, pDataA, pDataB)))
		d.Assign("A_LT_B", lt)
		return nil
	}
	one, zero := l.Bit(true), l.Bit(false)
	for _, r := range []struct{ port, op string }{
		{"A_GT_B", ">"},
		{"A_EQ_B", "="},
		{"A_LT_B", "<"},
	} {
		d.Select(r.port, []hdlgen.Case{{When: l.Compare(r.op, g.signed, pDataA, pDataB), Value: one}}, zero)
	}
	return nil
}
