// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

// MaxInputs is the maximum number of inputs of a logic gate.
//
const MaxInputs = 32

// gate describes one kind of logic gate.
type gate struct {
	name   string
	op     hdlgen.Op
	negate bool // output inverted
	unary  bool // single input, no operator
	parity bool // accepts the one-hot option
}

var gates = []*gate{
	{name: "AND", op: hdlgen.And},
	{name: "OR", op: hdlgen.Or},
	{name: "XOR", op: hdlgen.Xor, parity: true},
	{name: "NAND", op: hdlgen.And, negate: true},
	{name: "NOR", op: hdlgen.Or, negate: true},
	{name: "XNOR", op: hdlgen.Xor, negate: true, parity: true},
	{name: "Buffer", unary: true},
	{name: "NOT", unary: true, negate: true},
}

type gateGen struct {
	hdlgen.Spec
	*gate
	inputs int
	oneHot bool
}

// new returns a generator for a gate with k inputs Input_1 to Input_k. Each
// input can be inverted by the matching element of the BubblesMask generic.
// The negate attribute is the mask value, written first input first: with
// two inputs, 0b10 inverts Input_1.
//
//	Inputs: Input_1, ..., Input_k
//	Outputs: Result
//	Function: Result = polarity(Input_1 op ... op Input_k)
//
// XOR and XNOR gates compute the parity of their inputs, or, with the one-hot
// attribute set, whether exactly one input is set.
//
func (gt *gate) new(l hdlgen.Language, a hdlgen.AttributeSet) (hdlgen.Generator, error) {
	w, err := dataWidth(a)
	if err != nil {
		return nil, err
	}
	k := 1
	if !gt.unary || a.Has(hdlgen.AttrInputs) {
		if k, err = a.Int(hdlgen.AttrInputs, 2); err != nil {
			return nil, err
		}
	}
	if k < 1 || k > MaxInputs || gt.unary && k != 1 {
		return nil, errors.Wrapf(hdlgen.ErrConfig, "invalid number of inputs %d", k)
	}
	mask, err := a.Int(hdlgen.AttrNegate, 0)
	if err != nil {
		return nil, err
	}
	if mask < 0 || mask >= 1<<uint(k) {
		return nil, errors.Wrapf(hdlgen.ErrConfig, "negation mask %#b does not fit %d inputs", mask, k)
	}
	oneHot, err := a.Bool(hdlgen.AttrOneHot, false)
	if err != nil {
		return nil, err
	}
	if oneHot && !gt.parity {
		return nil, errors.Wrapf(hdlgen.ErrConfig, "one-hot option not supported by %s gates", gt.name)
	}
	// one-hot and parity are the same function on two inputs
	oneHot = oneHot && k > 2

	name := gt.name + "_Gate"
	if !gt.unary {
		name += "_" + itoa(k)
	}
	if oneHot {
		name += "_OneHot"
	}
	g := &gateGen{Spec: newSpec(name, l, w), gate: gt, inputs: k, oneHot: oneHot}
	g.Param(pBubblesMask, gBubblesMask, k, mask)
	for i := 1; i <= k; i++ {
		g.In.Add(inputName(i), data(w))
	}
	g.Out.Add(pResult, data(w))
	for i := 1; i <= k; i++ {
		g.Wire.Add(realInput(i), data(w))
	}
	return g, nil
}

func inputName(i int) string { return "Input_" + itoa(i) }
func realInput(i int) string { return "s_real_input_" + itoa(i) }

// fold returns the n-ary application of op to xs.
func fold(l hdlgen.Language, op hdlgen.Op, xs []string) string {
	if len(xs) == 1 {
		return xs[0]
	}
	return l.Join(op, xs...)
}

// oneHot returns the sum of minterms with exactly one of xs set.
func oneHot(l hdlgen.Language, xs []string) string {
	terms := make([]string, len(xs))
	for i := range xs {
		t := make([]string, len(xs))
		for j, x := range xs {
			if j == i {
				t[j] = x
			} else {
				t[j] = l.Not(x)
			}
		}
		terms[i] = "(" + l.Join(hdlgen.And, t...) + ")"
	}
	return l.Join(hdlgen.Or, terms...)
}

// polarity inverts x if negate is true.
func polarity(l hdlgen.Language, negate bool, x string) string {
	if negate {
		return l.Not(x)
	}
	return x
}

func (g *gateGen) Behavior(d *hdlgen.Document) error {
	if err := checkLang(&g.Spec, d); err != nil {
		return err
	}
	l := d.Lang
	xs := make([]string, g.inputs)
	for i := 1; i <= g.inputs; i++ {
		in, r := inputName(i), realInput(i)
		d.Select(r, []hdlgen.Case{{When: l.IsSet(l.Index(gBubblesMask, itoa(i-1))), Value: l.Not(in)}}, in)
		xs[i-1] = r
	}
	d.Blank()
	var e string
	if g.oneHot {
		e = oneHot(l, xs)
	} else {
		e = fold(l, g.op, xs)
	}
	d.Assign(pResult, polarity(l, g.negate, e))
	return nil
}
