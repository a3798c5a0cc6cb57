// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"fmt"
	"math/bits"

	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

// Shift modes, as passed in the ShiftMode generic.
//
const (
	ShiftLogicalLeft = iota
	ShiftRotateLeft
	ShiftLogicalRight
	ShiftArithmeticRight
	ShiftRotateRight
)

// ShiftModes lists the values of the mode attribute of shifters, indexed by
// shift mode.
//
var ShiftModes = []string{
	ShiftLogicalLeft:     "logical-left",
	ShiftRotateLeft:      "rotate-left",
	ShiftLogicalRight:    "logical-right",
	ShiftArithmeticRight: "arithmetic-right",
	ShiftRotateRight:     "rotate-right",
}

func shiftMode(a hdlgen.AttributeSet) (int, error) {
	m, err := a.String(hdlgen.AttrMode, ShiftModes[ShiftLogicalLeft])
	if err != nil {
		return 0, err
	}
	for i, n := range ShiftModes {
		if n == m {
			return i, nil
		}
	}
	return 0, errors.Wrapf(hdlgen.ErrConfig, "invalid shift mode %q", m)
}

// ShiftStages returns the number of stages, that is the width of the shift
// amount, of a shifter for w bits data.
//
func ShiftStages(w int) int {
	if w <= 2 {
		return 1
	}
	return bits.Len(uint(w - 1))
}

type shifter struct {
	hdlgen.Spec
	width  int
	stages int
}

// newShifter returns a barrel shifter. The mode is passed in the ShiftMode
// generic while the number of stages is part of the module name.
//
//	Inputs: DataA, ShiftAmount
//	Outputs: Result
//	Function: Result = DataA shifted or rotated by ShiftAmount bits
//
func newShifter(l hdlgen.Language, a hdlgen.AttributeSet) (hdlgen.Generator, error) {
	w, err := dataWidth(a)
	if err != nil {
		return nil, err
	}
	mode, err := shiftMode(a)
	if err != nil {
		return nil, err
	}
	n := ShiftStages(w)
	g := &shifter{Spec: newSpec(fmt.Sprintf("Shifter_%dStages", n), l, w), width: w, stages: n}
	g.Param(pShiftMode, gShiftMode, 0, mode)
	g.In.Add(pDataA, data(w))
	g.In.Add("ShiftAmount", hdlgen.Fixed(n))
	g.Out.Add(pResult, data(w))
	if n > 1 {
		for i := 0; i < n; i++ {
			g.Wire.Add(stageWire(i, "fill"), hdlgen.Fixed(1<<uint(i)))
			g.Wire.Add(stageWire(i, "out"), data(w))
		}
	}
	return g, nil
}

func stageWire(i int, kind string) string {
	return fmt.Sprintf("s_stage_%d_%s", i, kind)
}

// shiftOnce returns the bits of a vector shifted by one position in the given
// mode. Bits are listed most significant first.
func shiftOnce(l hdlgen.Language, mode int, b []string) []string {
	n := len(b)
	r := make([]string, 0, n)
	switch mode {
	case ShiftLogicalLeft:
		r = append(append(r, b[1:]...), l.Bit(false))
	case ShiftRotateLeft:
		r = append(append(r, b[1:]...), b[0])
	case ShiftLogicalRight:
		r = append(append(r, l.Bit(false)), b[:n-1]...)
	case ShiftArithmeticRight:
		r = append(append(r, b[0]), b[:n-1]...)
	default:
		r = append(append(r, b[n-1]), b[:n-1]...)
	}
	return r
}

func (g *shifter) Behavior(d *hdlgen.Document) error {
	if err := checkLang(&g.Spec, d); err != nil {
		return err
	}
	l := d.Lang
	if g.stages == 1 {
		g.single(d)
		return nil
	}
	mode := func(m int) string { return l.Equals(gShiftMode, m) }
	top := func(s int) string { return fmt.Sprintf("%s-%d", gNrOfBits, s) }
	in := pDataA
	for i := 0; i < g.stages; i++ {
		s := 1 << uint(i)
		fill, out := stageWire(i, "fill"), stageWire(i, "out")
		var rotl, rotr string
		if s == 1 {
			rotl, rotr = l.Index(in, top(1)), l.Index(in, "0")
		} else {
			rotl, rotr = l.Slice(in, top(1), top(s)), l.Slice(in, itoa(s-1), "0")
		}
		d.Select(fill, []hdlgen.Case{
			{When: mode(ShiftRotateLeft), Value: rotl},
			{When: mode(ShiftRotateRight), Value: rotr},
			{When: mode(ShiftArithmeticRight), Value: l.Replicate(l.Index(pDataA, top(1)), itoa(s))},
		}, l.Zeros(itoa(s)))
		d.Select(out, []hdlgen.Case{
			{When: l.IsClear(l.Index("ShiftAmount", itoa(i))), Value: in},
			{When: l.Any(mode(ShiftLogicalLeft), mode(ShiftRotateLeft)), Value: l.Concat(l.Slice(in, top(s+1), "0"), fill)},
		}, l.Concat(fill, l.Slice(in, top(1), itoa(s))))
		d.Blank()
		in = out
	}
	d.Assign(pResult, in)
	return nil
}

// single writes the behavior of a one stage shifter, where all indices are
// known.
func (g *shifter) single(d *hdlgen.Document) {
	l := d.Lang
	b := []string{pDataA}
	if g.width == 2 {
		b = []string{l.Index(pDataA, "1"), l.Index(pDataA, "0")}
	}
	cases := []hdlgen.Case{{When: l.IsClear("ShiftAmount"), Value: pDataA}}
	for m := ShiftLogicalLeft; m < ShiftRotateRight; m++ {
		cases = append(cases, hdlgen.Case{When: l.Equals(gShiftMode, m), Value: l.Concat(shiftOnce(l, m, b)...)})
	}
	d.Select(pResult, cases, l.Concat(shiftOnce(l, ShiftRotateRight, b)...))
}
