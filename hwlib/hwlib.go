// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides the library of component families for hdlgen.
//
// Each family builds generators for one component type. Generators expose
// their ports, wires and generics to the module writer and emit their
// behavior as VHDL or Verilog statements.
//
package hwlib

import (
	"strconv"

	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

// MaxWidth is the widest data bus supported by the arithmetic and gate
// families.
//
const MaxWidth = 64

// common port names
const (
	pDataA  = "DataA"
	pDataB  = "DataB"
	pResult = "Result"
)

// generic parameters
const (
	pNrOfBits hdlgen.ParamID = iota + 1
	pExtendedBits
	pDoubleBits
	pShiftMode
	pBubblesMask
)

const (
	gNrOfBits     = "NrOfBits"
	gExtendedBits = "ExtendedBits"
	gDoubleBits   = "DoubleBits"
	gShiftMode    = "ShiftMode"
	gBubblesMask  = "BubblesMask"
)

// dataWidth returns the validated width attribute.
func dataWidth(a hdlgen.AttributeSet) (int, error) {
	w, err := a.Int(hdlgen.AttrWidth, 1)
	if err != nil {
		return 0, err
	}
	if w < 1 || w > MaxWidth {
		return 0, errors.Wrapf(hdlgen.ErrConfig, "width %d out of range [1, %d]", w, MaxWidth)
	}
	return w, nil
}

// signed returns true if the mode attribute selects two's complement
// arithmetic.
func signed(a hdlgen.AttributeSet) (bool, error) {
	m, err := a.String(hdlgen.AttrMode, "unsigned")
	if err != nil {
		return false, err
	}
	switch m {
	case "unsigned":
		return false, nil
	case "signed":
		return true, nil
	}
	return false, errors.Wrapf(hdlgen.ErrConfig, "invalid mode %q", m)
}

// newSpec returns a Spec for a module whose data buses are w bits wide.
// Single bit modules are distinct modules with scalar ports and no NrOfBits
// generic.
func newSpec(name string, l hdlgen.Language, w int) hdlgen.Spec {
	if w == 1 {
		return hdlgen.Spec{Name: name + "_Bit", Lang: l}
	}
	s := hdlgen.Spec{Name: name, Lang: l}
	s.Param(pNrOfBits, gNrOfBits, 0, w)
	return s
}

// data returns the width of a w bits data bus.
func data(w int) hdlgen.Width {
	if w == 1 {
		return hdlgen.Fixed(1)
	}
	return hdlgen.GenericRef(pNrOfBits)
}

// extend declares the ExtendedBits generic as needed and returns the width of
// a data bus extended by one bit.
func extend(s *hdlgen.Spec, w int) hdlgen.Width {
	if w == 1 {
		return hdlgen.Fixed(2)
	}
	s.Param(pExtendedBits, gExtendedBits, 0, w+1)
	return hdlgen.GenericRef(pExtendedBits)
}

// double declares the DoubleBits generic as needed and returns the width of a
// double width data bus.
func double(s *hdlgen.Spec, w int) hdlgen.Width {
	if w == 1 {
		return hdlgen.Fixed(2)
	}
	s.Param(pDoubleBits, gDoubleBits, 0, 2*w)
	return hdlgen.GenericRef(pDoubleBits)
}

// size returns the HDL expression for the width of a w bits data bus.
func size(w int) string {
	if w == 1 {
		return "1"
	}
	return gNrOfBits
}

// msb returns the index expression of the most significant bit of a w bits
// data bus.
func msb(w int) string {
	if w == 1 {
		return "0"
	}
	return gNrOfBits + "-1"
}

// low returns the low w bits of the wide vector x.
func low(l hdlgen.Language, x string, w int) string {
	if w == 1 {
		return l.Index(x, "0")
	}
	return l.Slice(x, msb(w), "0")
}

// checkLang verifies that a generator built for language s.Lang writes to a
// document of the same language.
func checkLang(s *hdlgen.Spec, d *hdlgen.Document) error {
	if d.Lang != s.Lang {
		return errors.Errorf("%s: generator for %s used with a %s document", s.Name, s.Lang, d.Lang)
	}
	return nil
}

func itoa(i int) string { return strconv.Itoa(i) }

// Families returns a new library with all the component families of this
// package.
//
func Families() hdlgen.Library {
	lib := hdlgen.Library{}
	for _, f := range []*hdlgen.Family{
		{Name: "Adder", New: adderFamily(false)},
		{Name: "Subtractor", New: adderFamily(true)},
		{Name: "Negator", New: newNegator},
		{Name: "Comparator", New: newComparator},
		{Name: "Multiplier", Supports: vhdlOnly, New: newMultiplier},
		{Name: "Divider", Supports: vhdlOnly, New: newDivider},
		{Name: "Shifter", New: newShifter},
		{Name: "PLA", New: newPLA},
	} {
		lib[f.Name] = f
	}
	for _, g := range gates {
		lib[g.name] = &hdlgen.Family{Name: g.name, New: g.new}
	}
	return lib
}
