// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// A ParamID identifies a generic parameter within a single generator.
//
type ParamID int

// Generic is a generic parameter declaration.
//
type Generic struct {
	ID   ParamID
	Name string
	// Bits is 0 for an INTEGER generic, or the width of a bit-vector
	// generic. Bit-vector generics have an ascending range (0 TO Bits-1):
	// element 0 is the leftmost bit of the literal, that is the most
	// significant bit of the value.
	Bits int
}

// Values maps generic parameters to their value for a given instance.
//
type Values map[ParamID]int

// IDs returns the parameter ids in v in ascending order.
//
func (v Values) IDs() []ParamID {
	ids := make([]ParamID, 0, len(v))
	for id := range v {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CheckGenerics checks that the declared generics and the resolved values
// describe exactly the same set of parameters, and that every value fits its
// declaration.
//
func CheckGenerics(gs []Generic, v Values) error {
	ids := make(map[ParamID]bool, len(gs))
	names := make(map[string]bool, len(gs))
	for _, g := range gs {
		if ids[g.ID] {
			return errors.Wrapf(ErrGenericContract, "duplicate generic id %d", int(g.ID))
		}
		if g.Name == "" || names[g.Name] {
			return errors.Wrapf(ErrGenericContract, "invalid or duplicate generic name %q", g.Name)
		}
		ids[g.ID], names[g.Name] = true, true
		val, ok := v[g.ID]
		if !ok {
			return errors.Wrapf(ErrGenericContract, "generic %s declared but not resolved", g.Name)
		}
		if g.Bits > 0 && (val < 0 || g.Bits < 63 && val >= 1<<uint(g.Bits)) {
			return errors.Wrapf(ErrGenericContract, "value %d of generic %s does not fit in %d bits", val, g.Name, g.Bits)
		}
	}
	for _, id := range v.IDs() {
		if !ids[id] {
			return errors.Wrapf(ErrGenericContract, "generic %d resolved but not declared", int(id))
		}
	}
	return nil
}

// GenericDecl returns the declaration of g. Verilog parameters default to 1
// for integers and to all zeros for bit vectors; instances always override
// them.
//
func (l Language) GenericDecl(g Generic) string {
	switch l {
	case Verilog:
		if g.Bits > 0 {
			return "parameter [0:" + strconv.Itoa(g.Bits-1) + "] " + g.Name + " = " + l.GenericValue(g, 0) + ";"
		}
		return "parameter " + g.Name + " = 1;"
	default:
		if g.Bits > 0 {
			return g.Name + " : std_logic_vector( 0 TO " + strconv.Itoa(g.Bits-1) + " )"
		}
		return g.Name + " : INTEGER"
	}
}

// GenericValue returns the literal of value val for generic g.
//
func (l Language) GenericValue(g Generic, val int) string {
	if g.Bits == 0 {
		return strconv.Itoa(val)
	}
	if l == VHDL {
		// vector generics are never collapsed to std_logic.
		return `"` + bitString(uint64(val), g.Bits) + `"`
	}
	return l.Bits(uint64(val), g.Bits)
}
