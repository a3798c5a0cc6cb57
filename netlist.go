// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Net is what a component port is connected to: a Wire, a Slice of a bus, a
// Const value or Open.
//
type Net interface {
	isNet()
}

// Wire is a net connected with its full width.
//
type Wire string

// Slice is a range of bits of a bus, Hi >= Lo.
//
type Slice struct {
	Bus    string
	Hi, Lo int
}

// Const is a tied-off constant value.
//
type Const uint64

// Open is a floating connection.
//
type Open struct{}

func (Wire) isNet()  {}
func (Slice) isNet() {}
func (Const) isNet() {}
func (Open) isNet()  {}

// Component is a placed instance of a component family.
//
type Component struct {
	// Instance name, used as the HDL instance label.
	Name string
	// Component type, selects the Family.
	Type  string
	Attrs AttributeSet
	// Connections maps port indices to nets. Missing entries are unconnected.
	Connections map[int]Net
}

// Netlist is the external view of a circuit: its components and the net
// attached to each of their ports.
//
type Netlist interface {
	Components() []*Component
	// Net returns the net connected to the given port of c, or nil if the
	// port is unconnected.
	Net(c *Component, port int) Net
}

// Design is a simple Netlist where connections are stored in the components.
//
type Design struct {
	Name  string
	Parts []*Component
}

// Components implements Netlist.
//
func (d *Design) Components() []*Component { return d.Parts }

// Net implements Netlist.
//
func (d *Design) Net(c *Component, port int) Net {
	if c.Connections == nil {
		return nil
	}
	return c.Connections[port]
}

// ParseNet parses a net description:
//
//	name          // Wire
//	bus[7..0]     // Slice, bounds in any order
//	bus[3]        // single bit Slice
//	0, 12, 0x1f   // Const
//	0b0101        // Const
//	open, ""      // Open
//
func ParseNet(s string) (Net, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "open" {
		return Open{}, nil
	}
	if c := s[0]; '0' <= c && c <= '9' {
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return nil, errors.Wrap(err, "invalid constant "+s)
		}
		return Const(v), nil
	}
	i := strings.IndexRune(s, '[')
	if i < 0 {
		if !validName(s) {
			return nil, errors.New("invalid net name " + s)
		}
		return Wire(s), nil
	}
	bus := s[:i]
	if !validName(bus) {
		return nil, errors.New("invalid bus name in " + s)
	}
	if !strings.HasSuffix(s, "]") {
		return nil, errors.New("no terminating ] in bus range " + s)
	}
	r := s[i+1 : len(s)-1]
	var start, end int
	var err error
	if j := strings.Index(r, ".."); j >= 0 {
		if start, err = strconv.Atoi(strings.TrimSpace(r[:j])); err != nil {
			return nil, errors.Wrap(err, "bus range "+s)
		}
		if end, err = strconv.Atoi(strings.TrimSpace(r[j+2:])); err != nil {
			return nil, errors.Wrap(err, "bus range "+s)
		}
	} else {
		if start, err = strconv.Atoi(strings.TrimSpace(r)); err != nil {
			return nil, errors.Wrap(err, "bus index "+s)
		}
		end = start
	}
	if start < 0 || end < 0 {
		return nil, errors.New("negative bus index in " + s)
	}
	if start < end {
		start, end = end, start
	}
	return Slice{bus, start, end}, nil
}

// Signal returns the HDL expression connecting net n to a port of the given
// width. Unconnected inputs are tied to zero; unconnected outputs are left
// open (OPEN in VHDL, empty in Verilog).
//
func (l Language) Signal(n Net, bits int, output bool) (string, error) {
	switch n := n.(type) {
	case nil, Open:
		if !output {
			return l.Bits(0, bits), nil
		}
		if l == Verilog {
			return "", nil
		}
		return "OPEN", nil
	case Wire:
		return string(n), nil
	case Slice:
		if n.Hi-n.Lo+1 != bits {
			return "", errors.Errorf("%s[%d..%d] is %d bits wide, port expects %d", n.Bus, n.Hi, n.Lo, n.Hi-n.Lo+1, bits)
		}
		if n.Hi == n.Lo {
			return l.Index(n.Bus, strconv.Itoa(n.Hi)), nil
		}
		return l.Slice(n.Bus, strconv.Itoa(n.Hi), strconv.Itoa(n.Lo)), nil
	case Const:
		if output {
			return "", errors.Errorf("output connected to constant %d", uint64(n))
		}
		if bits < 64 && uint64(n)>>uint(bits) != 0 {
			return "", errors.Errorf("constant %d does not fit in %d bits", uint64(n), bits)
		}
		return l.Bits(uint64(n), bits), nil
	}
	return "", errors.Errorf("unknown net type %T", n)
}
