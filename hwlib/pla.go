// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

// A PLARow is one line of a PLA truth table.
//
type PLARow struct {
	// In is the input pattern, most significant bit first. '-' marks a
	// don't care bit.
	In string
	// Out is the output value for inputs matching In.
	Out uint64
}

// Match returns true if index v matches the input pattern of r.
//
func (r *PLARow) Match(v uint64) bool {
	n := len(r.In)
	for i := 0; i < n; i++ {
		bit := v&(1<<uint(n-1-i)) != 0
		switch r.In[i] {
		case '1':
			if !bit {
				return false
			}
		case '0':
			if bit {
				return false
			}
		}
	}
	return true
}

// mask returns the mask of cared bits and the pattern value of r.
func (r *PLARow) mask() (mask, value uint64) {
	for _, c := range r.In {
		mask, value = mask<<1, value<<1
		if c != '-' {
			mask |= 1
		}
		if c == '1' {
			value |= 1
		}
	}
	return mask, value
}

// ParsePLATable parses the rows of a PLA table. Each row is an input pattern
// of n characters among '0', '1', 'x' and '-', followed by white space and an
// output pattern of m binary digits. Blank lines and text after a '#' are
// ignored.
//
func ParsePLATable(rows []string, n, m int) ([]PLARow, error) {
	var t []PLARow
	for i, line := range rows {
		if c := strings.IndexByte(line, '#'); c >= 0 {
			line = line[:c]
		}
		f := strings.Fields(line)
		if len(f) == 0 {
			continue
		}
		if len(f) != 2 {
			return nil, errors.Wrapf(hdlgen.ErrConfig, "PLA row %d: expected input and output patterns", i+1)
		}
		in, out := f[0], f[1]
		if len(in) != n {
			return nil, errors.Wrapf(hdlgen.ErrConfig, "PLA row %d: input pattern %q is not %d bits wide", i+1, in, n)
		}
		if strings.Trim(in, "01x-") != "" {
			return nil, errors.Wrapf(hdlgen.ErrConfig, "PLA row %d: invalid input pattern %q", i+1, in)
		}
		if len(out) != m || strings.Trim(out, "01") != "" {
			return nil, errors.Wrapf(hdlgen.ErrConfig, "PLA row %d: output pattern %q is not %d binary digits", i+1, out, m)
		}
		v, err := strconv.ParseUint(out, 2, 64)
		if err != nil {
			return nil, errors.Wrapf(hdlgen.ErrConfig, "PLA row %d: %v", i+1, err)
		}
		t = append(t, PLARow{In: strings.Replace(in, "x", "-", -1), Out: v})
	}
	return t, nil
}

type pla struct {
	hdlgen.Spec
	in, out int
	table   []PLARow
}

// newPLA returns a programmable logic array. Rows of the table are evaluated
// in order and the first matching row drives the output. The output is zero
// when no row matches. The table is part of the module name, as a
// fingerprint.
//
//	Inputs: Index
//	Outputs: Result
//	Function: Result = first matching row of table, or 0
//
func newPLA(l hdlgen.Language, a hdlgen.AttributeSet) (hdlgen.Generator, error) {
	n, err := a.Int(hdlgen.AttrInputs, 1)
	if err != nil {
		return nil, err
	}
	m, err := a.Int(hdlgen.AttrOutWidth, 1)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > MaxWidth || m < 1 || m > MaxWidth {
		return nil, errors.Wrapf(hdlgen.ErrConfig, "invalid PLA size %dx%d", n, m)
	}
	rows, err := a.Strings(hdlgen.AttrTable)
	if err != nil {
		return nil, err
	}
	t, err := ParsePLATable(rows, n, m)
	if err != nil {
		return nil, err
	}
	g := &pla{
		Spec:  hdlgen.Spec{Name: "PLA_" + plaFingerprint(t, n, m), Lang: l},
		in:    n,
		out:   m,
		table: t,
	}
	g.In.Add("Index", hdlgen.Fixed(n))
	g.Out.Add(pResult, hdlgen.Fixed(m))
	return g, nil
}

func plaFingerprint(t []PLARow, n, m int) string {
	h := xxhash.New()
	fmt.Fprintf(h, "%d:%d\n", n, m)
	for _, r := range t {
		fmt.Fprintf(h, "%s %x\n", r.In, r.Out)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func (g *pla) Behavior(d *hdlgen.Document) error {
	if err := checkLang(&g.Spec, d); err != nil {
		return err
	}
	l := d.Lang
	cases := make([]hdlgen.Case, 0, len(g.table))
	for i := range g.table {
		r := &g.table[i]
		var cond string
		if l == hdlgen.VHDL {
			cond = "std_match(Index, " + l.Pattern(r.In) + ")"
		} else {
			mask, v := r.mask()
			cond = "(Index & " + l.Bits(mask, g.in) + ") == " + l.Bits(v, g.in)
		}
		cases = append(cases, hdlgen.Case{When: cond, Value: l.Bits(r.Out, g.out)})
	}
	d.Select(pResult, cases, l.Bits(0, g.out))
	return nil
}
