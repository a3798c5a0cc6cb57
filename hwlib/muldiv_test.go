// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"fmt"
	"testing"

	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

func TestMultiplier(t *testing.T) {
	for _, mode := range []string{"unsigned", "signed"} {
		for _, w := range widths {
			w, sgn := w, mode == "signed"
			t.Run(fmt.Sprint(mode, w), func(t *testing.T) {
				check(t, "Multiplier", attrs{"width": w, "mode": mode}, func(in []uint64) ([]uint64, bool) {
					p := in[0]*in[1] + in[2]
					if sgn {
						p = uint64(sext(in[0], w)*sext(in[1], w) + sext(in[2], w))
					}
					return []uint64{p & mask(w), p >> uint(w) & mask(w)}, true
				})
			})
		}
	}
}

func TestDivider(t *testing.T) {
	for _, mode := range []string{"unsigned", "signed"} {
		for _, w := range widths {
			w, sgn := w, mode == "signed"
			t.Run(fmt.Sprint(mode, w), func(t *testing.T) {
				check(t, "Divider", attrs{"width": w, "mode": mode}, func(in []uint64) ([]uint64, bool) {
					a, b, upper := in[0], in[1], in[2]
					if b == 0 {
						return nil, false
					}
					n := upper<<uint(w) | a
					if !sgn {
						return []uint64{n / b & mask(w), n % b & mask(w)}, true
					}
					sn, sb := sext(n, 2*w), sext(b, w)
					return []uint64{uint64(sn/sb) & mask(w), uint64(sn%sb) & mask(w)}, true
				})
			})
		}
	}
}

func TestMulDiv_Verilog(t *testing.T) {
	for _, typ := range []string{"Multiplier", "Divider"} {
		f := lib[typ]
		a := hdlgen.Attrs(attrs{"width": 8})
		if f.Supports(hdlgen.Verilog, a) {
			t.Errorf("%s: Verilog should not be supported", typ)
		}
		if _, err := f.Generator(hdlgen.Verilog, a); errors.Cause(err) != hdlgen.ErrUnsupported {
			t.Errorf("%s: expected ErrUnsupported, got %v", typ, err)
		}
		// direct construction fails before any text is produced
		if _, err := f.New(hdlgen.Verilog, a); errors.Cause(err) != hdlgen.ErrUnsupported {
			t.Errorf("%s: expected ErrUnsupported, got %v", typ, err)
		}
		g, err := f.Generator(hdlgen.VHDL, a)
		if err != nil {
			t.Fatal(err)
		}
		d := hdlgen.NewDocument(hdlgen.Verilog)
		if err = g.Behavior(d); err == nil || len(d.Lines()) > 0 {
			t.Errorf("%s: VHDL generator wrote to a Verilog document", typ)
		}
	}
}
