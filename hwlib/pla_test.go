// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib_test

import (
	"strings"
	"testing"

	"github.com/db47h/hdlgen"
	"github.com/db47h/hdlgen/hwlib"
)

var plaTable = []string{
	"# first match wins",
	"1x  01",
	"11  10",
	"",
	"00  11",
}

func TestParsePLATable(t *testing.T) {
	rows, err := hwlib.ParsePLATable(plaTable, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[0].In != "1-" || rows[0].Out != 1 || rows[2].Out != 3 {
		t.Fatalf("unexpected table %v", rows)
	}
	for _, d := range []struct {
		v     uint64
		match bool
	}{{0, false}, {1, false}, {2, true}, {3, true}} {
		if m := rows[0].Match(d.v); m != d.match {
			t.Errorf("%s.Match(%b) = %v", rows[0].In, d.v, m)
		}
	}
}

func TestPLA(t *testing.T) {
	rows, err := hwlib.ParsePLATable(plaTable, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	exp := []uint64{3, 0, 1, 1}
	check(t, "PLA", attrs{"inputs": 2, "outwidth": 2, "table": strings.Join(plaTable, "\n")}, func(in []uint64) ([]uint64, bool) {
		for i := range rows {
			if rows[i].Match(in[0]) {
				if rows[i].Out != exp[in[0]] {
					t.Fatalf("bad reference for %b", in[0])
				}
				return []uint64{rows[i].Out}, true
			}
		}
		return []uint64{0}, true
	})
}

func TestPLA_wide(t *testing.T) {
	table := []interface{}{"1---0 1", "-1-1- 0", "--1-- 1"}
	check(t, "PLA", attrs{"inputs": 5, "outwidth": 1, "table": table}, func(in []uint64) ([]uint64, bool) {
		v := in[0]
		switch {
		case v&0x11 == 0x10:
			return []uint64{1}, true
		case v&0xa == 0xa:
			return []uint64{0}, true
		case v&0x4 != 0:
			return []uint64{1}, true
		}
		return []uint64{0}, true
	})
}

func TestPLA_moduleName(t *testing.T) {
	name := func(table string) string {
		g, err := lib["PLA"].Generator(hdlgen.VHDL, hdlgen.Attrs(attrs{"inputs": 2, "outwidth": 2, "table": table}))
		if err != nil {
			t.Fatal(err)
		}
		return g.ModuleName()
	}
	a, b, c := name("1x 01\n00 11"), name("  1- 01 # same rows\n00 11"), name("00 11\n1x 01")
	if !strings.HasPrefix(a, "PLA_") || a != b {
		t.Errorf("equivalent tables give module names %s and %s", a, b)
	}
	if a == c {
		t.Errorf("reordered table gives the same module name %s", a)
	}
}
