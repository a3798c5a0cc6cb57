// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package design_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/hdlgen"
	"github.com/db47h/hdlgen/internal/design"
	"github.com/pkg/errors"
)

const alu = `
name: alu
components:
  - name: add0
    type: Adder
    attrs: {width: 8}
    connections: ["a[7..0]", "b[7..0]", 0, "sum[7..0]", open]
  - name: g0
    type: AND
    attrs:
      inputs: 3
      negate: 0b101
    connections: [x, "y[2]", 0x1, ~, z]
  - name: pla0
    type: PLA
    attrs:
      inputs: 2
      outwidth: 1
      table:
        - "1- 1"
        - "01 1"
`

func TestParse(t *testing.T) {
	d, err := design.Parse([]byte(alu))
	if err != nil {
		t.Fatal(err)
	}
	if d.Name != "alu" || len(d.Parts) != 3 {
		t.Fatalf("unexpected design %s with %d parts", d.Name, len(d.Parts))
	}
	add := d.Parts[0]
	exp := map[int]hdlgen.Net{
		0: hdlgen.Slice{Bus: "a", Hi: 7, Lo: 0},
		1: hdlgen.Slice{Bus: "b", Hi: 7, Lo: 0},
		2: hdlgen.Const(0),
		3: hdlgen.Slice{Bus: "sum", Hi: 7, Lo: 0},
		4: hdlgen.Open{},
	}
	for i, n := range exp {
		if d.Net(add, i) != n {
			t.Errorf("add0 port %d: expected %#v, got %#v", i, n, d.Net(add, i))
		}
	}
	if w, err := add.Attrs.Int(hdlgen.AttrWidth, 0); err != nil || w != 8 {
		t.Errorf("add0 width: %d, %v", w, err)
	}
	g := d.Parts[1]
	if d.Net(g, 1) != (hdlgen.Slice{Bus: "y", Hi: 2, Lo: 2}) || d.Net(g, 2) != hdlgen.Const(1) || d.Net(g, 3) != (hdlgen.Open{}) {
		t.Errorf("g0: unexpected connections %#v", g.Connections)
	}
	if m, err := g.Attrs.Int(hdlgen.AttrNegate, 0); err != nil || m != 5 {
		t.Errorf("g0 negate: %d, %v", m, err)
	}
	if rows, err := d.Parts[2].Attrs.Strings(hdlgen.AttrTable); err != nil || len(rows) != 2 {
		t.Errorf("pla0 table: %q, %v", rows, err)
	}
}

func TestParse_errors(t *testing.T) {
	data := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"bad_yaml", "name: [x"},
		{"unknown_key", "name: x\ncomponents: []\nversion: 2\n"},
		{"no_name", "components: [{name: a, type: AND}]\n"},
		{"bad_design_name", "name: 2x\ncomponents: []\n"},
		{"bad_component_name", "name: x\ncomponents: [{name: a-b, type: AND}]\n"},
		{"no_type", "name: x\ncomponents: [{name: a}]\n"},
		{"width_range", "name: x\ncomponents: [{name: a, type: Adder, attrs: {width: 65}}]\n"},
		{"width_type", "name: x\ncomponents: [{name: a, type: Adder, attrs: {width: wide}}]\n"},
		{"onehot_type", "name: x\ncomponents: [{name: a, type: XOR, attrs: {onehot: 1}}]\n"},
		{"negative_const", "name: x\ncomponents: [{name: a, type: AND, connections: [-1]}]\n"},
		{"bad_net", "name: x\ncomponents: [{name: a, type: AND, connections: [\"b[3\"]}]\n"},
		{"float_net", "name: x\ncomponents: [{name: a, type: AND, connections: [1.5]}]\n"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			_, err := design.Parse([]byte(d.in))
			if errors.Cause(err) != hdlgen.ErrConfig {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alu.yaml")
	if err := os.WriteFile(path, []byte(alu), 0644); err != nil {
		t.Fatal(err)
	}
	d, err := design.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Components()) != 3 {
		t.Fatalf("expected 3 components, got %d", len(d.Components()))
	}
	if _, err = design.Load(path + ".missing"); !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}
