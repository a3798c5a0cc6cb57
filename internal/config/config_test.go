// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	data := []struct {
		name string
		in   string
		exp  Config
		err  bool
	}{
		{"empty", "", Config{Language: "vhdl", OutDir: "."}, false},
		{"full", "language: verilog\nout_dir: rtl\njobs: 4\nverbose: true\n",
			Config{Language: "verilog", OutDir: "rtl", Jobs: 4, Verbose: true}, false},
		{"partial", "jobs: 2\n", Config{Language: "vhdl", OutDir: ".", Jobs: 2}, false},
		{"bad_lang", "language: systemc\n", Config{}, true},
		{"negative_jobs", "jobs: -1\n", Config{}, true},
		{"unknown_key", "lang: vhdl\n", Config{}, true},
		{"bad_yaml", "jobs: [\n", Config{}, true},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			c, err := Parse([]byte(d.in))
			if d.err {
				if err == nil {
					t.Fatalf("expected error, got %+v", c)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if *c != d.exp {
				t.Fatalf("expected %+v, got %+v", d.exp, *c)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if *c != *DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", *c)
	}
	if c.Lang() != hdlgen.VHDL {
		t.Fatalf("expected VHDL, got %v", c.Lang())
	}

	path := filepath.Join(t.TempDir(), "hdlgen.yaml")
	c = &Config{Language: "Verilog", OutDir: "out", Jobs: 3}
	if err = c.Save(path); err != nil {
		t.Fatal(err)
	}
	l, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *l != *c || l.Lang() != hdlgen.Verilog {
		t.Fatalf("expected %+v, got %+v", *c, *l)
	}

	if _, err = Load(filepath.Join(t.TempDir(), "missing.yaml")); !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("expected not exist error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	c := DefaultConfig()
	c.Language = "ada"
	if err := c.Validate(); errors.Cause(err) != hdlgen.ErrConfig {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
	if c.Lang() != hdlgen.VHDL {
		t.Fatalf("invalid language should fall back to VHDL")
	}
}
