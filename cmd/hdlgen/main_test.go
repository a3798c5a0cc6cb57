// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/db47h/hdlgen/hwlib"
)

func TestFlags(t *testing.T) {
	cmd := newRootCmd(new(bytes.Buffer), new(bytes.Buffer))
	for _, name := range []string{"config", "lang", "out", "jobs", "verbose", "list"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist", name)
		}
	}
}

func TestList(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out, new(bytes.Buffer))
	cmd.SetArgs([]string{"--list"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	got := strings.Fields(out.String())
	exp := hwlib.Families().Types()
	if strings.Join(got, " ") != strings.Join(exp, " ") {
		t.Fatalf("expected %v, got %v", exp, got)
	}
}

func TestArgs(t *testing.T) {
	data := []struct {
		name string
		args []string
		err  string
	}{
		{"no_design", nil, "no design file"},
		{"too_many", []string{"a.yaml", "b.yaml"}, "accepts at most 1 arg"},
		{"bad_lang", []string{"--lang", "ada", "a.yaml"}, "unknown language"},
		{"negative_jobs", []string{"--jobs", "-2", "a.yaml"}, "negative job count"},
		{"missing_design", []string{"missing.yaml"}, "reading design file"},
		{"missing_config", []string{"--config", "missing.yaml", "a.yaml"}, "reading config file"},
		{"unknown_flag", []string{"--frobnicate", "a.yaml"}, "unknown flag: --frobnicate"},
		{"bad_jobs", []string{"--jobs", "many", "a.yaml"}, "invalid argument"},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			var stderr bytes.Buffer
			cmd := newRootCmd(new(bytes.Buffer), &stderr)
			cmd.SetArgs(d.args)
			err := cmd.Execute()
			if err == nil || !strings.Contains(err.Error(), d.err) {
				t.Fatalf("expected error containing %q, got %v", d.err, err)
			}
			if s := stderr.String(); !strings.HasPrefix(s, "hdlgen: ") || !strings.Contains(s, d.err) {
				t.Fatalf("error not reported on stderr: %q", s)
			}
		})
	}
}

func TestVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, true)
	log.WithField("component", "add0").Debug("component generated")
	if s := buf.String(); !strings.Contains(s, "component=add0") || strings.Contains(s, "time=") {
		t.Fatalf("unexpected log output %q", s)
	}
	buf.Reset()
	log = newLogger(&buf, false)
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug entry logged at info level: %q", buf.String())
	}
}
