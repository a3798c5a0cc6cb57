// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest_test

import (
	"strings"
	"testing"

	"github.com/db47h/hdlgen"
	"github.com/db47h/hdlgen/hwtest"
)

// raw is a generator with hand written statements.
type raw struct {
	hdlgen.Spec
	body string
}

func (g *raw) Behavior(d *hdlgen.Document) error {
	for _, l := range strings.Split(g.body, "\n") {
		d.Line(l)
	}
	return nil
}

// newRaw returns a generator with 4 bits inputs a and b, an output r of width
// rw, and an optional 4 bits wire named w.
func newRaw(l hdlgen.Language, rw int, wire bool, body string) *raw {
	g := &raw{Spec: hdlgen.Spec{Name: "raw", Lang: l}, body: body}
	g.Param(1, "N", 0, 4)
	g.Param(2, "M", 2, 2)
	g.In.Add("a", hdlgen.GenericRef(1))
	g.In.Add("b", hdlgen.Fixed(4))
	g.Out.Add("r", hdlgen.Fixed(rw))
	if wire {
		g.Wire.Add("w", hdlgen.Fixed(4))
	}
	return g
}

func TestSimulate_errors(t *testing.T) {
	data := []struct {
		lang hdlgen.Language
		rw   int
		wire bool
		body string
		err  string
	}{
		{hdlgen.VHDL, 4, false, "r <= a;\nr <= b;", "multiple drivers"},
		{hdlgen.VHDL, 4, true, "r <= a;", "w is not driven"},
		{hdlgen.VHDL, 4, false, "a <= b;\nr <= a;", "assignment to input a"},
		{hdlgen.VHDL, 4, false, "x <= a;", "assignment to undeclared signal x"},
		{hdlgen.VHDL, 4, false, "r <= c;", "undeclared name c"},
		{hdlgen.VHDL, 4, true, "w <= r;\nr <= a;", "output port r cannot be read"},
		{hdlgen.Verilog, 4, true, "assign w = r;\nassign r = w;", "combinational loop"},
		{hdlgen.VHDL, 4, false, "r <= a b;", `expected ";"`},
	}
	for _, d := range data {
		_, err := hwtest.Simulate(newRaw(d.lang, d.rw, d.wire, d.body), d.lang)
		if err == nil || !strings.Contains(err.Error(), d.err) {
			t.Errorf("%s %q: expected error %q, got %v", d.lang, d.body, d.err, err)
		}
	}
}

func TestEval_typeErrors(t *testing.T) {
	data := []struct {
		rw   int
		body string
		err  string
	}{
		{4, "r <= unsigned(a);", "unsigned(4) assigned to std_logic_vector(4) r"},
		{4, "r <= std_logic_vector(unsigned(a) + 1) & '0';", "std_logic_vector(5) assigned"},
		{1, "r <= a(0) WHEN a ELSE '0';", "condition is std_logic_vector"},
		{4, "r <= a + b;", "operator + on std_logic_vector(4)"},
		{1, "r <= unsigned(a(0));", "no conversion of std_logic"},
		{4, "r <= a AND b AND '1';", "operator AND on std_logic_vector(4) and std_logic"},
		{4, "r <= a(N DOWNTO 0);", "out of range"},
		{4, "r <= std_logic_vector(unsigned(a) / unsigned(b));", "division by zero"},
		{1, "r <= M(2);", "index 2 out of range"},
		{2, "r <= M;", "ascending vector assigned"},
	}
	for _, d := range data {
		s, err := hwtest.Simulate(newRaw(hdlgen.VHDL, d.rw, false, d.body), hdlgen.VHDL)
		if err != nil {
			t.Errorf("%q: %v", d.body, err)
			continue
		}
		_, err = s.Eval([]uint64{0, 0})
		if err == nil || !strings.Contains(err.Error(), d.err) {
			t.Errorf("%q: expected error %q, got %v", d.body, d.err, err)
		}
	}
}

type evalTest struct {
	rw   int
	body string
	fn   func(a, b uint64) uint64
}

func testEval(t *testing.T, l hdlgen.Language, data []evalTest) {
	t.Helper()
	for _, d := range data {
		s, err := hwtest.Simulate(newRaw(l, d.rw, true, d.body), l)
		if err != nil {
			t.Errorf("%q: %v", d.body, err)
			continue
		}
		hwtest.ForInputs(s.Inputs(), func(in []uint64) bool {
			out, err := s.Eval(in)
			if err != nil {
				t.Errorf("%q: %v", d.body, err)
				return false
			}
			if exp := d.fn(in[0], in[1]); out[0] != exp {
				t.Errorf("%q(%#x, %#x) expected %#x, got %#x", d.body, in[0], in[1], exp, out[0])
				return false
			}
			return true
		})
	}
}

func sext4(v uint64) int64 { return int64(v<<60) >> 60 }

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func TestEval_VHDL(t *testing.T) {
	testEval(t, hdlgen.VHDL, []evalTest{
		{4, "w <= a;\nr <= std_logic_vector(unsigned(NOT(w)) + 1);", func(a, b uint64) uint64 { return -a & 15 }},
		{1, "r <= '1' WHEN signed(a) > signed(b) ELSE '0';\nw <= a;", func(a, b uint64) uint64 { return b2u(sext4(a) > sext4(b)) }},
		{5, "w <= b;\nr <= std_logic_vector(unsigned('0' & a) + unsigned('0' & w));", func(a, b uint64) uint64 { return a + b }},
		{8, "w <= a;\nr <= std_logic_vector(signed(w) * signed(b));", func(a, b uint64) uint64 { return uint64(sext4(a)*sext4(b)) & 255 }},
		{2, "w <= a;\nr <= w(N-1 DOWNTO N-2);", func(a, b uint64) uint64 { return a >> 2 }},
		{4, "w <= (OTHERS => a(3));\nr <= w WHEN M(0) = '1' ELSE b;", func(a, b uint64) uint64 { return 15 * (a >> 3) }},
		{1, "w <= a;\nr <= '1' WHEN std_match(w, \"1--0\") ELSE '0';", func(a, b uint64) uint64 { return b2u(a&9 == 8) }},
	})
}

func TestEval_Verilog(t *testing.T) {
	testEval(t, hdlgen.Verilog, []evalTest{
		{4, "assign w = a;\nassign r = ~(w) + 1'b1;", func(a, b uint64) uint64 { return -a & 15 }},
		{1, "assign r = ($signed(a) > $signed(b)) ? 1'b1 : 1'b0;\nassign w = a;", func(a, b uint64) uint64 { return b2u(sext4(a) > sext4(b)) }},
		{5, "assign w = b;\nassign r = a + w;", func(a, b uint64) uint64 { return a + b }},
		{1, "assign w = b;\nassign r = ~(a + w) == 4'b0;", func(a, b uint64) uint64 { return b2u((a+b)&15 == 15) }},
		{2, "assign w = a;\nassign r = w[N-1:N-2];", func(a, b uint64) uint64 { return a >> 2 }},
		{4, "assign w = {4{a[3]}};\nassign r = (M[0] == 1'b1) ? w : b;", func(a, b uint64) uint64 { return 15 * (a >> 3) }},
		{1, "assign w = a;\nassign r = (w & 4'b1001) == 4'b1000;", func(a, b uint64) uint64 { return b2u(a&9 == 8) }},
	})
}

func TestForInputs(t *testing.T) {
	n := 0
	seen := make(map[uint64]bool)
	hwtest.ForInputs([]int{3, 2}, func(in []uint64) bool {
		n++
		seen[in[0]<<2|in[1]] = true
		return true
	})
	if n != 32 || len(seen) != 32 {
		t.Errorf("expected 32 distinct combinations, got %d (%d distinct)", n, len(seen))
	}
	n = 0
	hwtest.ForInputs([]int{16, 16}, func(in []uint64) bool {
		if n == 1 && (in[0] != 0xffff || in[1] != 0xffff) {
			t.Errorf("second combination is %#x, %#x", in[0], in[1])
		}
		n++
		return true
	})
	if n != hwtest.RandomSamples+2 {
		t.Errorf("expected %d combinations, got %d", hwtest.RandomSamples+2, n)
	}
}

func TestCompareBackends(t *testing.T) {
	body := map[hdlgen.Language]string{
		hdlgen.VHDL:    "w <= a XOR b;\nr <= '1' WHEN unsigned(w) = 0 ELSE '0';",
		hdlgen.Verilog: "assign w = a ^ b;\nassign r = (w == 4'b0000) ? 1'b1 : 1'b0;",
	}
	f := &hdlgen.Family{
		Name: "Equal",
		New: func(l hdlgen.Language, _ hdlgen.AttributeSet) (hdlgen.Generator, error) {
			return newRaw(l, 1, true, body[l]), nil
		},
	}
	hwtest.CompareBackends(t, f, hdlgen.AttributeSet{})
	hwtest.CheckModel(t, f, hdlgen.Verilog, hdlgen.AttributeSet{}, func(in []uint64) ([]uint64, bool) {
		return []uint64{b2u(in[0] == in[1])}, true
	})
}
