// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import "strings"

// VHDL reserved words (VHDL-2008). VHDL is case insensitive.
var vhdlReserved = words(`abs access after alias all and architecture array
	assert assume assume_guarantee attribute begin block body buffer bus case
	component configuration constant context cover default disconnect downto
	else elsif end entity exit fairness file for force function generate
	generic group guarded if impure in inertial inout is label library linkage
	literal loop map mod nand new next nor not null of on open or others out
	package parameter port postponed procedure process property protected pure
	range record register reject release rem report restrict
	restrict_guarantee return rol ror select sequence severity shared signal
	sla sll sra srl strong subtype then to transport type unaffected units
	until use variable vmode vprop vunit wait when while with xnor xor`)

// Verilog keywords (IEEE 1364-2005).
var verilogReserved = words(`always and assign automatic begin buf bufif0
	bufif1 case casex casez cell cmos config deassign default defparam design
	disable edge else end endcase endconfig endfunction endgenerate endmodule
	endprimitive endspecify endtable endtask event for force forever fork
	function generate genvar highz0 highz1 if ifnone incdir include initial
	inout input instance integer join large liblist library localparam
	macromodule medium module nand negedge nmos nor noshowcancelled not notif0
	notif1 or output parameter pmos posedge primitive pull0 pull1 pulldown
	pullup pulsestyle_ondetect pulsestyle_onevent rcmos real realtime reg
	release repeat rnmos rpmos rtran rtranif0 rtranif1 scalared showcancelled
	signed small specify specparam strong0 strong1 supply0 supply1 table task
	time tran tranif0 tranif1 tri tri0 tri1 triand trior trireg unsigned use
	uwire vectored wait wand weak0 weak1 while wire wor xnor xor`)

func words(s string) map[string]bool {
	m := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		m[w] = true
	}
	return m
}

// Reserved returns true if s is a reserved word in VHDL or Verilog.
//
func Reserved(s string) bool {
	return verilogReserved[s] || vhdlReserved[strings.ToLower(s)]
}

// validName returns true if s can be used as a signal or instance name in
// both languages: a letter followed by letters, digits and single
// underscores, not ending with an underscore and not a reserved word.
//
func validName(s string) bool {
	if s == "" || s[len(s)-1] == '_' || strings.Contains(s, "__") {
		return false
	}
	for i, r := range s {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && (r == '_' || '0' <= r && r <= '9'):
		default:
			return false
		}
	}
	return !Reserved(s)
}
