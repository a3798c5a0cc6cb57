// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl parses the statement subset of VHDL and Verilog written by
// hdlgen component generators: continuous and conditional assignments of
// expressions over ports, wires and generics.
//
package hdl

// Expr is an expression node.
//
type Expr interface {
	expr()
}

// Ident is a reference to a port, wire or generic.
//
type Ident struct {
	Name string
}

// Number is an unsized integer literal.
//
type Number struct {
	Value int64
}

// Lit is a bit or bit-vector literal. Bits lists the bit characters, most
// significant first; VHDL patterns may contain '-'. Scalar is set for VHDL
// character literals.
//
type Lit struct {
	Bits   string
	Scalar bool
}

// Unary is a unary operation. Op is "NOT" or "-" in VHDL, "~", "!" or "-" in
// Verilog.
//
type Unary struct {
	Op string
	X  Expr
}

// Binary is a binary operation. VHDL keyword operators are upper case.
//
type Binary struct {
	Op   string
	X, Y Expr
}

// Index selects one element of a vector.
//
type Index struct {
	X Expr
	I Expr
}

// Slice selects the elements Hi down to Lo of a vector.
//
type Slice struct {
	X      Expr
	Hi, Lo Expr
}

// Call is a function call or a type conversion.
//
type Call struct {
	Fun  string
	Args []Expr
}

// Concat is a Verilog concatenation. VHDL concatenations are Binary "&"
// expressions.
//
type Concat struct {
	Parts []Expr
}

// Repeat is a Verilog replication {Count{X}}.
//
type Repeat struct {
	Count Expr
	X     Expr
}

// Others is the VHDL aggregate (OTHERS => X).
//
type Others struct {
	X Expr
}

// Cond is a conditional expression: VHDL "Then WHEN Cond ELSE Else" or
// Verilog "Cond ? Then : Else".
//
type Cond struct {
	Cond, Then, Else Expr
}

func (*Ident) expr()  {}
func (*Number) expr() {}
func (*Lit) expr()    {}
func (*Unary) expr()  {}
func (*Binary) expr() {}
func (*Index) expr()  {}
func (*Slice) expr()  {}
func (*Call) expr()   {}
func (*Concat) expr() {}
func (*Repeat) expr() {}
func (*Others) expr() {}
func (*Cond) expr()   {}

// Assign is a continuous assignment.
//
type Assign struct {
	Target string
	Value  Expr
	Line   int
}
