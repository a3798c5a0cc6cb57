// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

// Decl declares a port or wire.
//
type Decl struct {
	Name  string
	Width Width
}

// Decls is an ordered list of declarations. For ports, the position in the
// list is the port index used in netlist connections (inputs first, then
// outputs).
//
type Decls []Decl

// Add appends a declaration to d.
//
func (d *Decls) Add(name string, w Width) {
	*d = append(*d, Decl{name, w})
}

// Lookup returns the declaration of the given name.
//
func (d Decls) Lookup(name string) (Decl, bool) {
	for _, dl := range d {
		if dl.Name == name {
			return dl, true
		}
	}
	return Decl{}, false
}

// Names returns the declared names in order.
//
func (d Decls) Names() []string {
	ns := make([]string, len(d))
	for i := range d {
		ns[i] = d[i].Name
	}
	return ns
}

// Type returns the VHDL type or Verilog range of width w. The Verilog range
// of a scalar is empty.
//
func (l Language) Type(w Width, gs []Generic) (string, error) {
	if Scalar(w) {
		if l == Verilog {
			return "", nil
		}
		return "std_logic", nil
	}
	n, err := widthExpr(w, gs)
	if err != nil {
		return "", err
	}
	if l == Verilog {
		return "[" + n + "-1:0]", nil
	}
	return "std_logic_vector( " + n + "-1 DOWNTO 0 )", nil
}
