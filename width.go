// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"strconv"

	"github.com/pkg/errors"
)

// A Width is the width of a port or wire. It is either a Fixed number of bits
// or a GenericRef to a generic parameter of the module.
//
type Width interface {
	isWidth()
}

// Fixed is a literal width in bits.
//
type Fixed int

// GenericRef is a width given by the value of a generic parameter.
//
type GenericRef ParamID

func (Fixed) isWidth()      {}
func (GenericRef) isWidth() {}

// Scalar returns true if w is a fixed 1 bit width.
//
func Scalar(w Width) bool {
	f, ok := w.(Fixed)
	return ok && f == 1
}

// Bits returns the number of bits of w given the generic values v.
//
func Bits(w Width, v Values) (int, error) {
	switch w := w.(type) {
	case Fixed:
		if w < 1 {
			return 0, errors.Errorf("invalid fixed width %d", int(w))
		}
		return int(w), nil
	case GenericRef:
		n, ok := v[ParamID(w)]
		if !ok {
			return 0, errors.Wrapf(ErrGenericContract, "width references unresolved generic %d", int(w))
		}
		return n, nil
	}
	return 0, errors.Errorf("unknown width type %T", w)
}

// widthExpr returns the HDL expression of the number of bits in w: either a
// decimal literal or the name of a generic.
//
func widthExpr(w Width, gs []Generic) (string, error) {
	switch w := w.(type) {
	case Fixed:
		return strconv.Itoa(int(w)), nil
	case GenericRef:
		for i := range gs {
			if gs[i].ID == ParamID(w) {
				return gs[i].Name, nil
			}
		}
		return "", errors.Wrapf(ErrGenericContract, "width references undeclared generic %d", int(w))
	}
	return "", errors.Errorf("unknown width type %T", w)
}
