// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdlgen

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Well known attribute keys.
//
const (
	AttrWidth    = "width"    // data bit width
	AttrMode     = "mode"     // signed/unsigned, shift mode
	AttrInputs   = "inputs"   // number of gate inputs, number of PLA inputs
	AttrNegate   = "negate"   // gate input negation mask, written first input first
	AttrOneHot   = "onehot"   // XOR/XNOR: exactly one input true instead of parity
	AttrOutWidth = "outwidth" // PLA output bits
	AttrTable    = "table"    // PLA table rows
)

// An AttributeSet holds the configuration of a component instance. It is never
// modified once created.
//
type AttributeSet struct {
	m map[string]interface{}
}

// Attrs returns a new AttributeSet holding a copy of kv.
//
func Attrs(kv map[string]interface{}) AttributeSet {
	m := make(map[string]interface{}, len(kv))
	for k, v := range kv {
		m[k] = v
	}
	return AttributeSet{m}
}

// With returns a copy of a where key is set to v.
//
func (a AttributeSet) With(key string, v interface{}) AttributeSet {
	n := Attrs(a.m)
	n.m[key] = v
	return n
}

// Has returns true if key is set in a.
//
func (a AttributeSet) Has(key string) bool {
	_, ok := a.m[key]
	return ok
}

// Keys returns the keys set in a in sorted order.
//
func (a AttributeSet) Keys() []string {
	ks := make([]string, 0, len(a.m))
	for k := range a.m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// Int returns the integer value of key, or def if key is not set.
//
func (a AttributeSet) Int(key string, def int) (int, error) {
	v, ok := a.m[key]
	if !ok {
		return def, nil
	}
	switch v := v.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case uint:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, errors.Wrapf(ErrConfig, "attribute %s: %v is not an integer", key, v)
}

// Bool returns the boolean value of key, or def if key is not set.
//
func (a AttributeSet) Bool(key string, def bool) (bool, error) {
	v, ok := a.m[key]
	if !ok {
		return def, nil
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, errors.Wrapf(ErrConfig, "attribute %s: %v is not a boolean", key, v)
}

// String returns the string value of key, or def if key is not set.
//
func (a AttributeSet) String(key string, def string) (string, error) {
	v, ok := a.m[key]
	if !ok {
		return def, nil
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", errors.Wrapf(ErrConfig, "attribute %s: %v is not a string", key, v)
}

// Strings returns the value of key as a list of strings. A single string value
// is split into non-empty lines.
//
func (a AttributeSet) Strings(key string) ([]string, error) {
	v, ok := a.m[key]
	if !ok {
		return nil, nil
	}
	switch v := v.(type) {
	case string:
		var out []string
		for _, l := range strings.Split(v, "\n") {
			if l = strings.TrimSpace(l); l != "" {
				out = append(out, l)
			}
		}
		return out, nil
	case []string:
		return append([]string(nil), v...), nil
	case []interface{}:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, errors.Wrapf(ErrConfig, "attribute %s: element %d is not a string", key, i)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, errors.Wrapf(ErrConfig, "attribute %s: %v is not a list of strings", key, v)
}
