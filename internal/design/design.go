// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package design loads netlist descriptions from YAML documents.
//
// A document lists component instances with their type, attributes and the
// nets connected to their ports, in port index order (inputs first, then
// outputs):
//
//	name: alu
//	components:
//	  - name: add0
//	    type: Adder
//	    attrs: {width: 8}
//	    connections: ["a[7..0]", "b[7..0]", 0, "sum[7..0]", open]
//
// Documents are checked against an embedded CUE schema before conversion.
//
package design

import (
	"bytes"
	"embed"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaFS embed.FS

// Document is the YAML form of a design.
//
type Document struct {
	Name       string      `yaml:"name" json:"name"`
	Components []Component `yaml:"components" json:"components"`
}

// Component is the YAML form of a component instance. Connections are net
// descriptions (see hdlgen.ParseNet) or integer constants; a null entry is an
// open connection.
//
type Component struct {
	Name        string                 `yaml:"name" json:"name"`
	Type        string                 `yaml:"type" json:"type"`
	Attrs       map[string]interface{} `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Connections []interface{}          `yaml:"connections,omitempty" json:"connections,omitempty"`
}

// A Validator checks documents against the design schema.
//
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the embedded schema.
//
func NewValidator() (*Validator, error) {
	src, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, errors.Wrap(err, "loading embedded schema")
	}
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(src, cue.Filename("schema.cue"))
	if err = schema.Err(); err != nil {
		return nil, errors.Wrap(err, "compiling schema")
	}
	return &Validator{ctx, schema}, nil
}

// Validate checks doc against the schema. Errors wrap hdlgen.ErrConfig.
//
func (v *Validator) Validate(doc *Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshaling design")
	}
	val := v.ctx.CompileBytes(data)
	if err = val.Err(); err != nil {
		return errors.Wrapf(hdlgen.ErrConfig, "design %s: %v", doc.Name, err)
	}
	def := v.schema.LookupPath(cue.ParsePath("#Design"))
	if err = def.Err(); err != nil {
		return errors.Wrap(err, "looking up #Design")
	}
	if err = def.Unify(val).Validate(cue.Concrete(true)); err != nil {
		return errors.Wrapf(hdlgen.ErrConfig, "design %s: %v", doc.Name, err)
	}
	return nil
}

// Decode decodes a YAML document. Unknown keys are rejected.
//
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(hdlgen.ErrConfig, "empty design document")
		}
		return nil, errors.Wrapf(hdlgen.ErrConfig, "parsing design: %v", err)
	}
	return &doc, nil
}

// Netlist converts doc to a netlist.
//
func (doc *Document) Netlist() (*hdlgen.Design, error) {
	d := &hdlgen.Design{Name: doc.Name}
	for i := range doc.Components {
		c := &doc.Components[i]
		conns := make(map[int]hdlgen.Net, len(c.Connections))
		for idx, v := range c.Connections {
			n, err := net(v)
			if err != nil {
				return nil, errors.Wrapf(hdlgen.ErrConfig, "component %s, port %d: %v", c.Name, idx, err)
			}
			conns[idx] = n
		}
		d.Parts = append(d.Parts, &hdlgen.Component{
			Name:        c.Name,
			Type:        c.Type,
			Attrs:       hdlgen.Attrs(c.Attrs),
			Connections: conns,
		})
	}
	return d, nil
}

func net(v interface{}) (hdlgen.Net, error) {
	switch v := v.(type) {
	case nil:
		return hdlgen.Open{}, nil
	case string:
		return hdlgen.ParseNet(v)
	case int:
		if v < 0 {
			return nil, errors.Errorf("negative constant %d", v)
		}
		return hdlgen.Const(v), nil
	case uint64:
		return hdlgen.Const(v), nil
	}
	return nil, errors.Errorf("invalid connection %v", v)
}

// Parse decodes, validates and converts a YAML design.
//
func Parse(data []byte) (*hdlgen.Design, error) {
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	v, err := NewValidator()
	if err != nil {
		return nil, err
	}
	if err = v.Validate(doc); err != nil {
		return nil, err
	}
	return doc.Netlist()
}

// Load reads the design file at path.
//
func Load(path string) (*hdlgen.Design, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading design file")
	}
	d, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, strconv.Quote(path))
	}
	return d, nil
}
