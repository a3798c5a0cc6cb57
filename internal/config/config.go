// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config holds the code generator options and loads them from YAML
// files.
//
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/db47h/hdlgen"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the top-level generator configuration.
//
type Config struct {
	// Language is the target language: "vhdl" or "verilog".
	Language string `yaml:"language,omitempty"`
	// OutDir is the directory where module files are written.
	OutDir string `yaml:"out_dir,omitempty"`
	// Jobs is the number of components generated concurrently (0 = auto).
	Jobs int `yaml:"jobs,omitempty"`
	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose,omitempty"`
}

// Defaults.
//
const (
	DefaultLanguage = "vhdl"
	DefaultOutDir   = "."
)

// DefaultConfig returns the default configuration.
//
func DefaultConfig() *Config {
	return &Config{
		Language: DefaultLanguage,
		OutDir:   DefaultOutDir,
	}
}

// Load loads the configuration file at path. An empty path returns the
// default configuration.
//
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	return Parse(data)
}

// Parse decodes a YAML configuration and fills in missing fields with their
// default value. Unknown keys are rejected.
//
func Parse(data []byte) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "parsing config file")
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
}

// Validate checks option values.
//
func (c *Config) Validate() error {
	if _, err := hdlgen.ParseLanguage(c.Language); err != nil {
		return err
	}
	if c.Jobs < 0 {
		return errors.Wrapf(hdlgen.ErrConfig, "negative job count %d", c.Jobs)
	}
	return nil
}

// Lang returns the target language.
//
func (c *Config) Lang() hdlgen.Language {
	l, err := hdlgen.ParseLanguage(c.Language)
	if err != nil {
		return hdlgen.VHDL
	}
	return l
}

// Save writes c to path as YAML.
//
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}
