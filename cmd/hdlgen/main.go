// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command hdlgen generates VHDL or Verilog modules for the components of a
// design file, along with their instantiation text.
//
//	hdlgen [flags] design.yaml
//
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/db47h/hdlgen"
	"github.com/db47h/hdlgen/hwlib"
	"github.com/db47h/hdlgen/internal/config"
	"github.com/db47h/hdlgen/internal/design"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	config  string
	lang    string
	out     string
	jobs    int
	verbose bool
	list    bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "hdlgen [flags] design.yaml",
		Short: "hdlgen generates VHDL or Verilog modules for a netlist of components",
		Long: `hdlgen reads a design file listing component instances, their attributes
and connections, and writes one HDL module per distinct component shape to the
output directory, plus a file with the instantiation of every component.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(errOut, o.execute(cmd, args, out, errOut))
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return report(errOut, err)
	})
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "configuration file")
	f.StringVarP(&o.lang, "lang", "l", config.DefaultLanguage, "target language (vhdl or verilog)")
	f.StringVarP(&o.out, "out", "o", config.DefaultOutDir, "output directory")
	f.IntVarP(&o.jobs, "jobs", "j", 0, "number of components generated concurrently (0 = GOMAXPROCS)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log every generated component")
	f.BoolVar(&o.list, "list", false, "list available component types and exit")
	return cmd
}

// report prints a non-nil err to w and returns it.
//
func report(w io.Writer, err error) error {
	if err != nil {
		fmt.Fprintln(w, "hdlgen:", err)
	}
	return err
}

func (o *options) execute(cmd *cobra.Command, args []string, out, errOut io.Writer) error {
	if o.list {
		for _, t := range hwlib.Families().Types() {
			fmt.Fprintln(out, t)
		}
		return nil
	}
	switch {
	case len(args) == 0:
		return errors.New("no design file")
	case len(args) > 1:
		return errors.Errorf("accepts at most 1 arg(s), received %d", len(args))
	}
	c, err := o.resolve(cmd)
	if err != nil {
		return err
	}
	return run(c, args[0], out, errOut)
}

// resolve loads the configuration file, then applies the flags set on the
// command line.
//
func (o *options) resolve(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(o.config)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("lang") {
		c.Language = o.lang
	}
	if f.Changed("out") {
		c.OutDir = o.out
	}
	if f.Changed("jobs") {
		c.Jobs = o.jobs
	}
	if f.Changed("verbose") {
		c.Verbose = o.verbose
	}
	if err = c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func run(c *config.Config, path string, out, errOut io.Writer) error {
	log := newLogger(errOut, c.Verbose)
	d, err := design.Load(path)
	if err != nil {
		return err
	}
	a := &hdlgen.Assembler{
		Lang:   c.Lang(),
		Lib:    hwlib.Families(),
		Jobs:   c.Jobs,
		Logger: log.WithField("design", d.Name),
	}
	p, err := a.Assemble(d)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(c.OutDir, 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	for _, m := range p.Modules {
		if err = write(c.OutDir, m.FileName(), m.Text, out); err != nil {
			return err
		}
	}
	return write(c.OutDir, d.Name+"_instances"+a.Lang.Ext(), p.Instances, out)
}

func write(dir, name, text string, out io.Writer) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return errors.Wrap(err, "writing output file")
	}
	fmt.Fprintln(out, path)
	return nil
}
