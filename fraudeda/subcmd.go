// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/eventlab/fraudeda/fraudrate"
)

// A session is the event table shared by the subcommands of one run.
// Subcommands must not modify it.
type session struct {
	tab *table.Table
	agg fraudrate.Aggregator
}

type subcommand struct {
	name, desc string

	// ext is the file extension of the subcommand's output.
	ext string

	run func(s *session, args []string, w io.Writer) error
}

// plot returns whether sub writes an SVG plot.
func (sub *subcommand) plot() bool {
	return sub.ext == ".svg"
}

var subcommands = make(map[string]*subcommand)

func registerSubcommand(name, desc, ext string, run func(s *session, args []string, w io.Writer) error) {
	if subcommands[name] != nil {
		panic("duplicate subcommand " + name)
	}
	subcommands[name] = &subcommand{name, desc, ext, run}
}

// errUsage is returned by subcommands whose arguments are invalid
// after printing their usage.
var errUsage = errors.New("usage error")

// newFlags returns a FlagSet for one invocation of subcommand name.
// Parse errors are returned rather than exiting so that report steps
// can fail individually.
func newFlags(name, usage string) *flag.FlagSet {
	f := flag.NewFlagSet(name, flag.ContinueOnError)
	f.Usage = func() {
		fmt.Fprintf(f.Output(), "Usage: %s %s %s\n", os.Args[0], name, usage)
		f.PrintDefaults()
	}
	return f
}

// parseFlags parses args with f and checks that between min and max
// positional arguments remain. max < 0 means no limit.
func parseFlags(f *flag.FlagSet, args []string, min, max int) error {
	if err := f.Parse(args); err != nil {
		return errUsage
	}
	if f.NArg() < min || (max >= 0 && f.NArg() > max) {
		f.Usage()
		return errUsage
	}
	return nil
}

// splitList splits a comma-separated list, dropping empty elements.
func splitList(s string) []string {
	var out []string
	for _, x := range strings.Split(s, ",") {
		if x = strings.TrimSpace(x); x != "" {
			out = append(out, x)
		}
	}
	return out
}

func printSubcommands(w io.Writer) {
	names := make([]string, 0, len(subcommands))
	for name := range subcommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s\n", name, subcommands[name].desc)
	}
}
