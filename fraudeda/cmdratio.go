// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/eventlab/fraudeda/events"
)

func init() {
	registerSubcommand("rate", "[-csv] <col> - fraud ratio of each value of col", ".txt", cmdRate)
	registerSubcommand("pairs", "[-csv] <col1> <col2> - fraud ratio of each pair of values", ".txt", cmdPairs)
	registerSubcommand("sums", "[-csv] <cat> <num> - fraud share of num summed by cat", ".txt", cmdSums)
}

func cmdRate(s *session, args []string, w io.Writer) error {
	return ratioCmd("rate", "[-csv] <col>", 1, args, w, func(cols []string) (*table.Table, error) {
		return s.agg.Rate(s.tab, cols[0])
	})
}

func cmdPairs(s *session, args []string, w io.Writer) error {
	return ratioCmd("pairs", "[-csv] <col1> <col2>", 2, args, w, func(cols []string) (*table.Table, error) {
		return s.agg.Pairs(s.tab, cols[0], cols[1])
	})
}

func cmdSums(s *session, args []string, w io.Writer) error {
	return ratioCmd("sums", "[-csv] <cat> <num>", 2, args, w, func(cols []string) (*table.Table, error) {
		return s.agg.Sums(s.tab, cols[0], cols[1])
	})
}

// ratioCmd parses the flags and nargs column arguments shared by the
// ratio subcommands, computes the result with agg, and prints it.
func ratioCmd(name, usage string, nargs int, args []string, w io.Writer, agg func(cols []string) (*table.Table, error)) error {
	f := newFlags(name, usage)
	flagCSV := f.Bool("csv", false, "write CSV instead of a text table")
	if err := parseFlags(f, args, nargs, nargs); err != nil {
		return err
	}

	res, err := agg(f.Args())
	if err != nil {
		return err
	}
	if *flagCSV {
		return events.WriteCSV(w, res)
	}
	table.Fprint(w, res)
	return nil
}
