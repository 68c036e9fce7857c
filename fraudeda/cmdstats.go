// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/eventlab/fraudeda/describe"
	"github.com/eventlab/fraudeda/events"
)

func init() {
	registerSubcommand("describe", "[-mode cols] <col>... - summary statistics of numeric columns", ".txt", cmdDescribe)
	registerSubcommand("clean", "<channel>... - write the events on the given channels as CSV", ".csv", cmdClean)
}

func cmdDescribe(s *session, args []string, w io.Writer) error {
	f := newFlags("describe", "[-mode cols] <col>...")
	flagMode := f.String("mode", "", "compute the mode of comma-separated `cols` (default: the described columns)")
	if err := parseFlags(f, args, 1, -1); err != nil {
		return err
	}

	cols := f.Args()
	desc, err := describe.Describe(s.tab, cols)
	if err != nil {
		return err
	}
	modeCols := cols
	if *flagMode != "" {
		modeCols = splitList(*flagMode)
	}
	modes, err := describe.Mode(s.tab, modeCols)
	if err != nil {
		return err
	}
	return describe.Fprint(w, desc, modes)
}

func cmdClean(s *session, args []string, w io.Writer) error {
	f := newFlags("clean", "<channel>...")
	if err := parseFlags(f, args, 1, -1); err != nil {
		return err
	}

	t, err := events.Clean(s.tab, f.Args())
	if err != nil {
		return err
	}
	return events.WriteCSV(w, t)
}
