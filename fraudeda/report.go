// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/eventlab/fraudeda/events"
	"github.com/kballard/go-shellquote"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func init() {
	registerSubcommand("report", "<file.yaml> - run a batch of subcommands", ".txt", cmdReport)
}

// A report is a batch of subcommand invocations over one event table.
type report struct {
	// OutDir is the directory step outputs are written to. It is
	// relative to the directory containing the report file.
	OutDir string `yaml:"outdir"`

	// Channels, if non-empty, restricts every step to events on
	// these channels.
	Channels []string `yaml:"channels"`

	Steps []reportStep `yaml:"steps"`
}

type reportStep struct {
	// Name is the base name of the step's output file.
	Name string `yaml:"name"`

	// Run is the subcommand and its arguments, split using shell
	// quoting rules.
	Run string `yaml:"run"`

	sub  *subcommand
	args []string
}

// parseReport reads and checks a report.
func parseReport(r io.Reader) (*report, error) {
	var rep report
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rep); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	if rep.OutDir == "" {
		rep.OutDir = "."
	}

	names := make(map[string]bool)
	for i := range rep.Steps {
		step := &rep.Steps[i]
		if step.Name == "" {
			return nil, fmt.Errorf("step %d has no name", i+1)
		}
		if names[step.Name] {
			return nil, fmt.Errorf("duplicate step name %q", step.Name)
		}
		names[step.Name] = true

		words, err := shellquote.Split(step.Run)
		if err != nil {
			return nil, fmt.Errorf("step %s: %w", step.Name, err)
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("step %s: nothing to run", step.Name)
		}
		step.sub = subcommands[words[0]]
		if step.sub == nil || step.sub.name == "report" {
			return nil, fmt.Errorf("step %s: unknown subcommand %q", step.Name, words[0])
		}
		step.args = words[1:]
	}
	return &rep, nil
}

// path returns the output file of step.
func (rep *report) path(step *reportStep) string {
	return filepath.Join(rep.OutDir, step.Name+step.sub.ext)
}

// run runs the steps of rep concurrently and prints the path of each
// output to w in step order. It returns the first step error.
func (rep *report) run(ctx context.Context, s *session, w io.Writer) error {
	if len(rep.Channels) > 0 {
		tab, err := events.Clean(s.tab, rep.Channels)
		if err != nil {
			return err
		}
		s = &session{tab, s.agg}
	}
	if err := os.MkdirAll(rep.OutDir, 0777); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := range rep.Steps {
		step := &rep.Steps[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := rep.runStep(s, step); err != nil {
				return fmt.Errorf("step %s: %w", step.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range rep.Steps {
		fmt.Fprintln(w, rep.path(&rep.Steps[i]))
	}
	return nil
}

func (rep *report) runStep(s *session, step *reportStep) error {
	f, err := os.Create(rep.path(step))
	if err != nil {
		return err
	}
	if err := step.sub.run(s, step.args, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cmdReport(s *session, args []string, w io.Writer) error {
	f := newFlags("report", "<file.yaml>")
	if err := parseFlags(f, args, 1, 1); err != nil {
		return err
	}

	path := f.Arg(0)
	r, err := os.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()
	rep, err := parseReport(r)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if !filepath.IsAbs(rep.OutDir) {
		rep.OutDir = filepath.Join(filepath.Dir(path), rep.OutDir)
	}
	return rep.run(context.Background(), s, w)
}
