// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const testReport = `
outdir: out
channels: [web]
steps:
  - name: channel-rate
    run: rate -csv channel
  - name: by-device
    run: count -x device -title "Events by device"
`

func TestParseReport(t *testing.T) {
	rep, err := parseReport(strings.NewReader(testReport))
	if err != nil {
		t.Fatal(err)
	}
	if rep.OutDir != "out" || !reflect.DeepEqual([]string{"web"}, rep.Channels) {
		t.Errorf("got outdir %q, channels %v", rep.OutDir, rep.Channels)
	}
	if len(rep.Steps) != 2 {
		t.Fatalf("want 2 steps; got %d", len(rep.Steps))
	}
	step := rep.Steps[1]
	if step.sub.name != "count" {
		t.Errorf("want count; got %s", step.sub.name)
	}
	if want := []string{"-x", "device", "-title", "Events by device"}; !reflect.DeepEqual(want, step.args) {
		t.Errorf("args: want %q; got %q", want, step.args)
	}
	if got, want := rep.path(&rep.Steps[0]), filepath.Join("out", "channel-rate.txt"); got != want {
		t.Errorf("path: want %s; got %s", want, got)
	}
	if got, want := rep.path(&rep.Steps[1]), filepath.Join("out", "by-device.svg"); got != want {
		t.Errorf("path: want %s; got %s", want, got)
	}
}

func TestParseReportErrors(t *testing.T) {
	for _, test := range []struct {
		name, src, want string
	}{
		{"no name", "steps:\n  - run: rate channel\n", "no name"},
		{"duplicate", "steps:\n  - {name: a, run: rate x}\n  - {name: a, run: rate y}\n", "duplicate"},
		{"empty run", "steps:\n  - {name: a, run: ''}\n", "nothing to run"},
		{"unknown", "steps:\n  - {name: a, run: frobnicate}\n", "unknown subcommand"},
		{"nested report", "steps:\n  - {name: a, run: report r.yaml}\n", "unknown subcommand"},
		{"bad quoting", "steps:\n  - {name: a, run: 'count -title \"x'}\n", "step a"},
		{"unknown field", "outdir: x\nbogus: 1\n", "bogus"},
	} {
		_, err := parseReport(strings.NewReader(test.src))
		if err == nil || !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: want error containing %q; got %v", test.name, test.want, err)
		}
	}
}

func TestRunReport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.yaml")
	if err := os.WriteFile(path, []byte(testReport), 0666); err != nil {
		t.Fatal(err)
	}

	out, err := runSub(t, "report", path)
	if err != nil {
		t.Fatal(err)
	}
	rate := filepath.Join(dir, "out", "channel-rate.txt")
	plot := filepath.Join(dir, "out", "by-device.svg")
	if want := rate + "\n" + plot + "\n"; out != want {
		t.Errorf("want:\n%s\ngot:\n%s", want, out)
	}

	// The report's channels leave only web events.
	data, err := os.ReadFile(rate)
	if err != nil {
		t.Fatal(err)
	}
	if want := "channel,all count,fraud count,ratio\nweb,2,1,0.5\n"; string(data) != want {
		t.Errorf("want:\n%s\ngot:\n%s", want, data)
	}
	data, err = os.ReadFile(plot)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("plot output is not SVG")
	}
}

func TestRunReportError(t *testing.T) {
	rep, err := parseReport(strings.NewReader("steps:\n  - {name: ok, run: rate channel}\n  - {name: bad, run: rate nope}\n"))
	if err != nil {
		t.Fatal(err)
	}
	rep.OutDir = t.TempDir()
	err = rep.run(context.Background(), testSession(), new(bytes.Buffer))
	if err == nil || !strings.Contains(err.Error(), "step bad") {
		t.Errorf("want step bad error; got %v", err)
	}
}
