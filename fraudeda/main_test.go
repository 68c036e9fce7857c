// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/eventlab/fraudeda/events"
	"github.com/eventlab/fraudeda/fraudrate"
)

var testTab = new(table.Builder).
	Add("Unnamed: 0", []int{0, 1, 2, 3}).
	Add("channel", []string{"web", "app", "web", "app"}).
	Add("device", []string{"ios", "ios", "android", "android"}).
	Add("amount", []float64{10, 5, 7, 3}).
	Add("is_fraud", []int{1, 0, 0, 0}).
	Done()

func testSession() *session {
	return &session{testTab, fraudrate.Aggregator{}}
}

func runSub(t *testing.T, name string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := subcommands[name].run(testSession(), args, &buf)
	return buf.String(), err
}

func TestRateCSV(t *testing.T) {
	out, err := runSub(t, "rate", "-csv", "channel")
	if err != nil {
		t.Fatal(err)
	}
	want := "channel,all count,fraud count,ratio\napp,2,0,0\nweb,2,1,0.5\n"
	if out != want {
		t.Errorf("want:\n%s\ngot:\n%s", want, out)
	}
}

func TestSums(t *testing.T) {
	out, err := runSub(t, "sums", "-csv", "channel", "amount")
	if err != nil {
		t.Fatal(err)
	}
	want := "channel,total amount,fraud amount,ratio\napp,8,0,0\nweb,17,10,0.588"
	if !strings.HasPrefix(out, want) {
		t.Errorf("want prefix:\n%s\ngot:\n%s", want, out)
	}
}

func TestPairsTable(t *testing.T) {
	out, err := runSub(t, "pairs", "channel", "device")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"channel", "device", "all count", "ratio"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestClean(t *testing.T) {
	out, err := runSub(t, "clean", "web")
	if err != nil {
		t.Fatal(err)
	}
	want := "channel,device,amount,is_fraud\nweb,ios,10,1\nweb,android,7,0\n"
	if out != want {
		t.Errorf("want:\n%s\ngot:\n%s", want, out)
	}
}

func TestDescribe(t *testing.T) {
	out, err := runSub(t, "describe", "-mode", "channel", "amount")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "channel: app web (2)\n") {
		t.Errorf("missing channel mode:\n%s", out)
	}
}

func TestPlots(t *testing.T) {
	for _, args := range [][]string{
		{"count", "-x", "channel", "-hue", "is_fraud"},
		{"dist", "-col", "amount", "-by", "device", "-cond1", "ios", "-cond2", "android"},
		{"countpoint", "-x", "channel", "-hue", "device", "-point", "amount", "-filter", "ios,android"},
	} {
		out, err := runSub(t, args[0], args[1:]...)
		if err != nil {
			t.Errorf("%v: %v", args, err)
			continue
		}
		if !strings.Contains(out, "<svg") {
			t.Errorf("%v: output is not SVG", args)
		}
	}
}

func TestSubcommandErrors(t *testing.T) {
	for _, test := range []struct {
		args []string
		want error
	}{
		{[]string{"rate"}, errUsage},
		{[]string{"rate", "a", "b"}, errUsage},
		{[]string{"rate", "-bogus", "channel"}, errUsage},
		{[]string{"count"}, errUsage},
		{[]string{"countpoint", "-x", "channel", "-hue", "device", "-point", "amount"}, errUsage},
		{[]string{"rate", "nope"}, events.ErrNoColumn},
		{[]string{"sums", "channel", "device"}, events.ErrType},
		{[]string{"describe", "channel"}, events.ErrType},
	} {
		sub := subcommands[test.args[0]]
		// Usage messages go to the FlagSet output, which is
		// stderr; that is fine for a test.
		err := sub.run(testSession(), test.args[1:], new(bytes.Buffer))
		if !errors.Is(err, test.want) {
			t.Errorf("%v: want %v; got %v", test.args, test.want, err)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" web, app,,pos ")
	if want := []string{"web", "app", "pos"}; !reflect.DeepEqual(want, got) {
		t.Errorf("want %v; got %v", want, got)
	}
	if got := splitList(""); got != nil {
		t.Errorf("want nil; got %v", got)
	}
}

func TestLoadTableCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := os.WriteFile(path, []byte("channel,is_fraud\nweb,1\napp,0\n"), 0666); err != nil {
		t.Fatal(err)
	}
	tab, err := loadTable(context.Background(), path, "", "")
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{1, 0}; !reflect.DeepEqual(want, tab.Column("is_fraud")) {
		t.Errorf("is_fraud: want %v; got %v", want, tab.Column("is_fraud"))
	}
}

func TestRateHeaderOnly(t *testing.T) {
	tab, err := events.ReadCSV(strings.NewReader("channel,is_fraud\n"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	s := &session{tab, fraudrate.Aggregator{}}
	if err := subcommands["rate"].run(s, []string{"-csv", "channel"}, &buf); err != nil {
		t.Fatal(err)
	}
	if want := "channel,all count,fraud count,ratio\n"; buf.String() != want {
		t.Errorf("want %q; got %q", want, buf.String())
	}
}

func TestCountNoEvents(t *testing.T) {
	clean, err := events.Clean(testTab, []string{"nosuch"})
	if err != nil {
		t.Fatal(err)
	}
	s := &session{clean, fraudrate.Aggregator{}}
	if err := subcommands["count"].run(s, []string{"-x", "channel"}, new(bytes.Buffer)); err == nil {
		t.Error("want error plotting no events")
	}
}

func TestLoadTableSQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "events.db")
	db, err := events.Open(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	for _, q := range []string{
		`CREATE TABLE events (channel TEXT, is_fraud INTEGER)`,
		`INSERT INTO events VALUES ('web', 1), ('app', 0), ('web', 0)`,
	} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatal(err)
		}
	}
	db.Close()

	tab, err := loadTable(ctx, "", dsn, `SELECT channel, is_fraud FROM events WHERE channel = 'web'`)
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 2 {
		t.Errorf("want 2 rows; got %d", tab.Len())
	}
}

func TestLoadTableErrors(t *testing.T) {
	ctx := context.Background()
	for _, args := range [][3]string{
		{"", "", ""},
		{"a.csv", "b.db", "SELECT 1"},
		{"", "b.db", ""},
	} {
		if _, err := loadTable(ctx, args[0], args[1], args[2]); err == nil {
			t.Errorf("loadTable%q: want error", args)
		}
	}
}
