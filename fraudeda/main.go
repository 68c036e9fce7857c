// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command fraudeda explores a table of labeled events.
//
// Usage:
//
//	fraudeda [flags] <subcommand> [subcommand flags] [args...]
//
// fraudeda reads an event table from a CSV file (-data) or from the
// result of a SQL query (-dsn and -query) and runs one subcommand
// over it. The event table must have a binary label column (-label,
// default "is_fraud") in which 1 marks a fraudulent event.
//
// The ratio subcommands rate, pairs, and sums print, for each group
// of events, the fraud count or fraud sum, the total, and their
// ratio. describe prints summary statistics and clean writes a
// filtered copy of the table. The plot subcommands count, dist, and
// countpoint write SVG. report runs a YAML batch of subcommands,
// writing each output to its own file.
//
// Flags not given on the command line default to the environment
// variables FRAUDEDA_DATA, FRAUDEDA_DSN, FRAUDEDA_QUERY, and
// FRAUDEDA_LABEL, which may also be set in a .env file in the current
// directory. A DSN beginning with postgres:// selects PostgreSQL;
// any other DSN is a SQLite database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/aclements/go-gg/table"
	"github.com/eventlab/fraudeda/events"
	"github.com/eventlab/fraudeda/fraudrate"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/ssh/terminal"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func main() {
	log.SetPrefix("fraudeda: ")
	log.SetFlags(0)

	// A missing .env file is fine.
	_ = godotenv.Load()

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagData       = flag.String("data", os.Getenv("FRAUDEDA_DATA"), "read events from CSV `file` (- for stdin)")
		flagDSN        = flag.String("dsn", os.Getenv("FRAUDEDA_DSN"), "read events from the database at `dsn`")
		flagQuery      = flag.String("query", os.Getenv("FRAUDEDA_QUERY"), "SQL `query` selecting events from -dsn")
		flagLabel      = flag.String("label", envOr("FRAUDEDA_LABEL", fraudrate.DefaultLabel), "label `column`")
		flagChannels   = flag.String("channels", "", "only use events on comma-separated `channels`")
		flagOut        = flag.String("o", "", "write output to `file` (default: stdout)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <subcommand> [args...]\n\nSubcommands:\n", os.Args[0])
		printSubcommands(os.Stderr)
		fmt.Fprintf(os.Stderr, "\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	sub := subcommands[flag.Arg(0)]
	if sub == nil {
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", flag.Arg(0))
		flag.Usage()
		os.Exit(2)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	ctx := context.Background()
	tab, err := loadTable(ctx, *flagData, *flagDSN, *flagQuery)
	if err != nil {
		log.Fatal(err)
	}
	if *flagChannels != "" {
		if tab, err = events.Clean(tab, splitList(*flagChannels)); err != nil {
			log.Fatal(err)
		}
	}
	s := &session{tab, fraudrate.Aggregator{Label: *flagLabel}}

	// Prepare for output.
	var w io.Writer = os.Stdout
	if *flagOut != "" {
		f, err := os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	} else if sub.plot() && terminal.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatalf("%s writes SVG; use -o or redirect stdout", sub.name)
	}

	if err := sub.run(s, flag.Args()[1:], w); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadTable reads the event table from the CSV file at data or, if
// data is empty, from the result of query on the database at dsn.
func loadTable(ctx context.Context, data, dsn, query string) (*table.Table, error) {
	switch {
	case data != "" && dsn != "":
		return nil, errors.New("-data and -dsn are mutually exclusive")
	case data != "":
		return events.ReadFile(data)
	case dsn != "":
		if query == "" {
			return nil, errors.New("-dsn requires -query")
		}
		db, err := events.Open(ctx, dsn)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return events.Query(ctx, db, query)
	}
	return nil, errors.New("no events: set -data or -dsn")
}
