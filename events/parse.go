// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// ValueParser is a function that parses a string value into a
// structured type or returns an error if the string cannot be parsed.
type ValueParser func(string) (interface{}, error)

// DefaultValueParsers is the default sequence of value parsers used
// by FromStrings if no parsers are specified. An empty string in an
// otherwise floating point column is parsed as NaN.
var DefaultValueParsers = []ValueParser{
	func(s string) (interface{}, error) { return strconv.Atoi(s) },
	func(s string) (interface{}, error) {
		if s == "" {
			return math.NaN(), nil
		}
		return strconv.ParseFloat(s, 64)
	},
}

// ReadCSV reads an event table from CSV data. The first record names
// the columns. Column types are chosen by FromStrings using
// DefaultValueParsers.
func ReadCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("missing CSV header")
	} else if err != nil {
		return nil, err
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	return FromStrings(header, records, nil)
}

// ReadFile reads an event table from the CSV file at path. If path is
// "-", it reads from standard input.
func ReadFile(path string) (*table.Table, error) {
	if path == "-" {
		return ReadCSV(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// FromStrings builds a table from a header and row-major string data.
//
// Each column is parsed with the first of valueParsers that accepts
// every value in that column, and the column has the type that parser
// returns. If no parser accepts the whole column, it is left as
// []string. A column with no rows is []float64. If valueParsers is
// nil, it uses DefaultValueParsers.
func FromStrings(header []string, rows [][]string, valueParsers []ValueParser) (*table.Table, error) {
	if valueParsers == nil {
		valueParsers = DefaultValueParsers
	}
	seen := make(map[string]bool)
	for _, name := range header {
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields; want %d", i+1, len(row), len(header))
		}
	}

	b := new(table.Builder)
	raw := make([]string, len(rows))
	for c, name := range header {
		for i, row := range rows {
			raw[i] = row[c]
		}
		b.Add(name, parseColumn(raw, valueParsers))
	}
	return b.Done(), nil
}

// parseColumn converts raw using the first parser that accepts every
// value.
func parseColumn(raw []string, valueParsers []ValueParser) table.Slice {
tryParsers:
	for _, vp := range valueParsers {
		var seq reflect.Value
		for i, s := range raw {
			v, err := vp(s)
			if err != nil {
				continue tryParsers
			}
			if i == 0 {
				seq = reflect.MakeSlice(reflect.SliceOf(reflect.TypeOf(v)), len(raw), len(raw))
			}
			seq.Index(i).Set(reflect.ValueOf(v))
		}
		if seq.IsValid() {
			return seq.Interface()
		}
	}
	if len(raw) == 0 {
		// A column with no values is typed numeric so that it can
		// serve as a label or amount as well as a key.
		return []float64{}
	}
	// All of the value parsers failed. Fall back to strings.
	ss := make([]string, len(raw))
	copy(ss, raw)
	return ss
}
