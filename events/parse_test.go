// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
)

func TestReadCSV(t *testing.T) {
	for _, test := range []struct {
		input string
		cols  []string
		want  map[string]table.Slice
	}{
		// Test column typing.
		{`
id,channel,amount,is_fraud
1,web,10.5,1
2,app,3,0`,
			[]string{"id", "channel", "amount", "is_fraud"},
			map[string]table.Slice{
				"id":       []int{1, 2},
				"channel":  []string{"web", "app"},
				"amount":   []float64{10.5, 3},
				"is_fraud": []int{1, 0},
			},
		},

		// Test mixed column falls back to strings.
		{`
code
1
x`,
			[]string{"code"},
			map[string]table.Slice{
				"code": []string{"1", "x"},
			},
		},

		// Test header only.
		{`
a,b`,
			[]string{"a", "b"},
			map[string]table.Slice{
				"a": []float64{},
				"b": []float64{},
			},
		},
	} {
		tab, err := ReadCSV(strings.NewReader(strings.TrimPrefix(test.input, "\n")))
		if err != nil {
			t.Errorf("unexpected ReadCSV error: %v", err)
			continue
		}
		if !reflect.DeepEqual(tab.Columns(), test.cols) {
			t.Errorf("columns: want %v; got %v", test.cols, tab.Columns())
			continue
		}
		for name, want := range test.want {
			if got := tab.Column(name); !reflect.DeepEqual(got, want) {
				t.Errorf("column %q: want %#v; got %#v", name, want, got)
			}
		}
	}
}

func TestReadCSVEmptyFloat(t *testing.T) {
	tab, err := ReadCSV(strings.NewReader("amount\n1.5\n\n2\n"))
	if err != nil {
		t.Fatal(err)
	}
	// encoding/csv skips the blank line, so there are two rows.
	xs := tab.MustColumn("amount").([]float64)
	if len(xs) != 2 || xs[0] != 1.5 || xs[1] != 2 {
		t.Fatalf("want [1.5 2]; got %v", xs)
	}

	tab, err = ReadCSV(strings.NewReader("amount,x\n1.5,a\n,b\n"))
	if err != nil {
		t.Fatal(err)
	}
	xs = tab.MustColumn("amount").([]float64)
	if xs[0] != 1.5 || !math.IsNaN(xs[1]) {
		t.Fatalf("want [1.5 NaN]; got %v", xs)
	}
}

func TestReadCSVErrors(t *testing.T) {
	for _, input := range []string{
		"",
		"a,a\n1,2\n",
		"a,b\n1,2\n3\n",
	} {
		if _, err := ReadCSV(bytes.NewBufferString(input)); err == nil {
			t.Errorf("ReadCSV(%q) should have failed", input)
		}
	}
}

func TestFromStringsParsers(t *testing.T) {
	upper := func(s string) (interface{}, error) { return strings.ToUpper(s), nil }
	tab, err := FromStrings([]string{"x"}, [][]string{{"a"}, {"b"}}, []ValueParser{upper})
	if err != nil {
		t.Fatal(err)
	}
	if want, got := []string{"A", "B"}, tab.MustColumn("x"); !reflect.DeepEqual(want, got) {
		t.Fatalf("want %v; got %v", want, got)
	}
}
