// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package describe computes summary statistics of event table
// columns.
package describe

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/eventlab/fraudeda/events"
)

// Stats lists the statistics computed by Describe, in order.
var Stats = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Describe computes summary statistics of each of cols of t. The
// result has a "stat" column naming each statistic in Stats and one
// []float64 column per element of cols. NaN values are not counted.
//
// Every column must be numeric.
func Describe(t *table.Table, cols []string) (*table.Table, error) {
	b := new(table.Builder).Add("stat", Stats)
	for _, col := range cols {
		xs, err := events.Floats(t, col)
		if err != nil {
			return nil, err
		}
		b.Add(col, describe(xs))
	}
	return b.Done(), nil
}

func describe(xs []float64) []float64 {
	s := stats.Sample{Xs: make([]float64, 0, len(xs))}
	for _, x := range xs {
		if !math.IsNaN(x) {
			s.Xs = append(s.Xs, x)
		}
	}
	s.Sort()

	nan := math.NaN()
	min, max := nan, nan
	if len(s.Xs) > 0 {
		min, max = s.Bounds()
	}
	std := nan
	if len(s.Xs) > 1 {
		std = s.StdDev()
	}
	return []float64{
		float64(len(s.Xs)),
		s.Mean(),
		std,
		min,
		s.Quantile(0.25),
		s.Quantile(0.5),
		s.Quantile(0.75),
		max,
	}
}

// ColumnMode is the most frequent value or values of a column.
type ColumnMode struct {
	Col string

	// Values are the values that occur Count times, in ascending
	// order.
	Values []interface{}
	Count  int
}

// Mode finds the most frequent values of each of cols of t. Columns
// may have any type.
func Mode(t *table.Table, cols []string) ([]ColumnMode, error) {
	modes := make([]ColumnMode, 0, len(cols))
	for _, col := range cols {
		seq, err := events.Column(t, col)
		if err != nil {
			return nil, err
		}
		modes = append(modes, mode(col, reflect.ValueOf(seq)))
	}
	return modes, nil
}

func mode(col string, seq reflect.Value) ColumnMode {
	counts := make(map[interface{}]int)
	for i := 0; i < seq.Len(); i++ {
		v := seq.Index(i).Interface()
		if f, ok := v.(float64); ok && math.IsNaN(f) {
			continue
		}
		counts[v]++
	}
	m := ColumnMode{Col: col}
	for v, n := range counts {
		if n > m.Count {
			m.Values, m.Count = m.Values[:0], n
		}
		if n == m.Count {
			m.Values = append(m.Values, v)
		}
	}
	sort.Slice(m.Values, func(i, j int) bool {
		return less(m.Values[i], m.Values[j])
	})
	return m
}

func less(a, b interface{}) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return va.Int() < vb.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return va.Uint() < vb.Uint()
	case reflect.Float32, reflect.Float64:
		return va.Float() < vb.Float()
	case reflect.String:
		return va.String() < vb.String()
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

// Fprint prints desc and modes to w in the form
//
//	stat   amount
//	count       3
//	...
//
//	Mode:
//	amount: 1.5 (2)
func Fprint(w io.Writer, desc *table.Table, modes []ColumnMode) error {
	table.Fprint(w, desc)
	if _, err := fmt.Fprintf(w, "\nMode:\n"); err != nil {
		return err
	}
	for _, m := range modes {
		if _, err := fmt.Fprintf(w, "%s:", m.Col); err != nil {
			return err
		}
		for _, v := range m.Values {
			if _, err := fmt.Fprintf(w, " %v", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " (%d)\n", m.Count); err != nil {
			return err
		}
	}
	return nil
}
