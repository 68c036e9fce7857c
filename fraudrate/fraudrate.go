// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fraudrate computes the fraction of fraudulent events in
// each group of an event table.
//
// The grouped quantity is either a row count, for grouping by one or
// two categorical columns, or the sum of a numeric column. Each
// operation computes the quantity for every group over all rows,
// computes it again over only the rows labeled as fraud, and left
// joins the two so that groups without any fraud are reported with a
// fraud quantity of 0 rather than dropped.
//
// Groups are returned in ascending key order. If the total quantity of
// a group is 0, its ratio is NaN; see Undefined.
package fraudrate

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/vec"
	"github.com/eventlab/fraudeda/events"
)

// DefaultLabel is the label column used by an Aggregator with no
// Label.
const DefaultLabel = "is_fraud"

// An Aggregator computes group-level fraud ratios.
type Aggregator struct {
	// Label names the binary label column. Rows whose label is 1
	// are fraud; all other rows are not. If Label is "", it
	// defaults to DefaultLabel.
	Label string
}

func (a Aggregator) label() string {
	if a.Label == "" {
		return DefaultLabel
	}
	return a.Label
}

// Undefined returns whether ratio is the marker for a group whose
// total quantity is 0.
func Undefined(ratio float64) bool {
	return math.IsNaN(ratio)
}

func ratio(fraud, total float64) float64 {
	if total == 0 {
		return math.NaN()
	}
	return fraud / total
}

// Rate counts the rows of t and the fraud rows of t for each distinct
// value of col.
//
// The result has columns col, "all count", "fraud count", and
// "ratio".
func (a Aggregator) Rate(t *table.Table, col string) (*table.Table, error) {
	return a.counts(t, col)
}

// Pairs counts the rows of t and the fraud rows of t for each
// distinct combination of values of col1 and col2. Every combination
// that occurs in t appears exactly once in the result.
//
// The result has columns col1, col2, "all count", "fraud count", and
// "ratio".
func (a Aggregator) Pairs(t *table.Table, col1, col2 string) (*table.Table, error) {
	return a.counts(t, col1, col2)
}

func (a Aggregator) counts(t *table.Table, cols ...string) (*table.Table, error) {
	fraud, err := a.fraudRows(t, cols...)
	if err != nil {
		return nil, err
	}

	count := func(g *group) float64 { return float64(len(g.rows)) }
	all := sumGroups(t, cols, nil, count)
	fraudAll := sumGroups(t, cols, fraud, count)
	keys, alls, frauds := leftJoin(all, fraudAll)

	b := keyColumns(t, cols, keys)
	allCol, fraudCol := make([]int, len(keys)), make([]int, len(keys))
	ratios := make([]float64, len(keys))
	for i := range keys {
		allCol[i], fraudCol[i] = int(alls[i]), int(frauds[i])
		ratios[i] = ratio(frauds[i], alls[i])
	}
	b.Add("all count", allCol).Add("fraud count", fraudCol).Add("ratio", ratios)
	return b.Done(), nil
}

// Sums sums numeric column num of t over all rows and over the fraud
// rows for each distinct value of cat. NaN values of num are skipped.
//
// The result has columns cat, "total <num>", "fraud <num>", and
// "ratio".
func (a Aggregator) Sums(t *table.Table, cat, num string) (*table.Table, error) {
	fraud, err := a.fraudRows(t, cat)
	if err != nil {
		return nil, err
	}
	xs, err := events.Floats(t, num)
	if err != nil {
		return nil, err
	}

	sum := func(g *group) float64 {
		gxs := make([]float64, 0, len(g.rows))
		for _, row := range g.rows {
			if !math.IsNaN(xs[row]) {
				gxs = append(gxs, xs[row])
			}
		}
		return vec.Sum(gxs)
	}
	cols := []string{cat}
	keys, totals, frauds := leftJoin(sumGroups(t, cols, nil, sum), sumGroups(t, cols, fraud, sum))

	ratios := make([]float64, len(keys))
	for i := range keys {
		ratios[i] = ratio(frauds[i], totals[i])
	}
	b := keyColumns(t, cols, keys)
	b.Add("total "+num, totals).Add("fraud "+num, frauds).Add("ratio", ratios)
	return b.Done(), nil
}

// fraudRows checks that cols exist in t and returns the fraud rows of
// t.
func (a Aggregator) fraudRows(t *table.Table, cols ...string) ([]int, error) {
	for _, col := range cols {
		if _, err := events.Column(t, col); err != nil {
			return nil, err
		}
	}
	rows, err := events.LabelRows(t, a.label())
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	if rows == nil {
		rows = []int{}
	}
	return rows, nil
}

// key is the value of up to two key columns of a row.
type key [2]interface{}

type group struct {
	key  key
	rows []int
}

type groupSums struct {
	keys []key
	sums map[key]float64
}

// sumGroups groups rows of t by cols and reduces each group with f.
// If rows is nil, it groups all rows of t. Rows with a NaN key are
// skipped. Groups are in order of first appearance.
func sumGroups(t *table.Table, cols []string, rows []int, f func(*group) float64) groupSums {
	seqs := make([]reflect.Value, len(cols))
	for i, col := range cols {
		seqs[i] = reflect.ValueOf(t.Column(col))
	}
	if rows == nil {
		rows = make([]int, t.Len())
		for i := range rows {
			rows[i] = i
		}
	}

	groups := make(map[key]*group)
	var order []key
rowLoop:
	for _, row := range rows {
		var k key
		for i, seq := range seqs {
			v := seq.Index(row)
			if (v.Kind() == reflect.Float64 || v.Kind() == reflect.Float32) && math.IsNaN(v.Float()) {
				// Missing keys do not form a group.
				continue rowLoop
			}
			k[i] = v.Interface()
		}
		g := groups[k]
		if g == nil {
			g = &group{key: k}
			groups[k] = g
			order = append(order, k)
		}
		g.rows = append(g.rows, row)
	}

	gs := groupSums{order, make(map[key]float64, len(order))}
	for _, k := range order {
		gs.sums[k] = f(groups[k])
	}
	return gs
}

// leftJoin joins total and fraud on their keys. Every key of total is
// retained; keys missing from fraud are filled with 0. The result is
// sorted by key.
func leftJoin(total, fraud groupSums) (keys []key, totals, frauds []float64) {
	keys = append(keys, total.keys...)
	sort.Slice(keys, func(i, j int) bool {
		for c := range keys[i] {
			if lessValue(keys[i][c], keys[j][c]) {
				return true
			} else if lessValue(keys[j][c], keys[i][c]) {
				return false
			}
		}
		return false
	})
	totals, frauds = make([]float64, len(keys)), make([]float64, len(keys))
	for i, k := range keys {
		totals[i] = total.sums[k]
		frauds[i] = fraud.sums[k] // 0 if absent
	}
	return
}

// keyColumns returns a Builder holding the key columns of the result,
// with the same types as the corresponding columns of t.
func keyColumns(t *table.Table, cols []string, keys []key) *table.Builder {
	b := new(table.Builder)
	for c, col := range cols {
		seq := reflect.MakeSlice(reflect.TypeOf(t.Column(col)), len(keys), len(keys))
		for i, k := range keys {
			seq.Index(i).Set(reflect.ValueOf(k[c]))
		}
		b.Add(col, seq.Interface())
	}
	return b
}

// lessValue orders two values of a key column. Numbers compare
// numerically and strings lexically; anything else compares by its
// printed form.
func lessValue(a, b interface{}) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() {
		return !va.IsValid() && vb.IsValid()
	}
	switch va.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return va.Int() < vb.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return va.Uint() < vb.Uint()
	case reflect.Float32, reflect.Float64:
		return va.Float() < vb.Float()
	case reflect.String:
		return va.String() < vb.String()
	case reflect.Bool:
		return !va.Bool() && vb.Bool()
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}
