// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events loads and cleans tables of observed events.
//
// An event table is a go-gg table with one row per event. Fraud
// analyses expect a binary label column (1 for fraud, 0 otherwise)
// alongside categorical and numeric feature columns. Tables can be
// read from CSV files or from the result of a SQL query.
//
// The column helpers in this package are shared by the analysis
// packages so that a missing column or a numeric operation on
// non-numeric data is always reported the same way.
package events

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

var (
	// ErrNoColumn indicates that a column selector does not name a
	// column of the table.
	ErrNoColumn = errors.New("column not found")

	// ErrType indicates that a column does not have the type an
	// operation requires, such as a numeric operation on a column
	// of strings.
	ErrType = errors.New("type mismatch")
)

// ColumnError records an error and the column that caused it.
type ColumnError struct {
	Col string
	Err error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q: %v", e.Col, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// Column returns column name of t. Unlike t.Column, it returns an
// error wrapping ErrNoColumn if there is no such column.
func Column(t *table.Table, name string) (table.Slice, error) {
	col := t.Column(name)
	if col == nil {
		return nil, &ColumnError{name, ErrNoColumn}
	}
	return col, nil
}

// IsNumeric returns whether col is a slice of an integer or floating
// point type.
func IsNumeric(col table.Slice) bool {
	switch reflect.TypeOf(col).Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Floats returns column name of t converted to []float64. The column
// must be numeric; other columns produce an error wrapping ErrType
// rather than being coerced.
func Floats(t *table.Table, name string) ([]float64, error) {
	col, err := Column(t, name)
	if err != nil {
		return nil, err
	}
	if !IsNumeric(col) {
		return nil, &ColumnError{name, fmt.Errorf("%w: %T is not numeric", ErrType, col)}
	}
	var xs []float64
	slice.Convert(&xs, col)
	return xs, nil
}

// Strings returns the printed form of every value in column name of
// t.
func Strings(t *table.Table, name string) ([]string, error) {
	col, err := Column(t, name)
	if err != nil {
		return nil, err
	}
	if ss, ok := col.([]string); ok {
		return ss, nil
	}
	v := reflect.ValueOf(col)
	ss := make([]string, v.Len())
	for i := range ss {
		ss[i] = fmt.Sprint(v.Index(i).Interface())
	}
	return ss, nil
}

// Select returns a new table consisting of the given rows of t, in
// order. Every column keeps its type. t is not modified.
func Select(t *table.Table, rows []int) *table.Table {
	b := new(table.Builder)
	for _, name := range t.Columns() {
		b.Add(name, slice.Select(t.Column(name), rows))
	}
	return b.Done()
}

// Without returns a new table with all of the columns of t except
// those in drop. Names in drop that are not columns of t are ignored.
func Without(t *table.Table, drop ...string) *table.Table {
	b := new(table.Builder)
cols:
	for _, name := range t.Columns() {
		for _, d := range drop {
			if name == d {
				continue cols
			}
		}
		b.Add(name, t.Column(name))
	}
	return b.Done()
}

// LabelRows returns the indexes of the rows of t whose label column
// equals 1.
func LabelRows(t *table.Table, label string) ([]int, error) {
	ls, err := Floats(t, label)
	if err != nil {
		return nil, err
	}
	var rows []int
	for i, l := range ls {
		if l == 1 {
			rows = append(rows, i)
		}
	}
	return rows, nil
}
