// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// WriteCSV writes t to w as CSV with a header record. The output can
// be read back with ReadCSV.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	cols := t.Columns()
	if err := cw.Write(cols); err != nil {
		return err
	}

	seqs := make([]reflect.Value, len(cols))
	for i, name := range cols {
		seqs[i] = reflect.ValueOf(t.Column(name))
	}
	record := make([]string, len(cols))
	for row := 0; row < t.Len(); row++ {
		for i, seq := range seqs {
			record[i] = formatValue(seq.Index(row))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) {
			// Read back as NaN by DefaultValueParsers.
			return ""
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case reflect.String:
		return v.String()
	}
	return fmt.Sprint(v.Interface())
}
