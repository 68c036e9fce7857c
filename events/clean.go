// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "github.com/aclements/go-gg/table"

const (
	// ChannelColumn is the column Clean filters on.
	ChannelColumn = "channel"

	// IndexColumn is the unnamed index column left behind when a
	// data frame is saved to CSV with its index.
	IndexColumn = "Unnamed: 0"
)

// Clean returns the rows of t whose ChannelColumn value is one of
// channels, without IndexColumn. Values are compared by their printed
// form. t is not modified, and it is not an error for t to lack
// IndexColumn.
func Clean(t *table.Table, channels []string) (*table.Table, error) {
	vals, err := Strings(t, ChannelColumn)
	if err != nil {
		return nil, err
	}
	keep := make(map[string]bool, len(channels))
	for _, c := range channels {
		keep[c] = true
	}
	rows := []int{}
	for i, v := range vals {
		if keep[v] {
			rows = append(rows, i)
		}
	}
	return Without(Select(t, rows), IndexColumn), nil
}
