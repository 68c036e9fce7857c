// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edaplot

import (
	"fmt"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/eventlab/fraudeda/events"
)

// CountOptions configures Count.
type CountOptions struct {
	// X names the categorical column to count.
	X string

	// Hue optionally names a second categorical column. If set,
	// each category of X gets one bar per value of Hue, colored
	// by Hue.
	Hue string

	// Limit is the number of most frequent categories of X to
	// show. If Limit is 0, it defaults to DefaultLimit. If Limit
	// is negative, all categories are shown.
	Limit int

	XLabel, YLabel, Title string
}

// Count returns a bar chart of the number of rows of t in each
// category of o.X.
func Count(t *table.Table, o CountOptions) (*gg.Plot, error) {
	xs, err := events.Strings(t, o.X)
	if err != nil {
		return nil, err
	}
	var hues []string
	if o.Hue != "" {
		if hues, err = events.Strings(t, o.Hue); err != nil {
			return nil, err
		}
	}

	bc := countBars(xs, hues, TopCategories(xs, limit(o.Limit)), nil)
	if bc.maxCount() == 0 {
		return nil, fmt.Errorf("no %s values to plot", o.X)
	}
	p := barPlot(bc)
	if o.YLabel == "" {
		o.YLabel = "count"
	}
	if o.XLabel == "" {
		o.XLabel = o.X
	}
	labels(p, o.Title, o.XLabel, o.YLabel)
	return p, nil
}
