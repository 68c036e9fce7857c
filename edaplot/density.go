// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edaplot

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/eventlab/fraudeda/events"
)

// DensityOptions configures Density.
type DensityOptions struct {
	// Column names the numeric column whose distribution is
	// plotted.
	Column string

	// Separate names the column that splits the rows into two
	// series: rows whose Separate value prints as Cond1 and rows
	// whose value prints as Cond2.
	Separate     string
	Cond1, Cond2 string

	// Label1 and Label2 name the two series. They default to
	// Cond1 and Cond2.
	Label1, Label2 string

	Title string
}

// seriesCol is the column that names the series of each row.
const seriesCol = "series"

// Density returns two overlaid kernel density estimates of o.Column,
// one for each condition on o.Separate. NaN values are skipped.
func Density(t *table.Table, o DensityOptions) (*gg.Plot, error) {
	xs, err := events.Floats(t, o.Column)
	if err != nil {
		return nil, err
	}
	sep, err := events.Strings(t, o.Separate)
	if err != nil {
		return nil, err
	}
	if o.Label1 == "" {
		o.Label1 = o.Cond1
	}
	if o.Label2 == "" {
		o.Label2 = o.Cond2
	}
	if o.Label1 == o.Label2 {
		return nil, fmt.Errorf("density series labels must differ; both are %q", o.Label1)
	}

	var vals []float64
	var series []string
	for i, s := range sep {
		var label string
		switch s {
		case o.Cond1:
			label = o.Label1
		case o.Cond2:
			label = o.Label2
		default:
			continue
		}
		if math.IsNaN(xs[i]) {
			continue
		}
		vals = append(vals, xs[i])
		series = append(series, label)
	}
	if vals == nil {
		return nil, fmt.Errorf("no rows with %s = %q or %q", o.Separate, o.Cond1, o.Cond2)
	}
	data := new(table.Builder).Add(o.Column, vals).Add(seriesCol, series).Done()

	p := gg.NewPlot(data)
	p.GroupBy(seriesCol)
	p.Stat(ggstat.Density{X: o.Column})
	p.Add(gg.LayerLines{X: o.Column, Y: "probability density", Color: seriesCol})
	labels(p, o.Title, o.Column, "Density")
	return p, nil
}
