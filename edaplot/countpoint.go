// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edaplot

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/eventlab/fraudeda/events"
)

// CountPointOptions configures CountPoint.
type CountPointOptions struct {
	// X names the categorical column on the X axis.
	X string

	// Hue names the column that splits each category into bars.
	// Only rows whose Hue value prints as one of Filter are
	// plotted, and bars are in Filter order.
	Hue    string
	Filter []string

	// Point names the numeric column whose mean per category of X
	// is drawn over the bars.
	Point string

	// Limit is the number of categories of X to show, chosen by
	// frequency over all rows of the table. If Limit is 0, all
	// categories of the filtered rows are shown, ordered by
	// frequency among those rows.
	Limit int

	XLabel, YLabel, Title string
}

// CountPoint returns a grouped bar chart of the number of rows in each
// category of o.X and value of o.Hue, overlaid with the mean of o.Point
// in each category of o.X.
//
// The means are drawn against a secondary scale: they are scaled so
// that the largest mean magnitude is level with the tallest bar, and
// each point is tagged with its unscaled mean. If every mean is 0,
// only the tags are drawn.
//
// It is an error if no filtered row falls in a plotted category.
func CountPoint(t *table.Table, o CountPointOptions) (*gg.Plot, error) {
	xs, err := events.Strings(t, o.X)
	if err != nil {
		return nil, err
	}
	hues, err := events.Strings(t, o.Hue)
	if err != nil {
		return nil, err
	}
	ys, err := events.Floats(t, o.Point)
	if err != nil {
		return nil, err
	}
	if len(o.Filter) == 0 {
		return nil, fmt.Errorf("no %s values to plot", o.Hue)
	}

	keep := make(map[string]bool)
	for _, f := range o.Filter {
		keep[f] = true
	}
	var rows []int
	for i, h := range hues {
		if keep[h] {
			rows = append(rows, i)
		}
	}
	fxs, fhues := make([]string, len(rows)), make([]string, len(rows))
	for i, row := range rows {
		fxs[i], fhues[i] = xs[row], hues[row]
	}

	var cats []string
	if o.Limit > 0 {
		cats = TopCategories(xs, o.Limit)
	} else {
		cats = TopCategories(fxs, -1)
	}
	bc := countBars(fxs, fhues, cats, o.Filter)
	if bc.maxCount() == 0 {
		return nil, fmt.Errorf("no rows with %s in %v", o.Hue, o.Filter)
	}
	p := barPlot(bc)
	pt, scaled := pointTable(cats, xs, ys, rows, float64(bc.maxCount()), o.Point)
	if pt.Len() > 0 {
		p.SetData(pt)
		if scaled {
			p.Add(gg.LayerLines{X: "x", Y: "count"})
			p.Add(gg.LayerPoints{X: "x", Y: "count"})
		}
		p.Add(gg.LayerTags{X: "x", Y: "count", Label: "label"})
	}

	if o.XLabel == "" {
		o.XLabel = o.X
	}
	if o.YLabel == "" {
		o.YLabel = "count"
	}
	labels(p, o.Title, o.XLabel, o.YLabel)
	return p, nil
}

// pointTable computes the mean of ys over rows in each category of
// cats and scales the means so the largest magnitude is top. If every
// mean is 0 there is nothing to scale: all points are placed at top
// and scaled is false, so only their tags should be drawn.
func pointTable(cats, xs []string, ys []float64, rows []int, top float64, name string) (t *table.Table, scaled bool) {
	samples := make(map[string][]float64)
	for _, row := range rows {
		if !math.IsNaN(ys[row]) {
			samples[xs[row]] = append(samples[xs[row]], ys[row])
		}
	}

	var px, means []float64
	var label []string
	for i, cat := range cats {
		if len(samples[cat]) == 0 {
			continue
		}
		px = append(px, float64(i))
		means = append(means, stats.Mean(samples[cat]))
		label = append(label, fmt.Sprintf("%s mean %s: %.4g", cat, name, means[len(means)-1]))
	}

	scale := 0.0
	for _, m := range means {
		scale = math.Max(scale, math.Abs(m))
	}
	py := make([]float64, len(means))
	for i, m := range means {
		if scale == 0 {
			py[i] = top
		} else {
			py[i] = m / scale * top
		}
	}
	if px == nil {
		px, label = []float64{}, []string{}
	}
	t = new(table.Builder).
		Add("x", px).
		Add("count", py).
		Add("label", label).
		Done()
	return t, scale != 0
}
