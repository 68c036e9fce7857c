// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edaplot builds exploratory plots of event tables.
//
// Each function returns a *gg.Plot, which the caller renders with
// WriteSVG. Category axes are drawn as numbered positions; every bar
// is tagged with its category and count.
package edaplot

import (
	"fmt"
	"sort"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
)

// DefaultLimit is the number of categories shown by Count and
// CountPoint when Limit is 0.
const DefaultLimit = 15

// barWidth is the fraction of a category slot covered by its bars.
const barWidth = 0.8

// TopCategories returns the distinct values of vals ordered by
// decreasing frequency, with ties in ascending order. If limit > 0,
// only the first limit values are returned.
func TopCategories(vals []string, limit int) []string {
	counts := make(map[string]int)
	var cats []string
	for _, v := range vals {
		if counts[v] == 0 {
			cats = append(cats, v)
		}
		counts[v]++
	}
	sort.Slice(cats, func(i, j int) bool {
		if counts[cats[i]] != counts[cats[j]] {
			return counts[cats[i]] > counts[cats[j]]
		}
		return cats[i] < cats[j]
	})
	if limit > 0 && len(cats) > limit {
		cats = cats[:limit]
	}
	return cats
}

func limit(l int) int {
	if l == 0 {
		return DefaultLimit
	}
	return l
}

// barCounts counts rows by category and hue.
type barCounts struct {
	cats, hues []string
	counts     map[[2]string]int
}

// countBars counts the rows i for which xs[i] is in cats. hues may
// be nil, in which case there is a single unnamed hue. If hueOrder is
// nil, hues are ordered lexically.
func countBars(xs, hues []string, cats, hueOrder []string) *barCounts {
	bc := &barCounts{cats: cats, counts: make(map[[2]string]int)}
	inCats := make(map[string]bool, len(cats))
	for _, c := range cats {
		inCats[c] = true
	}
	seen := make(map[string]bool)
	for i, x := range xs {
		if !inCats[x] {
			continue
		}
		h := ""
		if hues != nil {
			h = hues[i]
		}
		if !seen[h] {
			seen[h] = true
			if hueOrder == nil {
				bc.hues = append(bc.hues, h)
			}
		}
		bc.counts[[2]string{x, h}]++
	}
	if hueOrder == nil {
		sort.Strings(bc.hues)
	} else {
		bc.hues = hueOrder
	}
	return bc
}

// maxCount returns the largest bar count.
func (bc *barCounts) maxCount() int {
	m := 0
	for _, n := range bc.counts {
		if n > m {
			m = n
		}
	}
	return m
}

// tables returns the polygon outline of each non-empty bar and one
// tag per bar. Bars of the i'th category are centered on x = i, split
// evenly between hues.
func (bc *barCounts) tables() (bars, tags *table.Table) {
	var barID, fill, tag []string
	var bx, by, tx, ty []float64
	slot := barWidth / float64(len(bc.hues))
	for i, cat := range bc.cats {
		for j, hue := range bc.hues {
			n := bc.counts[[2]string{cat, hue}]
			if n == 0 {
				continue
			}
			x0 := float64(i) - barWidth/2 + float64(j)*slot
			x1 := x0 + slot
			id := fmt.Sprintf("%d/%d", i, j)
			f := hue
			label := fmt.Sprintf("%s: %d", cat, n)
			if hue == "" {
				f = cat
			} else {
				label = fmt.Sprintf("%s/%s: %d", cat, hue, n)
			}
			for _, pt := range [][2]float64{{x0, 0}, {x0, float64(n)}, {x1, float64(n)}, {x1, 0}} {
				barID = append(barID, id)
				fill = append(fill, f)
				bx = append(bx, pt[0])
				by = append(by, pt[1])
			}
			tx = append(tx, (x0+x1)/2)
			ty = append(ty, float64(n))
			tag = append(tag, label)
		}
	}
	if barID == nil {
		// Keep the column types of an empty plot.
		barID, fill, tag = []string{}, []string{}, []string{}
		bx, by, tx, ty = []float64{}, []float64{}, []float64{}, []float64{}
	}
	bars = new(table.Builder).
		Add("bar", barID).
		Add("x", bx).
		Add("count", by).
		Add("fill", fill).
		Done()
	tags = new(table.Builder).
		Add("x", tx).
		Add("count", ty).
		Add("label", tag).
		Done()
	return bars, tags
}

// barPlot returns a plot of the bars of bc, each tagged with its
// count. The plot's data is left as the tag table.
func barPlot(bc *barCounts) *gg.Plot {
	bars, tags := bc.tables()
	p := gg.NewPlot(bars)
	p.GroupBy("bar")
	p.Add(gg.LayerPaths{X: "x", Y: "count", Fill: "fill"})
	p.SetData(tags)
	p.Add(gg.LayerTags{X: "x", Y: "count", Label: "label"})
	p.SetScale("y", gg.NewLinearScaler().Include(0))
	return p
}

func labels(p *gg.Plot, title, xlabel, ylabel string) {
	if title != "" {
		p.Add(gg.Title(title))
	}
	if xlabel != "" {
		p.Add(gg.AxisLabel("x", xlabel))
	}
	if ylabel != "" {
		p.Add(gg.AxisLabel("y", ylabel))
	}
}
