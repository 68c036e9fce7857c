// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/eventlab/fraudeda/edaplot"
)

func init() {
	registerSubcommand("count", "-x col [flags] - bar chart of value counts", ".svg", cmdCount)
	registerSubcommand("dist", "-col col -by col -cond1 v -cond2 v [flags] - two overlaid densities", ".svg", cmdDist)
	registerSubcommand("countpoint", "-x col -hue col -point col -filter v,... [flags] - counts with a mean overlay", ".svg", cmdCountPoint)
}

// plotFlags are the flags shared by all plot subcommands.
type plotFlags struct {
	width, height int
	title         string
}

func (pf *plotFlags) register(f *flag.FlagSet) {
	f.IntVar(&pf.width, "width", 800, "plot width in `pixels`")
	f.IntVar(&pf.height, "height", 500, "plot height in `pixels`")
	f.StringVar(&pf.title, "title", "", "plot `title`")
}

func (pf *plotFlags) write(w io.Writer, p *gg.Plot, err error) error {
	if err != nil {
		return err
	}
	return p.WriteSVG(w, pf.width, pf.height)
}

func cmdCount(s *session, args []string, w io.Writer) error {
	var pf plotFlags
	var o edaplot.CountOptions
	f := newFlags("count", "-x col [flags]")
	pf.register(f)
	f.StringVar(&o.X, "x", "", "count values of `col`")
	f.StringVar(&o.Hue, "hue", "", "split bars by `col`")
	f.IntVar(&o.Limit, "limit", 0, "show the `n` most frequent values (0 means 15, -1 means all)")
	f.StringVar(&o.XLabel, "xlabel", "", "x axis `label`")
	f.StringVar(&o.YLabel, "ylabel", "", "y axis `label`")
	if err := parseFlags(f, args, 0, 0); err != nil {
		return err
	}
	if o.X == "" {
		f.Usage()
		return errUsage
	}

	o.Title = pf.title
	p, err := edaplot.Count(s.tab, o)
	return pf.write(w, p, err)
}

func cmdDist(s *session, args []string, w io.Writer) error {
	var pf plotFlags
	var o edaplot.DensityOptions
	f := newFlags("dist", "-col col -by col -cond1 v -cond2 v [flags]")
	pf.register(f)
	f.StringVar(&o.Column, "col", "", "plot the distribution of numeric `col`")
	f.StringVar(&o.Separate, "by", "", "separate rows by the value of `col`")
	f.StringVar(&o.Cond1, "cond1", "", "first series is rows where -by is `value`")
	f.StringVar(&o.Cond2, "cond2", "", "second series is rows where -by is `value`")
	f.StringVar(&o.Label1, "label1", "", "first series `name` (default: -cond1)")
	f.StringVar(&o.Label2, "label2", "", "second series `name` (default: -cond2)")
	if err := parseFlags(f, args, 0, 0); err != nil {
		return err
	}
	if o.Column == "" || o.Separate == "" {
		f.Usage()
		return errUsage
	}

	o.Title = pf.title
	p, err := edaplot.Density(s.tab, o)
	return pf.write(w, p, err)
}

func cmdCountPoint(s *session, args []string, w io.Writer) error {
	var pf plotFlags
	var o edaplot.CountPointOptions
	var filter string
	f := newFlags("countpoint", "-x col -hue col -point col -filter v,... [flags]")
	pf.register(f)
	f.StringVar(&o.X, "x", "", "count values of `col`")
	f.StringVar(&o.Hue, "hue", "", "split bars by `col`")
	f.StringVar(&o.Point, "point", "", "overlay the mean of numeric `col`")
	f.StringVar(&filter, "filter", "", "comma-separated -hue `values` to plot")
	f.IntVar(&o.Limit, "limit", 0, "show the `n` most frequent values of -x over all rows (0 means all)")
	f.StringVar(&o.XLabel, "xlabel", "", "x axis `label`")
	f.StringVar(&o.YLabel, "ylabel", "", "y axis `label`")
	if err := parseFlags(f, args, 0, 0); err != nil {
		return err
	}
	o.Filter = splitList(filter)
	if o.X == "" || o.Hue == "" || o.Point == "" || len(o.Filter) == 0 {
		f.Usage()
		return errUsage
	}

	o.Title = pf.title
	p, err := edaplot.CountPoint(s.tab, o)
	return pf.write(w, p, err)
}
