package legend

import (
	"github.com/gogpu/bivariate"
)

// Engine renders bivariate legends with one set of options. Reconfigure it
// with Configure; every Render recomputes the layout from scratch.
type Engine struct {
	opts Options
}

// NewEngine creates an engine with opts.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Options returns the current options.
func (e *Engine) Options() Options { return e.opts }

// Configure replaces all options at once.
func (e *Engine) Configure(opts Options) {
	e.opts = opts
}

// Render lays out polygons on a width × height canvas and draws them:
// swatches, missing-cell hatches, separators, arrows, titles, then ticks.
// It returns the layout that was drawn.
func (e *Engine) Render(c Canvas, width, height float64, polygons []bivariate.LegendPolygon) (*Layout, error) {
	l, err := Compute(c, width, height, polygons, e.opts)
	if err != nil {
		return nil, err
	}
	Draw(c, l, e.opts)
	bivariate.Logger().Debug("legend: rendered",
		"size", l.Size, "cells", len(l.Swatches), "inset", l.Inset, "rotated", e.opts.LegendRotated)
	return l, nil
}

// Draw draws a computed layout onto c.
func Draw(c Canvas, l *Layout, opts Options) {
	for _, sw := range l.Swatches {
		c.FillPolygon(sw.Polygon, sw.Fill, nil)
	}
	hatch := opts.HatchLine.Scaled(l.Scale)
	hatch.Arrow = false
	for _, h := range l.Hatches {
		c.Polyline(h, hatch)
	}
	sep := LineStyle{Color: opts.SeparatorColor, Width: opts.SeparatorWidth * l.Scale}
	for _, s := range l.Separators {
		c.Polyline(s, sep)
	}
	for _, a := range l.Arrows {
		c.Polyline(a.Points, a.Style)
	}
	for _, t := range l.Titles {
		c.DrawText(t.Text, t.At, t.Angle, t.Anchor, t.Format)
	}
	for _, t := range l.Ticks {
		c.DrawText(t.Text, t.At, t.Angle, t.Anchor, t.Format)
	}
}
