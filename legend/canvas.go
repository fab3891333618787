package legend

import (
	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/text"
)

// Metrics reports what the layout needs to know about a canvas before
// anything is drawn.
type Metrics interface {
	// ScaleFactor converts layout units into device units.
	ScaleFactor() float64

	// MeasureText returns the extent of s drawn with f, in device units.
	MeasureText(s string, f text.Format) text.Extent
}

// Canvas is the drawing capability a legend is rendered onto. All
// coordinates are device units with y pointing down.
type Canvas interface {
	Metrics

	// FillPolygon fills the closed polygon pts with fill. A nil stroke draws
	// no outline.
	FillPolygon(pts []Point, fill bivariate.Color, stroke *Stroke)

	// Polyline strokes the open polyline pts with style, adding an arrow
	// head at the last point when style.Arrow is set.
	Polyline(pts []Point, style LineStyle)

	// DrawText draws s rotated by angle radians about at. anchor selects the
	// point of the text box placed at at.
	DrawText(s string, at Point, angle float64, anchor Anchor, f text.Format)
}

// Stroke is a polygon outline.
type Stroke struct {
	Color bivariate.Color
	Width float64
}

// LineStyle is the style of a polyline.
type LineStyle struct {
	Color bivariate.Color
	Width float64

	// Arrow adds a filled arrow head at the end of the line.
	Arrow         bool
	HeadLength    float64
	HeadThickness float64
}

// Scaled returns the style with every length multiplied by s.
func (ls LineStyle) Scaled(s float64) LineStyle {
	ls.Width *= s
	ls.HeadLength *= s
	ls.HeadThickness *= s
	return ls
}

// ArrowHead returns the three corners of the arrow head of the segment from
// -> to: the tip and the two base corners.
func (ls LineStyle) ArrowHead(from, to Point) [3]Point {
	d := to.Sub(from)
	length := d.Length()
	if length == 0 {
		return [3]Point{to, to, to}
	}
	u := d.Mul(1 / length)
	n := Point{X: -u.Y, Y: u.X}
	base := to.Sub(u.Mul(ls.HeadLength))
	half := ls.HeadThickness / 2
	return [3]Point{to, base.Add(n.Mul(half)), base.Sub(n.Mul(half))}
}

// Anchor is a relative position in a text box: (0, 0) is the top left,
// (1, 1) the bottom right.
type Anchor struct {
	X, Y float64
}

// Common anchors.
var (
	AnchorCenter      = Anchor{X: 0.5, Y: 0.5}
	AnchorRightMiddle = Anchor{X: 1, Y: 0.5}
	AnchorTopCenter   = Anchor{X: 0.5, Y: 0}
)
