package legend

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/text"
)

// rotatedShrink keeps a rotated legend clear of the canvas edges.
const rotatedShrink = 0.95

// Swatch is one grid cell of a legend.
type Swatch struct {
	X, Y int

	// Rect is the cell in legend space: top left, top right, bottom right,
	// bottom left.
	Rect [4]Point

	// Polygon is Rect mapped through the layout transform.
	Polygon []Point

	Fill    bivariate.Color
	Missing bool
}

// Arrow is an axis arrow in canvas space.
type Arrow struct {
	Points []Point
	Style  LineStyle
}

// Label is a piece of text placed in canvas space.
type Label struct {
	Text   string
	At     Point
	Angle  float64
	Anchor Anchor
	Format text.Format
}

// Layout is the complete geometry of one legend render. Legend space is the
// square [0, Size]² with the grid in its top right corner; Transform maps it
// onto the canvas.
type Layout struct {
	Size   float64
	Scale  float64
	Margin float64

	TitleHeight float64
	TickHeight  float64
	TickWidth   float64

	TitleBand float64
	TickBand  float64
	ArrowBand float64

	// Inset is the sum of the bands, reserved left of and below the grid.
	Inset float64
	Grid  float64
	Cell  float64
	N     int

	Transform Matrix

	Swatches   []Swatch
	Hatches    [][]Point
	Separators [][]Point
	Arrows     []Arrow
	Titles     []Label
	Ticks      []Label
}

// XEdge returns the legend-space x of the k-th vertical grid line.
func (l *Layout) XEdge(k int) float64 {
	return l.Inset + l.Grid*float64(k)/float64(l.N)
}

// YEdge returns the legend-space y of the k-th horizontal grid line,
// counted from the bottom of the grid.
func (l *Layout) YEdge(k int) float64 {
	return l.Grid * float64(l.N-k) / float64(l.N)
}

// Compute derives the legend geometry for a width × height canvas without
// drawing anything. polygons must hold N² cells with coordinates in
// [0, N); an empty or non-square list fails with ErrInvalidPolygons.
func Compute(m Metrics, width, height float64, polygons []bivariate.LegendPolygon, opts Options) (*Layout, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidSize, width, height)
	}
	scale := m.ScaleFactor()
	if !(scale > 0) {
		return nil, fmt.Errorf("%w: scale factor %v", ErrInvalidSize, scale)
	}
	n, err := gridSize(polygons)
	if err != nil {
		return nil, err
	}

	size := min(width, height) * scale
	l := &Layout{
		Size:   size,
		Scale:  scale,
		Margin: size * opts.Margin / 100,
		N:      n,
	}
	titleFormat := opts.TitleFormat.Scaled(scale)
	tickFormat := opts.TickFormat.Scaled(scale)
	nf := opts.numberFormat()

	if opts.AddAxesTexts {
		l.TitleHeight = max(
			m.MeasureText(opts.AxisTitleX, titleFormat).Height(),
			m.MeasureText(opts.AxisTitleY, titleFormat).Height(),
		)
		l.TitleBand = l.TitleHeight + l.Margin
	}
	if opts.AddAxesTicksTexts {
		l.TickHeight = m.MeasureText(largestTick(nf, opts.TicksX, opts.TicksPrecisionX), tickFormat).Height()
		l.TickWidth = m.MeasureText(largestTick(nf, opts.TicksY, opts.TicksPrecisionY), tickFormat).Width
		l.TickBand = l.TickHeight + l.Margin
	}
	if opts.AddAxesArrows {
		l.ArrowBand = size*opts.ArrowWidth/100 + l.Margin
	}

	l.Inset = l.TitleBand + l.TickBand + l.ArrowBand
	l.Grid = size - l.Inset
	if !(l.Grid > 0) {
		return nil, fmt.Errorf("%w: decorations need %v of %v", ErrInvalidSize, l.Inset, size)
	}
	l.Cell = l.Grid / float64(n)

	tickPath := opts.AddAxesTicksTexts && !opts.LegendRotated
	var shrink float64
	switch {
	case opts.LegendRotated:
		center := Pt(l.Inset+l.Grid/2, l.Grid/2)
		s := (size / 2) / ((l.Grid/2 + l.Inset) * math.Sqrt2) * rotatedShrink
		l.Transform = Translate(size/2, size/2).
			Multiply(Scale(s, s)).
			Multiply(Translate(-center.X, -center.Y)).
			Multiply(RotateAbout(-math.Pi/4, center))
	case tickPath:
		reserve := l.TickWidth + l.Margin
		shrink = (size - reserve) / size
		if !(shrink > 0) {
			return nil, fmt.Errorf("%w: tick labels need %v of %v", ErrInvalidSize, reserve, size)
		}
		l.Transform = Translate(reserve, 0).Multiply(Scale(shrink, shrink))
	default:
		l.Transform = Identity()
	}

	l.layoutSwatches(polygons, opts)
	if opts.AddAxesArrows {
		l.layoutArrows(opts.ArrowsCommonOrigin, opts.AxisLine.Scaled(scale))
	}
	if opts.AddAxesTexts {
		l.layoutTitles(opts, titleFormat, tickPath, shrink)
	}
	if opts.AddAxesTicksTexts {
		l.layoutTicks(opts, nf, tickFormat)
	}
	return l, nil
}

func gridSize(polygons []bivariate.LegendPolygon) (int, error) {
	count := len(polygons)
	if count == 0 {
		return 0, fmt.Errorf("%w: no polygons", ErrInvalidPolygons)
	}
	n := int(math.Round(math.Sqrt(float64(count))))
	if n*n != count {
		return 0, fmt.Errorf("%w: %d polygons is not a square grid", ErrInvalidPolygons, count)
	}
	seen := make(map[[2]int]bool, count)
	for _, p := range polygons {
		if p.X < 0 || p.X >= n || p.Y < 0 || p.Y >= n {
			return 0, fmt.Errorf("%w: cell (%d, %d) outside %dx%d grid", ErrInvalidPolygons, p.X, p.Y, n, n)
		}
		cell := [2]int{p.X, p.Y}
		if seen[cell] {
			return 0, fmt.Errorf("%w: cell (%d, %d) appears twice", ErrInvalidPolygons, p.X, p.Y)
		}
		seen[cell] = true
	}
	return n, nil
}

func largestTick(nf *text.NumberFormatter, ticks []float64, precision int) string {
	if len(ticks) == 0 {
		return ""
	}
	return nf.Format(slices.Max(ticks), precision)
}

func (l *Layout) layoutSwatches(polygons []bivariate.LegendPolygon, opts Options) {
	l.Swatches = make([]Swatch, len(polygons))
	for k, p := range polygons {
		x0, x1 := l.XEdge(p.X), l.XEdge(p.X+1)
		y0, y1 := l.YEdge(p.Y+1), l.YEdge(p.Y)
		rect := [4]Point{Pt(x0, y0), Pt(x1, y0), Pt(x1, y1), Pt(x0, y1)}
		sw := Swatch{
			X:       p.X,
			Y:       p.Y,
			Rect:    rect,
			Polygon: l.Transform.TransformPoints(rect[:]...),
			Fill:    p.Symbol.Color,
		}
		if opts.ReplaceMissing && !p.ExistsInMap {
			sw.Fill = opts.MissingColor
			sw.Missing = true
			l.Hatches = append(l.Hatches,
				[]Point{sw.Polygon[0], sw.Polygon[2]},
				[]Point{sw.Polygon[1], sw.Polygon[3]},
			)
		}
		if opts.AddColorSeparators {
			outline := append(slices.Clone(sw.Polygon), sw.Polygon[0])
			l.Separators = append(l.Separators, outline)
		}
		l.Swatches[k] = sw
	}
}

func (l *Layout) layoutArrows(commonOrigin bool, style LineStyle) {
	ax := l.Inset - l.ArrowBand/2
	ay := l.Grid + l.ArrowBand/2

	xStart := Pt(l.Inset, ay)
	yStart := Pt(ax, l.Grid)
	if commonOrigin {
		xStart = Pt(ax, ay)
		yStart = xStart
	}
	l.Arrows = []Arrow{
		{Points: l.Transform.TransformPoints(xStart, Pt(l.Size, ay)), Style: style},
		{Points: l.Transform.TransformPoints(yStart, Pt(ax, 0)), Style: style},
	}
}

func (l *Layout) layoutTitles(opts Options, f text.Format, tickPath bool, shrink float64) {
	angleX, angleY := 0.0, -math.Pi/2
	if opts.LegendRotated {
		angleX, angleY = -math.Pi/4, math.Pi/4
	}

	xAt := l.Transform.TransformPoint(Pt(l.Inset+l.Grid/2, l.Size-l.TitleHeight/2))
	yPos := Pt(l.TitleHeight/2, l.Grid/2)
	yAt := l.Transform.TransformPoint(yPos)
	if tickPath {
		// The Y title keeps the left edge; the reserved strip holds the
		// Y tick labels.
		yAt.X = yPos.X * shrink
	}

	l.Titles = []Label{
		{Text: opts.AxisTitleX, At: xAt, Angle: angleX, Anchor: AnchorCenter, Format: f},
		{Text: opts.AxisTitleY, At: yAt, Angle: angleY, Anchor: AnchorCenter, Format: f},
	}
}

func (l *Layout) layoutTicks(opts Options, nf *text.NumberFormatter, f text.Format) {
	angleX, angleY := 0.0, 0.0
	anchorY := AnchorRightMiddle
	yTickX := l.TitleBand + l.TickBand
	if opts.LegendRotated {
		angleX, angleY = -math.Pi/4, math.Pi/4
		anchorY = AnchorCenter
		yTickX = l.TitleBand + l.TickBand/2
	}
	xTickY := l.Grid + l.ArrowBand + l.TickBand/2

	xs := tickPositions(len(opts.TicksX), l.N, l.XEdge)
	for k, v := range opts.TicksX {
		l.Ticks = append(l.Ticks, Label{
			Text:   nf.Format(v, opts.TicksPrecisionX),
			At:     l.Transform.TransformPoint(Pt(xs[k], xTickY)),
			Angle:  angleX,
			Anchor: AnchorCenter,
			Format: f,
		})
	}
	ys := tickPositions(len(opts.TicksY), l.N, l.YEdge)
	for k, v := range opts.TicksY {
		l.Ticks = append(l.Ticks, Label{
			Text:   nf.Format(v, opts.TicksPrecisionY),
			At:     l.Transform.TransformPoint(Pt(yTickX, ys[k])),
			Angle:  angleY,
			Anchor: anchorY,
			Format: f,
		})
	}
}

// tickPositions spreads count ticks along an axis of n cells. n+1 ticks sit
// on the cell boundaries, n ticks on the cell midpoints; any other count is
// spaced evenly from the first to the last boundary.
func tickPositions(count, n int, edge func(int) float64) []float64 {
	pos := make([]float64, count)
	switch {
	case count == n+1:
		for k := range pos {
			pos[k] = edge(k)
		}
	case count == n:
		for k := range pos {
			pos[k] = (edge(k) + edge(k+1)) / 2
		}
	case count == 1:
		pos[0] = (edge(0) + edge(n)) / 2
	default:
		first, last := edge(0), edge(n)
		for k := range pos {
			pos[k] = first + (last-first)*float64(k)/float64(count-1)
		}
	}
	return pos
}
