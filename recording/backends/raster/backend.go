// Package raster draws legends into an RGBA image with fogleman/gg and
// writes them as PNG.
//
// Importing the package registers the "raster" backend:
//
//	import _ "github.com/gogpu/bivariate/recording/backends/raster"
//
//	backend, err := recording.NewBackend("raster")
//	if err != nil {
//	    return err
//	}
//	if err := rec.Playback(backend); err != nil {
//	    return err
//	}
//	err := backend.(recording.FileBackend).SaveToFile("legend.png")
package raster

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/legend"
	"github.com/gogpu/bivariate/recording"
	"github.com/gogpu/bivariate/text"
)

func init() {
	recording.Register("raster", func() recording.Backend {
		return NewBackend()
	})
}

// errNotBegun is returned by output methods called before Begin.
var errNotBegun = errors.New("raster: Begin has not been called")

// Backend is a legend.Canvas drawing into an image.
type Backend struct {
	ctx        *gg.Context
	width      int
	height     int
	scale      float64
	background color.Color
	measurer   text.Measurer
}

var (
	_ recording.Backend             = (*Backend)(nil)
	_ recording.ConfigurableBackend = (*Backend)(nil)
	_ recording.WriterBackend       = (*Backend)(nil)
	_ recording.FileBackend         = (*Backend)(nil)
	_ recording.ImageBackend        = (*Backend)(nil)
)

// Option configures a Backend.
type Option func(*Backend)

// WithScaleFactor sets the device scale factor.
func WithScaleFactor(s float64) Option {
	return func(b *Backend) { b.SetScaleFactor(s) }
}

// WithBackground fills the image with c on Begin. The default is
// transparent.
func WithBackground(c bivariate.Color) Option {
	return func(b *Backend) { b.SetBackground(c) }
}

// WithMeasurer sets the text measurer used by MeasureText.
func WithMeasurer(m text.Measurer) Option {
	return func(b *Backend) {
		b.measurer = m
	}
}

// NewBackend creates a raster backend with scale factor 1.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{scale: 1}
	for _, opt := range opts {
		opt(b)
	}
	if b.measurer == nil {
		b.measurer = text.NewShapingMeasurer()
	}
	return b
}

// Begin implements recording.Backend. It allocates a fresh image.
func (b *Backend) Begin(width, height int) error {
	if width <= 0 || height <= 0 {
		return legend.ErrInvalidSize
	}
	b.width = width
	b.height = height
	b.ctx = gg.NewContext(width, height)
	if b.background != nil {
		b.ctx.SetColor(b.background)
		b.ctx.Clear()
	}
	return nil
}

// End implements recording.Backend.
func (b *Backend) End() error {
	return nil
}

// SetScaleFactor implements recording.ConfigurableBackend.
func (b *Backend) SetScaleFactor(s float64) { b.scale = s }

// SetBackground implements recording.ConfigurableBackend.
func (b *Backend) SetBackground(c bivariate.Color) { b.background = c.NRGBA() }

// ScaleFactor implements legend.Metrics.
func (b *Backend) ScaleFactor() float64 { return b.scale }

// MeasureText implements legend.Metrics.
func (b *Backend) MeasureText(s string, f text.Format) text.Extent {
	return b.measurer.Measure(s, f)
}

// FillPolygon implements legend.Canvas.
func (b *Backend) FillPolygon(pts []legend.Point, fill bivariate.Color, stroke *legend.Stroke) {
	if b.ctx == nil || len(pts) < 3 {
		return
	}
	b.polygonPath(pts)
	b.ctx.SetColor(fill.NRGBA())
	if stroke == nil {
		b.ctx.Fill()
		return
	}
	b.ctx.FillPreserve()
	b.ctx.SetColor(stroke.Color.NRGBA())
	b.ctx.SetLineWidth(stroke.Width)
	b.ctx.Stroke()
}

// Polyline implements legend.Canvas.
func (b *Backend) Polyline(pts []legend.Point, style legend.LineStyle) {
	if b.ctx == nil || len(pts) < 2 {
		return
	}
	b.ctx.NewSubPath()
	b.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		b.ctx.LineTo(p.X, p.Y)
	}
	b.ctx.SetColor(style.Color.NRGBA())
	b.ctx.SetLineWidth(style.Width)
	b.ctx.SetLineCapButt()
	b.ctx.Stroke()

	if style.Arrow {
		head := style.ArrowHead(pts[len(pts)-2], pts[len(pts)-1])
		b.polygonPath(head[:])
		b.ctx.Fill()
	}
}

// DrawText implements legend.Canvas.
func (b *Backend) DrawText(s string, at legend.Point, angle float64, anchor legend.Anchor, f text.Format) {
	if b.ctx == nil || s == "" || f.Size <= 0 {
		return
	}
	face, err := f.FontOrDefault().Face(f.Size)
	if err != nil {
		bivariate.Logger().Warn("raster: font face", "err", err)
		return
	}
	b.ctx.Push()
	defer b.ctx.Pop()

	b.ctx.SetFontFace(face)
	b.ctx.SetColor(f.Color)
	b.ctx.RotateAbout(angle, at.X, at.Y)
	// gg anchors from the baseline: ay 0 puts the text above the point.
	b.ctx.DrawStringAnchored(s, at.X, at.Y, anchor.X, 1-anchor.Y)
}

func (b *Backend) polygonPath(pts []legend.Point) {
	b.ctx.NewSubPath()
	b.ctx.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		b.ctx.LineTo(p.X, p.Y)
	}
	b.ctx.ClosePath()
}

// Image implements recording.ImageBackend.
func (b *Backend) Image() image.Image {
	if b.ctx == nil {
		return nil
	}
	return b.ctx.Image()
}

// WriteTo implements recording.WriterBackend. It encodes the image as PNG.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if b.ctx == nil {
		return 0, errNotBegun
	}
	cw := &countingWriter{w: w}
	err := b.ctx.EncodePNG(cw)
	return cw.n, err
}

// SaveToFile implements recording.FileBackend. It writes a PNG file.
func (b *Backend) SaveToFile(path string) error {
	if b.ctx == nil {
		return errNotBegun
	}
	return b.ctx.SavePNG(path)
}

func (b *Backend) Width() int  { return b.width }
func (b *Backend) Height() int { return b.height }

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
