package recording

import (
	"slices"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/legend"
	"github.com/gogpu/bivariate/text"
)

// Recorder captures legend drawing as commands. It implements legend.Canvas;
// text is measured with a text.Measurer so layouts computed against a
// Recorder match the ones a real canvas would produce.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	scale         float64
	measurer      text.Measurer
	commands      []Command
}

var _ legend.Canvas = (*Recorder)(nil)

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithScaleFactor sets the device scale factor reported to layouts.
func WithScaleFactor(s float64) RecorderOption {
	return func(r *Recorder) {
		r.scale = s
	}
}

// WithMeasurer sets the text measurer. The default shapes text with
// text.NewShapingMeasurer.
func WithMeasurer(m text.Measurer) RecorderOption {
	return func(r *Recorder) {
		r.measurer = m
	}
}

// NewRecorder creates a Recorder for a width × height pixel canvas with scale
// factor 1.
func NewRecorder(width, height int, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		width:    width,
		height:   height,
		scale:    1,
		commands: make([]Command, 0, 64),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.measurer == nil {
		r.measurer = text.NewShapingMeasurer()
	}
	return r
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

// ScaleFactor implements legend.Metrics.
func (r *Recorder) ScaleFactor() float64 { return r.scale }

// MeasureText implements legend.Metrics.
func (r *Recorder) MeasureText(s string, f text.Format) text.Extent {
	return r.measurer.Measure(s, f)
}

// FillPolygon implements legend.Canvas.
func (r *Recorder) FillPolygon(pts []legend.Point, fill bivariate.Color, stroke *legend.Stroke) {
	cmd := FillPolygonCommand{Points: slices.Clone(pts), Fill: fill}
	if stroke != nil {
		s := *stroke
		cmd.Stroke = &s
	}
	r.commands = append(r.commands, cmd)
}

// Polyline implements legend.Canvas.
func (r *Recorder) Polyline(pts []legend.Point, style legend.LineStyle) {
	r.commands = append(r.commands, PolylineCommand{Points: slices.Clone(pts), Style: style})
}

// DrawText implements legend.Canvas.
func (r *Recorder) DrawText(s string, at legend.Point, angle float64, anchor legend.Anchor, f text.Format) {
	r.commands = append(r.commands, DrawTextCommand{
		Text:   s,
		At:     at,
		Angle:  angle,
		Anchor: anchor,
		Format: f,
	})
}

// FinishRecording returns an immutable Recording of everything drawn so far.
// The Recorder should not be used afterwards.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		width:    r.width,
		height:   r.height,
		commands: r.commands,
	}
}

// Recording is an immutable list of recorded commands.
type Recording struct {
	width, height int
	commands      []Command
}

func (r *Recording) Width() int  { return r.width }
func (r *Recording) Height() int { return r.height }

// Commands returns the recorded commands in drawing order.
func (r *Recording) Commands() []Command {
	return r.commands
}

// OfType returns the commands of type t in drawing order.
func (r *Recording) OfType(t CommandType) []Command {
	var out []Command
	for _, c := range r.commands {
		if c.Type() == t {
			out = append(out, c)
		}
	}
	return out
}

// Playback replays the recording onto c. When c is a Backend it is begun
// with the recording size first and ended afterwards.
func (r *Recording) Playback(c legend.Canvas) error {
	b, isBackend := c.(Backend)
	if isBackend {
		if err := b.Begin(r.width, r.height); err != nil {
			return err
		}
	}
	for _, cmd := range r.commands {
		replay(c, cmd)
	}
	if isBackend {
		return b.End()
	}
	return nil
}
