package recording

import (
	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/legend"
	"github.com/gogpu/bivariate/text"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	CmdFillPolygon CommandType = iota // Fill a closed polygon
	CmdPolyline                       // Stroke an open polyline
	CmdDrawText                       // Draw rotated text
)

var commandTypeNames = [...]string{
	CmdFillPolygon: "FillPolygon",
	CmdPolyline:    "Polyline",
	CmdDrawText:    "DrawText",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded canvas call.
type Command interface {
	Type() CommandType
}

// FillPolygonCommand records legend.Canvas.FillPolygon.
type FillPolygonCommand struct {
	Points []legend.Point
	Fill   bivariate.Color
	Stroke *legend.Stroke
}

// Type implements Command.
func (FillPolygonCommand) Type() CommandType { return CmdFillPolygon }

// PolylineCommand records legend.Canvas.Polyline.
type PolylineCommand struct {
	Points []legend.Point
	Style  legend.LineStyle
}

// Type implements Command.
func (PolylineCommand) Type() CommandType { return CmdPolyline }

// DrawTextCommand records legend.Canvas.DrawText.
type DrawTextCommand struct {
	Text   string
	At     legend.Point
	Angle  float64
	Anchor legend.Anchor
	Format text.Format
}

// Type implements Command.
func (DrawTextCommand) Type() CommandType { return CmdDrawText }

// replay issues cmd on c.
func replay(c legend.Canvas, cmd Command) {
	switch cmd := cmd.(type) {
	case FillPolygonCommand:
		c.FillPolygon(cmd.Points, cmd.Fill, cmd.Stroke)
	case PolylineCommand:
		c.Polyline(cmd.Points, cmd.Style)
	case DrawTextCommand:
		c.DrawText(cmd.Text, cmd.At, cmd.Angle, cmd.Anchor, cmd.Format)
	}
}
