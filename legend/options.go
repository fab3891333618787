package legend

import (
	"golang.org/x/text/language"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/text"
)

// Options controls what a legend draws and how. Lengths are layout units
// and are multiplied by the canvas scale factor; ArrowWidth and Margin are
// percentages of the legend size.
type Options struct {
	// LegendRotated turns the grid 45 degrees so the low/low corner points
	// down.
	LegendRotated bool

	AddAxesArrows      bool
	ArrowsCommonOrigin bool
	ArrowWidth         float64
	AxisLine           LineStyle

	AddAxesTexts bool
	AxisTitleX   string
	AxisTitleY   string
	TitleFormat  text.Format

	AddAxesTicksTexts bool
	TicksX            []float64
	TicksY            []float64
	TicksPrecisionX   int
	TicksPrecisionY   int
	TickFormat        text.Format

	// NumberFormat formats tick values. Nil means English without grouping.
	NumberFormat *text.NumberFormatter

	AddColorSeparators bool
	SeparatorColor     bivariate.Color
	SeparatorWidth     float64

	// ReplaceMissing draws cells with no features in MissingColor, crossed
	// by HatchLine.
	ReplaceMissing bool
	MissingColor   bivariate.Color
	HatchLine      LineStyle

	Margin float64
}

// DefaultOptions returns options that draw the grid only. The decorations
// are configured but disabled.
func DefaultOptions() Options {
	return Options{
		ArrowWidth: 5,
		AxisLine: LineStyle{
			Color:         bivariate.Black,
			Width:         2,
			Arrow:         true,
			HeadLength:    9,
			HeadThickness: 6,
		},
		AxisTitleX:      "Axis X",
		AxisTitleY:      "Axis Y",
		TitleFormat:     text.DefaultFormat(),
		TicksPrecisionX: 2,
		TicksPrecisionY: 2,
		TickFormat:      text.DefaultFormat().Scaled(0.75),
		NumberFormat:    text.NewNumberFormatter(language.English, text.WithoutGrouping()),
		SeparatorColor:  bivariate.White,
		SeparatorWidth:  1,
		MissingColor:    bivariate.White,
		HatchLine: LineStyle{
			Color: bivariate.Grey,
			Width: 1,
		},
		Margin: 2,
	}
}

func (o Options) numberFormat() *text.NumberFormatter {
	if o.NumberFormat != nil {
		return o.NumberFormat
	}
	return text.NewNumberFormatter(language.English, text.WithoutGrouping())
}
