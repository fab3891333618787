package config

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/legend"
	"github.com/gogpu/bivariate/text"
)

// LegendConfig is the legend section. Fields sharing a name with
// legend.Options are copied onto it as is; colours, fonts and the number
// locale are converted by Options.
type LegendConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Scale      float64 `yaml:"scale"`
	Background string  `yaml:"background" copier:"-"`
	// Backend names the registered output format.
	Backend string `yaml:"backend" copier:"-"`

	LegendRotated      bool    `yaml:"legendRotated"`
	AddAxesArrows      bool    `yaml:"addAxesArrows"`
	ArrowsCommonOrigin bool    `yaml:"arrowsCommonOrigin"`
	ArrowWidth         float64 `yaml:"arrowWidth"`
	AxisLineColor      string  `yaml:"axisLineColor" copier:"-"`
	AxisLineWidth      float64 `yaml:"axisLineWidth" copier:"-"`

	AddAxesTexts bool    `yaml:"addAxesTexts"`
	AxisTitleX   string  `yaml:"axisTitleX"`
	AxisTitleY   string  `yaml:"axisTitleY"`
	TitleSize    float64 `yaml:"titleSize" copier:"-"`

	AddAxesTicksTexts bool    `yaml:"addAxesTicksTexts"`
	TicksPrecisionX   int     `yaml:"ticksPrecisionX"`
	TicksPrecisionY   int     `yaml:"ticksPrecisionY"`
	TickSize          float64 `yaml:"tickSize" copier:"-"`

	// TickValues picks the tick positions: "breaks" for class boundaries,
	// "midpoints" for class centres.
	TickValues string `yaml:"tickValues" copier:"-"`

	Locale   string `yaml:"locale" copier:"-"`
	Grouping bool   `yaml:"grouping" copier:"-"`
	Font     string `yaml:"font" copier:"-"`

	AddColorSeparators bool    `yaml:"addColorSeparators"`
	SeparatorColorHex  string  `yaml:"separatorColor" copier:"-"`
	SeparatorWidth     float64 `yaml:"separatorWidth"`

	ReplaceMissing  bool   `yaml:"replaceMissing"`
	MissingColorHex string `yaml:"missingColor" copier:"-"`

	Margin float64 `yaml:"margin"`
}

// Tick value modes.
const (
	TickBreaks    = "breaks"
	TickMidpoints = "midpoints"
)

// DefaultLegend returns the legend section defaults, taken from
// legend.DefaultOptions.
func DefaultLegend() LegendConfig {
	opts := legend.DefaultOptions()
	c := LegendConfig{
		Width:             500,
		Height:            500,
		Scale:             1,
		Backend:           "raster",
		AxisLineColor:     opts.AxisLine.Color.Name(),
		AxisLineWidth:     opts.AxisLine.Width,
		TitleSize:         opts.TitleFormat.Size,
		TickSize:          opts.TickFormat.Size,
		TickValues:        TickBreaks,
		Locale:            opts.NumberFormat.Locale().String(),
		SeparatorColorHex: opts.SeparatorColor.Name(),
		MissingColorHex:   opts.MissingColor.Name(),
	}
	if err := copier.Copy(&c, &opts); err != nil {
		panic("config: copy default legend options: " + err.Error())
	}
	return c
}

// Options converts the section into legend options. Tick values are not
// set; they come from the classified renderer.
func (c LegendConfig) Options() (legend.Options, error) {
	opts := legend.DefaultOptions()
	if err := copier.Copy(&opts, &c); err != nil {
		return legend.Options{}, fmt.Errorf("legend options: %w", err)
	}

	var err error
	if opts.AxisLine.Color, err = bivariate.ParseColor(c.AxisLineColor); err != nil {
		return legend.Options{}, fmt.Errorf("axisLineColor: %w", err)
	}
	opts.AxisLine.Width = c.AxisLineWidth
	if opts.SeparatorColor, err = bivariate.ParseColor(c.SeparatorColorHex); err != nil {
		return legend.Options{}, fmt.Errorf("separatorColor: %w", err)
	}
	if opts.MissingColor, err = bivariate.ParseColor(c.MissingColorHex); err != nil {
		return legend.Options{}, fmt.Errorf("missingColor: %w", err)
	}

	if c.Font != "" {
		f, err := text.LoadFont(c.Font)
		if err != nil {
			return legend.Options{}, fmt.Errorf("font: %w", err)
		}
		opts.TitleFormat.Font = f
		opts.TickFormat.Font = f
	}
	opts.TitleFormat.Size = c.TitleSize
	opts.TickFormat.Size = c.TickSize

	var numOpts []text.NumberOption
	if !c.Grouping {
		numOpts = append(numOpts, text.WithoutGrouping())
	}
	if opts.NumberFormat, err = text.ParseNumberFormatter(c.Locale, numOpts...); err != nil {
		return legend.Options{}, fmt.Errorf("%w: locale %q: %v", bivariate.ErrConfig, c.Locale, err)
	}
	return opts, nil
}

// BackgroundColor returns the parsed background colour; ok is false when
// none is configured.
func (c LegendConfig) BackgroundColor() (col bivariate.Color, ok bool, err error) {
	if c.Background == "" {
		return bivariate.Color{}, false, nil
	}
	col, err = bivariate.ParseColor(c.Background)
	if err != nil {
		return bivariate.Color{}, false, fmt.Errorf("background: %w", err)
	}
	return col, true, nil
}

// Ticks returns the tick values of r for the configured mode.
func (c LegendConfig) Ticks(r *bivariate.Renderer) (x, y []float64, err error) {
	switch c.TickValues {
	case "", TickBreaks:
		return r.Field1Breaks(), r.Field2Breaks(), nil
	case TickMidpoints:
		return r.Field1Midpoints(), r.Field2Midpoints(), nil
	default:
		return nil, nil, fmt.Errorf("%w: tickValues %q, want %q or %q",
			bivariate.ErrConfig, c.TickValues, TickBreaks, TickMidpoints)
	}
}
