package config

import (
	"fmt"

	"github.com/gogpu/bivariate"
)

// RendererConfig selects the fields, classification and colour ramp.
type RendererConfig struct {
	Field1  string `yaml:"field1"`
	Field2  string `yaml:"field2"`
	Classes int    `yaml:"classes"`
	Method  string `yaml:"method"`
	Palette string `yaml:"palette"`
	Mixing  string `yaml:"mixing"`

	// Manual replaces the palette with an explicit square colour table,
	// indexed [field1 class][field2 class].
	Manual [][]string `yaml:"manual,omitempty"`

	LabelFormat        string `yaml:"labelFormat"`
	LabelPrecision     int    `yaml:"labelPrecision"`
	TrimTrailingZeroes bool   `yaml:"trimTrailingZeroes"`
}

// DefaultRenderer returns the renderer section defaults.
func DefaultRenderer() RendererConfig {
	lf := bivariate.DefaultLabelFormat()
	return RendererConfig{
		Classes:            3,
		Method:             bivariate.EqualIntervalID,
		Palette:            bivariate.PaletteCyanViolet,
		Mixing:             bivariate.MultiplyMixingName,
		LabelFormat:        lf.Format,
		LabelPrecision:     lf.Precision,
		TrimTrailingZeroes: lf.TrimTrailingZeroes,
	}
}

// Renderer builds an unclassified renderer. Names are resolved through reg;
// a name reg does not know is an error wrapping bivariate.ErrConfig.
func (c RendererConfig) Renderer(reg *bivariate.Registry) (*bivariate.Renderer, error) {
	method, ok := reg.Classifications.ByID(c.Method)
	if !ok {
		return nil, fmt.Errorf("%w: unknown classification method %q (have %v)",
			bivariate.ErrConfig, c.Method, reg.Classifications.IDs())
	}
	method.SetLabelFormat(bivariate.LabelFormat{
		Format:             c.LabelFormat,
		Precision:          c.LabelPrecision,
		TrimTrailingZeroes: c.TrimTrailingZeroes,
	})

	ramp, err := c.ramp(reg)
	if err != nil {
		return nil, err
	}
	return bivariate.NewRenderer(
		bivariate.WithRegistry(reg),
		bivariate.WithFields(c.Field1, c.Field2),
		bivariate.WithClassificationMethod(method),
		bivariate.WithColorRamp(ramp),
	), nil
}

func (c RendererConfig) ramp(reg *bivariate.Registry) (bivariate.ColorRamp, error) {
	if len(c.Manual) > 0 {
		table := make([][]bivariate.Color, len(c.Manual))
		for i, row := range c.Manual {
			table[i] = make([]bivariate.Color, len(row))
			for j, s := range row {
				col, err := bivariate.ParseColor(s)
				if err != nil {
					return nil, fmt.Errorf("manual[%d][%d]: %w", i, j, err)
				}
				table[i][j] = col
			}
		}
		return bivariate.NewManualRamp(table)
	}

	palette, ok := reg.Ramps.ByName(c.Palette)
	if !ok {
		return nil, fmt.Errorf("%w: unknown palette %q", bivariate.ErrConfig, c.Palette)
	}
	mixing, ok := reg.Mixing.ByName(c.Mixing)
	if !ok {
		return nil, fmt.Errorf("%w: unknown mixing method %q (have %v)",
			bivariate.ErrConfig, c.Mixing, reg.Mixing.Names())
	}
	return palette.Ramp(c.Classes, mixing)
}
