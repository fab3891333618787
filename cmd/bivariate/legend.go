package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/config"
	"github.com/gogpu/bivariate/legend"
	"github.com/gogpu/bivariate/recording"
	_ "github.com/gogpu/bivariate/recording/backends/raster"
)

func newLegendCmd() *cobra.Command {
	var (
		input, output, table, cfgPath string
		width, height                 float64
	)
	cmd := &cobra.Command{
		Use:   "legend",
		Short: "Draw the bivariate legend of a table as PNG",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("width") {
				cfg.Legend.Width = width
			}
			if cmd.Flags().Changed("height") {
				cfg.Legend.Height = height
			}

			src, err := openSource(cmd.Context(), input, table)
			if err != nil {
				return err
			}
			defer src.Close()

			r, err := classifiedRenderer(cfg.Renderer, src)
			if err != nil {
				return err
			}
			return drawLegend(cfg.Legend, r, output)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "input CSV, SQLite or GeoPackage file")
	f.StringVarP(&output, "output", "o", "legend.png", "output PNG file")
	f.StringVar(&table, "table", "", "table to read from SQLite input")
	f.StringVarP(&cfgPath, "config", "c", "", "YAML configuration file")
	f.Float64Var(&width, "width", 0, "legend width, overrides the configuration")
	f.Float64Var(&height, "height", 0, "legend height, overrides the configuration")
	return cmd
}

// classifiedRenderer builds a renderer from c, classifies both fields of src
// and records the class pair of every feature.
func classifiedRenderer(c config.RendererConfig, src *source) (*bivariate.Renderer, error) {
	r, err := c.Renderer(bivariate.NewRegistry())
	if err != nil {
		return nil, err
	}
	if err := r.ClassifyField1(src.table, c.Field1); err != nil {
		return nil, err
	}
	if err := r.ClassifyField2(src.table, c.Field2); err != nil {
		return nil, err
	}
	r.GenerateCategories()

	skipped := 0
	for f := range src.table.Features() {
		if _, err := r.SymbolForFeature(f); err != nil {
			skipped++
		}
	}
	if skipped > 0 {
		bivariate.Logger().Warn("legend: features without a class pair", "skipped", skipped)
	}
	return r, nil
}

func drawLegend(c config.LegendConfig, r *bivariate.Renderer, output string) error {
	opts, err := c.Options()
	if err != nil {
		return err
	}
	if opts.TicksX, opts.TicksY, err = c.Ticks(r); err != nil {
		return err
	}

	// The recording is in device pixels.
	w, h := int(c.Width*c.Scale+0.5), int(c.Height*c.Scale+0.5)
	rec := recording.NewRecorder(w, h, recording.WithScaleFactor(c.Scale))
	if _, err := legend.NewEngine(opts).Render(rec, c.Width, c.Height, r.GenerateLegendPolygons()); err != nil {
		return fmt.Errorf("legend: %w", err)
	}

	backend, err := recording.NewBackend(c.Backend)
	if err != nil {
		return fmt.Errorf("%w: %v", bivariate.ErrConfig, err)
	}
	file, ok := backend.(recording.FileBackend)
	if !ok {
		return fmt.Errorf("%w: backend %q cannot write files", bivariate.ErrConfig, c.Backend)
	}
	if cb, ok := backend.(recording.ConfigurableBackend); ok {
		cb.SetScaleFactor(c.Scale)
		bg, set, err := c.BackgroundColor()
		if err != nil {
			return err
		}
		if set {
			cb.SetBackground(bg)
		}
	}
	if err := rec.FinishRecording().Playback(backend); err != nil {
		return err
	}
	return file.SaveToFile(output)
}
