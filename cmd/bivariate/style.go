package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/config"
)

func newStyleCmd() *cobra.Command {
	var input, output, table, cfgPath string
	cmd := &cobra.Command{
		Use:   "style",
		Short: "Classify a table and write the renderer as a style document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
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
			return writeStyle(r, output, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "input CSV, SQLite or GeoPackage file")
	f.StringVarP(&output, "output", "o", "", "output XML file (default stdout)")
	f.StringVar(&table, "table", "", "table to read from SQLite input")
	f.StringVarP(&cfgPath, "config", "c", "", "YAML configuration file")
	return cmd
}

func writeStyle(r *bivariate.Renderer, output string, stdout io.Writer) error {
	if output == "" {
		return r.Save(stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := r.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
