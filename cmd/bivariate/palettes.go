package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/recording"
)

func newPalettesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the built-in palettes, mixing and classification methods and legend backends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := bivariate.NewRegistry()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "PALETTE\tAXIS 1\tAXIS 2")
			for _, p := range reg.Ramps.Palettes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Ramp1.Color2.Name(), p.Ramp2.Color2.Name())
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "MIXING")
			for _, name := range reg.Mixing.Names() {
				fmt.Fprintln(w, name)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "CLASSIFICATION")
			for _, id := range reg.Classifications.IDs() {
				fmt.Fprintln(w, id)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "LEGEND BACKEND")
			for _, name := range recording.Backends() {
				fmt.Fprintln(w, name)
			}
			return w.Flush()
		},
	}
}
