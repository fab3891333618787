// Command bivariate classifies two numeric attributes of a table into a
// bivariate grid, writes the class pair of every row, and draws the
// matching legend.
//
// Usage:
//
//	bivariate categorize -i parcels.csv -o out.csv --field1 pop --field2 income
//	bivariate legend -i parcels.gpkg --table parcels -c style.yaml -o legend.png
//	bivariate style -i parcels.csv -c style.yaml -o style.xml
//	bivariate palettes
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/bivariate"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "bivariate",
		Short:         "Bivariate classification and legend rendering",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			bivariate.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log classification and rendering details")

	root.AddCommand(
		newCategorizeCmd(),
		newLegendCmd(),
		newStyleCmd(),
		newPalettesCmd(),
	)
	return root
}
