package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/gogpu/bivariate"
	"github.com/gogpu/bivariate/categorize"
)

func newCategorizeCmd() *cobra.Command {
	var (
		input, output, table string
		p                    categorize.Params
		method               string
	)
	cmd := &cobra.Command{
		Use:   "categorize",
		Short: "Write the bivariate class pair of every row into a field",
		Long: `Classifies field1 and field2 into the same number of classes and writes
"{class1}-{class2}" (1-based) into the result field.

CSV input is written to -o. SQLite and GeoPackage tables are updated in place.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			reg := bivariate.NewRegistry()
			m, ok := reg.Classifications.ByID(method)
			if !ok {
				return fmt.Errorf("%w: unknown classification method %q (have %v)",
					bivariate.ErrConfig, method, reg.Classifications.IDs())
			}
			p.Method = m

			src, err := openSource(ctx, input, table)
			if err != nil {
				return err
			}
			defer src.Close()

			res, runErr := categorize.Run(ctx, src.table, p, nil)
			if runErr != nil && res.Written == 0 {
				return runErr
			}
			// Values written before a failure or Ctrl-C are kept.
			if err := src.save(context.WithoutCancel(ctx), output, p.ResultField); err != nil {
				return errors.Join(runErr, err)
			}
			if runErr != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%d features categorized into %q before stopping\n", res.Written, p.ResultField)
				return runErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d features categorized into %q\n", res.Written, p.ResultField)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&input, "input", "i", "", "input CSV, SQLite or GeoPackage file")
	f.StringVarP(&output, "output", "o", "", "output CSV file")
	f.StringVar(&table, "table", "", "table to read from SQLite input")
	f.StringVar(&p.Field1, "field1", "", "first numeric field")
	f.StringVar(&p.Field2, "field2", "", "second numeric field")
	f.IntVar(&p.Classes, "classes", 3, "number of classes per field (2-5)")
	f.StringVar(&p.ResultField, "result", categorize.DefaultResultField, "field receiving the class pair")
	f.StringVar(&method, "method", bivariate.EqualIntervalID, "classification method")
	_ = cmd.MarkFlagRequired("field1")
	_ = cmd.MarkFlagRequired("field2")
	return cmd
}
