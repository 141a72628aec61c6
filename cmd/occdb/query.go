package main

import (
	"context"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/internal/iocsv"
	"github.com/gnames/occdb/internal/iosync"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// getQueryCmd returns the query command.
func getQueryCmd() *cobra.Command {
	var format string

	queryCmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a read-only SQL statement against the store",
		Long: `Query passes a SQL statement to the store unmodified and prints
its result set. The statement can join and aggregate across the
normalized tables.

Examples:
  # Count occurrences per event
  occdb query 'SELECT "eventID", COUNT(*) FROM occurrence GROUP BY "eventID"'

  # Pipe results as TSV
  occdb query --format tsv 'SELECT * FROM location' > location.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runQuery(args[0], format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	queryCmd.Flags().StringVarP(
		&format, "format", "f", "table",
		"output format: table or tsv",
	)

	return queryCmd
}

func runQuery(sqlText, format string) error {
	ctx := context.Background()

	op, err := connectOperator(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	eng := iosync.New(cfg, op)
	res, err := eng.Query(ctx, sqlText)
	if err != nil {
		return err
	}

	if format == "tsv" {
		return iocsv.WriteTSV(os.Stdout, res)
	}

	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader(res.ColumnNames())
	for _, row := range res.Rows {
		tw.Append(row)
	}
	tw.Render()

	gn.Info("<em>%d</em> rows", len(res.Rows))
	return nil
}
