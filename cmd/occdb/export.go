package main

import (
	"context"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/internal/iocsv"
	"github.com/gnames/occdb/internal/iosync"
	"github.com/spf13/cobra"
)

// getExportCmd returns the export command.
func getExportCmd() *cobra.Command {
	var output string

	exportCmd := &cobra.Command{
		Use:   "export <table>",
		Short: "Fetch a whole table from the store as TSV",
		Long: `Export fetches every row of a table and writes it as
tab-separated text, header first. This is the fetch half of the
fetch-substitute-replace update cycle; the written file is also the
shape 'occdb update --fixes' expects to correct.

Examples:
  # Print the occurrence table to stdout
  occdb export occurrence

  # Write the event table to a file
  occdb export event -o event.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExport(args[0], output)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	exportCmd.Flags().StringVarP(
		&output, "output", "o", "",
		"write to a file instead of stdout",
	)

	return exportCmd
}

func runExport(table, output string) error {
	ctx := context.Background()

	op, err := connectOperator(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	eng := iosync.New(cfg, op)
	tbl, err := eng.FetchTable(ctx, table)
	if err != nil {
		return err
	}

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if err := iocsv.WriteTSV(w, tbl); err != nil {
		return err
	}
	if output != "" {
		gn.Info("Wrote <em>%d</em> rows of <em>%s</em> to <em>%s</em>",
			len(tbl.Rows), table, output)
	}
	return nil
}
