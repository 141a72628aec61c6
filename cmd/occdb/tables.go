package main

import (
	"context"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// getTablesCmd returns the tables command.
func getTablesCmd() *cobra.Command {
	tablesCmd := &cobra.Command{
		Use:   "tables",
		Short: "List the store's tables and their columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTables()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return tablesCmd
}

func runTables() error {
	ctx := context.Background()

	op, err := connectOperator(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	tables, err := op.ListTables(ctx)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		gn.Warn(`Warning: Database appears to be empty.
Run 'occdb import' first to load occurrence data.`)
		return nil
	}

	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"Table", "Columns"})
	for _, name := range tables {
		cols, err := op.ListColumns(ctx, name)
		if err != nil {
			return err
		}
		tw.Append([]string{name, strings.Join(cols, ", ")})
	}
	tw.Render()
	return nil
}
