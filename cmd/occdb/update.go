package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/internal/iofixes"
	"github.com/gnames/occdb/internal/iosync"
	"github.com/gnames/occdb/pkg/config"
	"github.com/gnames/occdb/pkg/fixes"
	"github.com/spf13/cobra"
)

// getUpdateCmd returns the update command.
func getUpdateCmd() *cobra.Command {
	var (
		fixesFile     string
		rule          fixes.Rule
		transactional bool
	)

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Correct values in the store's tables",
		Long: `Update corrects values through the store's only write path:
fetch a table, substitute values in memory, replace the whole table.

Corrections come either from a YAML fixes file or from one rule given
with flags. Each rule names a table, a match (where-column equals
where-value), and the new value for a column of every matching row.

A fixes file looks like:

  fixes:
    - table: occurrence
      where_column: catalogNumber
      where_value: LAL9-4
      set_column: scientificName
      set_value: Betula papyrifera Marshall

Examples:
  # Apply a fixes file
  occdb update --fixes fixes.yaml

  # Apply a single rule
  occdb update --table occurrence \
    --where-column catalogNumber --where-value LAL9-4 \
    --set-column scientificName --set-value 'Betula papyrifera Marshall'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runUpdate(cmd, fixesFile, rule, transactional)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	updateCmd.Flags().StringVarP(
		&fixesFile, "fixes", "f", "",
		"YAML file with fix rules",
	)
	updateCmd.Flags().StringVar(
		&rule.Table, "table", "", "table to correct",
	)
	updateCmd.Flags().StringVar(
		&rule.WhereColumn, "where-column", "", "column to match on",
	)
	updateCmd.Flags().StringVar(
		&rule.WhereValue, "where-value", "", "value to match",
	)
	updateCmd.Flags().StringVar(
		&rule.SetColumn, "set-column", "", "column to change",
	)
	updateCmd.Flags().StringVar(
		&rule.SetValue, "set-value", "", "new value",
	)
	updateCmd.Flags().BoolVarP(
		&transactional, "transactional", "t", false,
		"replace tables via temp-table swap",
	)

	return updateCmd
}

func runUpdate(
	cmd *cobra.Command,
	fixesFile string,
	rule fixes.Rule,
	transactional bool,
) error {
	ctx := context.Background()

	if cmd.Flags().Changed("transactional") {
		cfg.Update([]config.Option{
			config.OptSyncTransactional(transactional),
		})
	}

	rules, err := collectRules(cmd, fixesFile, rule)
	if err != nil {
		return err
	}

	op, err := connectOperator(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	eng := iosync.New(cfg, op)

	// group rules per table so each table goes through one
	// fetch-substitute-replace cycle
	tables := make(map[string][]fixes.Rule)
	var order []string
	for _, r := range rules {
		if _, ok := tables[r.Table]; !ok {
			order = append(order, r.Table)
		}
		tables[r.Table] = append(tables[r.Table], r)
	}

	var total int
	for _, name := range order {
		tbl, err := eng.FetchTable(ctx, name)
		if err != nil {
			return err
		}
		changed, err := fixes.Apply(tbl, tables[name])
		if err != nil {
			return err
		}
		if changed == 0 {
			slog.Info("No matching rows", "table", name)
			continue
		}
		if err := eng.ReplaceTable(ctx, tbl); err != nil {
			return err
		}
		total += changed
	}

	gn.Info("Changed <em>%d</em> values", total)
	return nil
}

func collectRules(
	cmd *cobra.Command,
	fixesFile string,
	rule fixes.Rule,
) ([]fixes.Rule, error) {
	hasFile := cmd.Flags().Changed("fixes")
	hasFlags := cmd.Flags().Changed("table")

	if hasFile && hasFlags {
		gn.Warn(`<warn>Cannot combine --fixes with single-rule flags</warn>
   <warn>Use one or the other</warn>`)
		err := errors.New("invalid flag combination")
		slog.Error("invalid flag combination", "error", err)
		return nil, err
	}

	if hasFile {
		return iofixes.Load(fixesFile)
	}
	if hasFlags {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		return []fixes.Rule{rule}, nil
	}

	gn.Warn(`<warn>Nothing to do</warn>
   <warn>Give either --fixes or the single-rule flags</warn>`)
	return nil, errors.New("no fix rules given")
}
