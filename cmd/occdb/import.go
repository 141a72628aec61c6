package main

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/internal/ioimport"
	"github.com/gnames/occdb/pkg/config"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var (
		dedup         string
		code          string
		skipNameCheck bool
		transactional bool
	)

	importCmd := &cobra.Command{
		Use:   "import <flat-file>",
		Short: "Import a flat occurrence file into the store",
		Long: `Import reads a flat occurrence file (TSV or CSV), normalizes it
into location, event, and occurrence tables, and replaces those tables
in the store.

Replacement rebuilds every table from scratch, so importing the same
file again leaves the store unchanged. Scientific names are checked
with gnparser and unparsed names are reported; the verbatim strings are
stored either way.

Examples:
  # Import a TSV file into the default SQLite store
  occdb import occurrences.tsv

  # Fail on conflicting duplicate keys instead of keeping the first row
  occdb import --dedup strict occurrences.tsv

  # Check names against the zoological code
  occdb import --code zoological occurrences.tsv

  # Build replacement tables under temp names and swap them in
  occdb import --transactional occurrences.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd, args[0], dedup, code,
				skipNameCheck, transactional)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().StringVarP(
		&dedup, "dedup", "d", "",
		"duplicate key policy: first or strict",
	)
	importCmd.Flags().StringVarP(
		&code, "code", "c", "",
		"nomenclatural code for name checking: botanical or zoological",
	)
	importCmd.Flags().BoolVarP(
		&skipNameCheck, "skip-name-check", "s", false,
		"do not parse scientific names during import",
	)
	importCmd.Flags().BoolVarP(
		&transactional, "transactional", "t", false,
		"replace tables via temp-table swap",
	)

	return importCmd
}

func runImport(
	cmd *cobra.Command,
	path, dedup, code string,
	skipNameCheck, transactional bool,
) error {
	ctx := context.Background()

	// Build options from explicitly set flags
	var opts []config.Option
	if cmd.Flags().Changed("dedup") {
		opts = append(opts, config.OptImportDedupPolicy(dedup))
	}
	if cmd.Flags().Changed("code") {
		opts = append(opts, config.OptImportNomenclaturalCode(code))
	}
	if cmd.Flags().Changed("skip-name-check") {
		opts = append(opts, config.OptImportSkipNameCheck(skipNameCheck))
	}
	if cmd.Flags().Changed("transactional") {
		opts = append(opts, config.OptSyncTransactional(transactional))
	}
	if len(opts) > 0 {
		cfg.Update(opts)
	}

	op, err := connectOperator(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	imp := ioimport.New(cfg, op)
	if err := imp.Import(ctx, path); err != nil {
		return err
	}

	gn.Info(`Import finished. Next steps:
 - Run '<em>occdb tables</em>' to inspect the store
 - Run '<em>occdb query</em>' to aggregate across tables
 - Run '<em>occdb update</em>' to correct values
`)
	return nil
}
