// Package iosync implements the sync engine that keeps the external
// store's tables in line with in-memory record sets by whole-table
// replacement.
package iosync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/occdb/pkg/config"
	"github.com/gnames/occdb/pkg/db"
	"github.com/gnames/occdb/pkg/lifecycle"
	"github.com/gnames/occdb/pkg/schema"
	"github.com/google/uuid"
)

type iosync struct {
	cfg *config.Config
	op  db.Operator
}

// New creates a sync engine over an already connected store operator.
func New(cfg *config.Config, op db.Operator) lifecycle.Syncer {
	return &iosync{cfg: cfg, op: op}
}

// ReplaceTable rebuilds the store's table from scratch so it matches
// the given record set. Column types are re-inferred from the data on
// every call. In transactional mode the replacement is built under a
// temporary name and swapped in atomically; otherwise the table is
// dropped and recreated in place.
func (s *iosync) ReplaceTable(ctx context.Context, tbl *schema.Table) error {
	if !schema.ValidIdent(tbl.Name) {
		return badTableNameError(tbl.Name)
	}
	for _, col := range tbl.Columns {
		if !schema.ValidIdent(col.Name) {
			return badColumnNameError(tbl.Name, col.Name)
		}
	}
	if len(tbl.Columns) == 0 {
		return emptyTableError(tbl.Name)
	}

	cols := schema.InferColumns(tbl, config.TextThreshold)

	if s.cfg.Sync.Transactional {
		return s.replaceViaSwap(ctx, tbl, cols)
	}
	return s.replaceInPlace(ctx, tbl, cols)
}

// replaceInPlace is the default drop-create-insert sequence. It is not
// atomic: an interruption between the drop and the last insert leaves
// the table absent or partial until the next replace.
func (s *iosync) replaceInPlace(
	ctx context.Context,
	tbl *schema.Table,
	cols []schema.Column,
) error {
	exists, err := s.op.TableExists(ctx, tbl.Name)
	if err != nil {
		return err
	}
	if exists {
		if err := s.op.DropTable(ctx, tbl.Name); err != nil {
			return err
		}
	}
	if err := s.op.CreateTable(ctx, tbl.Name, cols); err != nil {
		return err
	}
	if err := s.insertAll(ctx, tbl.Name, cols, tbl.Rows); err != nil {
		return err
	}

	slog.Info("Replaced table",
		"table", tbl.Name,
		"rows", humanize.Comma(int64(len(tbl.Rows))),
	)
	return nil
}

// replaceViaSwap builds the replacement under a temporary name and
// swaps it over the target in one transaction. A crash mid-build
// leaves the old table intact plus a stray temp table that the next
// replace removes on its own.
func (s *iosync) replaceViaSwap(
	ctx context.Context,
	tbl *schema.Table,
	cols []schema.Column,
) error {
	suffix := strings.ReplaceAll(uuid.NewString()[:8], "-", "")
	temp := fmt.Sprintf("%s_tmp_%s", tbl.Name, suffix)

	if err := s.dropStrayTemps(ctx, tbl.Name); err != nil {
		return err
	}
	if err := s.op.CreateTable(ctx, temp, cols); err != nil {
		return err
	}
	if err := s.insertAll(ctx, temp, cols, tbl.Rows); err != nil {
		return err
	}
	if err := s.op.SwapTables(ctx, temp, tbl.Name); err != nil {
		return err
	}

	slog.Info("Replaced table atomically",
		"table", tbl.Name,
		"rows", humanize.Comma(int64(len(tbl.Rows))),
	)
	return nil
}

func (s *iosync) dropStrayTemps(ctx context.Context, target string) error {
	tables, err := s.op.ListTables(ctx)
	if err != nil {
		return err
	}
	prefix := target + "_tmp_"
	for _, name := range tables {
		if strings.HasPrefix(name, prefix) {
			if err := s.op.DropTable(ctx, name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *iosync) insertAll(
	ctx context.Context,
	name string,
	cols []schema.Column,
	rows [][]string,
) error {
	if len(rows) == 0 {
		return nil
	}

	batchSize := s.cfg.Database.BatchSize
	bar := newProgressBar(len(rows), "Inserting "+name+": ")
	defer bar.Finish()

	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		if err := s.op.InsertRows(ctx, name, cols, rows[i:end]); err != nil {
			return err
		}
		bar.Add(end - i)
	}
	return nil
}

// FetchTable reads a whole table back from the store.
func (s *iosync) FetchTable(
	ctx context.Context,
	name string,
) (*schema.Table, error) {
	if !schema.ValidIdent(name) {
		return nil, badTableNameError(name)
	}
	return s.op.FetchTable(ctx, name)
}

// Query runs a read-only SQL statement against the store.
func (s *iosync) Query(
	ctx context.Context,
	sqlText string,
) (*schema.Table, error) {
	return s.op.RunQuery(ctx, sqlText)
}
