// Package iodb implements the store Operator contract defined in
// pkg/db. This is an impure I/O package; it ships a SQLite operator
// for the default file-based store and a pgx operator for PostgreSQL.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gnames/occdb/pkg/config"
	"github.com/gnames/occdb/pkg/db"
	"github.com/gnames/occdb/pkg/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

// sqliteOperator implements db.Operator over a SQLite database file
// using the cgo-free driver.
type sqliteOperator struct {
	db   *sql.DB
	file string
}

// NewSqliteOperator creates a SQLite operator (without connecting).
func NewSqliteOperator() db.Operator {
	return &sqliteOperator{}
}

// Connect opens the database file, creating it when absent.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	handle, err := sql.Open("sqlite", cfg.File)
	if err != nil {
		return ConnectionError("sqlite", cfg.File, err)
	}

	// Store access is strictly sequential over one connection.
	handle.SetMaxOpenConns(1)

	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return ConnectionError("sqlite", cfg.File, err)
	}

	s.db = handle
	s.file = cfg.File
	return nil
}

// Close releases the database handle.
func (s *sqliteOperator) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ListTables returns user table names, skipping SQLite internals.
func (s *sqliteOperator) ListTables(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}

	query := `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, ListTablesError(err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, ScanRowError(err)
		}
		res = append(res, name)
	}
	if err := rows.Err(); err != nil {
		return nil, ScanRowError(err)
	}
	return res, nil
}

// TableExists checks if a table exists in the database file.
func (s *sqliteOperator) TableExists(
	ctx context.Context,
	name string,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM sqlite_master
			WHERE type = 'table' AND name = $1
		)
	`
	var exists bool
	err := s.db.QueryRowContext(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(name, err)
	}
	return exists, nil
}

// DropTable removes a table; dropping an absent table is a no-op.
func (s *sqliteOperator) DropTable(ctx context.Context, name string) error {
	if s.db == nil {
		return NotConnectedError()
	}

	dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %q", name)
	if _, err := s.db.ExecContext(ctx, dropSQL); err != nil {
		return DropTableError(name, err)
	}
	return nil
}

// CreateTable creates an empty table with the given column specs.
func (s *sqliteOperator) CreateTable(
	ctx context.Context,
	name string,
	cols []schema.Column,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("%q %s", c.Name, sqliteType(c.Type))
	}
	createSQL := fmt.Sprintf(
		"CREATE TABLE %q (%s)", name, strings.Join(defs, ", "),
	)
	if _, err := s.db.ExecContext(ctx, createSQL); err != nil {
		return CreateTableError(name, err)
	}
	return nil
}

func sqliteType(ct schema.ColumnType) string {
	switch ct {
	case schema.Integer:
		return "INTEGER"
	case schema.Real:
		return "REAL"
	case schema.LongText:
		return "TEXT"
	}
	return "VARCHAR(255)"
}

// InsertRows bulk-inserts one batch inside a transaction using a
// prepared statement.
func (s *sqliteOperator) InsertRows(
	ctx context.Context,
	name string,
	cols []schema.Column,
	rows [][]string,
) error {
	if s.db == nil {
		return NotConnectedError()
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InsertError(name, err)
	}
	defer tx.Rollback()

	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		names[i] = fmt.Sprintf("%q", c.Name)
		marks[i] = fmt.Sprintf("$%d", i+1)
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %q (%s) VALUES (%s)",
		name, strings.Join(names, ", "), strings.Join(marks, ", "),
	)

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return InsertError(name, err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for _, row := range rows {
		for i, v := range row {
			args[i], err = typedValue(v, cols[i].Type)
			if err != nil {
				return InsertError(name, err)
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return InsertError(name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return InsertError(name, err)
	}
	return nil
}

// SwapTables drops the target and renames temp into its place within
// one transaction. SQLite DDL is transactional, so an interruption
// rolls the whole swap back.
func (s *sqliteOperator) SwapTables(
	ctx context.Context,
	temp, target string,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SwapTablesError(temp, target, err)
	}
	defer tx.Rollback()

	dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %q", target)
	if _, err := tx.ExecContext(ctx, dropSQL); err != nil {
		return SwapTablesError(temp, target, err)
	}
	renameSQL := fmt.Sprintf(
		"ALTER TABLE %q RENAME TO %q", temp, target,
	)
	if _, err := tx.ExecContext(ctx, renameSQL); err != nil {
		return SwapTablesError(temp, target, err)
	}

	if err := tx.Commit(); err != nil {
		return SwapTablesError(temp, target, err)
	}
	return nil
}

// FetchTable returns all rows of a table. Fetched columns carry names
// only; types are re-inferred from the data on the next replace.
func (s *sqliteOperator) FetchTable(
	ctx context.Context,
	name string,
) (*schema.Table, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}

	exists, err := s.TableExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, TableNotFoundError(name)
	}

	res, err := s.query(ctx, fmt.Sprintf("SELECT * FROM %q", name))
	if err != nil {
		return nil, err
	}
	res.Name = name
	return res, nil
}

// RunQuery passes a read-only SQL statement through unmodified.
func (s *sqliteOperator) RunQuery(
	ctx context.Context,
	sqlText string,
) (*schema.Table, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}
	return s.query(ctx, sqlText)
}

func (s *sqliteOperator) query(
	ctx context.Context,
	sqlText string,
) (*schema.Table, error) {
	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	colNames, err := rows.Columns()
	if err != nil {
		return nil, QueryError(err)
	}

	res := &schema.Table{}
	for _, n := range colNames {
		res.Columns = append(res.Columns, schema.Column{Name: n})
	}

	vals := make([]any, len(colNames))
	ptrs := make([]any, len(colNames))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, ScanRowError(err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = stringValue(v)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ScanRowError(err)
	}
	return res, nil
}

// ListColumns returns the column names of a table in order.
func (s *sqliteOperator) ListColumns(
	ctx context.Context,
	name string,
) ([]string, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}

	exists, err := s.TableExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, TableNotFoundError(name)
	}

	rows, err := s.db.QueryContext(
		ctx, fmt.Sprintf("SELECT * FROM %q LIMIT 0", name),
	)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, QueryError(err)
	}
	return cols, nil
}
