package iodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/occdb/pkg/config"
	"github.com/gnames/occdb/pkg/db"
	"github.com/gnames/occdb/pkg/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxOperator implements db.Operator over PostgreSQL using pgxpool.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a PostgreSQL operator (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	target := fmt.Sprintf("%s:%d/%s", cfg.Host, cfg.Port, cfg.Database)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError("postgres", target, err)
	}

	// Store access is strictly sequential over one connection.
	poolConfig.MaxConns = 1
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError("postgres", target, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError("postgres", target, err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// ListTables returns the names of all tables in the public schema.
func (p *pgxOperator) ListTables(ctx context.Context) ([]string, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
		ORDER BY tablename
	`
	rows, err := p.pool.Query(ctx, query)
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

// TableExists checks if a table exists in the public schema.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	name string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`
	var exists bool
	err := p.pool.QueryRow(ctx, query, name).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(name, err)
	}
	return exists, nil
}

// DropTable removes a table; dropping an absent table is a no-op.
func (p *pgxOperator) DropTable(ctx context.Context, name string) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %q", name)
	if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
		return DropTableError(name, err)
	}
	return nil
}

// CreateTable creates an empty table with the given column specs.
func (p *pgxOperator) CreateTable(
	ctx context.Context,
	name string,
	cols []schema.Column,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("%q %s", c.Name, pgType(c.Type))
	}
	createSQL := fmt.Sprintf(
		"CREATE TABLE %q (%s)", name, strings.Join(defs, ", "),
	)
	if _, err := p.pool.Exec(ctx, createSQL); err != nil {
		return CreateTableError(name, err)
	}
	return nil
}

func pgType(ct schema.ColumnType) string {
	switch ct {
	case schema.Integer:
		return "BIGINT"
	case schema.Real:
		return "DOUBLE PRECISION"
	case schema.LongText:
		return "TEXT"
	}
	return "VARCHAR(255)"
}

// InsertRows bulk-inserts one batch using CopyFrom.
func (p *pgxOperator) InsertRows(
	ctx context.Context,
	name string,
	cols []schema.Column,
	rows [][]string,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}
	if len(rows) == 0 {
		return nil
	}

	colNames := make([]string, len(cols))
	for i, c := range cols {
		colNames[i] = c.Name
	}

	src := make([][]any, len(rows))
	for i, row := range rows {
		vals := make([]any, len(row))
		for j, v := range row {
			val, err := typedValue(v, cols[j].Type)
			if err != nil {
				return InsertError(name, err)
			}
			vals[j] = val
		}
		src[i] = vals
	}

	_, err := p.pool.CopyFrom(
		ctx, pgx.Identifier{name}, colNames, pgx.CopyFromRows(src),
	)
	if err != nil {
		return InsertError(name, err)
	}
	return nil
}

// SwapTables drops the target and renames temp into its place within
// one transaction. PostgreSQL DDL is transactional, so an interruption
// rolls the whole swap back.
func (p *pgxOperator) SwapTables(
	ctx context.Context,
	temp, target string,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return SwapTablesError(temp, target, err)
	}
	defer tx.Rollback(ctx)

	dropSQL := fmt.Sprintf("DROP TABLE IF EXISTS %q", target)
	if _, err := tx.Exec(ctx, dropSQL); err != nil {
		return SwapTablesError(temp, target, err)
	}
	renameSQL := fmt.Sprintf(
		"ALTER TABLE %q RENAME TO %q", temp, target,
	)
	if _, err := tx.Exec(ctx, renameSQL); err != nil {
		return SwapTablesError(temp, target, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return SwapTablesError(temp, target, err)
	}
	return nil
}

// FetchTable returns all rows of a table. Fetched columns carry names
// only; types are re-inferred from the data on the next replace.
func (p *pgxOperator) FetchTable(
	ctx context.Context,
	name string,
) (*schema.Table, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	exists, err := p.TableExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, TableNotFoundError(name)
	}

	res, err := p.query(ctx, fmt.Sprintf("SELECT * FROM %q", name))
	if err != nil {
		return nil, err
	}
	res.Name = name
	return res, nil
}

// RunQuery passes a read-only SQL statement through unmodified.
func (p *pgxOperator) RunQuery(
	ctx context.Context,
	sqlText string,
) (*schema.Table, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}
	return p.query(ctx, sqlText)
}

func (p *pgxOperator) query(
	ctx context.Context,
	sqlText string,
) (*schema.Table, error) {
	rows, err := p.pool.Query(ctx, sqlText)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	res := &schema.Table{}
	for _, fd := range rows.FieldDescriptions() {
		res.Columns = append(res.Columns, schema.Column{Name: fd.Name})
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
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
func (p *pgxOperator) ListColumns(
	ctx context.Context,
	name string,
) ([]string, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position
	`
	rows, err := p.pool.Query(ctx, query, name)
	if err != nil {
		return nil, QueryError(err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, ScanRowError(err)
		}
		res = append(res, col)
	}
	if err := rows.Err(); err != nil {
		return nil, ScanRowError(err)
	}
	if len(res) == 0 {
		return nil, TableNotFoundError(name)
	}
	return res, nil
}
