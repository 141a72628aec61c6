package db

import (
	"context"

	"github.com/gnames/occdb/pkg/config"
	"github.com/gnames/occdb/pkg/schema"
)

// Operator defines the interface of the external relational store.
// It exposes the conventional primitive operations the sync engine
// composes: create table, drop table, insert rows, run query, fetch
// rows. Implementations keep a single connection (or pool) that the
// caller acquires with Connect and must release with Close on every
// exit path.
//
// The store enforces no uniqueness constraints; de-duplication is the
// sync engine's job and happens by whole-table replacement, never by
// incremental merge.
type Operator interface {
	// Connect establishes the connection to the store described by the
	// database configuration.
	Connect(ctx context.Context, cfg *config.DatabaseConfig) error

	// Close releases the connection. Safe to call when not connected.
	Close() error

	// ListTables returns the names of all user tables.
	ListTables(ctx context.Context) ([]string, error)

	// TableExists checks if a table exists in the store.
	TableExists(ctx context.Context, name string) (bool, error)

	// DropTable removes a table. Dropping an absent table is not an
	// error.
	DropTable(ctx context.Context, name string) error

	// CreateTable creates an empty table with the given column specs.
	CreateTable(ctx context.Context, name string, cols []schema.Column) error

	// InsertRows bulk-inserts one batch of rows into a table. Values
	// arrive as strings and are coerced per the column types the table
	// was created with.
	InsertRows(
		ctx context.Context,
		name string,
		cols []schema.Column,
		rows [][]string,
	) error

	// SwapTables atomically replaces the target table with the temp
	// table: the target (if present) is dropped and temp is renamed to
	// target within one transaction. Used by the transactional replace
	// variant.
	SwapTables(ctx context.Context, temp, target string) error

	// FetchTable returns all rows of the named table, shape-identical
	// to what was last written modulo store-side type coercion.
	FetchTable(ctx context.Context, name string) (*schema.Table, error)

	// RunQuery passes a read-only SQL statement through to the store
	// unmodified and returns its result set. The engine performs no
	// validation or rewriting; the SQL text is the caller's
	// responsibility.
	RunQuery(ctx context.Context, sqlText string) (*schema.Table, error)

	// ListColumns returns the column names of the named table.
	ListColumns(ctx context.Context, name string) ([]string, error)
}
