package lifecycle

import (
	"context"

	"github.com/gnames/occdb/pkg/schema"
)

// Syncer defines the interface for keeping the external store in sync
// with in-memory tables. The in-memory record sets are authoritative;
// the store is a replica updated unidirectionally by explicit replace
// operations.
//
// Replacement always rebuilds from scratch:
// - Drops the existing table (if any)
// - Creates a fresh table with column types inferred from the data
// - Bulk-inserts all rows
// Running the same replace twice leaves the store observably identical
// both times. The default drop-create-insert sequence is not atomic; an
// interruption between drop and recreate leaves the table absent until
// the next replace. The transactional variant builds the replacement
// under a temporary name and swaps it in.
type Syncer interface {
	// ReplaceTable makes the store's table match the given record set.
	ReplaceTable(ctx context.Context, tbl *schema.Table) error

	// FetchTable reads a whole table back from the store.
	FetchTable(ctx context.Context, name string) (*schema.Table, error)

	// Query runs a read-only SQL statement against the store and
	// returns its result set unmodified.
	Query(ctx context.Context, sqlText string) (*schema.Table, error)
}
