package lifecycle

import (
	"context"
)

// Importer defines the interface for one import run: read a flat
// occurrence file, normalize it into location, event, and occurrence
// tables, and replace those tables in the store. Store operations are
// strictly sequential over a single connection; any failure aborts the
// run and propagates to the caller.
type Importer interface {
	// Import processes the flat file at the given path.
	Import(ctx context.Context, path string) error
}
