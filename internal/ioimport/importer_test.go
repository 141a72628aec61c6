package ioimport_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/occdb/internal/iodb"
	"github.com/gnames/occdb/internal/ioimport"
	"github.com/gnames/occdb/pkg/config"
	"github.com/gnames/occdb/pkg/db"
	"github.com/gnames/occdb/pkg/dwc"
	"github.com/gnames/occdb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImporter(
	t *testing.T,
	opts ...config.Option,
) (lifecycle.Importer, db.Operator) {
	t.Helper()
	cfg := config.New()
	cfg.Update(opts)
	cfg.Database.File = filepath.Join(t.TempDir(), "occdb.sqlite")
	// the pool is expensive to start; one parser is plenty for tests
	cfg.JobsNumber = 1

	op := iodb.NewSqliteOperator()
	err := op.Connect(context.Background(), &cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() { _ = op.Close() })

	return ioimport.New(cfg, op), op
}

func flatFile(t *testing.T, rows ...[]string) string {
	t.Helper()
	lines := []string{strings.Join(dwc.RequiredTerms(), "\t")}
	for _, row := range rows {
		lines = append(lines, strings.Join(row, "\t"))
	}
	path := filepath.Join(t.TempDir(), "occurrences.tsv")
	content := strings.Join(lines, "\n") + "\n"
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func flatRow(occID, eventID, locID, name, date string) []string {
	return []string{
		occID, eventID, locID, name,
		"A. Collector", occID, "17", "on wet sand",
		date, "2001", "6", "15",
		"46.226", "-84.534", "Bay View floodplain",
		"US", "Michigan", "Chippewa",
	}
}

func TestImport(t *testing.T) {
	imp, op := newImporter(t, config.OptImportSkipNameCheck(true))
	ctx := context.Background()

	path := flatFile(t,
		flatRow("BVF11-2", "BVF11", "BVF", "Carex prairea Dewey", "2001-06-15"),
		flatRow("BVF11-3", "BVF11", "BVF", "Betula pumila L.", "2001-06-15"),
		flatRow("LAL9-4", "LAL9", "LAL", "Betula pumila L.", "6/15/2001"),
	)

	err := imp.Import(ctx, path)
	require.NoError(t, err)

	tables, err := op.ListTables(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"location", "event", "occurrence", "import_meta"},
		tables,
	)

	loc, err := op.FetchTable(ctx, "location")
	require.NoError(t, err)
	assert.Len(t, loc.Rows, 2)

	ev, err := op.FetchTable(ctx, "event")
	require.NoError(t, err)
	require.Len(t, ev.Rows, 2)
	dateIdx := ev.ColumnIndex("eventDate")
	require.GreaterOrEqual(t, dateIdx, 0)
	for _, row := range ev.Rows {
		assert.Equal(t, "2001-06-15", row[dateIdx])
	}

	occ, err := op.FetchTable(ctx, "occurrence")
	require.NoError(t, err)
	assert.Len(t, occ.Rows, 3)
	assert.Equal(t, -1, occ.ColumnIndex("occurrenceID"))
}

func TestImportIsIdempotent(t *testing.T) {
	imp, op := newImporter(t, config.OptImportSkipNameCheck(true))
	ctx := context.Background()

	path := flatFile(t,
		flatRow("BVF11-2", "BVF11", "BVF", "Carex prairea Dewey", "2001-06-15"),
	)

	err := imp.Import(ctx, path)
	require.NoError(t, err)
	first, err := op.FetchTable(ctx, "occurrence")
	require.NoError(t, err)

	err = imp.Import(ctx, path)
	require.NoError(t, err)
	second, err := op.FetchTable(ctx, "occurrence")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestImportMeta(t *testing.T) {
	imp, op := newImporter(t, config.OptImportSkipNameCheck(true))
	ctx := context.Background()

	path := flatFile(t,
		flatRow("BVF11-2", "BVF11", "BVF", "Carex prairea Dewey", "2001-06-15"),
		flatRow("LAL9-4", "LAL9", "LAL", "Betula pumila L.", "2001-06-15"),
	)

	err := imp.Import(ctx, path)
	require.NoError(t, err)

	meta, err := op.FetchTable(ctx, "import_meta")
	require.NoError(t, err)
	require.Len(t, meta.Rows, 1)

	row := meta.Rows[0]
	get := func(col string) string {
		idx := meta.ColumnIndex(col)
		require.GreaterOrEqual(t, idx, 0)
		return row[idx]
	}
	assert.NotEmpty(t, get("importID"))
	assert.Equal(t, "occurrences.tsv", get("title"))
	assert.Equal(t, "2", get("flatRows"))
	assert.Equal(t, "2", get("locationRows"))
	assert.Equal(t, "2", get("eventRows"))
	assert.Equal(t, "2", get("occurrenceRows"))
	assert.NotEmpty(t, get("importedAt"))

	// same file, same import ID
	id := get("importID")
	err = imp.Import(ctx, path)
	require.NoError(t, err)
	meta, err = op.FetchTable(ctx, "import_meta")
	require.NoError(t, err)
	assert.Equal(t, id, meta.Rows[0][meta.ColumnIndex("importID")])
}

func TestImportNameCheck(t *testing.T) {
	imp, op := newImporter(t)
	ctx := context.Background()

	path := flatFile(t,
		flatRow("BVF11-2", "BVF11", "BVF", "Carex prairea Dewey", "2001-06-15"),
		flatRow("LAL9-4", "LAL9", "LAL", "not-a-name-at-all", "2001-06-15"),
	)

	// unparsed names are reported, never rejected
	err := imp.Import(ctx, path)
	require.NoError(t, err)

	occ, err := op.FetchTable(ctx, "occurrence")
	require.NoError(t, err)
	assert.Len(t, occ.Rows, 2)
}

func TestImportBadDate(t *testing.T) {
	imp, _ := newImporter(t, config.OptImportSkipNameCheck(true))
	ctx := context.Background()

	path := flatFile(t,
		flatRow("BVF11-2", "BVF11", "BVF", "Carex prairea Dewey", "sometime"),
	)

	err := imp.Import(ctx, path)
	require.Error(t, err)
}

func TestImportStrictDedup(t *testing.T) {
	imp, _ := newImporter(t,
		config.OptImportSkipNameCheck(true),
		config.OptImportDedupPolicy("strict"),
	)
	ctx := context.Background()

	conflicting := flatRow(
		"BVF11-3", "BVF11", "BVF", "Betula pumila L.", "2001-06-16",
	)
	path := flatFile(t,
		flatRow("BVF11-2", "BVF11", "BVF", "Carex prairea Dewey", "2001-06-15"),
		conflicting,
	)

	err := imp.Import(ctx, path)
	require.Error(t, err)
}
