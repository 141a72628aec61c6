// Package ioimport implements one import run: read a flat occurrence
// file, normalize it, check scientific names, and replace the
// normalized tables in the store.
package ioimport

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/gnames/occdb/internal/iocsv"
	"github.com/gnames/occdb/internal/iosync"
	"github.com/gnames/occdb/pkg/config"
	"github.com/gnames/occdb/pkg/db"
	"github.com/gnames/occdb/pkg/dwc"
	"github.com/gnames/occdb/pkg/lifecycle"
	"github.com/gnames/occdb/pkg/normalize"
	"github.com/gnames/occdb/pkg/parserpool"
	"github.com/gnames/occdb/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// TableImportMeta records provenance of the last import run.
const TableImportMeta = "import_meta"

// maxBadNameExamples caps how many unparsed names the warning shows.
const maxBadNameExamples = 5

type ioimp struct {
	cfg    *config.Config
	op     db.Operator
	syncer lifecycle.Syncer
}

// New creates an importer over an already connected store operator.
func New(cfg *config.Config, op db.Operator) lifecycle.Importer {
	return &ioimp{
		cfg:    cfg,
		op:     op,
		syncer: iosync.New(cfg, op),
	}
}

// Import processes the flat file at the given path: read, normalize,
// check names, replace the location, event, and occurrence tables in
// dependency order, and record provenance in the import_meta table.
func (imp *ioimp) Import(ctx context.Context, path string) error {
	start := time.Now()

	records, err := iocsv.ReadFlat(path)
	if err != nil {
		return err
	}
	slog.Info("Read flat occurrence file",
		"file", path,
		"rows", humanize.Comma(int64(len(records))),
	)

	policy := normalize.ParsePolicy(imp.cfg.Import.DedupPolicy)
	ds, err := normalize.Normalize(records, policy)
	if err != nil {
		return err
	}
	slog.Info("Normalized records",
		"locations", len(ds.Location.Rows),
		"events", len(ds.Event.Rows),
		"occurrences", len(ds.Occurrence.Rows),
	)

	if !imp.cfg.Import.SkipNameCheck {
		imp.checkNames(ds.Occurrence)
	}

	for _, tbl := range ds.Tables() {
		if err := imp.syncer.ReplaceTable(ctx, tbl); err != nil {
			return err
		}
	}

	meta := imp.metaTable(path, len(records), ds)
	if err := imp.syncer.ReplaceTable(ctx, meta); err != nil {
		return err
	}

	slog.Info("Import finished",
		"file", path,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// checkNames parses every scientific name with a pool of gnparser
// workers and warns about the ones that do not parse. Unparsed names
// are reported, never rejected; the store keeps the verbatim strings.
func (imp *ioimp) checkNames(occ *schema.Table) {
	nameIdx := occ.ColumnIndex(dwc.TermScientificName)
	if nameIdx < 0 {
		return
	}

	jobs := max(1, imp.cfg.JobsNumber)
	code := parserpool.Code(imp.cfg.Import.NomenclaturalCode)
	pool := parserpool.NewPool(jobs, code)
	defer pool.Close()

	namesCh := make(chan string)
	var mu sync.Mutex
	var bad []string

	var g errgroup.Group
	for range jobs {
		g.Go(func() error {
			for name := range namesCh {
				parsed := pool.Parse(name)
				if parsed.Parsed {
					continue
				}
				mu.Lock()
				bad = append(bad, name)
				mu.Unlock()
			}
			return nil
		})
	}

	seen := make(map[string]struct{})
	for _, row := range occ.Rows {
		name := row[nameIdx]
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		namesCh <- name
	}
	close(namesCh)
	_ = g.Wait()

	if len(bad) == 0 {
		slog.Info("All scientific names parsed", "names", len(seen))
		return
	}

	examples := bad
	if len(examples) > maxBadNameExamples {
		examples = examples[:maxBadNameExamples]
	}
	gn.Warn(fmt.Sprintf(
		"<warn>%d of %d scientific names did not parse</warn>",
		len(bad), len(seen),
	))
	for _, name := range examples {
		gn.Warn("  " + name)
	}
	slog.Warn("Some scientific names did not parse",
		"bad", len(bad), "names", len(seen))
}

// metaTable builds the single-row provenance table of an import run.
// The import ID is a UUID v5 of the file's absolute path, so importing
// the same file again produces the same ID.
func (imp *ioimp) metaTable(
	path string,
	flatRows int,
	ds *normalize.Dataset,
) *schema.Table {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &schema.Table{
		Name: TableImportMeta,
		Columns: []schema.Column{
			{Name: "importID"},
			{Name: "title"},
			{Name: "sourceFile"},
			{Name: "flatRows"},
			{Name: "locationRows"},
			{Name: "eventRows"},
			{Name: "occurrenceRows"},
			{Name: "importedAt"},
		},
		Rows: [][]string{{
			gnuuid.New(abs).String(),
			filepath.Base(path),
			abs,
			strconv.Itoa(flatRows),
			strconv.Itoa(len(ds.Location.Rows)),
			strconv.Itoa(len(ds.Event.Rows)),
			strconv.Itoa(len(ds.Occurrence.Rows)),
			time.Now().Format(time.RFC3339),
		}},
	}
}
