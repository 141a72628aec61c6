// Package normalize decomposes a flat occurrence record set into three
// related tables: location, event, and occurrence. The package is pure;
// given the same records it always produces the same tables.
package normalize

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/pkg/dwc"
	"github.com/gnames/occdb/pkg/errcode"
	"github.com/gnames/occdb/pkg/schema"
)

// Table names of the normalized schema.
const (
	TableLocation   = "location"
	TableEvent      = "event"
	TableOccurrence = "occurrence"
)

// DedupPolicy decides what distinct-by-key does with a duplicated key.
type DedupPolicy int

const (
	// FirstWins keeps the first row of each key and drops later rows
	// with the same key silently, whatever their other attributes say.
	// This matches the original pipeline and can lose conflicting data.
	FirstWins DedupPolicy = iota

	// Strict fails when a duplicated key arrives with attribute values
	// that differ from the first row.
	Strict
)

// ParsePolicy converts a config string to a DedupPolicy.
func ParsePolicy(s string) DedupPolicy {
	if s == "strict" {
		return Strict
	}
	return FirstWins
}

// Dataset holds the three normalized tables of one flat file.
type Dataset struct {
	Location   *schema.Table
	Event      *schema.Table
	Occurrence *schema.Table
}

// Tables returns the dataset's tables in dependency order: locations
// before the events that reference them, events before occurrences.
func (d *Dataset) Tables() []*schema.Table {
	return []*schema.Table{d.Location, d.Event, d.Occurrence}
}

// Normalize projects flat records into the three tables.
//
// Locations are distinct by locationID, events distinct by eventID, and
// occurrences stay one-to-one with the input rows. Event dates are
// reparsed to ISO 8601 calendar dates; a malformed date aborts the
// whole normalization. The row counts always satisfy
// len(location) <= len(event) <= len(occurrence) == len(records).
func Normalize(records []dwc.FlatRecord, policy DedupPolicy) (*Dataset, error) {
	for i, r := range records {
		if err := validate(i, r); err != nil {
			return nil, err
		}
	}

	loc, err := locations(records, policy)
	if err != nil {
		return nil, err
	}
	ev, err := events(records, policy)
	if err != nil {
		return nil, err
	}

	res := &Dataset{
		Location:   loc,
		Event:      ev,
		Occurrence: occurrences(records),
	}
	return res, nil
}

// validate rejects records without the natural keys the relations hang
// on. Attribute fields may be empty, keys may not.
func validate(row int, r dwc.FlatRecord) error {
	fields := []struct {
		name, val string
	}{
		{dwc.TermLocationID, r.LocationID},
		{dwc.TermEventID, r.EventID},
	}
	for _, f := range fields {
		if f.val == "" {
			return missingFieldError(row, f.name)
		}
	}
	return nil
}

func locations(
	records []dwc.FlatRecord, policy DedupPolicy,
) (*schema.Table, error) {
	tbl := &schema.Table{
		Name: TableLocation,
		Columns: []schema.Column{
			{Name: dwc.TermLocationID},
			{Name: dwc.TermLocality},
			{Name: dwc.TermCountryCode},
			{Name: dwc.TermStateProvince},
			{Name: dwc.TermCounty},
		},
	}
	seen := make(map[string]int)
	for _, r := range records {
		row := []string{
			r.LocationID, r.Locality, r.CountryCode,
			r.StateProvince, r.County,
		}
		if err := keep(tbl, seen, r.LocationID, row, policy); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func events(
	records []dwc.FlatRecord, policy DedupPolicy,
) (*schema.Table, error) {
	tbl := &schema.Table{
		Name: TableEvent,
		Columns: []schema.Column{
			{Name: dwc.TermEventID},
			{Name: dwc.TermEventDate},
			{Name: dwc.TermYear},
			{Name: dwc.TermMonth},
			{Name: dwc.TermDay},
			{Name: dwc.TermDecimalLatitude},
			{Name: dwc.TermDecimalLongitude},
			{Name: dwc.TermLocationID},
		},
	}
	seen := make(map[string]int)
	for _, r := range records {
		date, err := dwc.ParseEventDate(r.EventDate)
		if err != nil {
			return nil, err
		}
		row := []string{
			r.EventID, date, r.Year, r.Month, r.Day,
			r.DecimalLatitude, r.DecimalLongitude, r.LocationID,
		}
		if err := keep(tbl, seen, r.EventID, row, policy); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// occurrences keeps one row per input row and drops occurrenceID;
// catalogNumber is carried but never declared unique.
func occurrences(records []dwc.FlatRecord) *schema.Table {
	tbl := &schema.Table{
		Name: TableOccurrence,
		Columns: []schema.Column{
			{Name: dwc.TermScientificName},
			{Name: dwc.TermRecordedBy},
			{Name: dwc.TermCatalogNumber},
			{Name: dwc.TermRecordNumber},
			{Name: dwc.TermOccurrenceRemarks},
			{Name: dwc.TermEventID},
		},
	}
	for _, r := range records {
		tbl.Rows = append(tbl.Rows, []string{
			r.ScientificName, r.RecordedBy, r.CatalogNumber,
			r.RecordNumber, r.OccurrenceRemarks, r.EventID,
		})
	}
	return tbl
}

// keep appends a projected row unless its key was seen before. Under
// Strict a duplicate key with different attributes is an error; under
// FirstWins it is discarded.
func keep(
	tbl *schema.Table,
	seen map[string]int,
	key string,
	row []string,
	policy DedupPolicy,
) error {
	idx, ok := seen[key]
	if !ok {
		seen[key] = len(tbl.Rows)
		tbl.Rows = append(tbl.Rows, row)
		return nil
	}
	if policy == Strict && !equalRows(tbl.Rows[idx], row) {
		return duplicateKeyError(tbl.Name, tbl.Columns[0].Name, key)
	}
	return nil
}

func equalRows(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func missingFieldError(row int, field string) error {
	msg := "Row %d has no <em>%s</em> value"
	vars := []any{row + 1, field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NormalizeMissingFieldError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: row %d: missing required field %s",
			fn, row+1, field),
	}
}

func duplicateKeyError(table, keyCol, key string) error {
	msg := "Conflicting rows for %s <em>'%s'</em> in table <em>%s</em>"
	vars := []any{keyCol, key, table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.NormalizeDuplicateKeyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"from %s: duplicate %s %q with conflicting attributes in %s",
			fn, keyCol, key, table),
	}
}
