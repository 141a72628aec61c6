package normalize_test

import (
	"testing"

	"github.com/gnames/occdb/pkg/dwc"
	"github.com/gnames/occdb/pkg/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(occ, event, loc, name string) dwc.FlatRecord {
	return dwc.FlatRecord{
		OccurrenceID:     occ,
		EventID:          event,
		LocationID:       loc,
		ScientificName:   name,
		RecordedBy:       "O. Lakela",
		CatalogNumber:    "C-" + occ,
		RecordNumber:     "R-" + occ,
		EventDate:        "6/15/2001",
		Year:             "2001",
		Month:            "6",
		Day:              "15",
		DecimalLatitude:  "46.75",
		DecimalLongitude: "-92.12",
		Locality:         "Boulder Lake",
		CountryCode:      "US",
		StateProvince:    "Minnesota",
		County:           "St. Louis",
	}
}

func TestNormalize(t *testing.T) {
	records := []dwc.FlatRecord{
		record("1", "BVF11", "BVF", "Carex prairea Dewey"),
		record("2", "BVF11", "BVF", "Carex sterilis Willd."),
		record("3", "BVF12", "BVF", "Carex prairea Dewey"),
		record("4", "LAL9", "LAL", "Betula pumila L."),
	}

	ds, err := normalize.Normalize(records, normalize.FirstWins)
	require.NoError(t, err)

	t.Run("row count guarantees hold", func(t *testing.T) {
		assert.Len(t, ds.Location.Rows, 2)
		assert.Len(t, ds.Event.Rows, 3)
		assert.Len(t, ds.Occurrence.Rows, len(records))
		assert.LessOrEqual(t, len(ds.Location.Rows), len(ds.Event.Rows))
		assert.LessOrEqual(t, len(ds.Event.Rows), len(ds.Occurrence.Rows))
	})

	t.Run("keys are unique after distinct", func(t *testing.T) {
		locs := map[string]bool{}
		for _, row := range ds.Location.Rows {
			assert.False(t, locs[row[0]], "duplicate locationID %s", row[0])
			locs[row[0]] = true
		}
		events := map[string]bool{}
		for _, row := range ds.Event.Rows {
			assert.False(t, events[row[0]], "duplicate eventID %s", row[0])
			events[row[0]] = true
		}
	})

	t.Run("referential completeness", func(t *testing.T) {
		events := map[string]bool{}
		for _, row := range ds.Event.Rows {
			events[row[0]] = true
		}
		locs := map[string]bool{}
		for _, row := range ds.Location.Rows {
			locs[row[0]] = true
		}

		eventIdx := ds.Occurrence.ColumnIndex(dwc.TermEventID)
		require.GreaterOrEqual(t, eventIdx, 0)
		for _, row := range ds.Occurrence.Rows {
			assert.True(t, events[row[eventIdx]])
		}
		locIdx := ds.Event.ColumnIndex(dwc.TermLocationID)
		require.GreaterOrEqual(t, locIdx, 0)
		for _, row := range ds.Event.Rows {
			assert.True(t, locs[row[locIdx]])
		}
	})

	t.Run("event dates are ISO 8601", func(t *testing.T) {
		dateIdx := ds.Event.ColumnIndex(dwc.TermEventDate)
		for _, row := range ds.Event.Rows {
			assert.Equal(t, "2001-06-15", row[dateIdx])
		}
	})

	t.Run("occurrenceID is dropped", func(t *testing.T) {
		assert.Equal(t, -1, ds.Occurrence.ColumnIndex(dwc.TermOccurrenceID))
	})

	t.Run("example scenario BVF11", func(t *testing.T) {
		var locRows, eventRows int
		for _, row := range ds.Location.Rows {
			if row[0] == "BVF" {
				locRows++
			}
		}
		assert.Equal(t, 1, locRows)
		for _, row := range ds.Event.Rows {
			if row[0] == "BVF11" {
				eventRows++
			}
		}
		assert.Equal(t, 1, eventRows)

		nameIdx := ds.Occurrence.ColumnIndex(dwc.TermScientificName)
		eventIdx := ds.Occurrence.ColumnIndex(dwc.TermEventID)
		found := false
		for _, row := range ds.Occurrence.Rows {
			if row[eventIdx] == "BVF11" && row[nameIdx] == "Carex prairea Dewey" {
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestNormalizeDedupPolicies(t *testing.T) {
	conflicting := record("2", "BVF11", "BVF", "Carex sterilis Willd.")
	conflicting.Locality = "Somewhere else entirely"
	records := []dwc.FlatRecord{
		record("1", "BVF11", "BVF", "Carex prairea Dewey"),
		conflicting,
	}

	t.Run("first wins keeps the first row silently", func(t *testing.T) {
		ds, err := normalize.Normalize(records, normalize.FirstWins)
		require.NoError(t, err)
		require.Len(t, ds.Location.Rows, 1)
		assert.Equal(t, "Boulder Lake", ds.Location.Rows[0][1])
	})

	t.Run("strict fails on conflicting duplicates", func(t *testing.T) {
		_, err := normalize.Normalize(records, normalize.Strict)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locationID")
	})

	t.Run("strict accepts identical duplicates", func(t *testing.T) {
		same := []dwc.FlatRecord{
			record("1", "BVF11", "BVF", "Carex prairea Dewey"),
			record("2", "BVF11", "BVF", "Carex sterilis Willd."),
		}
		_, err := normalize.Normalize(same, normalize.Strict)
		assert.NoError(t, err)
	})
}

func TestNormalizeErrors(t *testing.T) {
	t.Run("malformed date fails loudly", func(t *testing.T) {
		bad := record("1", "BVF11", "BVF", "Carex prairea Dewey")
		bad.EventDate = "summer, probably"
		_, err := normalize.Normalize(
			[]dwc.FlatRecord{bad}, normalize.FirstWins,
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "eventDate")
	})

	t.Run("missing key field fails naming the field", func(t *testing.T) {
		bad := record("1", "BVF11", "", "Carex prairea Dewey")
		_, err := normalize.Normalize(
			[]dwc.FlatRecord{bad}, normalize.FirstWins,
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locationID")
	})

	t.Run("empty input yields empty tables", func(t *testing.T) {
		ds, err := normalize.Normalize(nil, normalize.FirstWins)
		require.NoError(t, err)
		assert.Empty(t, ds.Location.Rows)
		assert.Empty(t, ds.Event.Rows)
		assert.Empty(t, ds.Occurrence.Rows)
	})
}
