package iocsv_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/internal/iocsv"
	"github.com/gnames/occdb/pkg/dwc"
	"github.com/gnames/occdb/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var flatHeader = strings.Join(dwc.RequiredTerms(), "\t")

func writeFlat(t *testing.T, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	content := strings.Join(lines, "\n") + "\n"
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func flatRow(occID, eventID, locID, name string) string {
	fields := []string{
		occID, eventID, locID, name,
		"A. Collector", occID, "17", "on wet sand",
		"2001-06-15", "2001", "6", "15",
		"46.226", "-84.534", "Bay View floodplain",
		"US", "Michigan", "Chippewa",
	}
	return strings.Join(fields, "\t")
}

func TestReadFlat(t *testing.T) {
	path := writeFlat(t, "occ.tsv",
		flatHeader,
		flatRow("BVF11-2", "BVF11", "BVF", "Carex prairea Dewey"),
		flatRow("LAL9-4", "LAL9", "LAL", "Betula pumila L."),
	)

	recs, err := iocsv.ReadFlat(path)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "BVF11-2", recs[0].OccurrenceID)
	assert.Equal(t, "BVF11", recs[0].EventID)
	assert.Equal(t, "BVF", recs[0].LocationID)
	assert.Equal(t, "Carex prairea Dewey", recs[0].ScientificName)
	assert.Equal(t, "2001-06-15", recs[0].EventDate)
	assert.Equal(t, "46.226", recs[0].DecimalLatitude)
	assert.Equal(t, "Betula pumila L.", recs[1].ScientificName)
}

func TestReadFlatCSV(t *testing.T) {
	header := strings.Join(dwc.RequiredTerms(), ",")
	row := strings.ReplaceAll(
		flatRow("BVF11-2", "BVF11", "BVF", "Carex prairea Dewey"),
		"\t", ",",
	)
	path := writeFlat(t, "occ.csv", header, row)

	recs, err := iocsv.ReadFlat(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "BVF11", recs[0].EventID)
}

func TestReadFlatExtraColumns(t *testing.T) {
	path := writeFlat(t, "occ.tsv",
		flatHeader+"\tbasisOfRecord",
		flatRow("BVF11-2", "BVF11", "BVF", "Carex prairea Dewey")+
			"\tHumanObservation",
	)

	recs, err := iocsv.ReadFlat(path)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Carex prairea Dewey", recs[0].ScientificName)
}

func TestReadFlatMissingColumn(t *testing.T) {
	header := strings.ReplaceAll(flatHeader, "locationID", "siteID")
	path := writeFlat(t, "occ.tsv",
		header,
		flatRow("BVF11-2", "BVF11", "BVF", "Carex prairea Dewey"),
	)

	_, err := iocsv.ReadFlat(path)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.FlatFileMissingColumnError, gnErr.Code)
	assert.Contains(t, err.Error(), "locationID")
}

func TestReadFlatNoFile(t *testing.T) {
	_, err := iocsv.ReadFlat(filepath.Join(t.TempDir(), "absent.tsv"))
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.FlatFileOpenError, gnErr.Code)
}

func TestReadFlatRaggedRow(t *testing.T) {
	path := writeFlat(t, "occ.tsv",
		flatHeader,
		"BVF11-2\tBVF11\tBVF",
	)

	_, err := iocsv.ReadFlat(path)
	require.Error(t, err)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.FlatFileRowError, gnErr.Code)
}
