package iocsv_test

import (
	"bytes"
	"testing"

	"github.com/gnames/occdb/internal/iocsv"
	"github.com/gnames/occdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTSV(t *testing.T) {
	tbl := &schema.Table{
		Name: "location",
		Columns: []schema.Column{
			{Name: "locationID"},
			{Name: "decimalLatitude"},
			{Name: "locality"},
		},
		Rows: [][]string{
			{"BVF", "46.226", "Bay View floodplain"},
			{"LAL", "45.858", ""},
		},
	}

	var b bytes.Buffer
	err := iocsv.WriteTSV(&b, tbl)
	require.NoError(t, err)

	want := "locationID\tdecimalLatitude\tlocality\n" +
		"BVF\t46.226\tBay View floodplain\n" +
		"LAL\t45.858\t\n"
	assert.Equal(t, want, b.String())
}

func TestWriteTSVEmptyTable(t *testing.T) {
	tbl := &schema.Table{
		Name:    "event",
		Columns: []schema.Column{{Name: "eventID"}},
	}

	var b bytes.Buffer
	err := iocsv.WriteTSV(&b, tbl)
	require.NoError(t, err)
	assert.Equal(t, "eventID\n", b.String())
}
