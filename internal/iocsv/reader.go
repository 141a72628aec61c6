// Package iocsv reads denormalized occurrence files and writes
// normalized tables back out as delimited text.
package iocsv

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/occdb/pkg/dwc"
)

// ReadFlat reads a whole flat occurrence file into memory. The
// delimiter follows the file extension: comma for '.csv', tab for
// everything else. The header must carry every required Darwin Core
// term; extra columns are ignored.
func ReadFlat(path string) ([]dwc.FlatRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter(path)
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, headerError(path, err)
	}

	idx := make(map[string]int)
	for i, col := range header {
		idx[strings.TrimSpace(col)] = i
	}
	for _, term := range dwc.RequiredTerms() {
		if _, ok := idx[term]; !ok {
			return nil, missingColumnError(path, term)
		}
	}

	var res []dwc.FlatRecord
	line := 1
	for {
		row, err := r.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rowError(path, line, err)
		}
		field := func(term string) string {
			return strings.TrimSpace(row[idx[term]])
		}
		rec := dwc.FlatRecord{
			OccurrenceID:      field(dwc.TermOccurrenceID),
			EventID:           field(dwc.TermEventID),
			LocationID:        field(dwc.TermLocationID),
			ScientificName:    field(dwc.TermScientificName),
			RecordedBy:        field(dwc.TermRecordedBy),
			CatalogNumber:     field(dwc.TermCatalogNumber),
			RecordNumber:      field(dwc.TermRecordNumber),
			OccurrenceRemarks: field(dwc.TermOccurrenceRemarks),
			EventDate:         field(dwc.TermEventDate),
			Year:              field(dwc.TermYear),
			Month:             field(dwc.TermMonth),
			Day:               field(dwc.TermDay),
			DecimalLatitude:   field(dwc.TermDecimalLatitude),
			DecimalLongitude:  field(dwc.TermDecimalLongitude),
			Locality:          field(dwc.TermLocality),
			CountryCode:       field(dwc.TermCountryCode),
			StateProvince:     field(dwc.TermStateProvince),
			County:            field(dwc.TermCounty),
		}
		res = append(res, rec)
	}
	return res, nil
}

func delimiter(path string) rune {
	if filepath.Ext(path) == ".csv" {
		return ','
	}
	return '\t'
}
