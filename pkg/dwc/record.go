// Package dwc provides the Darwin Core occurrence records occdb works
// with. The flat record mirrors one row of a denormalized occurrence
// file; column names follow Darwin Core terms verbatim.
package dwc

// Darwin Core terms used as column names in flat files and in the
// normalized tables.
const (
	TermOccurrenceID      = "occurrenceID"
	TermEventID           = "eventID"
	TermLocationID        = "locationID"
	TermScientificName    = "scientificName"
	TermRecordedBy        = "recordedBy"
	TermCatalogNumber     = "catalogNumber"
	TermRecordNumber      = "recordNumber"
	TermOccurrenceRemarks = "occurrenceRemarks"
	TermEventDate         = "eventDate"
	TermYear              = "year"
	TermMonth             = "month"
	TermDay               = "day"
	TermDecimalLatitude   = "decimalLatitude"
	TermDecimalLongitude  = "decimalLongitude"
	TermLocality          = "locality"
	TermCountryCode       = "countryCode"
	TermStateProvince     = "stateProvince"
	TermCounty            = "county"
)

// RequiredTerms lists the columns a flat occurrence file must carry.
// A file missing any of them is rejected before normalization starts.
func RequiredTerms() []string {
	return []string{
		TermOccurrenceID,
		TermEventID,
		TermLocationID,
		TermScientificName,
		TermRecordedBy,
		TermCatalogNumber,
		TermRecordNumber,
		TermOccurrenceRemarks,
		TermEventDate,
		TermYear,
		TermMonth,
		TermDay,
		TermDecimalLatitude,
		TermDecimalLongitude,
		TermLocality,
		TermCountryCode,
		TermStateProvince,
		TermCounty,
	}
}

// FlatRecord is one row of a denormalized occurrence file. It carries
// occurrence-level fields together with the event and location
// attributes duplicated across every row that shares the same eventID
// or locationID.
type FlatRecord struct {
	// OccurrenceID is the record-level identifier of the source file.
	// It is dropped during normalization.
	OccurrenceID string

	// EventID identifies the collecting event the occurrence belongs to.
	EventID string

	// LocationID identifies the location the event took place at.
	LocationID string

	// ScientificName is the name of the observed taxon, with authorship.
	ScientificName string

	// RecordedBy is the collector or observer.
	RecordedBy string

	// CatalogNumber is the collection catalog identifier.
	CatalogNumber string

	// RecordNumber is the collector's field number.
	RecordNumber string

	// OccurrenceRemarks holds free-form notes about the occurrence.
	OccurrenceRemarks string

	// EventDate is the date of the collecting event as written in the
	// source file. It is reparsed to ISO 8601 during normalization.
	EventDate string

	// Year, Month, Day are the split date parts of the event.
	Year  string
	Month string
	Day   string

	// DecimalLatitude and DecimalLongitude locate the event.
	DecimalLatitude  string
	DecimalLongitude string

	// Locality is the verbatim place name.
	Locality string

	// CountryCode is the ISO 3166 two-letter country code.
	CountryCode string

	// StateProvince and County are administrative areas of the location.
	StateProvince string
	County        string
}
