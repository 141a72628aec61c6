// Package schema provides the table values exchanged between the
// normalizer, the sync engine, and the store operators, together with
// the data-driven column type inference used when a table is
// (re)created.
package schema

import (
	"regexp"
	"strconv"
)

// ColumnType is the inferred storage type of a column.
type ColumnType int

const (
	// ShortText is a text column whose every value fits under the
	// inference threshold.
	ShortText ColumnType = iota

	// LongText is a text column with at least one value at or over the
	// threshold.
	LongText

	// Integer is a column whose every non-empty value parses as an
	// integer.
	Integer

	// Real is a column whose every non-empty value parses as a number
	// and at least one of them is not an integer.
	Real
)

// String implements fmt.Stringer.
func (ct ColumnType) String() string {
	switch ct {
	case ShortText:
		return "short text"
	case LongText:
		return "long text"
	case Integer:
		return "integer"
	case Real:
		return "real"
	}
	return "unknown"
}

// Column describes one column of a table.
type Column struct {
	Name string
	Type ColumnType
}

// Table is an in-memory record set with a name, ordered columns, and
// rows of string values. Values are strings throughout because tables
// originate from delimited flat files; the store operators coerce them
// according to the inferred column types.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]string
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	res := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		res[i] = c.Name
	}
	return res
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// InferColumnType decides the storage type of one column from its
// values. Numeric detection comes first; for text, a column is short
// text only if every value's length is below the threshold. Empty
// values carry no information and are skipped; an all-empty column is
// short text.
func InferColumnType(values []string, threshold int) ColumnType {
	var seen, ints, reals int
	long := false

	for _, v := range values {
		if v == "" {
			continue
		}
		seen++
		if _, err := strconv.ParseInt(v, 10, 64); err == nil {
			ints++
			reals++
			continue
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			reals++
		}
		if len(v) >= threshold {
			long = true
		}
	}

	switch {
	case seen == 0:
		return ShortText
	case ints == seen:
		return Integer
	case reals == seen:
		return Real
	case long:
		return LongText
	}
	return ShortText
}

// InferColumns returns a copy of the table's columns with types
// inferred from the table's data.
func InferColumns(t *Table, threshold int) []Column {
	values := make([]string, len(t.Rows))
	res := make([]Column, len(t.Columns))
	for i, col := range t.Columns {
		for j, row := range t.Rows {
			values[j] = row[i]
		}
		res[i] = Column{Name: col.Name, Type: InferColumnType(values, threshold)}
	}
	return res
}

var identRx = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdent reports whether a name is safe to interpolate into DDL as
// a table or column identifier.
func ValidIdent(name string) bool {
	return identRx.MatchString(name)
}
