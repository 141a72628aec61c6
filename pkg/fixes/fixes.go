// Package fixes provides declarative value corrections for normalized
// tables. The store cannot update rows in place (no primary keys), so a
// correction is expressed as: fetch the table, substitute values in
// memory, replace the whole table.
package fixes

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/pkg/errcode"
	"github.com/gnames/occdb/pkg/schema"
)

// Rule is one value substitution: in the named table, every row whose
// WhereColumn equals WhereValue gets SetColumn set to SetValue. All
// other rows keep their values unchanged.
type Rule struct {
	Table       string `yaml:"table"`
	WhereColumn string `yaml:"where_column"`
	WhereValue  string `yaml:"where_value"`
	SetColumn   string `yaml:"set_column"`
	SetValue    string `yaml:"set_value"`
}

// Validate rejects rules with empty parts. SetValue may be empty; a
// correction to an empty value is legitimate.
func (r Rule) Validate() error {
	parts := []struct {
		name, val string
	}{
		{"table", r.Table},
		{"where_column", r.WhereColumn},
		{"where_value", r.WhereValue},
		{"set_column", r.SetColumn},
	}
	for _, p := range parts {
		if p.val == "" {
			return ruleError(p.name)
		}
	}
	return nil
}

// Apply substitutes values in a fetched table according to the rules
// that target it and returns the number of changed cells. Rules for
// other tables are skipped. A rule naming a column the table does not
// have is an error.
func Apply(tbl *schema.Table, rules []Rule) (int, error) {
	var changed int
	for _, r := range rules {
		if r.Table != tbl.Name {
			continue
		}
		whereIdx := tbl.ColumnIndex(r.WhereColumn)
		if whereIdx < 0 {
			return 0, columnError(tbl.Name, r.WhereColumn)
		}
		setIdx := tbl.ColumnIndex(r.SetColumn)
		if setIdx < 0 {
			return 0, columnError(tbl.Name, r.SetColumn)
		}
		for _, row := range tbl.Rows {
			if row[whereIdx] == r.WhereValue && row[setIdx] != r.SetValue {
				row[setIdx] = r.SetValue
				changed++
			}
		}
	}
	return changed, nil
}

func ruleError(part string) error {
	msg := "Fix rule is missing its <em>%s</em>"
	vars := []any{part}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FixesRuleError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: fix rule without %s", fn, part),
	}
}

func columnError(table, column string) error {
	msg := "Table <em>%s</em> has no column <em>%s</em>"
	vars := []any{table, column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FixesColumnError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown column %s in table %s",
			fn, column, table),
	}
}
