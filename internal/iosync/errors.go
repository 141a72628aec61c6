package iosync

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/pkg/errcode"
)

func badTableNameError(name string) error {
	msg := "Table name <em>%s</em> is not a valid SQL identifier"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SyncBadTableNameError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad table name %q", fn, name),
	}
}

func badColumnNameError(table, column string) error {
	msg := "Table <em>%s</em> has a column name <em>%s</em> that is " +
		"not a valid SQL identifier"
	vars := []any{table, column}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SyncBadColumnNameError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bad column name %q in table %q",
			fn, column, table),
	}
}

func emptyTableError(name string) error {
	msg := "Table <em>%s</em> has no columns to create"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SyncEmptyTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: table %q without columns", fn, name),
	}
}
