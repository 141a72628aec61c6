package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/occdb/pkg/errcode"
)

func ConnectionError(backend, target string, err error) error {
	msg := "Cannot connect to %s store <em>%s</em>"
	vars := []any{backend, target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot connect to %s store %s: %w",
			fn, backend, target, err),
	}
}

func NotConnectedError() error {
	msg := "Not connected to the store"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: operator is not connected", fn),
	}
}

func ListTablesError(err error) error {
	msg := "Cannot list tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBListTablesError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot list tables: %w", fn, err),
	}
}

func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot check table %s: %w",
			fn, table, err),
	}
}

func CreateTableError(table string, err error) error {
	msg := "Cannot create table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBCreateTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot create table %s: %w",
			fn, table, err),
	}
}

func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot drop table %s: %w",
			fn, table, err),
	}
}

func SwapTablesError(temp, target string, err error) error {
	msg := "Cannot swap table <em>%s</em> into <em>%s</em>"
	vars := []any{temp, target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBRenameTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot swap %s into %s: %w",
			fn, temp, target, err),
	}
}

func InsertError(table string, err error) error {
	msg := "Cannot insert rows into <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBInsertError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot insert into %s: %w",
			fn, table, err),
	}
}

func QueryError(err error) error {
	msg := "Query failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: query failed: %w", fn, err),
	}
}

func ScanRowError(err error) error {
	msg := "Cannot read a result row"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBScanRowError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot scan row: %w", fn, err),
	}
}

func TableNotFoundError(table string) error {
	msg := "Table <em>%s</em> does not exist"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: table %s not found", fn, table),
	}
}
