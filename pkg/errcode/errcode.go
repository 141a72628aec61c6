package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Flat file errors
	FlatFileOpenError
	FlatFileHeaderError
	FlatFileMissingColumnError
	FlatFileRowError

	// Normalization errors
	NormalizeDateError
	NormalizeMissingFieldError
	NormalizeDuplicateKeyError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBListTablesError
	DBTableExistsCheckError
	DBCreateTableError
	DBDropTableError
	DBRenameTableError
	DBInsertError
	DBQueryError
	DBScanRowError
	DBTableNotFoundError

	// Sync errors
	SyncBadTableNameError
	SyncBadColumnNameError
	SyncEmptyTableError

	// Fix rule errors
	FixesReadError
	FixesRuleError
	FixesColumnError
)
