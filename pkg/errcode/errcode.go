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

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBUnknownDriverError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBBeginError
	DBQueryError
	DBCommitError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Source errors
	SourceFetchError
	SourceReadError
	SourceDecodeError
	SourceDirNotFoundError

	// Populate errors
	PopulateNoSourcesError
	PopulateEmptyDatabaseError
	PopulateLoadError
	PopulateCommitError

	// Metrics errors
	MetricsWriteError
)
