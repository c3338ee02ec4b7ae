// Package errcode enumerates application-wide error codes used
// by gn.Error values across regiodb packages.
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
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaIndexError

	// Table registry errors
	TablesConfigError
	TablesValidationError
	TableUnknownError

	// Upstream API errors
	APIRequestError
	APIStatusError
	APIDecodeError
	APIYearWindowError

	// Response cache errors
	CacheOpenError
	CacheQueryError

	// Extraction errors
	ExtractNoDataError
	ExtractAllYearsFailedError

	// Transform errors
	TransformValidationError
	TransformNoIndicatorError

	// Load errors
	LoadDimensionError
	LoadUpsertError

	// Seed errors
	SeedConfigError
	SeedHierarchyError
	SeedUpsertError

	// Remediation errors
	RemedyTransactionError
	RemedyLookupError
	RemedyRemapError

	// Verification errors
	VerifyQueryError
)
