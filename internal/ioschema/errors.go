package ioschema

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for schema operations attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for a failed GORM session.
func GORMConnectionError(err error) error {
	msg := "Could not open GORM session over the warehouse connection"

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("gorm connection failed: %w", err),
	}
}

// CreateSchemaError creates an error for a failed schema creation.
func CreateSchemaError(err error) error {
	msg := `Could not create the warehouse schema

<em>How to fix:</em>
  1. Verify the database user can create tables
  2. Check the log file for the failing statement`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("schema creation failed: %w", err),
	}
}

// MigrateSchemaError creates an error for a failed schema migration.
func MigrateSchemaError(err error) error {
	msg := "Could not migrate the warehouse schema"

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("schema migration failed: %w", err),
	}
}

// IndexError creates an error for a failed post-migrate index statement.
func IndexError(stmt string, err error) error {
	msg := `Could not create a unique index required for upserts

Note: NULLS NOT DISTINCT requires PostgreSQL 15 or newer.`

	return &gn.Error{
		Code: errcode.SchemaIndexError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("index statement failed (%s): %w", stmt, err),
	}
}
