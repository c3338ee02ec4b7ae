package ioload

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for a load attempted without a
// database connection.
func NotConnectedError() error {
	msg := "Load attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// DimensionError creates an error for a failed dimension lookup or
// registration.
func DimensionError(table string, err error) error {
	msg := `Dimension access failed on <em>%s</em>

<em>How to fix:</em>
  1. Run <em>regiodb create</em> if the schema does not exist yet
  2. Run <em>regiodb seed</em> if the geography dimension is empty`

	return &gn.Error{
		Code: errcode.LoadDimensionError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("dimension access on %s: %w", table, err),
	}
}

// UpsertError creates an error for a batch that could not be completed.
func UpsertError(tableID string, err error) error {
	msg := "Fact upsert batch failed for table <em>%s</em>"

	return &gn.Error{
		Code: errcode.LoadUpsertError,
		Msg:  msg,
		Vars: []any{tableID},
		Err:  fmt.Errorf("upsert batch for %s: %w", tableID, err),
	}
}
