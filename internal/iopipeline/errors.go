package iopipeline

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/gnames/gn"
)

// UnknownTableError creates an error for a table id missing from the
// registry.
func UnknownTableError(tableID string) error {
	msg := `Table <em>%s</em> is not registered

Run <em>regiodb tables</em> to list the registered tables.`

	return &gn.Error{
		Code: errcode.TableUnknownError,
		Msg:  msg,
		Vars: []any{tableID},
		Err:  fmt.Errorf("table %s not in registry", tableID),
	}
}

// ValidationError creates an error for transformed rows that failed
// structural validation; nothing reaches the warehouse in this case.
func ValidationError(tableID string) error {
	msg := `Transformed rows for table <em>%s</em> failed validation

Nothing was loaded. Specifics are in the log file.`

	return &gn.Error{
		Code: errcode.TransformValidationError,
		Msg:  msg,
		Vars: []any{tableID},
		Err:  fmt.Errorf("validation failed for %s", tableID),
	}
}
