package iotables

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/gnames/gn"
)

// TablesConfigError creates an error for when tables.yaml cannot be
// loaded.
func TablesConfigError(path string, err error) error {
	msg := `Cannot load the table registry

<em>Registry file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - Permission denied

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Delete the file to restore the embedded default on next run`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.TablesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load table registry: %w", err),
	}
}

// ValidationError creates an error for a registry that parsed but
// breaks registry invariants, such as duplicate indicator ids.
func ValidationError(path string, err error) error {
	msg := `Table registry <em>%s</em> is invalid: %s

Duplicate indicator ids or codes mean two tables would write into the
same warehouse series. Fix the registry before loading anything.`

	vars := []any{path, err.Error()}

	return &gn.Error{
		Code: errcode.TablesValidationError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("table registry validation: %w", err),
	}
}
