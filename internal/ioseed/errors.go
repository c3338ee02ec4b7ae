package ioseed

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/gnames/gn"
)

// ParseError creates an error for an embedded regions file that cannot
// be parsed.
func ParseError(err error) error {
	msg := "The embedded regions file is not valid YAML"

	return &gn.Error{
		Code: errcode.SeedConfigError,
		Msg:  msg,
		Err:  fmt.Errorf("parse regions: %w", err),
	}
}

// HierarchyError creates an error for a region entry that breaks the
// hierarchy rules.
func HierarchyError(code, reason string) error {
	msg := "Region <em>%s</em> is invalid: %s"

	return &gn.Error{
		Code: errcode.SeedHierarchyError,
		Msg:  msg,
		Vars: []any{code, reason},
		Err:  fmt.Errorf("region %s: %s", code, reason),
	}
}

// NotConnectedError creates an error for seeding without a database
// connection.
func NotConnectedError() error {
	msg := `Cannot seed geography: not connected to the database

<em>How to fix:</em>
  Run <em>regiodb create</em> first to set up the database`

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("seed: not connected"),
	}
}

// UpsertError creates an error for a failed region upsert.
func UpsertError(code string, err error) error {
	msg := "Could not upsert region <em>%s</em> into dim_geography"

	return &gn.Error{
		Code: errcode.SeedUpsertError,
		Msg:  msg,
		Vars: []any{code},
		Err:  fmt.Errorf("upsert region %s: %w", code, err),
	}
}
