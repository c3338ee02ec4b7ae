package ioverify

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for verification without a
// database connection.
func NotConnectedError() error {
	msg := `Cannot verify: not connected to the database

<em>How to fix:</em>
  Run <em>regiodb create</em> first to set up the database`

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("verify: not connected"),
	}
}

// QueryError creates an error for a failed verification query.
func QueryError(check string, err error) error {
	msg := "Verification check <em>%s</em> could not run"

	return &gn.Error{
		Code: errcode.VerifyQueryError,
		Msg:  msg,
		Vars: []any{check},
		Err:  fmt.Errorf("verify %s: %w", check, err),
	}
}
