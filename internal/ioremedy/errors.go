package ioremedy

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for remediation without a database
// connection.
func NotConnectedError() error {
	msg := `Cannot remediate: not connected to the database

<em>How to fix:</em>
  Run <em>regiodb create</em> first to set up the database`

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("remedy: not connected"),
	}
}

// TransactionError creates an error for a failed remediation
// transaction. Nothing was changed: every fix runs in one transaction.
func TransactionError(err error) error {
	msg := `Remediation transaction failed; the warehouse is unchanged`

	return &gn.Error{
		Code: errcode.RemedyTransactionError,
		Msg:  msg,
		Err:  fmt.Errorf("remedy transaction: %w", err),
	}
}

// LookupError creates an error for a failed indicator lookup or count.
func LookupError(indicatorID int, err error) error {
	msg := "Could not inspect indicator <em>%d</em>"

	return &gn.Error{
		Code: errcode.RemedyLookupError,
		Msg:  msg,
		Vars: []any{indicatorID},
		Err:  fmt.Errorf("remedy lookup indicator %d: %w", indicatorID, err),
	}
}

// RemapError creates an error for a failed fact remap.
func RemapError(fromID, toID int, err error) error {
	msg := "Could not move facts from indicator <em>%d</em> to <em>%d</em>"

	return &gn.Error{
		Code: errcode.RemedyRemapError,
		Msg:  msg,
		Vars: []any{fromID, toID},
		Err:  fmt.Errorf("remedy remap %d->%d: %w", fromID, toID, err),
	}
}
