package iotransform

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/gnames/gn"
)

// NilResultError creates an error for a transform invoked without an
// extraction result.
func NilResultError(tableID string) error {
	msg := "Transform for table <em>%s</em> received no extraction result"

	return &gn.Error{
		Code: errcode.TransformValidationError,
		Msg:  msg,
		Vars: []any{tableID},
		Err:  fmt.Errorf("nil extraction result for %s", tableID),
	}
}
