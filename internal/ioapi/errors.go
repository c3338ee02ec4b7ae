package ioapi

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/statapi"
	"github.com/gnames/gn"
)

// YearWindowError creates an error for a multi-year request against a
// single-year service.
func YearWindowError(source string, req statapi.TableRequest) error {
	msg := `Service <em>%s</em> accepts only single-year requests

<em>Requested:</em> %d-%d for table %s`

	return &gn.Error{
		Code: errcode.APIYearWindowError,
		Msg:  msg,
		Vars: []any{source, req.StartYear, req.EndYear, req.TableID},
		Err: fmt.Errorf(
			"%s: multi-year window %d-%d not supported",
			source, req.StartYear, req.EndYear),
	}
}

// RequestError creates an error for a failed HTTP exchange.
func RequestError(source, tableID string, err error) error {
	msg := `Request to <em>%s</em> failed for table <em>%s</em>

<em>Possible causes:</em>
  • Network connectivity issues
  • The service is down for maintenance (common on weekends)`

	return &gn.Error{
		Code: errcode.APIRequestError,
		Msg:  msg,
		Vars: []any{source, tableID},
		Err:  fmt.Errorf("%s request for %s: %w", source, tableID, err),
	}
}

// StatusError creates an error for a rejected request.
func StatusError(source, tableID string, err error) error {
	msg := `Service <em>%s</em> rejected the request for table <em>%s</em>

<em>How to fix:</em>
  1. Verify the credentials in <em>~/.config/regiodb/config.yaml</em>
  2. Check that the table code exists in this service
  3. Large exports may need a smaller year window`

	return &gn.Error{
		Code: errcode.APIStatusError,
		Msg:  msg,
		Vars: []any{source, tableID},
		Err:  fmt.Errorf("%s rejected %s: %w", source, tableID, err),
	}
}

// DecodeError creates an error for an unreadable response payload.
func DecodeError(source, tableID string, err error) error {
	msg := "Could not decode the response from <em>%s</em> for table <em>%s</em>"

	return &gn.Error{
		Code: errcode.APIDecodeError,
		Msg:  msg,
		Vars: []any{source, tableID},
		Err:  fmt.Errorf("%s decode for %s: %w", source, tableID, err),
	}
}
