package ioextract

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/gnames/gn"
)

// NoClientError creates an error for a table whose source service has no
// configured client.
func NoClientError(tableID, source string) error {
	msg := `No client configured for source <em>%s</em> (table %s)

<em>How to fix:</em>
  Add credentials for this service to <em>~/.config/regiodb/config.yaml</em>`

	return &gn.Error{
		Code: errcode.APIRequestError,
		Msg:  msg,
		Vars: []any{source, tableID},
		Err:  fmt.Errorf("no client for source %s", source),
	}
}

// NoYearsError creates an error for a request that clamps to an empty
// year list.
func NoYearsError(tableID string, requested []int) error {
	msg := `No requested year is available for table <em>%s</em>

<em>Requested:</em> %v

Run <em>regiodb tables --table %s --info</em> to see the availability window.`

	return &gn.Error{
		Code: errcode.ExtractNoDataError,
		Msg:  msg,
		Vars: []any{tableID, requested, tableID},
		Err: fmt.Errorf(
			"no overlap between %v and availability of %s",
			requested, tableID),
	}
}

// NoDataError creates a per-year error for an export that yielded zero
// data rows.
func NoDataError(tableID string, year int) error {
	msg := "Export for table <em>%s</em>, year %d contained no data rows"

	return &gn.Error{
		Code: errcode.ExtractNoDataError,
		Msg:  msg,
		Vars: []any{tableID, year},
		Err:  fmt.Errorf("zero data rows for %s/%d", tableID, year),
	}
}

// AllYearsFailedError creates the structural failure error: not a single
// requested year produced data.
func AllYearsFailedError(tableID string, failed []int) error {
	msg := `Extraction failed for every requested year of table <em>%s</em>

<em>Failed years:</em> %v

<em>Possible causes:</em>
  • Wrong credentials for the table's service
  • The table code changed upstream
  • The service is down`

	return &gn.Error{
		Code: errcode.ExtractAllYearsFailedError,
		Msg:  msg,
		Vars: []any{tableID, failed},
		Err:  fmt.Errorf("all %d years failed for %s", len(failed), tableID),
	}
}
