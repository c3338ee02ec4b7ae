package iocache

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/errcode"
	"github.com/gnames/gn"
)

// OpenError creates an error for a cache database that cannot be opened
// or initialized.
func OpenError(path string, err error) error {
	msg := `Could not open the response cache at <em>%s</em>

<em>How to fix:</em>
  1. Check permissions on the cache directory
  2. Delete the file to rebuild the cache from scratch`

	return &gn.Error{
		Code: errcode.CacheOpenError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cache open %s: %w", path, err),
	}
}

// QueryError creates an error for a failed cache read or write.
func QueryError(tableID string, year int, err error) error {
	msg := "Response cache access failed for table <em>%s</em>, year %d"

	return &gn.Error{
		Code: errcode.CacheQueryError,
		Msg:  msg,
		Vars: []any{tableID, year},
		Err:  fmt.Errorf("cache query %s/%d: %w", tableID, year, err),
	}
}
