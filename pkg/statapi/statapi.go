// Package statapi defines the contract to the upstream GENESIS
// statistics services. Only the documented exchange is in scope: a table
// export request goes out, raw semicolon-delimited text comes back.
package statapi

import (
	"context"
)

// TableRequest asks one service for one table export. The Landesdatenbank
// accepts only single-year windows; its client rejects requests where
// StartYear != EndYear.
type TableRequest struct {
	// TableID is the official table code, e.g. "12411-03-03-4".
	TableID string

	// StartYear and EndYear bound the request inclusively.
	StartYear int
	EndYear   int
}

// Client fetches raw table exports from one statistics service.
// Implementations handle authentication, envelope decoding and character
// set normalization; callers receive UTF-8 delimited text.
type Client interface {
	// FetchTable returns the raw datencsv payload for one request.
	FetchTable(ctx context.Context, req TableRequest) (string, error)

	// Source names the service for logs and cache keys.
	Source() string
}
