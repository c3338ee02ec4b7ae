// Package ioextract implements the generic table extractor. One
// implementation serves every registered table; per-table differences
// (column positions, header strategy, availability window) come from the
// registry as data.
package ioextract

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/internal/iocache"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/etl"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/gercsv"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/statapi"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
)

// extractor implements etl.Extractor.
type extractor struct {
	clients map[tables.Source]statapi.Client
	cache   *iocache.Cache
	refresh bool
}

// New creates a generic Extractor. cache may be nil (no caching);
// refresh bypasses cache reads but still populates it.
func New(
	clients map[tables.Source]statapi.Client,
	cache *iocache.Cache,
	refresh bool,
) etl.Extractor {
	return &extractor{clients: clients, cache: cache, refresh: refresh}
}

// Extract runs the year-by-year extraction loop. Both services are
// called one year per request: the Landesdatenbank enforces it, and for
// the Regionaldatenbank it keeps cache entries uniform.
func (e *extractor) Extract(
	ctx context.Context,
	table *tables.TableConfig,
	years []int,
) (*etl.ExtractionResult, error) {
	client, ok := e.clients[table.Source]
	if ok && client == nil {
		ok = false
	}
	if !ok {
		return nil, NoClientError(table.ID, string(table.Source))
	}

	explicit := len(years) > 0
	yrs := table.ClampYears(years)
	if len(yrs) == 0 {
		return nil, NoYearsError(table.ID, years)
	}

	res := &etl.ExtractionResult{TableID: table.ID}
	if explicit {
		// side channel for the transformer: some deployments ignore
		// year parameters and return everything they have
		res.YearsRequested = yrs
	}

	slog.Info("Starting extraction",
		"table", table.ID,
		"source", table.Source,
		"years", len(yrs),
	)

	bar := pb.Full.Start(len(yrs))
	bar.Set("prefix", "Extracting years: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	start := time.Now()
	for _, year := range yrs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := e.extractYear(ctx, client, table, year)
		if err != nil {
			// a single year's failure never stops the batch
			slog.Warn("Year extraction failed, skipping",
				"table", table.ID, "year", year, "error", err)
			res.YearsFailed = append(res.YearsFailed, year)
			bar.Increment()
			continue
		}

		res.Records = append(res.Records, records...)
		res.YearsSucceeded = append(res.YearsSucceeded, year)
		bar.Increment()
	}
	bar.Finish()

	if len(res.YearsSucceeded) == 0 {
		return nil, AllYearsFailedError(table.ID, res.YearsFailed)
	}

	slog.Info("Extraction finished",
		"table", table.ID,
		"records", humanize.Comma(int64(len(res.Records))),
		"years_ok", len(res.YearsSucceeded),
		"years_failed", len(res.YearsFailed),
		"duration", time.Since(start).Round(time.Second).String(),
	)

	return res, nil
}

// extractYear fetches and parses one year. Zero parsed rows is a year
// failure: markers were found but no data line survived filtering.
func (e *extractor) extractYear(
	ctx context.Context,
	client statapi.Client,
	table *tables.TableConfig,
	year int,
) ([]etl.WideRecord, error) {
	raw, err := e.fetchYear(ctx, client, table, year)
	if err != nil {
		return nil, err
	}

	records := e.parseExport(table, year, raw)
	if len(records) == 0 {
		return nil, NoDataError(table.ID, year)
	}
	return records, nil
}

func (e *extractor) fetchYear(
	ctx context.Context,
	client statapi.Client,
	table *tables.TableConfig,
	year int,
) (string, error) {
	if e.cache != nil && !e.refresh {
		body, found, err := e.cache.Get(client.Source(), table.ID, year)
		if err != nil {
			slog.Warn("Cache read failed, fetching upstream",
				"table", table.ID, "year", year, "error", err)
		} else if found {
			slog.Debug("Cache hit",
				"table", table.ID, "year", year)
			return body, nil
		}
	}

	body, err := client.FetchTable(ctx, statapi.TableRequest{
		TableID:   table.ID,
		StartYear: year,
		EndYear:   year,
	})
	if err != nil {
		return "", err
	}

	if e.cache != nil {
		if err := e.cache.Put(
			client.Source(), table.ID, year, body,
		); err != nil {
			slog.Warn("Cache write failed",
				"table", table.ID, "year", year, "error", err)
		}
	}
	return body, nil
}

// parseExport turns one raw export into wide records, filtering to the
// configured region prefix and converting metric cells.
func (e *extractor) parseExport(
	table *tables.TableConfig,
	requestedYear int,
	raw string,
) []etl.WideRecord {
	lines := gercsv.SplitLines(raw)

	start, found := gercsv.DataStart(
		lines, table.Header.Strategy, table.Header.Marker)
	if !found {
		slog.Warn("Data-start marker not found, using default offset",
			"table", table.ID,
			"strategy", table.Header.Strategy,
			"offset", gercsv.DefaultDataStart,
		)
	}
	if start >= len(lines) {
		return nil
	}

	minFields := table.Columns.RegionCode + 1
	if table.Columns.RegionName >= minFields {
		minFields = table.Columns.RegionName + 1
	}

	var res []etl.WideRecord
	for _, line := range lines[start:] {
		fields := gercsv.Fields(line)
		if len(fields) < minFields {
			continue
		}

		code := fields[table.Columns.RegionCode]
		if code == "" || !hasPrefix(code, table.RegionPrefix) {
			continue
		}

		rec := etl.WideRecord{
			TableID:    table.ID,
			RegionCode: code,
			RegionName: fields[table.Columns.RegionName],
			Year:       lineYear(fields[table.Columns.Date], requestedYear),
			Metrics:    make(map[string]float64),
		}

		if table.HasCategory() &&
			table.Columns.Category < len(fields) {
			rec.RawCategory = fields[table.Columns.Category]
		}

		for _, m := range table.Metrics {
			if m.Column >= len(fields) {
				continue
			}
			if v, ok := gercsv.Value(fields[m.Column]); ok {
				rec.Metrics[m.Code] = v
			}
		}

		res = append(res, rec)
	}
	return res
}

func hasPrefix(code, prefix string) bool {
	// the country row "DG" never matches a numeric prefix, which is
	// intended: national aggregates are not loaded from exports
	return len(code) >= len(prefix) && code[:len(prefix)] == prefix
}

// lineYear reads the reference year from the leading field: a date
// (either format) or a bare year. Unparseable fields fall back to the
// requested year.
func lineYear(field string, requested int) int {
	if gercsv.IsDateField(field) {
		// ISO dates start with the year, German dates end with it
		if field[4] == '-' {
			if y, err := strconv.Atoi(field[:4]); err == nil {
				return y
			}
		}
		if y, err := strconv.Atoi(field[len(field)-4:]); err == nil {
			return y
		}
	}
	if len(field) == 4 {
		if y, err := strconv.Atoi(field); err == nil {
			return y
		}
	}
	return requested
}
