package ioload

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/etl"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
	"github.com/jackc/pgx/v5"
)

// ensureIndicators registers the table's indicators get-or-create by
// code. Indicator registration is never "next free integer": the unique
// constraint on indicator_code makes repeated registration idempotent,
// which is the defense against the historical id collision.
//
// The returned map translates configured ids to warehouse ids; it only
// has entries where the two diverge.
func (l *loader) ensureIndicators(
	ctx context.Context,
	table *tables.TableConfig,
) (map[int]int, error) {
	pool := l.operator.Pool()
	idMap := make(map[int]int)

	for _, m := range table.Metrics {
		var dbID int
		err := pool.QueryRow(ctx,
			`SELECT indicator_id FROM dim_indicator
			 WHERE indicator_code = $1`,
			m.Code).Scan(&dbID)

		if errors.Is(err, pgx.ErrNoRows) {
			_, err = pool.Exec(ctx,
				`INSERT INTO dim_indicator
					(indicator_id, indicator_code, indicator_name,
					 indicator_category, source_table_id,
					 unit_of_measure, update_frequency)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)
				 ON CONFLICT (indicator_code) DO NOTHING`,
				m.IndicatorID, m.Code, m.Name,
				table.Category, table.ID,
				m.Unit, table.UpdateFrequency,
			)
			if err != nil {
				return nil, DimensionError("dim_indicator", err)
			}
			// re-read in case a concurrent run inserted first
			err = pool.QueryRow(ctx,
				`SELECT indicator_id FROM dim_indicator
				 WHERE indicator_code = $1`,
				m.Code).Scan(&dbID)
		}
		if err != nil {
			return nil, DimensionError("dim_indicator", err)
		}

		if dbID != m.IndicatorID {
			// never silently trust the registry over the warehouse:
			// facts join on the warehouse id
			slog.Warn("Registry indicator id diverges from warehouse",
				"indicator_code", m.Code,
				"registry_id", m.IndicatorID,
				"warehouse_id", dbID,
			)
			idMap[m.IndicatorID] = dbID
		}
	}
	return idMap, nil
}

// geographyIDs preloads the region_code to geo_id map for active regions.
func (l *loader) geographyIDs(
	ctx context.Context,
) (map[string]int, error) {
	pool := l.operator.Pool()

	rows, err := pool.Query(ctx,
		`SELECT region_code, geo_id FROM dim_geography
		 WHERE is_active`)
	if err != nil {
		return nil, DimensionError("dim_geography", err)
	}
	defer rows.Close()

	res := make(map[string]int)
	for rows.Next() {
		var code string
		var id int
		if err := rows.Scan(&code, &id); err != nil {
			return nil, DimensionError("dim_geography", err)
		}
		res[code] = id
	}
	if err := rows.Err(); err != nil {
		return nil, DimensionError("dim_geography", err)
	}
	return res, nil
}

// timeIDs resolves (and creates on demand) the annual time rows for every
// distinct year in the batch. The partial unique index on (year) WHERE
// month IS NULL guarantees one annual row per year.
func (l *loader) timeIDs(
	ctx context.Context,
	batch []etl.FactRow,
) (map[int]int, error) {
	pool := l.operator.Pool()

	years := make(map[int]struct{})
	for i := range batch {
		years[batch[i].Year] = struct{}{}
	}

	res := make(map[int]int, len(years))
	for year := range years {
		var id int
		err := pool.QueryRow(ctx,
			`SELECT time_id FROM dim_time
			 WHERE year = $1 AND month IS NULL AND quarter IS NULL`,
			year).Scan(&id)

		if errors.Is(err, pgx.ErrNoRows) {
			err = pool.QueryRow(ctx,
				`INSERT INTO dim_time (year)
				 VALUES ($1)
				 RETURNING time_id`,
				year).Scan(&id)
			if err == nil {
				slog.Debug("Created annual time row", "year", year)
			}
		}
		if err != nil {
			return nil, DimensionError("dim_time", err)
		}
		res[year] = id
	}
	return res, nil
}
