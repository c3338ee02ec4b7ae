// Package ioload implements the warehouse loader: surrogate-key
// resolution and idempotent upserts into the fact table. This is an
// impure I/O package.
package ioload

import (
	"context"
	"log/slog"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/db"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/etl"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/jackc/pgx/v5"
)

// upsertSQL writes one fact row on the full composite natural key. The
// backing unique index is declared NULLS NOT DISTINCT, so rows with NULL
// breakdown columns conflict as intended.
const upsertSQL = `
INSERT INTO fact_demographics
	(geo_id, time_id, indicator_id, value,
	 gender, nationality, age_group, migration_background,
	 notes, data_quality_flag, extracted_at, loaded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (geo_id, time_id, indicator_id,
	gender, nationality, age_group, migration_background)
DO UPDATE SET
	value = EXCLUDED.value,
	notes = EXCLUDED.notes,
	data_quality_flag = EXCLUDED.data_quality_flag,
	loaded_at = EXCLUDED.loaded_at`

// loader implements etl.Loader.
type loader struct {
	operator  db.Operator
	batchSize int
}

// New creates a Loader. batchSize bounds how many upserts share one
// network round trip; each row remains an independent statement.
func New(op db.Operator, batchSize int) etl.Loader {
	if batchSize < 1 {
		batchSize = 500
	}
	return &loader{operator: op, batchSize: batchSize}
}

// Load resolves natural keys and upserts every row. Per-row problems are
// counted, logged and skipped; Load fails only on structural errors
// (no connection, dimension queries failing outright).
func (l *loader) Load(
	ctx context.Context,
	table *tables.TableConfig,
	rows []etl.FactRow,
) (etl.LoadStats, error) {
	var stats etl.LoadStats

	pool := l.operator.Pool()
	if pool == nil {
		return stats, NotConnectedError()
	}

	idMap, err := l.ensureIndicators(ctx, table)
	if err != nil {
		return stats, err
	}

	geoIDs, err := l.geographyIDs(ctx)
	if err != nil {
		return stats, err
	}

	timeIDs, err := l.timeIDs(ctx, rows)
	if err != nil {
		return stats, err
	}

	bar := pb.Full.Start(len(rows))
	bar.Set("prefix", "Loading facts: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	unknownRegions := make(map[string]struct{})

	for start := 0; start < len(rows); start += l.batchSize {
		end := min(start+l.batchSize, len(rows))
		chunk := rows[start:end]

		batch := &pgx.Batch{}
		queued := make([]*etl.FactRow, 0, len(chunk))

		for i := range chunk {
			row := &chunk[i]

			geoID, ok := geoIDs[row.RegionCode]
			if !ok {
				// an unrecognized region is a soft failure
				if _, logged := unknownRegions[row.RegionCode]; !logged {
					unknownRegions[row.RegionCode] = struct{}{}
					slog.Warn("Region not in geography dimension, skipping",
						"table", table.ID,
						"region_code", row.RegionCode)
				}
				stats.Skipped++
				continue
			}

			timeID, ok := timeIDs[row.Year]
			if !ok {
				slog.Warn("Year not in time dimension, skipping",
					"table", table.ID, "year", row.Year)
				stats.Skipped++
				continue
			}

			indicatorID := row.IndicatorID
			if mapped, ok := idMap[indicatorID]; ok {
				indicatorID = mapped
			}

			batch.Queue(upsertSQL,
				geoID, timeID, indicatorID, row.Value,
				row.Gender, row.Nationality,
				row.AgeGroup, row.MigrationBackground,
				row.Notes, row.DataQualityFlag,
				row.ExtractedAt, row.LoadedAt,
			)
			queued = append(queued, row)
		}

		results := pool.SendBatch(ctx, batch)
		for _, row := range queued {
			if _, err := results.Exec(); err != nil {
				stats.Failed++
				slog.Debug("Fact upsert failed",
					"table", table.ID,
					"region_code", row.RegionCode,
					"year", row.Year,
					"indicator_id", row.IndicatorID,
					"value", row.Value,
					"error", err,
				)
				continue
			}
			stats.Loaded++
		}
		if err := results.Close(); err != nil {
			return stats, UpsertError(table.ID, err)
		}

		bar.Add(len(chunk))
	}
	bar.Finish()

	slog.Info("Load finished",
		"table", table.ID,
		"loaded", humanize.Comma(int64(stats.Loaded)),
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)

	return stats, nil
}
