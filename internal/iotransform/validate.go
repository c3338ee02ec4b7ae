package iotransform

import (
	"log/slog"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/etl"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
)

// Validate checks transformed rows before they reach the warehouse.
// Structural problems (no rows, rows missing key fields) return false and
// abort the pipeline; data-quality oddities (negative values, indicator
// ids outside the table's registration) only log warnings, since they are
// signals for manual review rather than malformed output.
func (t *transformer) Validate(
	table *tables.TableConfig,
	rows []etl.FactRow,
) bool {
	if len(rows) == 0 {
		slog.Error("Validation failed: transformer produced no rows",
			"table", table.ID)
		return false
	}

	expected := make(map[int]struct{}, len(table.Metrics))
	for _, m := range table.Metrics {
		expected[m.IndicatorID] = struct{}{}
	}

	present := make(map[int]struct{})
	var broken, negative, unexpected int

	for i := range rows {
		row := &rows[i]
		if row.RegionCode == "" || row.Year == 0 ||
			row.IndicatorID == 0 {
			broken++
			continue
		}
		present[row.IndicatorID] = struct{}{}
		if row.Value < 0 {
			negative++
		}
		if _, ok := expected[row.IndicatorID]; !ok {
			unexpected++
		}
	}

	if broken > 0 {
		slog.Error("Validation failed: rows with missing key fields",
			"table", table.ID, "rows", broken)
		return false
	}

	if negative > 0 {
		slog.Warn("Rows with negative values (kept, review manually)",
			"table", table.ID, "rows", negative)
	}
	if unexpected > 0 {
		slog.Warn("Rows with indicator ids outside table registration",
			"table", table.ID, "rows", unexpected)
	}
	for id := range expected {
		if _, ok := present[id]; !ok {
			slog.Warn("Expected indicator produced no rows",
				"table", table.ID, "indicator_id", id)
		}
	}

	return true
}
