// Package iotransform implements the generic wide-to-long transformer.
// The melt, the notes annotation and the indicator assignment are the
// same for every table; vocabularies and mappings come from the registry.
package iotransform

import (
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/etl"
	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
)

// transformer implements etl.Transformer.
type transformer struct{}

// New creates a generic Transformer.
func New() etl.Transformer {
	return &transformer{}
}

// Transform melts one extraction result into long fact rows: one row per
// (region, year, category, metric) with a non-null value.
func (t *transformer) Transform(
	table *tables.TableConfig,
	res *etl.ExtractionResult,
	skipTotals bool,
) ([]etl.FactRow, error) {
	if res == nil {
		return nil, NilResultError(table.ID)
	}

	var yearFilter map[int]struct{}
	if len(res.YearsRequested) > 0 {
		yearFilter = make(map[int]struct{}, len(res.YearsRequested))
		for _, y := range res.YearsRequested {
			yearFilter[y] = struct{}{}
		}
	}

	now := time.Now().UTC()
	unknownLabels := make(map[string]struct{})

	var rows []etl.FactRow
	var droppedYears, droppedTotals int

	for _, rec := range res.Records {
		if yearFilter != nil {
			if _, ok := yearFilter[rec.Year]; !ok {
				droppedYears++
				continue
			}
		}

		var cat tables.CategoryDef
		if table.HasCategory() {
			if skipTotals && table.IsTotalLabel(rec.RawCategory) {
				droppedTotals++
				continue
			}
			cat = resolveCategory(table, rec.RawCategory, unknownLabels)
		}

		for _, m := range table.Metrics {
			value, ok := rec.Metrics[m.Code]
			if !ok {
				// a breakdown/metric combination with no reported
				// value is not stored as a zero
				continue
			}

			row := etl.FactRow{
				RegionCode:      rec.RegionCode,
				Year:            rec.Year,
				IndicatorID:     m.IndicatorID,
				Value:           value,
				DataQualityFlag: etl.QualityValidated,
				ExtractedAt:     now,
				LoadedAt:        now,
			}

			if table.HasCategory() {
				row.Notes = notes(cat.Code, cat.Label)
				row.AgeGroup = nullable(cat.AgeGroup)
			} else {
				row.Notes = notes("metric:"+m.Code, m.Name)
			}

			row.Gender = breakdown(m.Gender, table.BreakdownDefault)
			row.Nationality = breakdown(
				m.Nationality, table.BreakdownDefault)
			if m.AgeGroup != "" {
				row.AgeGroup = nullable(m.AgeGroup)
			}
			// migration background is not reported by any supported
			// table; stays NULL

			rows = append(rows, row)
		}
	}

	if droppedYears > 0 {
		slog.Info("Dropped records outside the requested year subset",
			"table", table.ID, "records", droppedYears)
	}
	if droppedTotals > 0 {
		slog.Info("Excluded aggregate breakdown rows",
			"table", table.ID, "records", droppedTotals)
	}

	return rows, nil
}

// resolveCategory looks the raw label up in the table vocabulary. Unknown
// labels are kept with a sanitized code rather than dropped: losing data
// over a vocabulary gap would be worse than an ugly code, and the warning
// points at the registry entry to extend.
func resolveCategory(
	table *tables.TableConfig,
	raw string,
	seen map[string]struct{},
) tables.CategoryDef {
	if def, ok := table.Categories[raw]; ok {
		return def
	}
	if _, logged := seen[raw]; !logged {
		seen[raw] = struct{}{}
		slog.Warn("Breakdown label missing from table vocabulary",
			"table", table.ID, "label", raw)
	}
	return tables.CategoryDef{
		Code:  "category:" + slug(raw),
		Label: raw,
	}
}

func notes(code, label string) sql.NullString {
	return sql.NullString{
		String: code + "|" + label,
		Valid:  true,
	}
}

// breakdown picks the metric's own value or the table default. An empty
// default means NULL; some tables intentionally use 'total' instead, see
// tables.yaml.
func breakdown(metricValue, tableDefault string) sql.NullString {
	if metricValue != "" {
		return nullable(metricValue)
	}
	return nullable(tableDefault)
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// slug lowercases a raw label and collapses non-alphanumeric runs to
// single underscores.
func slug(s string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
