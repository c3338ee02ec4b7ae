// Package etl defines the core contracts and value objects of the
// extract-transform-load pipeline: wide extractor records, long fact
// rows and the per-stage interfaces implemented in internal/io packages.
package etl

import (
	"context"
	"database/sql"
	"time"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/tables"
)

// WideRecord is one raw row of extractor output: a region, a year, an
// optional breakdown category and the non-null metric values keyed by
// metric code. Null and unparseable cells never enter Metrics.
type WideRecord struct {
	TableID    string
	RegionCode string
	RegionName string
	Year       int

	// RawCategory is the breakdown label exactly as exported, empty for
	// tables without a category column.
	RawCategory string

	Metrics map[string]float64
}

// ExtractionResult carries all years of one extraction run plus the year
// bookkeeping the transformer needs. A nil ExtractionResult signals a
// structural extraction failure (zero years succeeded).
type ExtractionResult struct {
	TableID string
	Records []WideRecord

	// YearsRequested is the explicit year subset the caller asked for.
	// The transformer re-applies it as a filter because some sources
	// ignore year parameters and return everything they have.
	YearsRequested []int

	YearsSucceeded []int
	YearsFailed    []int
}

// Data quality flags stored on fact rows.
const (
	QualityValidated   = "V"
	QualityEstimated   = "E"
	QualityProvisional = "P"
)

// FactRow is one long-format measurement ready for the warehouse.
type FactRow struct {
	RegionCode  string
	Year        int
	IndicatorID int
	Value       float64

	Gender              sql.NullString
	Nationality         sql.NullString
	AgeGroup            sql.NullString
	MigrationBackground sql.NullString

	// Notes carries the secondary breakdown as "<code>|<label>".
	Notes sql.NullString

	DataQualityFlag string

	ExtractedAt time.Time
	LoadedAt    time.Time
}

// LoadStats counts per-row outcomes of one load. Per-row failures are
// logged and counted, never fatal to the batch.
type LoadStats struct {
	Loaded  int
	Skipped int
	Failed  int
}

// Add accumulates another stats value.
func (s *LoadStats) Add(other LoadStats) {
	s.Loaded += other.Loaded
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Extractor produces one wide-format record set per requested year list
// from one source table.
type Extractor interface {
	// Extract runs the year-by-year extraction. years may be empty (full
	// availability window). A single year's failure is logged and
	// skipped; Extract returns an error only when every year failed.
	Extract(
		ctx context.Context,
		table *tables.TableConfig,
		years []int,
	) (*ExtractionResult, error)
}

// Transformer reshapes a wide extraction result into long fact rows.
type Transformer interface {
	// Transform melts metric columns into one FactRow per non-null
	// metric, assigns indicator ids and builds notes annotations.
	// skipTotals excludes aggregate breakdown rows.
	Transform(
		table *tables.TableConfig,
		res *ExtractionResult,
		skipTotals bool,
	) ([]FactRow, error)

	// Validate checks transformed rows for structural problems. It
	// returns false (with specifics logged) instead of raising; data
	// quality oddities are logged as warnings and do not fail
	// validation.
	Validate(table *tables.TableConfig, rows []FactRow) bool
}

// Loader persists fact rows idempotently.
type Loader interface {
	// Load resolves natural keys to surrogate keys and upserts every row
	// on the full composite natural key. Rows with unresolvable regions
	// are skipped with a warning.
	Load(
		ctx context.Context,
		table *tables.TableConfig,
		rows []FactRow,
	) (LoadStats, error)
}

// RunSummary is the result of one full pipeline run.
type RunSummary struct {
	RunID   string
	TableID string

	YearsRequested []int
	YearsSucceeded []int
	YearsFailed    []int

	RecordsExtracted int
	RowsTransformed  int

	Stats LoadStats

	Duration time.Duration
}

// Pipeline orchestrates extract, transform, validate and load for one
// table.
type Pipeline interface {
	Run(ctx context.Context, tableID string, years []int) (*RunSummary, error)
}
