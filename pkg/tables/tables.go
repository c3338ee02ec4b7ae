// Package tables provides the declarative registry of source tables.
//
// Every supported statistics table is described by one TableConfig entry
// in tables.yaml: which service it comes from, its availability window,
// how to find the data start in its export, where its columns sit, what
// its breakdown vocabulary is, and which warehouse indicator each metric
// column maps to. The extractor and transformer are generic; all per-table
// behavior lives here as data.
package tables

import (
	"sort"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/gercsv"
)

// Source identifies the upstream statistics service a table belongs to.
type Source string

const (
	// SourceRegional is the national Regionaldatenbank
	// (regionalstatistik.de). Accepts year ranges per call.
	SourceRegional Source = "regional"

	// SourceLandes is the Landesdatenbank NRW
	// (landesdatenbank.nrw.de). Accepts only single-year calls.
	SourceLandes Source = "landesdatenbank"
)

// Registry is the parsed tables.yaml.
type Registry struct {
	Tables []TableConfig `yaml:"tables"`
}

// HeaderConfig selects the data-start detection strategy for a table.
type HeaderConfig struct {
	// Strategy is "date" or "unit_marker".
	Strategy gercsv.HeaderStrategy `yaml:"strategy"`

	// Marker is the unit token for the unit_marker strategy,
	// e.g. "Anzahl" or "km".
	Marker string `yaml:"marker,omitempty"`
}

// ColumnMap gives zero-based field positions within a data line.
// Positions differ per table and are part of its registration.
type ColumnMap struct {
	// Date is the position of the leading date or year field.
	Date int `yaml:"date"`

	// RegionCode is the position of the official region key.
	RegionCode int `yaml:"region_code"`

	// RegionName is the position of the region name.
	RegionName int `yaml:"region_name"`

	// Category is the position of the breakdown-category field, or -1
	// for tables without a row breakdown.
	Category int `yaml:"category"`
}

// CategoryDef maps one raw breakdown label from the export to the
// machine-parseable code and display label stored in fact notes.
type CategoryDef struct {
	// Code is the machine-parseable category code,
	// e.g. "care_level:level_3" or "sector:wz08_c".
	Code string `yaml:"code"`

	// Label is the human-readable label,
	// e.g. "Severe impairment (Pflegegrad 3)".
	Label string `yaml:"label"`

	// AgeGroup, when set, stores the category as a proper age_group
	// breakdown on the fact row (age-bracket tables) in addition to the
	// notes annotation.
	AgeGroup string `yaml:"age_group,omitempty"`
}

// Metric describes one metric column of a table and its warehouse
// indicator registration.
type Metric struct {
	// Column is the zero-based field position of the metric value.
	Column int `yaml:"column"`

	// Code is the indicator code, unique across the whole registry,
	// e.g. "population_male".
	Code string `yaml:"code"`

	// IndicatorID is the numeric surrogate id the registry assigns.
	// Registration in the warehouse is get-or-create by Code; the id
	// seeds first insertion and is cross-checked afterwards.
	IndicatorID int `yaml:"indicator_id"`

	// Name is the human-readable indicator name.
	Name string `yaml:"name"`

	// Unit is the unit of measure, e.g. "Anzahl", "EUR", "km".
	Unit string `yaml:"unit"`

	// Gender, Nationality and AgeGroup are demographic breakdown values
	// implied by the metric itself (e.g. a "population_male" column
	// implies gender=male). Empty means: use the table's
	// breakdown_default.
	Gender      string `yaml:"gender,omitempty"`
	Nationality string `yaml:"nationality,omitempty"`
	AgeGroup    string `yaml:"age_group,omitempty"`
}

// TableConfig is the complete declarative description of one source
// table.
type TableConfig struct {
	// ID is the official table code, e.g. "12411-03-03-4".
	ID string `yaml:"id"`

	Source Source `yaml:"source"`

	// Name is the official table title.
	Name string `yaml:"name"`

	// Category is the indicator category all metrics of this table
	// belong to: demographics, employment, health_care, infrastructure,
	// tax.
	Category string `yaml:"category"`

	// UpdateFrequency is annual or biennial.
	UpdateFrequency string `yaml:"update_frequency"`

	// FirstYear and LastYear bound the table's known availability
	// window; requested years are clamped to it.
	FirstYear int `yaml:"first_year"`
	LastYear  int `yaml:"last_year"`

	// YearSet, when present, replaces the range: only these years exist
	// upstream (biennial surveys).
	YearSet []int `yaml:"year_set,omitempty"`

	Header HeaderConfig `yaml:"header"`

	Columns ColumnMap `yaml:"columns"`

	// RegionPrefix filters data rows to the expected national prefix;
	// "05" keeps NRW regions only.
	RegionPrefix string `yaml:"region_prefix"`

	// BreakdownDefault is the value stored in demographic breakdown
	// columns a metric does not set: "total" or "" (NULL). The two
	// conventions coexist across tables on purpose; see tables.yaml.
	BreakdownDefault string `yaml:"breakdown_default"`

	// TotalLabels lists raw category labels that represent aggregates
	// ("Insgesamt"). Excluded when a run requests disaggregated detail
	// only.
	TotalLabels []string `yaml:"total_labels,omitempty"`

	// Categories is the breakdown vocabulary: raw export label to
	// code/label pair. Only for tables with a category column.
	Categories map[string]CategoryDef `yaml:"categories,omitempty"`

	Metrics []Metric `yaml:"metrics"`
}

// HasCategory reports whether the table carries a row breakdown column.
func (t *TableConfig) HasCategory() bool {
	return t.Columns.Category >= 0
}

// AvailableYears returns the table's full availability as an ascending
// year list.
func (t *TableConfig) AvailableYears() []int {
	if len(t.YearSet) > 0 {
		res := make([]int, len(t.YearSet))
		copy(res, t.YearSet)
		sort.Ints(res)
		return res
	}
	var res []int
	for y := t.FirstYear; y <= t.LastYear; y++ {
		res = append(res, y)
	}
	return res
}

// ClampYears intersects the requested years with the availability window
// and returns them ascending. An empty request means the full window.
func (t *TableConfig) ClampYears(requested []int) []int {
	avail := t.AvailableYears()
	if len(requested) == 0 {
		return avail
	}

	availSet := make(map[int]struct{}, len(avail))
	for _, y := range avail {
		availSet[y] = struct{}{}
	}

	seen := make(map[int]struct{})
	var res []int
	for _, y := range requested {
		if _, ok := availSet[y]; !ok {
			continue
		}
		if _, dup := seen[y]; dup {
			continue
		}
		seen[y] = struct{}{}
		res = append(res, y)
	}
	sort.Ints(res)
	return res
}

// MetricByColumn returns the metric registered at a field position.
func (t *TableConfig) MetricByColumn(col int) (Metric, bool) {
	for _, m := range t.Metrics {
		if m.Column == col {
			return m, true
		}
	}
	return Metric{}, false
}

// IsTotalLabel reports whether a raw category label represents an
// aggregate row.
func (t *TableConfig) IsTotalLabel(raw string) bool {
	for _, l := range t.TotalLabels {
		if l == raw {
			return true
		}
	}
	return false
}

// Find returns the table with the given id.
func (r *Registry) Find(id string) (*TableConfig, bool) {
	for i := range r.Tables {
		if r.Tables[i].ID == id {
			return &r.Tables[i], true
		}
	}
	return nil, false
}

// IndicatorIDs returns every indicator id registered across the registry,
// ascending.
func (r *Registry) IndicatorIDs() []int {
	var res []int
	for _, t := range r.Tables {
		for _, m := range t.Metrics {
			res = append(res, m.IndicatorID)
		}
	}
	sort.Ints(res)
	return res
}
