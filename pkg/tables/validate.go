package tables

import (
	"fmt"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/gercsv"
)

// Validate checks registry-wide invariants. Duplicate indicator ids are
// rejected outright: two tables claiming the same id is exactly the
// collision defect that once corrupted the warehouse, and the registry is
// the single place it can be caught before any load.
func (r *Registry) Validate() error {
	if len(r.Tables) == 0 {
		return fmt.Errorf("registry has no tables")
	}

	tableIDs := make(map[string]struct{})
	indicatorIDs := make(map[int]string)
	indicatorCodes := make(map[string]string)

	for i := range r.Tables {
		t := &r.Tables[i]
		if t.ID == "" {
			return fmt.Errorf("table at index %d has no id", i)
		}
		if _, dup := tableIDs[t.ID]; dup {
			return fmt.Errorf("duplicate table id %q", t.ID)
		}
		tableIDs[t.ID] = struct{}{}

		if err := t.validate(); err != nil {
			return fmt.Errorf("table %s: %w", t.ID, err)
		}

		for _, m := range t.Metrics {
			if prev, dup := indicatorIDs[m.IndicatorID]; dup {
				return fmt.Errorf(
					"indicator id %d claimed by both %s and %s",
					m.IndicatorID, prev, t.ID)
			}
			indicatorIDs[m.IndicatorID] = t.ID

			if prev, dup := indicatorCodes[m.Code]; dup {
				return fmt.Errorf(
					"indicator code %q claimed by both %s and %s",
					m.Code, prev, t.ID)
			}
			indicatorCodes[m.Code] = t.ID
		}
	}
	return nil
}

func (t *TableConfig) validate() error {
	switch t.Source {
	case SourceRegional, SourceLandes:
	default:
		return fmt.Errorf("unknown source %q", t.Source)
	}

	switch t.Header.Strategy {
	case gercsv.StrategyDate:
	case gercsv.StrategyUnitMarker:
		if t.Header.Marker == "" {
			return fmt.Errorf("unit_marker strategy requires a marker")
		}
	default:
		return fmt.Errorf("unknown header strategy %q", t.Header.Strategy)
	}

	if len(t.YearSet) == 0 &&
		(t.FirstYear == 0 || t.LastYear == 0 || t.FirstYear > t.LastYear) {
		return fmt.Errorf(
			"invalid year window %d-%d", t.FirstYear, t.LastYear)
	}

	if t.RegionPrefix == "" {
		return fmt.Errorf("region_prefix is required")
	}

	switch t.BreakdownDefault {
	case "", "total":
	default:
		return fmt.Errorf(
			"breakdown_default must be 'total' or empty, got %q",
			t.BreakdownDefault)
	}

	if len(t.Metrics) == 0 {
		return fmt.Errorf("table has no metrics")
	}

	cols := make(map[int]struct{})
	for _, m := range t.Metrics {
		if m.Code == "" || m.IndicatorID <= 0 {
			return fmt.Errorf(
				"metric at column %d needs code and positive indicator_id",
				m.Column)
		}
		if m.Column <= t.Columns.RegionCode {
			return fmt.Errorf(
				"metric column %d overlaps key columns", m.Column)
		}
		if _, dup := cols[m.Column]; dup {
			return fmt.Errorf("duplicate metric column %d", m.Column)
		}
		cols[m.Column] = struct{}{}
	}

	if t.HasCategory() && len(t.Categories) == 0 {
		return fmt.Errorf(
			"category column %d declared but vocabulary is empty",
			t.Columns.Category)
	}

	return nil
}
