package gercsv

import (
	"regexp"
	"strings"
)

// HeaderStrategy selects how the data-start row is located in a raw
// export. Each table registers exactly one strategy.
type HeaderStrategy string

const (
	// StrategyDate finds the first line whose leading field is an ISO or
	// German date. Used by population-style tables where every data line
	// starts with a reference date.
	StrategyDate HeaderStrategy = "date"

	// StrategyUnitMarker finds the line carrying a unit label (e.g.
	// "Anzahl") in its trailing fields and returns the next line. Used by
	// tables whose data lines start with a plain region code or year.
	StrategyUnitMarker HeaderStrategy = "unit_marker"
)

// DefaultDataStart is the conservative fallback offset used when no
// marker is found. Eight metadata lines is the deepest header observed
// across the supported tables.
const DefaultDataStart = 8

var (
	isoDateRx    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	germanDateRx = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
)

// IsDateField reports whether a field is an ISO (YYYY-MM-DD) or German
// (DD.MM.YYYY) calendar date.
func IsDateField(s string) bool {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
	return isoDateRx.MatchString(s) || germanDateRx.MatchString(s)
}

// DataStart returns the zero-based index of the first data line.
// The second return is false when no marker matched and the fallback
// offset was used; callers log a warning in that case but continue,
// since zero parsed rows downstream is the actual failure signal.
func DataStart(
	lines []string, strategy HeaderStrategy, marker string,
) (int, bool) {
	switch strategy {
	case StrategyDate:
		for i, line := range lines {
			if !strings.Contains(line, ";") {
				continue
			}
			first := Fields(line)[0]
			if IsDateField(first) {
				return i, true
			}
		}
	case StrategyUnitMarker:
		for i, line := range lines {
			if !strings.Contains(line, ";") {
				continue
			}
			if hasTrailingMarker(line, marker) {
				return i + 1, true
			}
		}
	}
	return DefaultDataStart, false
}

// hasTrailingMarker reports whether every non-empty trailing field of the
// line equals the marker token. Unit lines look like ";;;Anzahl;Anzahl;
// Anzahl" - leading fields empty, the metric columns all labeled with the
// same unit word.
func hasTrailingMarker(line, marker string) bool {
	if marker == "" {
		return false
	}
	fields := Fields(line)

	var seen int
	for _, f := range fields {
		if f == "" {
			continue
		}
		if !strings.EqualFold(f, marker) {
			return false
		}
		seen++
	}
	return seen > 0
}
