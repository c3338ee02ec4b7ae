package gercsv_test

import (
	"testing"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/gercsv"
	"github.com/stretchr/testify/assert"
)

func TestIsDateField(t *testing.T) {
	tests := []struct {
		msg  string
		in   string
		want bool
	}{
		{"iso date", "2024-12-31", true},
		{"german date", "31.12.2024", true},
		{"quoted iso date", `"2024-12-31"`, true},
		{"bare year", "2024", false},
		{"region code", "05112", false},
		{"word", "Insgesamt", false},
		{"empty", "", false},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, gercsv.IsDateField(v.in), v.msg)
	}
}

func TestDataStartDate(t *testing.T) {
	lines := []string{
		"GENESIS-Tabelle: 12411-03-03-4",
		"Bevölkerungsstand",
		"Stichtag;Regionalschlüssel;Region;Insgesamt;männlich;weiblich",
		"2024-12-31;05112;Duisburg;498590;244433;254157",
		"2024-12-31;05113;Essen;584580;285372;299208",
	}

	start, ok := gercsv.DataStart(lines, gercsv.StrategyDate, "")
	assert.True(t, ok)
	assert.Equal(t, 3, start)
}

func TestDataStartUnitMarker(t *testing.T) {
	lines := []string{
		"GENESIS-Tabelle: 13111-07-02-4",
		"Beschäftigte am Arbeitsort",
		"Jahr;Schlüssel;Region;Wirtschaftszweig;insgesamt;männlich;weiblich",
		";;;;Anzahl;Anzahl;Anzahl",
		"2024;05112;Duisburg;Produzierendes Gewerbe;41 374;31 209;10 165",
	}

	start, ok := gercsv.DataStart(lines, gercsv.StrategyUnitMarker, "Anzahl")
	assert.True(t, ok)
	assert.Equal(t, 4, start)
}

func TestDataStartFallback(t *testing.T) {
	// no date field, no unit line: fall back to the fixed offset
	lines := []string{
		"kopfzeile",
		"noch;eine;kopfzeile",
	}

	start, ok := gercsv.DataStart(lines, gercsv.StrategyDate, "")
	assert.False(t, ok)
	assert.Equal(t, gercsv.DefaultDataStart, start)

	start, ok = gercsv.DataStart(lines, gercsv.StrategyUnitMarker, "Anzahl")
	assert.False(t, ok)
	assert.Equal(t, gercsv.DefaultDataStart, start)
}

func TestDataStartMarkerMixedUnits(t *testing.T) {
	// a line mixing marker and non-marker fields is not a unit line
	lines := []string{
		"Jahr;Region;Länge;Anteil",
		";;km;Prozent",
		"2021;05112;218,4;1,2",
	}

	start, ok := gercsv.DataStart(lines, gercsv.StrategyUnitMarker, "km")
	assert.False(t, ok)
	assert.Equal(t, gercsv.DefaultDataStart, start)
}
