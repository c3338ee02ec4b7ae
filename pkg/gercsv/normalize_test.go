package gercsv_test

import (
	"testing"

	"github.com/Kanyuchi/Regional-Economics-Database-NRW-sub001/pkg/gercsv"
	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	tests := []struct {
		msg  string
		tok  string
		want float64
		ok   bool
	}{
		{"integer", "17947", 17947, true},
		{"decimal comma", "5,1", 5.1, true},
		{"thousands space", "1 234,5", 1234.5, true},
		{"million with spaces", "17 947 221", 17947221, true},
		{"quoted value", `"498590"`, 498590, true},
		{"padded value", " 42 ", 42, true},
		{"negative", "-3,2", -3.2, true},
		{"zero", "0", 0, true},
		{"suppressed", "x", 0, false},
		{"suppressed upper", "X", 0, false},
		{"not applicable", "-", 0, false},
		{"unknown", ".", 0, false},
		{"not yet available", "...", 0, false},
		{"no data", "/", 0, false},
		{"en dash", "–", 0, false},
		{"empty", "", 0, false},
		{"literal nan", "nan", 0, false},
		{"garbage", "abc", 0, false},
		{"two decimal points", "1.2.3", 0, false},
	}

	for _, v := range tests {
		got, ok := gercsv.Value(v.tok)
		assert.Equal(t, v.ok, ok, v.msg)
		if v.ok {
			assert.InDelta(t, v.want, got, 0.0001, v.msg)
		}
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		msg  string
		line string
		want []string
	}{
		{
			"plain",
			"2024-12-31;05112;Duisburg",
			[]string{"2024-12-31", "05112", "Duisburg"},
		},
		{
			"quoted and padded",
			`"2024-12-31"; 05112 ;"Duisburg, Stadt"`,
			[]string{"2024-12-31", "05112", "Duisburg, Stadt"},
		},
		{
			"empty fields survive",
			";;Anzahl;",
			[]string{"", "", "Anzahl", ""},
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, gercsv.Fields(v.line), v.msg)
	}
}

func TestSplitLines(t *testing.T) {
	raw := "kopf;zeile\r\n2024-12-31;05112;498590\n" +
		"_Quelle: Landesdatenbank NRW\n" +
		"2023-12-31;05112;497648\n\n\n"

	lines := gercsv.SplitLines(raw)

	assert.Len(t, lines, 3)
	assert.Equal(t, "kopf;zeile", lines[0])
	assert.Equal(t, "2024-12-31;05112;498590", lines[1])
	assert.Equal(t, "2023-12-31;05112;497648", lines[2])
}

func TestSplitLinesAllFooters(t *testing.T) {
	raw := "_Hinweis 1\n__Hinweis 2\n"
	assert.Empty(t, gercsv.SplitLines(raw))
}
