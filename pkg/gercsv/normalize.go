// Package gercsv provides pure helpers for the semicolon-delimited CSV
// exports produced by the GENESIS statistics services: locale-aware value
// normalization, data-start detection and line tokenizing.
//
// The exports are not RFC 4180 CSV. Header depth varies per table, numbers
// use German separators, missing values hide behind half a dozen marker
// glyphs, and footers start with underscores. The helpers here absorb all
// of that so extractors only deal with positional fields.
package gercsv

import (
	"strconv"
	"strings"
)

// nullMarkers are the tokens GENESIS uses for "no value": suppressed (x),
// not applicable (-), unknown (.), not yet available (...), no data (/),
// en-dash, and the occasional literal nan from broken exports.
var nullMarkers = map[string]struct{}{
	"-":   {},
	".":   {},
	"...": {},
	"x":   {},
	"/":   {},
	"–":   {},
	"":    {},
	"nan": {},
}

// Value cleans a single raw cell into a numeric value. The second return
// is false for any null marker and for unparseable tokens; the pipeline
// treats both as missing data, never as an error.
//
// German locale rules: interior spaces are thousands separators
// ("1 234,5"), the comma is the decimal separator.
func Value(tok string) (float64, bool) {
	s := strings.TrimSpace(tok)
	s = strings.Trim(s, `"`)

	if _, ok := nullMarkers[strings.ToLower(s)]; ok {
		return 0, false
	}

	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Fields splits a data line on semicolons and trims quotes and
// surrounding space from every field.
func Fields(line string) []string {
	parts := strings.Split(line, ";")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// SplitLines breaks a raw export into lines, dropping footer lines
// (underscore-prefixed copyright and method notes) and blank lines at
// the end of the document.
func SplitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	all := strings.Split(raw, "\n")

	var res []string
	for _, line := range all {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "_") {
			continue
		}
		res = append(res, line)
	}

	// trailing blanks
	for len(res) > 0 && strings.TrimSpace(res[len(res)-1]) == "" {
		res = res[:len(res)-1]
	}
	return res
}
