package ingest

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat reads a spreadsheet number. Spaces, non-breaking spaces and
// the euro sign are ignored; a comma is read as the decimal separator
// unless a dot follows it. Empty, unparseable and non-finite values return
// def and true.
func ParseFloat(s string, def float64) (float64, bool) {
	cleaned := cleanNumber(s)
	if cleaned == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def, true
	}
	return v, false
}

// ParseInt is ParseFloat rounded to the nearest integer.
func ParseInt(s string, def int) (int, bool) {
	v, defaulted := ParseFloat(s, 0)
	if defaulted || math.Abs(v) > math.MaxInt32 {
		return def, true
	}
	return int(math.Round(v)), false
}

func cleanNumber(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t', '€', '\'':
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSuffix(strings.TrimSuffix(b.String(), "EUR"), "eur")

	comma := strings.LastIndexByte(out, ',')
	dot := strings.LastIndexByte(out, '.')
	switch {
	case comma >= 0 && dot > comma:
		// 1,234.56
		out = strings.ReplaceAll(out, ",", "")
	case comma >= 0 && dot >= 0:
		// 1.234,56
		out = strings.ReplaceAll(out, ".", "")
		out = strings.Replace(out, ",", ".", 1)
	case comma >= 0:
		out = strings.Replace(out, ",", ".", 1)
	}
	return out
}
