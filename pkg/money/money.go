// Package money provides rounding, parsing and formatting helpers for
// currency amounts handled by the cart engine. Amounts are plain float64
// values rounded to two decimals; every value surfaced to a caller must
// pass through Round first.
package money

import (
	"math"
	"strconv"
	"strings"
)

// epsilon counters binary representation error so that values sitting on a
// half boundary (2.005) round up instead of down.
const epsilon = 1e-9

// Currency is the display currency for formatted amounts.
const Currency = "RON"

// RoundTo rounds v half-up to the given number of decimal digits.
func RoundTo(v float64, precision int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	factor := math.Pow(10, float64(precision))
	nudge := math.Copysign(epsilon, v)
	return math.Round((v+nudge)*factor) / factor
}

// Round rounds v to two decimal digits, the canonical currency precision.
func Round(v float64) float64 {
	return RoundTo(v, 2)
}

// ParseNumeric converts operator-entered numeric text to a float64.
// Comma decimal separators are normalized to dots. Empty or non-numeric
// input yields 0, never an error: blocking input at the register is worse
// than defaulting it.
func ParseNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Format renders v in the shop convention, e.g. "12,34 RON".
// Non-finite input is coerced to 0 before formatting.
func Format(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	s := strconv.FormatFloat(Round(v), 'f', 2, 64)
	s = strings.ReplaceAll(s, ".", ",")
	return s + " " + Currency
}
