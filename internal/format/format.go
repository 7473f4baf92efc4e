// Package format renders derived numbers for every consumer (tables, JSON
// views, exported reports) with one rounding rule and one placeholder.
package format

import (
	"strconv"
	"time"

	"github.com/pable/go-cricket-coach/internal/aggregator"
)

// Missing is shown in place of a ratio whose denominator was zero.
const Missing = "—"

// Ratio renders v with a fixed number of decimals, rounding half up.
func Ratio(v float64, decimals int) string {
	return strconv.FormatFloat(aggregator.RoundHalfUp(v, decimals), 'f', decimals, 64)
}

// Optional renders v, or Missing when v is nil.
func Optional(v *float64, decimals int) string {
	if v == nil {
		return Missing
	}
	return Ratio(*v, decimals)
}

// Guarded renders v, or Missing when denominator is zero.
func Guarded(v float64, denominator int, decimals int) string {
	if denominator == 0 {
		return Missing
	}
	return Ratio(v, decimals)
}

// Percent renders a strike-rate style value with a trailing percent sign.
func Percent(v float64, denominator int) string {
	if denominator == 0 {
		return Missing
	}
	return Ratio(v, 2) + "%"
}

// Overs renders an overs-notation value with one decimal.
func Overs(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Text returns s, or Missing when s is empty.
func Text(s string) string {
	if s == "" {
		return Missing
	}
	return s
}

// Date renders a day as dd/mm/yyyy, or Missing for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return Missing
	}
	return t.Format("02/01/2006")
}

// DateRange renders "from – to".
func DateRange(from, to time.Time) string {
	return Date(from) + " – " + Date(to)
}

// Comparison renders an early → recent pair followed by its direction.
func Comparison(c aggregator.Comparison, decimals int) string {
	return Optional(c.Early, decimals) + " → " + Optional(c.Recent, decimals) + " (" + string(c.Direction) + ")"
}
