package format

import (
	"testing"
	"time"

	"github.com/pable/go-cricket-coach/internal/aggregator"
)

func TestRatio(t *testing.T) {
	cases := []struct {
		v    float64
		d    int
		want string
	}{
		{88.8888, 2, "88.89"},
		{120, 2, "120.00"},
		{0, 2, "0.00"},
		{1.25, 1, "1.3"},
		{7, 0, "7"},
	}
	for _, c := range cases {
		if got := Ratio(c.v, c.d); got != c.want {
			t.Errorf("Ratio(%v, %d) = %q, want %q", c.v, c.d, got, c.want)
		}
	}
}

func TestOptionalAndGuarded(t *testing.T) {
	if got := Optional(nil, 2); got != Missing {
		t.Errorf("Optional(nil) = %q", got)
	}
	v := 12.5
	if got := Optional(&v, 2); got != "12.50" {
		t.Errorf("Optional(12.5) = %q", got)
	}
	if got := Guarded(0, 0, 2); got != Missing {
		t.Errorf("Guarded with zero denominator = %q", got)
	}
	// A true zero is not missing.
	if got := Guarded(0, 4, 2); got != "0.00" {
		t.Errorf("Guarded(0, 4) = %q", got)
	}
	if got := Percent(88.888, 90); got != "88.89%" {
		t.Errorf("Percent = %q", got)
	}
	if got := Percent(0, 0); got != Missing {
		t.Errorf("Percent with no balls = %q", got)
	}
}

func TestOversAndText(t *testing.T) {
	if got := Overs(7.2); got != "7.2" {
		t.Errorf("Overs(7.2) = %q", got)
	}
	if got := Overs(0); got != "0.0" {
		t.Errorf("Overs(0) = %q", got)
	}
	if Text("") != Missing || Text("x") != "x" {
		t.Error("Text placeholder mismatch")
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)
	if got := Date(d); got != "07/03/2025" {
		t.Errorf("Date = %q", got)
	}
	if got := Date(time.Time{}); got != Missing {
		t.Errorf("zero Date = %q", got)
	}
	if got := DateRange(d, d.AddDate(0, 0, 3)); got != "07/03/2025 – 10/03/2025" {
		t.Errorf("DateRange = %q", got)
	}
}

func TestComparison(t *testing.T) {
	early, recent := 50.0, 62.5
	c := aggregator.Comparison{Early: &early, Recent: &recent, Direction: aggregator.Improving}
	if got := Comparison(c, 2); got != "50.00 → 62.50 (Improving)" {
		t.Errorf("Comparison = %q", got)
	}
	stable := aggregator.Comparison{Recent: &recent, Direction: aggregator.Stable}
	if got := Comparison(stable, 1); got != "— → 62.5 (Stable)" {
		t.Errorf("Comparison = %q", got)
	}
}
