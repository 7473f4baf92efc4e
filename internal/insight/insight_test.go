package insight

import (
	"testing"

	"github.com/pable/go-cricket-coach/internal/aggregator"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name string
		in   Signals
		want string
	}{
		{"economy first", Signals{LastEconomy: 6.0, PrevEconomy: 7.0}, EconomyImproving},
		{"economy beats strong ratings", Signals{LastEconomy: 6.0, PrevEconomy: 7.0, LastRating: 5, PrevRating: 3}, EconomyImproving},
		{"economy worse falls through", Signals{LastEconomy: 8.0, PrevEconomy: 7.0, LastRating: 4.5, PrevRating: 4}, RatingsStrong},
		{"economy unknown", Signals{LastEconomy: 0, PrevEconomy: 0, LastRating: 2, PrevRating: 3}, RatingsLow},
		{"previous economy unknown", Signals{LastEconomy: 5, PrevEconomy: 0}, Fallback},
		{"strong but flat", Signals{LastRating: 4, PrevRating: 4}, Fallback},
		{"strong from nothing", Signals{LastRating: 4}, RatingsStrong},
		{"middling", Signals{LastRating: 3, PrevRating: 2}, Fallback},
		{"nothing", Signals{}, Fallback},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Derive(c.in); got != c.want {
				t.Errorf("Derive(%+v) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestDerive_Deterministic(t *testing.T) {
	s := Signals{LastEconomy: 6, PrevEconomy: 6.5, LastRating: 2}
	first := Derive(s)
	for i := 0; i < 10; i++ {
		if got := Derive(s); got != first {
			t.Fatalf("run %d: %q != %q", i, got, first)
		}
	}
}

func TestEvaluate_CustomTable(t *testing.T) {
	rules := []Rule{
		{Name: "never", Applies: func(Signals) bool { return false }, Message: "no"},
		{Name: "always", Applies: func(Signals) bool { return true }, Message: "yes"},
	}
	if got := Evaluate(rules, Signals{}, "fallback"); got != "yes" {
		t.Errorf("got %q", got)
	}
	if got := Evaluate(nil, Signals{}, "fallback"); got != "fallback" {
		t.Errorf("got %q", got)
	}
}

func TestSignalsFrom(t *testing.T) {
	perf := []aggregator.TrendPoint{
		{Date: "2025-01-01", Metrics: aggregator.Metrics{Economy: 8}},
		{Date: "2025-01-02", Metrics: aggregator.Metrics{Economy: 7}},
		{Date: "2025-01-03", Metrics: aggregator.Metrics{Economy: 6}},
	}
	ratings := []aggregator.RatingPoint{{Date: "2025-01-03", AvgRating: 4.5}}

	s := SignalsFrom(perf, ratings)
	want := Signals{LastEconomy: 6, PrevEconomy: 7, LastRating: 4.5}
	if s != want {
		t.Errorf("SignalsFrom: got %+v, want %+v", s, want)
	}

	// A single performance point leaves economy unknown.
	if s := SignalsFrom(perf[:1], nil); s != (Signals{}) {
		t.Errorf("single point: got %+v", s)
	}
}

func TestBattingApproach(t *testing.T) {
	cases := []struct {
		sr    float64
		balls int
		want  string
	}{
		{150, 20, "aggressive"},
		{120, 20, "aggressive"},
		{119.99, 20, "balanced"},
		{80, 20, "balanced"},
		{40, 20, "cautious"},
		{0, 10, "cautious"},
		{0, 0, ""},
	}
	for _, c := range cases {
		if got := BattingApproach(c.sr, c.balls); got != c.want {
			t.Errorf("BattingApproach(%v, %d) = %q, want %q", c.sr, c.balls, got, c.want)
		}
	}
}

func TestBowlingControl(t *testing.T) {
	cases := []struct {
		econ  float64
		balls int
		want  string
	}{
		{4.5, 24, "excellent"},
		{6, 24, "good"},
		{8, 24, "good"},
		{8.01, 24, "needs improvement"},
		{0, 0, ""},
	}
	for _, c := range cases {
		if got := BowlingControl(c.econ, c.balls); got != c.want {
			t.Errorf("BowlingControl(%v, %d) = %q, want %q", c.econ, c.balls, got, c.want)
		}
	}
}

func TestRatingWords(t *testing.T) {
	if RatingTrend(aggregator.Improving) != "upward" || DrillProgress(aggregator.Declining) != "area for improvement" {
		t.Error("unexpected rating wording")
	}
	if RatingTrend(aggregator.Stable) != "stable" || DrillProgress("") != "consistent effort" {
		t.Error("unexpected neutral wording")
	}
}
