// Package insight maps trend signals to coaching advice through ordered
// decision tables. The first matching rule wins.
package insight

import "github.com/pable/go-cricket-coach/internal/aggregator"

// Signals are the trend values the advice rules look at. Zero means the
// value is unknown.
type Signals struct {
	LastEconomy float64 `json:"lastEconomy"`
	PrevEconomy float64 `json:"prevEconomy"`
	LastRating  float64 `json:"lastRating"`
	PrevRating  float64 `json:"prevRating"`
}

// Rule is one row of a decision table.
type Rule struct {
	Name    string
	Applies func(Signals) bool
	Message string
}

const (
	EconomyImproving = "Bowling economy is improving; maintain current plan."
	RatingsStrong    = "Drill ratings are strong and improving; keep the focus."
	RatingsLow       = "Consider more repetition or simpler progressions for low-rated drills."
	Fallback         = "Review session data and drill ratings to adjust plans."
	NoSessions       = "No sessions yet. Create a practice session to see KPIs and trends."
)

// Rules is the advice table, evaluated top-down.
var Rules = []Rule{
	{
		Name: "economy-improving",
		Applies: func(s Signals) bool {
			return s.LastEconomy > 0 && s.PrevEconomy > 0 && s.LastEconomy < s.PrevEconomy
		},
		Message: EconomyImproving,
	},
	{
		Name: "ratings-strong",
		Applies: func(s Signals) bool {
			return s.LastRating >= 4 && s.LastRating > s.PrevRating
		},
		Message: RatingsStrong,
	},
	{
		Name: "ratings-low",
		Applies: func(s Signals) bool {
			return s.LastRating > 0 && s.LastRating < 3
		},
		Message: RatingsLow,
	},
}

// Derive returns the message of the first rule matching s, or Fallback.
func Derive(s Signals) string {
	return Evaluate(Rules, s, Fallback)
}

// Evaluate runs an arbitrary rule table.
func Evaluate(rules []Rule, s Signals, fallback string) string {
	for _, r := range rules {
		if r.Applies(s) {
			return r.Message
		}
	}
	return fallback
}

// SignalsFrom reads the last two economy values of a performance trend and
// the last two average ratings of a rating trend. Economy needs at least two
// performance points; the last rating needs one rating point and the
// previous rating two.
func SignalsFrom(perf []aggregator.TrendPoint, ratings []aggregator.RatingPoint) Signals {
	var s Signals
	if n := len(perf); n >= 2 {
		s.LastEconomy = perf[n-1].Metrics.Economy
		s.PrevEconomy = perf[n-2].Metrics.Economy
	}
	if n := len(ratings); n >= 1 {
		s.LastRating = ratings[n-1].AvgRating
		if n >= 2 {
			s.PrevRating = ratings[n-2].AvgRating
		}
	}
	return s
}
