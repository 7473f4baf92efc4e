// Package aggregator reduces raw stat rows into totals and derived cricket
// metrics, builds per-day trends, and ranks players.
//
// Every function is a pure computation over the slice it is given. Missing
// numeric fields count as zero and zero denominators resolve to documented
// values; nothing here returns an error or panics on degenerate input.
package aggregator

import (
	"math"

	"github.com/pable/go-cricket-coach/internal/model"
	"github.com/pable/go-cricket-coach/internal/overs"
)

// Totals holds summed stat fields for a set of records.
type Totals struct {
	Records     int     `json:"records"`
	Runs        int     `json:"totalRuns"`
	BallsFaced  int     `json:"totalBalls"`
	Dismissals  int     `json:"totalDismissals"`
	BallsBowled int     `json:"ballsBowled"`
	Overs       float64 `json:"totalOvers"` // overs notation, derived from BallsBowled
	Conceded    int     `json:"totalConceded"`
	Wickets     int     `json:"totalWickets"`
}

// HasBatting reports whether the totals carry any batting signal. A line with
// only recorded zeros carries none; per-record presence lives on
// model.StatRecord.
func (t Totals) HasBatting() bool {
	return t.BallsFaced > 0 || t.Runs > 0 || t.Dismissals > 0
}

// HasBowling reports whether the totals carry any bowling signal.
func (t Totals) HasBowling() bool {
	return t.BallsBowled > 0 || t.Conceded > 0 || t.Wickets > 0
}

// Metrics holds the rates derived from one Totals snapshot. An undefined
// BowlingAverage encodes as JSON null, which is the machine-readable form of
// format.Missing.
type Metrics struct {
	BattingAverage float64  `json:"battingAverage"`
	StrikeRate     float64  `json:"strikeRate"`
	Economy        float64  `json:"economy"`
	WicketsPerUnit float64  `json:"wicketsPerUnit"`
	BowlingAverage *float64 `json:"bowlingAverage"` // nil when no wickets
}

// Summary pairs totals with the metrics derived from them.
type Summary struct {
	Totals  Totals  `json:"totals"`
	Metrics Metrics `json:"derivedMetrics"`
}

// Aggregate sums every numeric field across records. Overs are summed as
// balls so notation values are never added directly.
func Aggregate(records []model.StatRecord) Totals {
	var t Totals
	for i := range records {
		r := &records[i]
		t.Records++
		t.Runs += model.IntValue(r.RunsScored)
		t.BallsFaced += model.IntValue(r.BallsFaced)
		t.Dismissals += model.IntValue(r.Dismissals)
		t.BallsBowled += overs.ToBalls(model.FloatValue(r.OversBowled))
		t.Conceded += model.IntValue(r.RunsConceded)
		t.Wickets += model.IntValue(r.Wickets)
	}
	t.Overs = overs.FromBalls(t.BallsBowled)
	return t
}

// Derive computes rates from totals. units is the number of sessions or
// matches the totals span and is the denominator for WicketsPerUnit.
//
// With zero dismissals BattingAverage reports total runs rather than zero.
// Economy divides by true overs (balls / 6).
func Derive(t Totals, units int) Metrics {
	var m Metrics
	if t.Dismissals > 0 {
		m.BattingAverage = RoundHalfUp(float64(t.Runs)/float64(t.Dismissals), 2)
	} else {
		m.BattingAverage = float64(t.Runs)
	}
	if t.BallsFaced > 0 {
		m.StrikeRate = RoundHalfUp(float64(t.Runs)*100/float64(t.BallsFaced), 2)
	}
	if t.BallsBowled > 0 {
		m.Economy = RoundHalfUp(float64(t.Conceded)*overs.BallsPerOver/float64(t.BallsBowled), 2)
	}
	if units > 0 {
		m.WicketsPerUnit = RoundHalfUp(float64(t.Wickets)/float64(units), 1)
	}
	if t.Wickets > 0 {
		avg := RoundHalfUp(float64(t.Conceded)/float64(t.Wickets), 2)
		m.BowlingAverage = &avg
	}
	return m
}

// Summarize aggregates records and derives their metrics in one step.
func Summarize(records []model.StatRecord, units int) Summary {
	t := Aggregate(records)
	return Summary{Totals: t, Metrics: Derive(t, units)}
}

// DistinctSessions counts the distinct session (or match) ids in records.
func DistinctSessions(records []model.StatRecord) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.SessionID] = struct{}{}
	}
	return len(seen)
}

// halfUpSnap is the precision the scaled value is snapped to before the half
// test, so 1.025 (stored as 1.02499999...) rounds as the decimal it came from.
const halfUpSnap = 1e6

// RoundHalfUp rounds v to the given number of decimals, halves going up.
// Non-finite input rounds to zero.
func RoundHalfUp(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	p := math.Pow(10, float64(decimals))
	scaled := math.Round(v*p*halfUpSnap) / halfUpSnap
	return math.Floor(scaled+0.5) / p
}

// Mean returns the average of values rounded to decimals, and false when
// values is empty.
func Mean(values []int, decimals int) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return RoundHalfUp(float64(sum)/float64(len(values)), decimals), true
}
