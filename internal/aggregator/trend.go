package aggregator

import (
	"sort"
	"time"

	"github.com/pable/go-cricket-coach/internal/model"
)

// DateLookup resolves a session id to its calendar date.
type DateLookup func(sessionID string) (time.Time, bool)

// SessionDates builds a DateLookup over a slice of sessions.
func SessionDates(sessions []model.SessionRef) DateLookup {
	byID := make(map[string]time.Time, len(sessions))
	for _, s := range sessions {
		byID[s.ID] = s.Date
	}
	return func(id string) (time.Time, bool) {
		d, ok := byID[id]
		return d, ok
	}
}

// TrendPoint is one day bucket of a performance trend.
type TrendPoint struct {
	Date    string  `json:"sessionDate"`
	Totals  Totals  `json:"totals"`
	Metrics Metrics `json:"metrics"`
}

// RatingPoint is the average drill rating for one day.
type RatingPoint struct {
	Date      string  `json:"sessionDate"`
	AvgRating float64 `json:"avgRating"`
	Count     int     `json:"count"`
}

// BuildTrend groups records by the day of their session, aggregates each
// bucket and returns the buckets in ascending date order. Records whose
// session date is unknown are skipped.
func BuildTrend(records []model.StatRecord, dateOf DateLookup) []TrendPoint {
	buckets := make(map[string][]model.StatRecord)
	for _, r := range records {
		d, ok := dateOf(r.SessionID)
		if !ok {
			continue
		}
		key := d.Format(model.DayLayout)
		buckets[key] = append(buckets[key], r)
	}

	out := make([]TrendPoint, 0, len(buckets))
	for key, rows := range buckets {
		t := Aggregate(rows)
		out = append(out, TrendPoint{
			Date:    key,
			Totals:  t,
			Metrics: Derive(t, DistinctSessions(rows)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// BuildRatingTrend averages drill ratings per session day, ascending.
// Unrated drills and drills from unknown sessions are skipped.
func BuildRatingTrend(ratings []model.DrillRatingRecord, dateOf DateLookup) []RatingPoint {
	byDay := make(map[string][]int)
	for _, r := range ratings {
		if r.Rating == nil {
			continue
		}
		d, ok := dateOf(r.SessionID)
		if !ok {
			continue
		}
		key := d.Format(model.DayLayout)
		byDay[key] = append(byDay[key], *r.Rating)
	}

	out := make([]RatingPoint, 0, len(byDay))
	for key, vals := range byDay {
		avg, _ := Mean(vals, 2)
		out = append(out, RatingPoint{Date: key, AvgRating: avg, Count: len(vals)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Latest returns up to n trend points, most recent first. n <= 0 returns
// every point.
func Latest(points []TrendPoint, n int) []TrendPoint {
	out := make([]TrendPoint, len(points))
	for i, p := range points {
		out[len(points)-1-i] = p
	}
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// SplitEarlyRecent splits a chronologically ordered sequence at floor(n/2).
func SplitEarlyRecent[T any](ordered []T) (early, recent []T) {
	half := len(ordered) / 2
	return ordered[:half], ordered[half:]
}

// Direction is the outcome of an early-vs-recent comparison.
type Direction string

const (
	Improving Direction = "Improving"
	Declining Direction = "Declining"
	Stable    Direction = "Stable"
)

// Comparison holds an early and a recent value of one metric. A nil value
// means that half had no denominator.
type Comparison struct {
	Early     *float64  `json:"early"`
	Recent    *float64  `json:"recent"`
	Direction Direction `json:"direction"`
}

// compare treats a recent value at least as good as the early one as an
// improvement. Either value missing yields Stable.
func compare(early, recent *float64, higherIsBetter bool) Comparison {
	c := Comparison{Early: early, Recent: recent, Direction: Stable}
	if early == nil || recent == nil {
		return c
	}
	better := *recent >= *early
	if !higherIsBetter {
		better = *recent <= *early
	}
	if better {
		c.Direction = Improving
	} else {
		c.Direction = Declining
	}
	return c
}

// CompareStrikeRate compares strike rate across the early and recent halves
// of chronologically ordered records. ok is false with fewer than two records.
func CompareStrikeRate(ordered []model.StatRecord) (c Comparison, ok bool) {
	if len(ordered) < 2 {
		return Comparison{}, false
	}
	early, recent := SplitEarlyRecent(ordered)
	return compare(strikeRateOf(early), strikeRateOf(recent), true), true
}

// CompareEconomy compares economy across halves; lower is better.
func CompareEconomy(ordered []model.StatRecord) (c Comparison, ok bool) {
	if len(ordered) < 2 {
		return Comparison{}, false
	}
	early, recent := SplitEarlyRecent(ordered)
	return compare(economyOf(early), economyOf(recent), false), true
}

// CompareRatings compares the mean drill rating of the early and recent
// halves of per-session rating groups, ordered by session date.
func CompareRatings(perSession [][]int) (c Comparison, ok bool) {
	if len(perSession) < 2 {
		return Comparison{}, false
	}
	early, recent := SplitEarlyRecent(perSession)
	return compare(meanOf(early), meanOf(recent), true), true
}

func strikeRateOf(records []model.StatRecord) *float64 {
	t := Aggregate(records)
	if t.BallsFaced == 0 {
		return nil
	}
	sr := Derive(t, 0).StrikeRate
	return &sr
}

func economyOf(records []model.StatRecord) *float64 {
	t := Aggregate(records)
	if t.BallsBowled == 0 {
		return nil
	}
	econ := Derive(t, 0).Economy
	return &econ
}

func meanOf(groups [][]int) *float64 {
	var all []int
	for _, g := range groups {
		all = append(all, g...)
	}
	avg, ok := Mean(all, 1)
	if !ok {
		return nil
	}
	return &avg
}
