// Package summary composes the aggregation core into the views the CLI
// renders: the coaching dashboard, a player progress export, match career
// stats, team comparison and the team trend. Inputs are already-fetched
// slices; nothing here touches storage.
package summary

import (
	"sort"

	"github.com/pable/go-cricket-coach/internal/aggregator"
	"github.com/pable/go-cricket-coach/internal/insight"
	"github.com/pable/go-cricket-coach/internal/model"
)

// RecentSessionCount is how many sessions the dashboard lists as recent.
const RecentSessionCount = 5

// DefaultTopN is the size of the dashboard leaderboard.
const DefaultTopN = 5

// DashboardInput is everything the dashboard derives from.
type DashboardInput struct {
	PlayerCount int
	// Sessions in scope (the selected range), any order.
	Sessions []model.SessionRef
	// Recent are the most recent sessions overall, newest first.
	Recent []model.SessionRef
	// Records are stat rows of the in-scope sessions, already filtered by player.
	Records []model.StatRecord
	// Players eligible for the leaderboard, already filtered by role.
	Players []model.Player
	Ratings []model.DrillRatingRecord
	TopN    int
}

// FocusCount is the number of in-scope sessions with one focus.
type FocusCount struct {
	Focus model.Focus `json:"focus"`
	Count int         `json:"count"`
}

// DashboardView is the coaching overview. In JSON, values the tables show as
// format.Missing are null.
type DashboardView struct {
	PlayerCount      int                      `json:"playerCount"`
	SessionCount     int                      `json:"sessionCount"`
	Totals           aggregator.Totals        `json:"totals"`
	Metrics          aggregator.Metrics       `json:"derivedMetrics"`
	RecentSessions   []model.SessionRef       `json:"recentSessions"`
	TopPerformers    []aggregator.RankedEntry `json:"topPerformers"`
	PerformanceTrend []aggregator.TrendPoint  `json:"performanceTrend"`
	DrillRatingTrend []aggregator.RatingPoint `json:"drillRatingTrend"`
	SessionsByFocus  []FocusCount             `json:"sessionsByFocus"`
	Signals          insight.Signals          `json:"signals"`
	Insight          string                   `json:"insight"`
}

// Dashboard builds the overview. With no sessions in scope every figure is
// zero and the insight asks the coach to create a session.
func Dashboard(in DashboardInput) DashboardView {
	v := DashboardView{
		PlayerCount:      in.PlayerCount,
		SessionCount:     len(in.Sessions),
		RecentSessions:   []model.SessionRef{},
		TopPerformers:    []aggregator.RankedEntry{},
		PerformanceTrend: []aggregator.TrendPoint{},
		DrillRatingTrend: []aggregator.RatingPoint{},
		SessionsByFocus:  []FocusCount{},
	}
	if len(in.Sessions) == 0 {
		v.Insight = insight.NoSessions
		return v
	}

	// Wickets per session divides by the sessions in scope, not the sessions
	// that happen to have rows.
	s := aggregator.Summarize(in.Records, len(in.Sessions))
	v.Totals, v.Metrics = s.Totals, s.Metrics

	recent := in.Recent
	if len(recent) > RecentSessionCount {
		recent = recent[:RecentSessionCount]
	}
	v.RecentSessions = append(v.RecentSessions, recent...)

	n := in.TopN
	if n == 0 {
		n = DefaultTopN
	}
	v.TopPerformers = aggregator.TopN(aggregator.Candidates(in.Players, in.Records), aggregator.ByBattingAverage, n)

	dates := aggregator.SessionDates(in.Sessions)
	v.PerformanceTrend = aggregator.BuildTrend(in.Records, dates)
	v.DrillRatingTrend = aggregator.BuildRatingTrend(in.Ratings, dates)
	v.SessionsByFocus = FocusCounts(in.Sessions)

	v.Signals = insight.SignalsFrom(v.PerformanceTrend, v.DrillRatingTrend)
	v.Insight = insight.Derive(v.Signals)
	return v
}

// FocusCounts counts sessions per focus, sorted by focus name. A session
// without a focus counts as batting.
func FocusCounts(sessions []model.SessionRef) []FocusCount {
	counts := make(map[model.Focus]int)
	for _, s := range sessions {
		f := s.Focus
		if f == "" {
			f = model.FocusBatting
		}
		counts[f]++
	}
	out := make([]FocusCount, 0, len(counts))
	for f, c := range counts {
		out = append(out, FocusCount{Focus: f, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Focus < out[j].Focus })
	return out
}
