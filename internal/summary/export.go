package summary

import (
	"sort"
	"time"

	"github.com/pable/go-cricket-coach/internal/aggregator"
	"github.com/pable/go-cricket-coach/internal/insight"
	"github.com/pable/go-cricket-coach/internal/model"
)

// ExportInput is one player's history.
type ExportInput struct {
	Player model.Player
	// Records are the player's stat rows in session-date order.
	Records  []model.StatRecord
	Sessions []model.SessionRef
	Drills   []model.Drill
	Ratings  []model.DrillRatingRecord
	// Generated stamps the report; zero means now.
	Generated time.Time
}

// DrillEntry is one drill in the session log.
type DrillEntry struct {
	Name    string `json:"name"`
	Minutes int    `json:"plannedMinutes"`
	Rating  *int   `json:"rating"`
	Notes   string `json:"notes,omitempty"`
}

// SessionEntry is one row of the session-by-session log.
type SessionEntry struct {
	Session model.SessionRef   `json:"session"`
	Drills  []DrillEntry       `json:"drills"`
	Stats   []model.StatRecord `json:"stats"`
}

// RatingSummary is an average of 1-5 drill ratings.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Trends are early-vs-recent comparisons. A nil entry was not computed.
type Trends struct {
	StrikeRate *aggregator.Comparison `json:"strikeRate,omitempty"`
	Economy    *aggregator.Comparison `json:"economy,omitempty"`
	Ratings    *aggregator.Comparison `json:"ratings,omitempty"`
	// RatingTrend and Progress word the ratings comparison.
	RatingTrend string `json:"ratingTrend,omitempty"`
	Progress    string `json:"progress,omitempty"`
}

// ExportView is a player progress report. Undefined metrics and comparison
// halves encode as JSON null where the markdown shows format.Missing.
type ExportView struct {
	Player       model.Player       `json:"player"`
	Generated    time.Time          `json:"generated"`
	From         time.Time          `json:"from"`
	To           time.Time          `json:"to"`
	SessionCount int                `json:"sessionCount"`
	FocusAreas   []model.Focus      `json:"focusAreas"`
	Summary      aggregator.Summary `json:"summary"`
	HasBatting   bool               `json:"hasBatting"`
	HasBowling   bool               `json:"hasBowling"`
	// Approach and Control are empty when the discipline has no data.
	Approach  string         `json:"battingApproach,omitempty"`
	Control   string         `json:"bowlingControl,omitempty"`
	Overall   *RatingSummary `json:"overallRating,omitempty"`
	Fielding  *RatingSummary `json:"fieldingRating,omitempty"`
	Trends    Trends         `json:"trends"`
	Log       []SessionEntry `json:"sessions"`
	Takeaways []string       `json:"takeaways"`
}

// PlayerExport builds a progress report over everything recorded for a player.
func PlayerExport(in ExportInput) ExportView {
	sessions := append([]model.SessionRef(nil), in.Sessions...)
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].Date.Before(sessions[j].Date) })

	v := ExportView{
		Player:       in.Player,
		Generated:    in.Generated,
		SessionCount: len(sessions),
		FocusAreas:   []model.Focus{},
		Log:          []SessionEntry{},
		Takeaways:    []string{},
	}
	if v.Generated.IsZero() {
		v.Generated = time.Now()
	}
	if len(sessions) > 0 {
		v.From, v.To = sessions[0].Date, sessions[len(sessions)-1].Date
	}
	seenFocus := make(map[model.Focus]bool)
	for _, s := range sessions {
		if !seenFocus[s.Focus] {
			seenFocus[s.Focus] = true
			v.FocusAreas = append(v.FocusAreas, s.Focus)
		}
	}

	v.Summary = aggregator.Summarize(in.Records, len(sessions))
	t := v.Summary.Totals
	v.HasBatting, v.HasBowling = t.HasBatting(), t.HasBowling()
	v.Approach = insight.BattingApproach(v.Summary.Metrics.StrikeRate, t.BallsFaced)
	v.Control = insight.BowlingControl(v.Summary.Metrics.Economy, t.BallsBowled)

	var all, fielding []int
	for _, r := range in.Ratings {
		if r.Rating == nil || *r.Rating < 1 || *r.Rating > 5 {
			continue
		}
		all = append(all, *r.Rating)
		if r.DrillType == model.FocusFielding {
			fielding = append(fielding, *r.Rating)
		}
	}
	v.Overall = ratingSummary(all)
	v.Fielding = ratingSummary(fielding)

	if len(sessions) >= 2 {
		v.Trends = trends(in.Records, sessions, in.Ratings)
	}
	v.Log = SessionLog(sessions, in.Records, in.Drills, in.Ratings)
	v.Takeaways = takeaways(v)
	return v
}

func ratingSummary(values []int) *RatingSummary {
	avg, ok := aggregator.Mean(values, 1)
	if !ok {
		return nil
	}
	return &RatingSummary{Average: avg, Count: len(values)}
}

func trends(records []model.StatRecord, sessions []model.SessionRef, ratings []model.DrillRatingRecord) Trends {
	var tr Trends
	if c, ok := aggregator.CompareStrikeRate(records); ok {
		tr.StrikeRate = &c
	}
	if c, ok := aggregator.CompareEconomy(records); ok {
		tr.Economy = &c
	}

	bySession := make(map[string][]int)
	for _, r := range ratings {
		if r.Rating != nil {
			bySession[r.SessionID] = append(bySession[r.SessionID], *r.Rating)
		}
	}
	groups := make([][]int, len(sessions))
	for i, s := range sessions {
		groups[i] = bySession[s.ID]
	}
	if c, ok := aggregator.CompareRatings(groups); ok {
		tr.Ratings = &c
		tr.RatingTrend = insight.RatingTrend(c.Direction)
		tr.Progress = insight.DrillProgress(c.Direction)
	}
	return tr
}

// SessionLog groups drills, first ratings and stat rows under each session, in
// the order sessions are given.
func SessionLog(sessions []model.SessionRef, records []model.StatRecord, drills []model.Drill, ratings []model.DrillRatingRecord) []SessionEntry {
	ratingByDrill := make(map[string]model.DrillRatingRecord)
	for _, r := range ratings {
		if _, ok := ratingByDrill[r.DrillID]; !ok {
			ratingByDrill[r.DrillID] = r
		}
	}
	drillsBySession := make(map[string][]DrillEntry)
	for _, d := range drills {
		e := DrillEntry{Name: d.Name, Minutes: d.PlannedDurationMinutes}
		if r, ok := ratingByDrill[d.ID]; ok {
			e.Rating, e.Notes = r.Rating, r.Notes
		}
		drillsBySession[d.SessionID] = append(drillsBySession[d.SessionID], e)
	}
	statsBySession := make(map[string][]model.StatRecord)
	for _, r := range records {
		statsBySession[r.SessionID] = append(statsBySession[r.SessionID], r)
	}

	out := make([]SessionEntry, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, SessionEntry{
			Session: s,
			Drills:  drillsBySession[s.ID],
			Stats:   statsBySession[s.ID],
		})
	}
	return out
}

func takeaways(v ExportView) []string {
	out := []string{}
	if v.SessionCount == 0 || !(v.HasBatting || v.HasBowling) {
		return out
	}
	if v.HasBatting && v.Approach != "" {
		out = append(out, "Batting approach: "+v.Approach+".")
	}
	if v.HasBowling && v.Control != "" {
		out = append(out, "Bowling: "+v.Control+" control.")
	}
	if c := v.Trends.StrikeRate; v.HasBatting && c != nil && c.Direction != aggregator.Stable {
		out = append(out, "Batting trend: "+string(c.Direction)+".")
	}
	if c := v.Trends.Economy; v.HasBowling && c != nil && c.Direction != aggregator.Stable {
		out = append(out, "Bowling trend: "+string(c.Direction)+".")
	}
	return out
}
