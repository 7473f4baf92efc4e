package summary

import (
	"sort"

	"github.com/pable/go-cricket-coach/internal/aggregator"
	"github.com/pable/go-cricket-coach/internal/model"
)

// TeamTrendDays caps the team trend.
const TeamTrendDays = 12

// TeamTrend returns per-day trend points, most recent first, capped at limit
// (TeamTrendDays when limit is zero).
func TeamTrend(records []model.StatRecord, sessions []model.SessionRef, limit int) []aggregator.TrendPoint {
	if limit == 0 {
		limit = TeamTrendDays
	}
	return aggregator.Latest(aggregator.BuildTrend(records, aggregator.SessionDates(sessions)), limit)
}

// StatRow is one stat line labelled with its session date.
type StatRow struct {
	Date   string           `json:"sessionDate"`
	Record model.StatRecord `json:"record"`
}

// PlayerStatRows labels a player's rows with their session date, most recent
// first, capped at limit (TeamTrendDays when zero). Rows from unknown
// sessions keep an empty date and sort last.
func PlayerStatRows(records []model.StatRecord, sessions []model.SessionRef, limit int) []StatRow {
	if limit == 0 {
		limit = TeamTrendDays
	}
	dateOf := aggregator.SessionDates(sessions)
	out := make([]StatRow, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		row := StatRow{Record: records[i]}
		if d, ok := dateOf(records[i].SessionID); ok {
			row.Date = d.Format(model.DayLayout)
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date, out[j].Date
		if (a == "") != (b == "") {
			return b == ""
		}
		return a > b
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
