package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-cricket-coach/internal/aggregator"
	"github.com/pable/go-cricket-coach/internal/format"
	"github.com/pable/go-cricket-coach/internal/model"
	"github.com/pable/go-cricket-coach/internal/overs"
	"github.com/pable/go-cricket-coach/internal/summary"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintDashboard prints the KPI header followed by the dashboard tables.
func PrintDashboard(w io.Writer, v summary.DashboardView) {
	m, t := v.Metrics, v.Totals
	fmt.Fprintf(w, "\nPlayers: %d  |  Sessions: %d  |  Avg: %s  |  SR: %s  |  Econ: %s  |  Wkts: %d  |  Wkts/session: %s\n\n",
		v.PlayerCount, v.SessionCount,
		format.Ratio(m.BattingAverage, 2),
		format.Guarded(m.StrikeRate, t.BallsFaced, 2),
		format.Guarded(m.Economy, t.BallsBowled, 2),
		t.Wickets,
		format.Guarded(m.WicketsPerUnit, v.SessionCount, 1),
	)

	if len(v.RecentSessions) > 0 {
		fmt.Fprintln(w, "--- Recent sessions ---")
		PrintSessions(w, v.RecentSessions)
		fmt.Fprintln(w)
	}
	if len(v.TopPerformers) > 0 {
		fmt.Fprintln(w, "--- Top performers (batting average) ---")
		PrintLeaderboard(w, v.TopPerformers, aggregator.ByBattingAverage)
		fmt.Fprintln(w)
	}
	if len(v.PerformanceTrend) > 0 {
		fmt.Fprintln(w, "--- Performance trend ---")
		PrintTrend(w, v.PerformanceTrend)
		fmt.Fprintln(w)
	}
	if len(v.DrillRatingTrend) > 0 {
		fmt.Fprintln(w, "--- Drill ratings ---")
		PrintRatingTrend(w, v.DrillRatingTrend)
		fmt.Fprintln(w)
	}
	if len(v.SessionsByFocus) > 0 {
		parts := make([]string, len(v.SessionsByFocus))
		for i, f := range v.SessionsByFocus {
			parts[i] = fmt.Sprintf("%s %d", f.Focus, f.Count)
		}
		fmt.Fprintf(w, "Sessions by focus: %s\n", strings.Join(parts, ", "))
	}
	if v.Insight != "" {
		fmt.Fprintf(w, "Insight: %s\n", v.Insight)
	}
}

// PrintSessions prints one row per session.
func PrintSessions(w io.Writer, sessions []model.SessionRef) {
	table := newTable(w)
	table.Header("DATE", "FOCUS", "AGE", "MINUTES", "PLAYERS", "ID")
	for _, s := range sessions {
		table.Append(
			format.Date(s.Date),
			s.Focus.String(),
			format.Text(s.AgeGroup),
			strconv.Itoa(s.DurationMinutes),
			strconv.Itoa(s.NumPlayers),
			s.ID,
		)
	}
	table.Render()
}

// PrintPlayers prints the squad list.
func PrintPlayers(w io.Writer, players []model.Player) {
	table := newTable(w)
	table.Header("NAME", "ROLE", "AGE", "BATS", "BOWLS", "TYPE", "ID")
	for _, p := range players {
		table.Append(
			p.Name,
			p.Role.String(),
			format.Text(p.AgeGroup),
			format.Text(p.BattingArm),
			format.Text(p.BowlingArm),
			format.Text(p.BowlerType),
			p.ID,
		)
	}
	table.Render()
}

// PrintLeaderboard prints ranked entries with the ranking metric first.
func PrintLeaderboard(w io.Writer, entries []aggregator.RankedEntry, by aggregator.Metric) {
	table := newTable(w)
	table.Header("#", "NAME", "ROLE", strings.ToUpper(by.Name), "RUNS", "AVG", "SR", "ECON", "WKTS")
	for _, e := range entries {
		t, m := e.Summary.Totals, e.Summary.Metrics
		table.Append(
			strconv.Itoa(e.Rank),
			e.Name,
			e.Role.String(),
			leaderValue(e, by),
			strconv.Itoa(t.Runs),
			format.Ratio(m.BattingAverage, 2),
			format.Guarded(m.StrikeRate, t.BallsFaced, 2),
			format.Guarded(m.Economy, t.BallsBowled, 2),
			strconv.Itoa(t.Wickets),
		)
	}
	table.Render()
}

func leaderValue(e aggregator.RankedEntry, by aggregator.Metric) string {
	t := e.Summary.Totals
	switch by.Name {
	case aggregator.ByWickets.Name, aggregator.ByRuns.Name:
		return strconv.Itoa(int(e.Value))
	case aggregator.ByEconomy.Name:
		return format.Guarded(e.Value, t.BallsBowled, 2)
	case aggregator.ByStrikeRate.Name:
		return format.Guarded(e.Value, t.BallsFaced, 2)
	}
	return format.Ratio(e.Value, 2)
}

// PrintTrend prints one row per trend point in the order given.
func PrintTrend(w io.Writer, points []aggregator.TrendPoint) {
	table := newTable(w)
	table.Header("DATE", "RUNS", "BALLS", "AVG", "SR", "OVERS", "ECON", "WKTS", "WKTS/S")
	for _, p := range points {
		t, m := p.Totals, p.Metrics
		table.Append(
			p.Date,
			strconv.Itoa(t.Runs),
			strconv.Itoa(t.BallsFaced),
			format.Ratio(m.BattingAverage, 2),
			format.Guarded(m.StrikeRate, t.BallsFaced, 2),
			format.Overs(t.Overs),
			format.Guarded(m.Economy, t.BallsBowled, 2),
			strconv.Itoa(t.Wickets),
			format.Ratio(m.WicketsPerUnit, 1),
		)
	}
	table.Render()
}

// PrintRatingTrend prints average drill ratings per day.
func PrintRatingTrend(w io.Writer, points []aggregator.RatingPoint) {
	table := newTable(w)
	table.Header("DATE", "AVG RATING", "RATED")
	for _, p := range points {
		table.Append(p.Date, format.Ratio(p.AvgRating, 2), strconv.Itoa(p.Count))
	}
	table.Render()
}

// PrintTrends prints the early-vs-recent comparisons that were computed.
func PrintTrends(w io.Writer, tr summary.Trends) {
	if tr.StrikeRate == nil && tr.Economy == nil && tr.Ratings == nil {
		fmt.Fprintln(w, "Not enough sessions to compare early and recent form.")
		return
	}
	if tr.StrikeRate != nil {
		fmt.Fprintf(w, "Strike rate:  %s\n", format.Comparison(*tr.StrikeRate, 2))
	}
	if tr.Economy != nil {
		fmt.Fprintf(w, "Economy:      %s\n", format.Comparison(*tr.Economy, 2))
	}
	if tr.Ratings != nil {
		fmt.Fprintf(w, "Drill rating: %s\n", format.Comparison(*tr.Ratings, 1))
	}
}

// PrintCareer prints a player's match record.
func PrintCareer(w io.Writer, name string, v summary.CareerView) {
	t, m := v.Summary.Totals, v.Summary.Metrics
	fmt.Fprintf(w, "\n%s  |  Matches: %d\n\n", name, v.Matches)
	table := newTable(w)
	table.Header("RUNS", "HS", "AVG", "SR", "50s", "100s", "4s", "6s", "OVERS", "WKTS", "ECON", "BOWL AVG", "BEST", "CT", "ST")
	table.Append(
		strconv.Itoa(t.Runs),
		v.HighestScoreText(),
		format.Ratio(m.BattingAverage, 2),
		format.Guarded(m.StrikeRate, t.BallsFaced, 2),
		strconv.Itoa(v.Fifties),
		strconv.Itoa(v.Hundreds),
		strconv.Itoa(v.Fours),
		strconv.Itoa(v.Sixes),
		format.Overs(t.Overs),
		strconv.Itoa(t.Wickets),
		format.Guarded(m.Economy, t.BallsBowled, 2),
		format.Optional(m.BowlingAverage, 2),
		v.BestBowling,
		strconv.Itoa(v.Catches),
		strconv.Itoa(v.Stumpings),
	)
	table.Render()
}

// PrintTeamComparison prints both sides and the per-metric leader.
func PrintTeamComparison(w io.Writer, v summary.ComparisonView) {
	table := newTable(w)
	table.Header("METRIC", v.Team1.Name, v.Team2.Name)
	row := func(label string, f func(summary.TeamSide) string) {
		table.Append(label, f(v.Team1), f(v.Team2))
	}
	row("Squad", func(s summary.TeamSide) string { return strconv.Itoa(s.SquadSize) })
	row("Performances", func(s summary.TeamSide) string { return strconv.Itoa(s.PerformanceCount) })
	row("Matches", func(s summary.TeamSide) string { return strconv.Itoa(s.Career.Matches) })
	row("Runs", func(s summary.TeamSide) string { return strconv.Itoa(s.Career.Summary.Totals.Runs) })
	row("Batting average", func(s summary.TeamSide) string {
		return format.Ratio(s.Career.Summary.Metrics.BattingAverage, 2)
	})
	row("Strike rate", func(s summary.TeamSide) string {
		return format.Guarded(s.Career.Summary.Metrics.StrikeRate, s.Career.Summary.Totals.BallsFaced, 2)
	})
	row("Wickets", func(s summary.TeamSide) string { return strconv.Itoa(s.Career.Summary.Totals.Wickets) })
	row("Economy", func(s summary.TeamSide) string {
		return format.Guarded(s.Career.Summary.Metrics.Economy, s.Career.Summary.Totals.BallsBowled, 2)
	})
	row("Fifties", func(s summary.TeamSide) string { return strconv.Itoa(s.Career.Fifties) })
	row("Hundreds", func(s summary.TeamSide) string { return strconv.Itoa(s.Career.Hundreds) })
	row("Highest score", func(s summary.TeamSide) string { return s.Career.HighestScoreText() })
	row("Catches", func(s summary.TeamSide) string { return strconv.Itoa(s.Career.Catches) })
	row("Stumpings", func(s summary.TeamSide) string { return strconv.Itoa(s.Career.Stumpings) })
	table.Render()

	if len(v.Leaders) > 0 {
		fmt.Fprintln(w)
		for _, l := range v.Leaders {
			fmt.Fprintf(w, "  %-16s %s\n", l.Metric+":", l.Leader)
		}
	}
}

// PrintStatRows prints dated stat lines. Unrecorded fields show as Missing.
func PrintStatRows(w io.Writer, rows []summary.StatRow) {
	table := newTable(w)
	table.Header("DATE", "RUNS", "BALLS", "OUT", "OVERS", "CONCEDED", "WKTS")
	for _, r := range rows {
		rec := r.Record
		table.Append(
			format.Text(r.Date),
			optInt(rec.RunsScored),
			optInt(rec.BallsFaced),
			optInt(rec.Dismissals),
			optOvers(rec.OversBowled),
			optInt(rec.RunsConceded),
			optInt(rec.Wickets),
		)
	}
	table.Render()
}

// PrintSessionDetail prints a session header, its drills and each player's line.
func PrintSessionDetail(w io.Writer, e summary.SessionEntry, names map[string]string) {
	s := e.Session
	fmt.Fprintf(w, "\n%s  |  %s  |  %d min  |  %s\n", format.Date(s.Date), s.Focus, s.DurationMinutes, format.Text(s.AgeGroup))
	if s.Notes != "" {
		fmt.Fprintf(w, "Notes: %s\n", s.Notes)
	}
	fmt.Fprintln(w)

	if len(e.Drills) > 0 {
		table := newTable(w)
		table.Header("DRILL", "MINUTES", "RATING", "NOTES")
		for _, d := range e.Drills {
			table.Append(d.Name, strconv.Itoa(d.Minutes), optInt(d.Rating), format.Text(d.Notes))
		}
		table.Render()
		fmt.Fprintln(w)
	}

	if len(e.Stats) == 0 {
		fmt.Fprintln(w, "No stat lines recorded.")
		return
	}
	table := newTable(w)
	table.Header("PLAYER", "RUNS", "BALLS", "OUT", "OVERS", "CONCEDED", "WKTS")
	var bowled []float64
	for _, r := range e.Stats {
		if r.OversBowled != nil {
			bowled = append(bowled, *r.OversBowled)
		}
		name := names[r.PlayerID]
		if name == "" {
			name = r.PlayerID
		}
		table.Append(
			name,
			optInt(r.RunsScored),
			optInt(r.BallsFaced),
			optInt(r.Dismissals),
			optOvers(r.OversBowled),
			optInt(r.RunsConceded),
			optInt(r.Wickets),
		)
	}
	table.Render()
	if len(bowled) > 0 {
		fmt.Fprintf(w, "Overs bowled in session: %s\n", format.Overs(overs.Sum(bowled...)))
	}
}

func optInt(p *int) string {
	if p == nil {
		return format.Missing
	}
	return strconv.Itoa(*p)
}

func optOvers(p *float64) string {
	if p == nil {
		return format.Missing
	}
	return format.Overs(*p)
}

// PrintQueryResult prints raw query output with the given column names.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}
