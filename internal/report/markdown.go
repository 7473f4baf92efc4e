package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/pable/go-cricket-coach/internal/aggregator"
	"github.com/pable/go-cricket-coach/internal/format"
	"github.com/pable/go-cricket-coach/internal/model"
	"github.com/pable/go-cricket-coach/internal/summary"
)

// ExportMarkdown renders a player progress report as Markdown.
func ExportMarkdown(v summary.ExportView) string {
	var b strings.Builder
	t, m := v.Summary.Totals, v.Summary.Metrics
	p := v.Player

	b.WriteString("# Player Performance Report\n\n")
	b.WriteString("## Player & Report Info\n\n")
	fmt.Fprintf(&b, "- **Player Name:** %s\n", p.Name)
	fmt.Fprintf(&b, "- **Role:** %s\n", format.Text(p.Role.String()))
	fmt.Fprintf(&b, "- **Age Group:** %s\n", format.Text(p.AgeGroup))
	fmt.Fprintf(&b, "- **Report Generated:** %s\n", format.Date(v.Generated))
	if v.SessionCount > 0 {
		fmt.Fprintf(&b, "- **Reporting Period:** %s\n", format.DateRange(v.From, v.To))
		fmt.Fprintf(&b, "- **Sessions in this period:** %d\n", v.SessionCount)
		fmt.Fprintf(&b, "- **Focus areas:** %s\n", focusList(v.FocusAreas))
	}
	if v.Overall != nil {
		fmt.Fprintf(&b, "- **Overall drill rating (average):** %s/5.0\n", format.Ratio(v.Overall.Average, 1))
	}
	b.WriteString("\n")

	if v.HasBatting {
		b.WriteString("## Batting\n\n| Metric | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Total Balls Faced | %d |\n", t.BallsFaced)
		fmt.Fprintf(&b, "| Total Runs Scored | %d |\n", t.Runs)
		fmt.Fprintf(&b, "| Dismissals | %d |\n", t.Dismissals)
		fmt.Fprintf(&b, "| Batting Average | %s |\n", format.Ratio(m.BattingAverage, 2))
		fmt.Fprintf(&b, "| Strike Rate | %s |\n\n", format.Percent(m.StrikeRate, t.BallsFaced))
		if v.Approach != "" {
			fmt.Fprintf(&b, "Strike rate of %s indicates a %s approach at the crease.\n\n",
				format.Percent(m.StrikeRate, t.BallsFaced), v.Approach)
		}
	}

	if v.HasBowling {
		b.WriteString("## Bowling\n\n| Metric | Value |\n|---|---|\n")
		fmt.Fprintf(&b, "| Total Overs Bowled | %s |\n", format.Overs(t.Overs))
		fmt.Fprintf(&b, "| Runs Conceded | %d |\n", t.Conceded)
		fmt.Fprintf(&b, "| Wickets Taken | %d |\n", t.Wickets)
		fmt.Fprintf(&b, "| Bowling Economy | %s |\n", format.Guarded(m.Economy, t.BallsBowled, 2))
		fmt.Fprintf(&b, "| Wickets per Session | %s |\n", format.Guarded(m.WicketsPerUnit, v.SessionCount, 1))
		fmt.Fprintf(&b, "| Average per Wicket | %s |\n\n", format.Optional(m.BowlingAverage, 2))
		if v.Control != "" {
			fmt.Fprintf(&b, "Economy of %s demonstrates %s control and consistency.\n\n",
				format.Guarded(m.Economy, t.BallsBowled, 2), v.Control)
		}
	}

	if v.Fielding != nil {
		b.WriteString("## Fielding\n\n")
		fmt.Fprintf(&b, "Fielding drills average rating: %s/5.0 (from %d drill(s)).\n\n",
			format.Ratio(v.Fielding.Average, 1), v.Fielding.Count)
	}

	if len(v.Log) > 0 {
		b.WriteString("## Session-by-Session\n\n")
		for _, e := range v.Log {
			writeSession(&b, e)
		}
	}

	writeTrends(&b, v)

	b.WriteString("## Summary\n\n")
	b.WriteString(Narrative(v))
	b.WriteString("\n\n")
	if len(v.Takeaways) > 0 {
		b.WriteString(strings.Join(v.Takeaways, " "))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "*Generated: %s*\n", v.Generated.UTC().Format("2006-01-02T15:04:05Z"))
	return b.String()
}

func writeSession(b *strings.Builder, e summary.SessionEntry) {
	fmt.Fprintf(b, "### %s – %s\n\n", format.Date(e.Session.Date), e.Session.Focus.String())
	fmt.Fprintf(b, "Duration: %d minutes\n\n", e.Session.DurationMinutes)
	if len(e.Drills) > 0 {
		b.WriteString("Drills:\n\n")
		for _, d := range e.Drills {
			line := fmt.Sprintf("- %s (%d min)", d.Name, d.Minutes)
			if d.Rating != nil {
				line += fmt.Sprintf(" – %d/5", *d.Rating)
			}
			if n := strings.TrimSpace(d.Notes); n != "" {
				line += " – " + n
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	for _, r := range e.Stats {
		if parts := statParts(r); len(parts) > 0 {
			fmt.Fprintf(b, "Session stats: %s\n\n", strings.Join(parts, "; "))
		}
	}
}

func statParts(r model.StatRecord) []string {
	var parts []string
	if r.BallsFaced != nil {
		parts = append(parts, fmt.Sprintf("Balls: %d", *r.BallsFaced))
	}
	if r.RunsScored != nil {
		parts = append(parts, fmt.Sprintf("Runs: %d", *r.RunsScored))
	}
	if r.Dismissals != nil {
		parts = append(parts, fmt.Sprintf("Dismissals: %d", *r.Dismissals))
	}
	if r.OversBowled != nil {
		parts = append(parts, "Overs: "+format.Overs(*r.OversBowled))
	}
	if r.Wickets != nil {
		parts = append(parts, fmt.Sprintf("Wickets: %d", *r.Wickets))
	}
	if r.RunsConceded != nil {
		parts = append(parts, fmt.Sprintf("Runs conceded: %d", *r.RunsConceded))
	}
	return parts
}

func writeTrends(b *strings.Builder, v summary.ExportView) {
	tr := v.Trends
	var lines []string
	if c := tr.Ratings; c != nil && v.Overall != nil && c.Early != nil && c.Recent != nil {
		lines = append(lines, fmt.Sprintf("Drill ratings: %s (early avg %s/5, recent %s/5 – %s).",
			tr.RatingTrend, format.Optional(c.Early, 1), format.Optional(c.Recent, 1), tr.Progress))
	}
	if c := tr.StrikeRate; c != nil && v.HasBatting && c.Early != nil && c.Recent != nil {
		lines = append(lines, "Batting: strike rate "+format.Comparison(*c, 2)+".")
	}
	if c := tr.Economy; c != nil && v.HasBowling && c.Early != nil && c.Recent != nil {
		lines = append(lines, "Bowling: economy "+format.Comparison(*c, 2)+".")
	}
	if len(lines) == 0 {
		return
	}
	b.WriteString("## Trends\n\n")
	for _, l := range lines {
		b.WriteString("- " + l + "\n")
	}
	b.WriteString("\n")
}

// Narrative is the one-paragraph summary closing a progress report.
func Narrative(v summary.ExportView) string {
	p := v.Player
	t, m := v.Summary.Totals, v.Summary.Metrics
	parts := []string{fmt.Sprintf("%s (%s, %s)", p.Name, format.Text(p.Role.String()), format.Text(p.AgeGroup))}
	if v.SessionCount == 0 {
		parts = append(parts, "has no session data recorded yet.")
		return strings.Join(parts, " ")
	}
	parts = append(parts, fmt.Sprintf("took part in %d session(s) between %s and %s.",
		v.SessionCount, format.Date(v.From), format.Date(v.To)))
	if len(v.FocusAreas) > 0 {
		parts = append(parts, "Focus areas: "+focusList(v.FocusAreas)+".")
	}
	if v.HasBatting {
		s := fmt.Sprintf("Batting: %d runs off %d balls (strike rate %s)", t.Runs, t.BallsFaced, format.Percent(m.StrikeRate, t.BallsFaced))
		if t.Dismissals > 0 {
			s += ", average " + format.Ratio(m.BattingAverage, 2)
		}
		parts = append(parts, s+".")
	}
	if v.HasBowling {
		parts = append(parts, fmt.Sprintf("Bowling: %s overs, %d wickets, economy %s.",
			format.Overs(t.Overs), t.Wickets, format.Guarded(m.Economy, t.BallsBowled, 2)))
	}
	if v.Overall != nil {
		s := "Drill ratings averaged " + format.Ratio(v.Overall.Average, 1) + "/5"
		if v.Trends.Ratings != nil && v.Trends.Ratings.Direction != aggregator.Stable {
			s += " with " + v.Trends.RatingTrend + " trend"
		}
		parts = append(parts, s+".")
	}
	if v.Fielding != nil {
		parts = append(parts, "Fielding drill average: "+format.Ratio(v.Fielding.Average, 1)+"/5.")
	}
	return strings.Join(parts, " ")
}

func focusList(fs []model.Focus) string {
	if len(fs) == 0 {
		return format.Missing
	}
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.String()
	}
	return strings.Join(names, ", ")
}

// RenderMarkdown styles Markdown for a terminal of the given width.
// style is a glamour standard style name such as "dark", "light" or "notty".
func RenderMarkdown(md, style string, width int) (string, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}
