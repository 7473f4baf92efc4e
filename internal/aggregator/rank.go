package aggregator

import (
	"sort"

	"github.com/pable/go-cricket-coach/internal/model"
)

// Candidate is one player considered for a leaderboard.
type Candidate struct {
	ID      string
	Name    string
	Role    model.Role
	Summary Summary
}

// RankedEntry is a Candidate placed on a leaderboard.
type RankedEntry struct {
	Rank    int        `json:"rank"`
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Role    model.Role `json:"role"`
	Value   float64    `json:"value"`
	Summary Summary    `json:"summary"`
}

// Metric selects the ranking key for a leaderboard. Rankings are descending
// unless Ascending is set. Candidates failing Qualifies (when set) sort after
// every qualifying candidate.
type Metric struct {
	Name      string
	Value     func(Summary) float64
	Ascending bool
	Qualifies func(Summary) bool
}

var (
	ByBattingAverage = Metric{
		Name:  "batting",
		Value: func(s Summary) float64 { return s.Metrics.BattingAverage },
	}
	ByStrikeRate = Metric{
		Name:  "strike-rate",
		Value: func(s Summary) float64 { return s.Metrics.StrikeRate },
	}
	ByWickets = Metric{
		Name:  "wickets",
		Value: func(s Summary) float64 { return float64(s.Totals.Wickets) },
	}
	ByRuns = Metric{
		Name:  "runs",
		Value: func(s Summary) float64 { return float64(s.Totals.Runs) },
	}
	ByEconomy = Metric{
		Name:      "economy",
		Value:     func(s Summary) float64 { return s.Metrics.Economy },
		Ascending: true,
		Qualifies: func(s Summary) bool { return s.Totals.BallsBowled > 0 },
	}
)

// Leaderboards lists the leaderboard metrics by name.
var Leaderboards = map[string]Metric{
	ByBattingAverage.Name: ByBattingAverage,
	ByStrikeRate.Name:     ByStrikeRate,
	ByWickets.Name:        ByWickets,
	ByRuns.Name:           ByRuns,
	ByEconomy.Name:        ByEconomy,
}

// Candidates groups records by player, in the order players are given.
// Records for players not in the list are ignored; players without records
// are kept with an empty summary and dropped later by TopN.
func Candidates(players []model.Player, records []model.StatRecord) []Candidate {
	byPlayer := make(map[string][]model.StatRecord)
	for _, r := range records {
		byPlayer[r.PlayerID] = append(byPlayer[r.PlayerID], r)
	}
	out := make([]Candidate, 0, len(players))
	for _, p := range players {
		rows := byPlayer[p.ID]
		out = append(out, Candidate{
			ID:      p.ID,
			Name:    p.Name,
			Role:    p.Role,
			Summary: Summarize(rows, DistinctSessions(rows)),
		})
	}
	return out
}

// TopN ranks candidates by metric and keeps the first n. Candidates with no
// aggregated rows are dropped; ties keep their input order. Ranks are 1-based.
func TopN(candidates []Candidate, by Metric, n int) []RankedEntry {
	if n <= 0 || by.Value == nil {
		return []RankedEntry{}
	}
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Summary.Totals.Records == 0 {
			continue
		}
		kept = append(kept, c)
	}

	qualifies := func(s Summary) bool { return by.Qualifies == nil || by.Qualifies(s) }
	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i].Summary, kept[j].Summary
		qa, qb := qualifies(a), qualifies(b)
		if qa != qb {
			return qa
		}
		if by.Ascending {
			return by.Value(a) < by.Value(b)
		}
		return by.Value(a) > by.Value(b)
	})
	if len(kept) > n {
		kept = kept[:n]
	}

	out := make([]RankedEntry, 0, len(kept))
	for i, c := range kept {
		out = append(out, RankedEntry{
			Rank:    i + 1,
			ID:      c.ID,
			Name:    c.Name,
			Role:    c.Role,
			Value:   by.Value(c.Summary),
			Summary: c.Summary,
		})
	}
	return out
}
