package summary

import (
	"strconv"

	"github.com/pable/go-cricket-coach/internal/aggregator"
	"github.com/pable/go-cricket-coach/internal/format"
	"github.com/pable/go-cricket-coach/internal/model"
)

// CareerView is a player's match record.
type CareerView struct {
	Matches int                `json:"matches"`
	Summary aggregator.Summary `json:"summary"`
	// HighestScore is the best single-innings score; NotOut marks it unbeaten.
	HighestScore int    `json:"highestScore"`
	NotOut       bool   `json:"highestNotOut"`
	BestBowling  string `json:"bestBowling"`
	Fifties      int    `json:"fifties"`
	Hundreds     int    `json:"hundreds"`
	Fours        int    `json:"fours"`
	Sixes        int    `json:"sixes"`
	Catches      int    `json:"catches"`
	Stumpings    int    `json:"stumpings"`
}

// PlayerCareer aggregates match performances through the same core as
// practice sessions.
func PlayerCareer(perfs []model.MatchPerformance) CareerView {
	v := CareerView{BestBowling: format.Missing}
	if len(perfs) == 0 {
		return v
	}

	records := make([]model.StatRecord, len(perfs))
	for i, p := range perfs {
		records[i] = p.StatRecord
	}
	v.Matches = aggregator.DistinctSessions(records)
	v.Summary = aggregator.Summarize(records, v.Matches)

	bestW, bestR, bowled := 0, 0, false
	for _, p := range perfs {
		runs := model.IntValue(p.RunsScored)
		notOut := p.RunsScored != nil && model.IntValue(p.Dismissals) == 0
		if runs > v.HighestScore || (runs == v.HighestScore && notOut && !v.NotOut) {
			v.HighestScore, v.NotOut = runs, notOut
		}
		switch {
		case runs >= 100:
			v.Hundreds++
		case runs >= 50:
			v.Fifties++
		}
		v.Fours += p.Fours
		v.Sixes += p.Sixes
		v.Catches += p.Catches
		v.Stumpings += p.Stumpings

		if !p.HasBowling() {
			continue
		}
		w, r := model.IntValue(p.Wickets), model.IntValue(p.RunsConceded)
		if !bowled || w > bestW || (w == bestW && r < bestR) {
			bestW, bestR, bowled = w, r, true
		}
	}
	if bowled {
		v.BestBowling = strconv.Itoa(bestW) + "/" + strconv.Itoa(bestR)
	}
	return v
}

// HighestScoreText renders the highest score with a trailing * when unbeaten.
func (v CareerView) HighestScoreText() string {
	s := strconv.Itoa(v.HighestScore)
	if v.NotOut {
		s += "*"
	}
	return s
}
