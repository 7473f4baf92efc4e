package summary

import (
	"github.com/pable/go-cricket-coach/internal/model"
)

// Level is reported as the leader when both sides tie.
const Level = "Level"

// TeamInput is one side of a comparison.
type TeamInput struct {
	Team  model.Team
	Squad []model.Player
	// Performances may include other players; only squad lines are counted.
	Performances []model.MatchPerformance
}

// TeamSide is one team's aggregated match record.
type TeamSide struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	SquadSize        int        `json:"playerCount"`
	PerformanceCount int        `json:"performanceCount"`
	Career           CareerView `json:"stats"`
}

// MetricLeader names the side ahead on one metric.
type MetricLeader struct {
	Metric string `json:"metric"`
	Leader string `json:"leader"`
}

// ComparisonView is a head-to-head of two squads.
type ComparisonView struct {
	Team1   TeamSide       `json:"team1"`
	Team2   TeamSide       `json:"team2"`
	Leaders []MetricLeader `json:"leaders"`
}

// CompareTeams aggregates both squads and names the leader per metric.
func CompareTeams(a, b TeamInput) ComparisonView {
	v := ComparisonView{Team1: teamSide(a), Team2: teamSide(b)}
	s1, s2 := v.Team1.Career, v.Team2.Career
	n1, n2 := v.Team1.Name, v.Team2.Name

	lead := func(metric string, x, y float64, higherIsBetter bool) {
		leader := Level
		switch {
		case x == y:
		case (x > y) == higherIsBetter:
			leader = n1
		default:
			leader = n2
		}
		v.Leaders = append(v.Leaders, MetricLeader{Metric: metric, Leader: leader})
	}
	t1, t2 := s1.Summary.Totals, s2.Summary.Totals
	m1, m2 := s1.Summary.Metrics, s2.Summary.Metrics
	lead("Runs", float64(t1.Runs), float64(t2.Runs), true)
	lead("Wickets", float64(t1.Wickets), float64(t2.Wickets), true)
	lead("Batting average", m1.BattingAverage, m2.BattingAverage, true)
	lead("Strike rate", m1.StrikeRate, m2.StrikeRate, true)
	if t1.BallsBowled > 0 && t2.BallsBowled > 0 {
		lead("Economy", m1.Economy, m2.Economy, false)
	}
	lead("Catches", float64(s1.Catches), float64(s2.Catches), true)
	lead("Highest score", float64(s1.HighestScore), float64(s2.HighestScore), true)
	return v
}

func teamSide(in TeamInput) TeamSide {
	squad := make(map[string]bool, len(in.Squad))
	for _, p := range in.Squad {
		squad[p.ID] = true
	}
	var perfs []model.MatchPerformance
	for _, p := range in.Performances {
		if squad[p.PlayerID] {
			perfs = append(perfs, p)
		}
	}
	return TeamSide{
		ID:               in.Team.ID,
		Name:             in.Team.Name,
		SquadSize:        len(in.Squad),
		PerformanceCount: len(perfs),
		Career:           PlayerCareer(perfs),
	}
}
