package insight

import "github.com/pable/go-cricket-coach/internal/aggregator"

// band is one row of a threshold table, highest first.
type band struct {
	min   float64
	label string
}

var battingBands = []band{
	{120, "aggressive"},
	{80, "balanced"},
	{0, "cautious"},
}

// BattingApproach labels a strike rate. Empty when no balls were faced.
func BattingApproach(strikeRate float64, ballsFaced int) string {
	if ballsFaced <= 0 {
		return ""
	}
	for _, b := range battingBands {
		if strikeRate >= b.min {
			return b.label
		}
	}
	return "cautious"
}

// BowlingControl labels an economy rate. Empty when nothing was bowled.
func BowlingControl(economy float64, ballsBowled int) string {
	switch {
	case ballsBowled <= 0:
		return ""
	case economy < 6:
		return "excellent"
	case economy <= 8:
		return "good"
	default:
		return "needs improvement"
	}
}

// RatingTrend words a drill rating comparison.
func RatingTrend(d aggregator.Direction) string {
	switch d {
	case aggregator.Improving:
		return "upward"
	case aggregator.Declining:
		return "downward"
	default:
		return "stable"
	}
}

// DrillProgress describes what a drill rating comparison means for the player.
func DrillProgress(d aggregator.Direction) string {
	switch d {
	case aggregator.Improving:
		return "positive progress"
	case aggregator.Declining:
		return "area for improvement"
	default:
		return "consistent effort"
	}
}
