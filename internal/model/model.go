package model

import "time"

// Role is a player's primary role in the squad.
type Role string

const (
	RoleBatter     Role = "batter"
	RoleBowler     Role = "bowler"
	RoleAllRounder Role = "allrounder"
	RoleKeeper     Role = "keeper"
)

func (r Role) String() string {
	switch r {
	case RoleBatter:
		return "Batter"
	case RoleBowler:
		return "Bowler"
	case RoleAllRounder:
		return "All-rounder"
	case RoleKeeper:
		return "Keeper"
	default:
		return string(r)
	}
}

// Focus is the primary skill category of a practice session.
type Focus string

const (
	FocusBatting  Focus = "batting"
	FocusBowling  Focus = "bowling"
	FocusFielding Focus = "fielding"
	FocusFitness  Focus = "fitness"
)

func (f Focus) String() string {
	switch f {
	case FocusBatting:
		return "Batting"
	case FocusBowling:
		return "Bowling"
	case FocusFielding:
		return "Fielding"
	case FocusFitness:
		return "Fitness"
	default:
		return string(f)
	}
}

// ---- Reference entities ----

type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	AgeGroup   string `json:"ageGroup"`
	BattingArm string `json:"battingArm,omitempty"` // "left", "right" or empty
	BowlingArm string `json:"bowlingArm,omitempty"`
	BowlerType string `json:"bowlerType,omitempty"`
}

type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SessionRef is a practice session. Only used for bucketing, filtering and
// labelling; it is never aggregated itself.
type SessionRef struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`            // calendar-day precision
	Focus           Focus     `json:"focus"`
	AgeGroup        string    `json:"ageGroup"`
	DurationMinutes int       `json:"durationMinutes"`
	NumPlayers      int       `json:"numPlayers"`
	Notes           string    `json:"notes,omitempty"`
}

// Day returns the session date formatted as a bucket key.
func (s SessionRef) Day() string {
	return s.Date.Format(DayLayout)
}

// DayLayout is the bucket key format for every per-day series.
const DayLayout = "2006-01-02"

type Drill struct {
	ID                     string
	SessionID              string
	Name                   string
	Type                   Focus
	PlannedDurationMinutes int
}

// DrillRatingRecord is one coach rating of a drill. SessionID and DrillType
// are resolved through the drill when the record is loaded.
type DrillRatingRecord struct {
	DrillID   string
	SessionID string
	DrillType Focus
	Rating    *int   // 1–5, nil when not rated
	Notes     string
}

// ---- Raw stat rows ----

// StatRecord is one player's recorded performance for one session or match.
// Nil fields were not recorded; arithmetic treats them as zero.
type StatRecord struct {
	ID           string    `json:"id"`
	PlayerID     string    `json:"playerId"`
	SessionID    string    `json:"sessionId"`    // session or match id
	RunsScored   *int      `json:"runsScored"`
	BallsFaced   *int      `json:"ballsFaced"`
	Dismissals   *int      `json:"dismissals"`
	OversBowled  *float64  `json:"oversBowled"`  // cricket notation, 4.2 = 4 overs 2 balls
	RunsConceded *int      `json:"runsConceded"`
	Wickets      *int      `json:"wickets"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HasBatting reports whether any batting field was recorded.
func (r *StatRecord) HasBatting() bool {
	return r.RunsScored != nil || r.BallsFaced != nil || r.Dismissals != nil
}

// HasBowling reports whether any bowling field was recorded.
func (r *StatRecord) HasBowling() bool {
	return r.OversBowled != nil || r.RunsConceded != nil || r.Wickets != nil
}

type Match struct {
	ID       string
	TeamID   string
	Opponent string
	Date     time.Time
	Venue    string
	Result   string
}

// MatchPerformance is a player's scorecard line for one match. The embedded
// StatRecord carries the match id in SessionID.
type MatchPerformance struct {
	StatRecord
	Fours     int
	Sixes     int
	Catches   int
	Stumpings int
}

// Int returns a pointer to v; used to build optional stat fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// IntValue dereferences p, treating nil as zero.
func IntValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// FloatValue dereferences p, treating nil as zero.
func FloatValue(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
