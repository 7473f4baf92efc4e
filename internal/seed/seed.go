// Package seed loads a YAML fixture of players, sessions and results into storage.
package seed

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"github.com/pable/go-cricket-coach/internal/logging"
	"github.com/pable/go-cricket-coach/internal/model"
	"github.com/pable/go-cricket-coach/internal/overs"
)

// Fixture is the top-level YAML document.
type Fixture struct {
	Players  []Player  `yaml:"players"`
	Teams    []Team    `yaml:"teams"`
	Sessions []Session `yaml:"sessions"`
	Matches  []Match   `yaml:"matches"`
}

type Player struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Role       string `yaml:"role"`
	AgeGroup   string `yaml:"age_group"`
	BattingArm string `yaml:"batting_arm"`
	BowlingArm string `yaml:"bowling_arm"`
	BowlerType string `yaml:"bowler_type"`
}

type Team struct {
	ID    string   `yaml:"id"`
	Name  string   `yaml:"name"`
	Squad []string `yaml:"squad"`
}

type Session struct {
	ID         string  `yaml:"id"`
	Date       string  `yaml:"date"`
	Focus      string  `yaml:"focus"`
	AgeGroup   string  `yaml:"age_group"`
	Duration   int     `yaml:"duration_minutes"`
	NumPlayers int     `yaml:"num_players"`
	Notes      string  `yaml:"notes"`
	Drills     []Drill `yaml:"drills"`
	Stats      []Stat  `yaml:"stats"`
}

type Drill struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Minutes int    `yaml:"planned_minutes"`
	// Ratings may contain nulls for results recorded without a rating.
	Ratings []*int `yaml:"ratings"`
}

// Stat is one player's line. Omitted fields stay unrecorded.
type Stat struct {
	Player     string   `yaml:"player"`
	Runs       *int     `yaml:"runs"`
	Balls      *int     `yaml:"balls"`
	Dismissals *int     `yaml:"dismissals"`
	Overs      *float64 `yaml:"overs"`
	Conceded   *int     `yaml:"conceded"`
	Wickets    *int     `yaml:"wickets"`
}

type Match struct {
	ID           string        `yaml:"id"`
	Team         string        `yaml:"team"`
	Opponent     string        `yaml:"opponent"`
	Date         string        `yaml:"date"`
	Venue        string        `yaml:"venue"`
	Result       string        `yaml:"result"`
	Performances []Performance `yaml:"performances"`
}

type Performance struct {
	Stat      `yaml:",inline"`
	Fours     int `yaml:"fours"`
	Sixes     int `yaml:"sixes"`
	Catches   int `yaml:"catches"`
	Stumpings int `yaml:"stumpings"`
}

// Store is the subset of storage the loader writes through.
type Store interface {
	InsertPlayer(model.Player) (string, error)
	InsertTeam(model.Team) (string, error)
	AddSquadMember(teamID, playerID string) error
	InsertSession(model.SessionRef) (string, error)
	InsertDrill(model.Drill) (string, error)
	InsertDrillResult(model.DrillRatingRecord) error
	InsertStats([]model.StatRecord) error
	InsertMatch(model.Match) (string, error)
	InsertMatchPerformance(model.MatchPerformance) (string, error)
}

// Counts reports how many rows of each kind were written.
type Counts struct {
	Players      int
	Teams        int
	Sessions     int
	Drills       int
	Ratings      int
	Stats        int
	Matches      int
	Performances int
}

// LoadFile reads and parses a fixture file. Files ending in .gz, .bz2 or
// .zst are decompressed first.
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	switch {
	case strings.HasSuffix(path, ".bz2"):
		src = bzip2.NewReader(f)
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes a fixture and assigns ids to entries that lack one.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture yaml: %w", err)
	}
	f.assignIDs()
	return &f, nil
}

func (f *Fixture) assignIDs() {
	for i := range f.Players {
		if f.Players[i].ID == "" {
			f.Players[i].ID = uuid.NewString()
		}
	}
	for i := range f.Teams {
		if f.Teams[i].ID == "" {
			f.Teams[i].ID = uuid.NewString()
		}
	}
	for i := range f.Sessions {
		s := &f.Sessions[i]
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		for j := range s.Drills {
			if s.Drills[j].ID == "" {
				s.Drills[j].ID = uuid.NewString()
			}
		}
	}
	for i := range f.Matches {
		if f.Matches[i].ID == "" {
			f.Matches[i].ID = uuid.NewString()
		}
	}
}

// Validate checks references and dates. Malformed overs values are not
// errors; they are returned as warnings and stored as given.
func (f *Fixture) Validate() (warnings []string, err error) {
	players := make(map[string]bool, len(f.Players))
	for _, p := range f.Players {
		if p.Name == "" {
			return nil, fmt.Errorf("player %s: missing name", p.ID)
		}
		players[p.ID] = true
	}
	for _, t := range f.Teams {
		for _, pid := range t.Squad {
			if !players[pid] {
				return nil, fmt.Errorf("team %s: unknown squad player %q", t.Name, pid)
			}
		}
	}
	checkStat := func(where string, s Stat) error {
		if !players[s.Player] {
			return fmt.Errorf("%s: unknown player %q", where, s.Player)
		}
		if s.Overs != nil && !overs.IsWellFormed(*s.Overs) {
			warnings = append(warnings, fmt.Sprintf("%s: overs %v for %s is not valid cricket notation", where, *s.Overs, s.Player))
		}
		return nil
	}
	for _, s := range f.Sessions {
		if _, err := parseDate(s.Date); err != nil {
			return nil, fmt.Errorf("session %s: %w", s.ID, err)
		}
		for _, d := range s.Drills {
			for _, r := range d.Ratings {
				if r != nil && (*r < 1 || *r > 5) {
					return nil, fmt.Errorf("session %s drill %s: rating %d outside 1-5", s.Date, d.Name, *r)
				}
			}
		}
		for _, st := range s.Stats {
			if err := checkStat("session "+s.Date, st); err != nil {
				return nil, err
			}
		}
	}
	for _, m := range f.Matches {
		if _, err := parseDate(m.Date); err != nil {
			return nil, fmt.Errorf("match %s: %w", m.ID, err)
		}
		for _, p := range m.Performances {
			if err := checkStat("match vs "+m.Opponent, p.Stat); err != nil {
				return nil, err
			}
		}
	}
	return warnings, nil
}

// Apply validates the fixture and writes it through store, parents first.
func Apply(store Store, f *Fixture, logger *slog.Logger) (Counts, error) {
	var c Counts
	warnings, err := f.Validate()
	if err != nil {
		return c, err
	}
	for _, w := range warnings {
		logging.Warn(logger, "data quality", "detail", w)
	}

	for _, p := range f.Players {
		if _, err := store.InsertPlayer(model.Player{
			ID: p.ID, Name: p.Name, Role: roleOrDefault(p.Role), AgeGroup: p.AgeGroup,
			BattingArm: p.BattingArm, BowlingArm: p.BowlingArm, BowlerType: p.BowlerType,
		}); err != nil {
			return c, err
		}
		c.Players++
	}

	for _, t := range f.Teams {
		if _, err := store.InsertTeam(model.Team{ID: t.ID, Name: t.Name}); err != nil {
			return c, err
		}
		for _, pid := range t.Squad {
			if err := store.AddSquadMember(t.ID, pid); err != nil {
				return c, fmt.Errorf("add %s to %s: %w", pid, t.Name, err)
			}
		}
		c.Teams++
	}

	for _, s := range f.Sessions {
		date, _ := parseDate(s.Date)
		if _, err := store.InsertSession(model.SessionRef{
			ID: s.ID, Date: date, Focus: focusOrDefault(s.Focus), AgeGroup: s.AgeGroup,
			DurationMinutes: s.Duration, NumPlayers: s.NumPlayers, Notes: s.Notes,
		}); err != nil {
			return c, err
		}
		c.Sessions++

		for _, d := range s.Drills {
			if _, err := store.InsertDrill(model.Drill{
				ID: d.ID, SessionID: s.ID, Name: d.Name, Type: focusOrDefault(d.Type), PlannedDurationMinutes: d.Minutes,
			}); err != nil {
				return c, err
			}
			c.Drills++
			for _, r := range d.Ratings {
				if err := store.InsertDrillResult(model.DrillRatingRecord{DrillID: d.ID, Rating: r}); err != nil {
					return c, err
				}
				c.Ratings++
			}
		}

		stats := make([]model.StatRecord, 0, len(s.Stats))
		for _, st := range s.Stats {
			rec := st.record(s.ID)
			rec.ID = uuid.NewString()
			stats = append(stats, rec)
		}
		if len(stats) > 0 {
			if err := store.InsertStats(stats); err != nil {
				return c, fmt.Errorf("session %s stats: %w", s.Date, err)
			}
			c.Stats += len(stats)
		}
		logging.Debug(logger, "seeded session", logging.FieldSession, s.ID, logging.FieldCount, len(stats))
	}

	for _, m := range f.Matches {
		date, _ := parseDate(m.Date)
		if _, err := store.InsertMatch(model.Match{
			ID: m.ID, TeamID: m.Team, Opponent: m.Opponent, Date: date, Venue: m.Venue, Result: m.Result,
		}); err != nil {
			return c, err
		}
		c.Matches++
		for _, p := range m.Performances {
			if _, err := store.InsertMatchPerformance(model.MatchPerformance{
				StatRecord: p.Stat.record(m.ID),
				Fours:      p.Fours, Sixes: p.Sixes, Catches: p.Catches, Stumpings: p.Stumpings,
			}); err != nil {
				return c, err
			}
			c.Performances++
		}
	}
	return c, nil
}

func (s Stat) record(sessionID string) model.StatRecord {
	return model.StatRecord{
		PlayerID:     s.Player,
		SessionID:    sessionID,
		RunsScored:   s.Runs,
		BallsFaced:   s.Balls,
		Dismissals:   s.Dismissals,
		OversBowled:  s.Overs,
		RunsConceded: s.Conceded,
		Wickets:      s.Wickets,
	}
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}

func roleOrDefault(r string) model.Role {
	if r == "" {
		return model.RoleBatter
	}
	return model.Role(r)
}

// focusOrDefault treats a missing focus as batting.
func focusOrDefault(f string) model.Focus {
	if f == "" {
		return model.FocusBatting
	}
	return model.Focus(f)
}
