package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pable/go-cricket-coach/internal/model"
)

// newID returns id, or a fresh UUID when id is empty.
func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// ---- Players and teams ----

// InsertPlayer inserts or replaces a player and returns its id.
func (db *DB) InsertPlayer(p model.Player) (string, error) {
	p.ID = newID(p.ID)
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO players(id, name, role, age_group, batting_arm, bowling_arm, bowler_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, string(p.Role), p.AgeGroup, p.BattingArm, p.BowlingArm, p.BowlerType,
	)
	if err != nil {
		return "", fmt.Errorf("insert player %s: %w", p.Name, err)
	}
	return p.ID, nil
}

// GetPlayer returns the player with the given id, or ErrNotFound.
func (db *DB) GetPlayer(id string) (model.Player, error) {
	var p model.Player
	var role string
	err := db.conn.QueryRow(`
		SELECT id, name, role, age_group, batting_arm, bowling_arm, bowler_type
		FROM players WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &role, &p.AgeGroup, &p.BattingArm, &p.BowlingArm, &p.BowlerType)
	if err == sql.ErrNoRows {
		return model.Player{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Player{}, err
	}
	p.Role = model.Role(role)
	return p, nil
}

// ListPlayers returns players ordered by name. An empty role lists everyone.
func (db *DB) ListPlayers(role string) ([]model.Player, error) {
	query := `SELECT id, name, role, age_group, batting_arm, bowling_arm, bowler_type FROM players`
	var args []interface{}
	if role != "" {
		query += ` WHERE role = ?`
		args = append(args, role)
	}
	query += ` ORDER BY name`
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// CountPlayers counts players, optionally restricted to one role.
func (db *DB) CountPlayers(role string) (int, error) {
	var n int
	var err error
	if role != "" {
		err = db.conn.QueryRow(`SELECT COUNT(1) FROM players WHERE role = ?`, role).Scan(&n)
	} else {
		err = db.conn.QueryRow(`SELECT COUNT(1) FROM players`).Scan(&n)
	}
	return n, err
}

// InsertTeam inserts or replaces a team and returns its id.
func (db *DB) InsertTeam(t model.Team) (string, error) {
	t.ID = newID(t.ID)
	if _, err := db.conn.Exec(`INSERT OR REPLACE INTO teams(id, name) VALUES (?, ?)`, t.ID, t.Name); err != nil {
		return "", fmt.Errorf("insert team %s: %w", t.Name, err)
	}
	return t.ID, nil
}

// GetTeam returns the team with the given id, or ErrNotFound.
func (db *DB) GetTeam(id string) (model.Team, error) {
	var t model.Team
	err := db.conn.QueryRow(`SELECT id, name FROM teams WHERE id = ?`, id).Scan(&t.ID, &t.Name)
	if err == sql.ErrNoRows {
		return model.Team{}, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	return t, err
}

// ListTeams returns all teams ordered by name.
func (db *DB) ListTeams() ([]model.Team, error) {
	rows, err := db.conn.Query(`SELECT id, name FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AddSquadMember adds a player to a team's squad. Adding twice is a no-op.
func (db *DB) AddSquadMember(teamID, playerID string) error {
	_, err := db.conn.Exec(`INSERT OR IGNORE INTO team_squads(team_id, player_id) VALUES (?, ?)`, teamID, playerID)
	return err
}

// ListSquad returns the players in a team's squad, ordered by name.
func (db *DB) ListSquad(teamID string) ([]model.Player, error) {
	rows, err := db.conn.Query(`
		SELECT p.id, p.name, p.role, p.age_group, p.batting_arm, p.bowling_arm, p.bowler_type
		FROM team_squads ts JOIN players p ON p.id = ts.player_id
		WHERE ts.team_id = ?
		ORDER BY p.name`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func scanPlayers(rows *sql.Rows) ([]model.Player, error) {
	var out []model.Player
	for rows.Next() {
		var p model.Player
		var role string
		if err := rows.Scan(&p.ID, &p.Name, &role, &p.AgeGroup, &p.BattingArm, &p.BowlingArm, &p.BowlerType); err != nil {
			return nil, err
		}
		p.Role = model.Role(role)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ---- Sessions and drills ----

// InsertSession inserts or replaces a practice session and returns its id.
func (db *DB) InsertSession(s model.SessionRef) (string, error) {
	s.ID = newID(s.ID)
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO sessions(id, date, focus, age_group, duration_minutes, num_players, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Day(), string(s.Focus), s.AgeGroup, s.DurationMinutes, s.NumPlayers, s.Notes,
	)
	if err != nil {
		return "", fmt.Errorf("insert session %s: %w", s.Day(), err)
	}
	return s.ID, nil
}

// ListSessions returns the most recent sessions first. limit <= 0 returns all.
func (db *DB) ListSessions(limit int) ([]model.SessionRef, error) {
	query := `
		SELECT id, date, focus, age_group, duration_minutes, num_players, notes
		FROM sessions ORDER BY date DESC, id`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSessions(rows)
}

func scanSessions(rows *sql.Rows) ([]model.SessionRef, error) {
	var out []model.SessionRef
	for rows.Next() {
		var s model.SessionRef
		var date, focus string
		if err := rows.Scan(&s.ID, &date, &focus, &s.AgeGroup, &s.DurationMinutes, &s.NumPlayers, &s.Notes); err != nil {
			return nil, err
		}
		d, err := parseDay(date)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", s.ID, err)
		}
		s.Date = d
		s.Focus = model.Focus(focus)
		out = append(out, s)
	}
	return out, rows.Err()
}

// InsertDrill inserts or replaces a drill and returns its id.
func (db *DB) InsertDrill(d model.Drill) (string, error) {
	d.ID = newID(d.ID)
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO drills(id, session_id, name, type, planned_duration_minutes)
		VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.SessionID, d.Name, string(d.Type), d.PlannedDurationMinutes,
	)
	if err != nil {
		return "", fmt.Errorf("insert drill %s: %w", d.Name, err)
	}
	return d.ID, nil
}

// InsertDrillResult records a rating for a drill.
func (db *DB) InsertDrillResult(r model.DrillRatingRecord) error {
	_, err := db.conn.Exec(`
		INSERT INTO drill_results(id, drill_id, rating_1_5, notes) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), r.DrillID, nullInt(r.Rating), r.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert drill result for %s: %w", r.DrillID, err)
	}
	return nil
}

// ---- Raw stat rows ----

// InsertStat inserts one session stat row and returns its id.
func (db *DB) InsertStat(s model.StatRecord) (string, error) {
	s.ID = newID(s.ID)
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO performance_stats(
			id, player_id, session_id,
			runs_scored, balls_faced, dismissals,
			overs_bowled, runs_conceded, wickets
		) VALUES (?,?,?,?,?,?,?,?,?)`,
		s.ID, s.PlayerID, s.SessionID,
		nullInt(s.RunsScored), nullInt(s.BallsFaced), nullInt(s.Dismissals),
		nullFloat(s.OversBowled), nullInt(s.RunsConceded), nullInt(s.Wickets),
	)
	if err != nil {
		return "", fmt.Errorf("insert performance_stats for %s: %w", s.PlayerID, err)
	}
	return s.ID, nil
}

// InsertStats bulk-inserts stat rows in a transaction.
func (db *DB) InsertStats(stats []model.StatRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO performance_stats(
			id, player_id, session_id,
			runs_scored, balls_faced, dismissals,
			overs_bowled, runs_conceded, wickets
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range stats {
		_, err = stmt.Exec(
			newID(s.ID), s.PlayerID, s.SessionID,
			nullInt(s.RunsScored), nullInt(s.BallsFaced), nullInt(s.Dismissals),
			nullFloat(s.OversBowled), nullInt(s.RunsConceded), nullInt(s.Wickets),
		)
		if err != nil {
			return fmt.Errorf("insert performance_stats for %s: %w", s.PlayerID, err)
		}
	}
	return tx.Commit()
}

// ---- Matches ----

// InsertMatch inserts or replaces a match and returns its id.
func (db *DB) InsertMatch(m model.Match) (string, error) {
	m.ID = newID(m.ID)
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO matches(id, team_id, opponent, date, venue, result)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.ID, m.TeamID, m.Opponent, m.Date.Format(model.DayLayout), m.Venue, m.Result,
	)
	if err != nil {
		return "", fmt.Errorf("insert match vs %s: %w", m.Opponent, err)
	}
	return m.ID, nil
}

// InsertMatchPerformance inserts one scorecard line. SessionID carries the match id.
func (db *DB) InsertMatchPerformance(p model.MatchPerformance) (string, error) {
	p.ID = newID(p.ID)
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO match_performances(
			id, match_id, player_id,
			runs_scored, balls_faced, dismissals,
			overs_bowled, runs_conceded, wickets,
			fours, sixes, catches, stumpings
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.SessionID, p.PlayerID,
		nullInt(p.RunsScored), nullInt(p.BallsFaced), nullInt(p.Dismissals),
		nullFloat(p.OversBowled), nullInt(p.RunsConceded), nullInt(p.Wickets),
		p.Fours, p.Sixes, p.Catches, p.Stumpings,
	)
	if err != nil {
		return "", fmt.Errorf("insert match_performances for %s: %w", p.PlayerID, err)
	}
	return p.ID, nil
}

// ---- Raw SQL ----

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

// ---- helpers ----

func nullInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func nullFloat(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func parseDay(s string) (time.Time, error) {
	if len(s) > len(model.DayLayout) {
		s = s[:len(model.DayLayout)]
	}
	d, err := time.Parse(model.DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return d, nil
}
