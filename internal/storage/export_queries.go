package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pable/go-cricket-coach/internal/model"
)

const statColumns = `ps.id, ps.player_id, ps.session_id,
	ps.runs_scored, ps.balls_faced, ps.dismissals,
	ps.overs_bowled, ps.runs_conceded, ps.wickets, ps.created_at`

// StatsForSessions returns stat rows recorded in any of the given sessions.
// A non-empty playerID restricts the rows to that player.
func (db *DB) StatsForSessions(sessionIDs []string, playerID string) ([]model.StatRecord, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	args := make([]interface{}, 0, len(sessionIDs)+1)
	for _, id := range sessionIDs {
		args = append(args, id)
	}
	query := `SELECT ` + statColumns + `
		FROM performance_stats ps
		JOIN sessions s ON s.id = ps.session_id
		WHERE ps.session_id IN (` + placeholders(len(sessionIDs)) + `)`
	if playerID != "" {
		query += ` AND ps.player_id = ?`
		args = append(args, playerID)
	}
	query += ` ORDER BY s.date, ps.created_at, ps.id`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("stats for sessions: %w", err)
	}
	defer rows.Close()
	return scanStats(rows)
}

// StatsForPlayer returns every stat row of a player ordered by session date.
func (db *DB) StatsForPlayer(playerID string) ([]model.StatRecord, error) {
	rows, err := db.conn.Query(`SELECT `+statColumns+`
		FROM performance_stats ps
		JOIN sessions s ON s.id = ps.session_id
		WHERE ps.player_id = ?
		ORDER BY s.date, ps.created_at, ps.id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("stats for player %s: %w", playerID, err)
	}
	defer rows.Close()
	return scanStats(rows)
}

func scanStats(rows *sql.Rows) ([]model.StatRecord, error) {
	var out []model.StatRecord
	for rows.Next() {
		var s model.StatRecord
		var runs, balls, outs, conceded, wkts sql.NullInt64
		var ovs sql.NullFloat64
		var created interface{}
		if err := rows.Scan(&s.ID, &s.PlayerID, &s.SessionID,
			&runs, &balls, &outs, &ovs, &conceded, &wkts, &created); err != nil {
			return nil, err
		}
		s.RunsScored, s.BallsFaced, s.Dismissals = intPtr(runs), intPtr(balls), intPtr(outs)
		s.OversBowled = floatPtr(ovs)
		s.RunsConceded, s.Wickets = intPtr(conceded), intPtr(wkts)
		s.CreatedAt = parseTimestamp(created)
		out = append(out, s)
	}
	return out, rows.Err()
}

// SessionsByIDs returns the named sessions in date order. Unknown ids are skipped.
func (db *DB) SessionsByIDs(ids []string) ([]model.SessionRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := db.conn.Query(`
		SELECT id, date, focus, age_group, duration_minutes, num_players, notes
		FROM sessions WHERE id IN (`+placeholders(len(ids))+`)
		ORDER BY date, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("sessions by ids: %w", err)
	}
	defer rows.Close()
	return scanSessions(rows)
}

// DrillsForSessions returns the drills planned in the given sessions.
func (db *DB) DrillsForSessions(sessionIDs []string) ([]model.Drill, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}
	rows, err := db.conn.Query(`
		SELECT d.id, d.session_id, d.name, d.type, d.planned_duration_minutes
		FROM drills d
		JOIN sessions s ON s.id = d.session_id
		WHERE d.session_id IN (`+placeholders(len(sessionIDs))+`)
		ORDER BY s.date, d.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("drills for sessions: %w", err)
	}
	defer rows.Close()

	var out []model.Drill
	for rows.Next() {
		var d model.Drill
		var typ string
		if err := rows.Scan(&d.ID, &d.SessionID, &d.Name, &typ, &d.PlannedDurationMinutes); err != nil {
			return nil, err
		}
		d.Type = model.Focus(typ)
		out = append(out, d)
	}
	return out, rows.Err()
}

// DrillRatings returns drill results for the given sessions, resolved through
// their drill to a session and drill type.
func (db *DB) DrillRatings(sessionIDs []string) ([]model.DrillRatingRecord, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}
	rows, err := db.conn.Query(`
		SELECT dr.drill_id, d.session_id, d.type, dr.rating_1_5, dr.notes
		FROM drill_results dr
		JOIN drills d ON d.id = dr.drill_id
		JOIN sessions s ON s.id = d.session_id
		WHERE d.session_id IN (`+placeholders(len(sessionIDs))+`)
		ORDER BY s.date, d.id, dr.rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("drill ratings: %w", err)
	}
	defer rows.Close()

	var out []model.DrillRatingRecord
	for rows.Next() {
		var r model.DrillRatingRecord
		var typ string
		var rating sql.NullInt64
		if err := rows.Scan(&r.DrillID, &r.SessionID, &typ, &rating, &r.Notes); err != nil {
			return nil, err
		}
		r.DrillType = model.Focus(typ)
		r.Rating = intPtr(rating)
		out = append(out, r)
	}
	return out, rows.Err()
}

// MatchPerformancesForPlayer returns a player's scorecard lines in match-date order.
func (db *DB) MatchPerformancesForPlayer(playerID string) ([]model.MatchPerformance, error) {
	return db.MatchPerformancesForPlayers([]string{playerID})
}

// MatchPerformancesForPlayers returns scorecard lines for any of the given
// players in match-date order.
func (db *DB) MatchPerformancesForPlayers(playerIDs []string) ([]model.MatchPerformance, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(playerIDs))
	for i, id := range playerIDs {
		args[i] = id
	}
	rows, err := db.conn.Query(`
		SELECT mp.id, mp.player_id, mp.match_id,
			mp.runs_scored, mp.balls_faced, mp.dismissals,
			mp.overs_bowled, mp.runs_conceded, mp.wickets,
			mp.fours, mp.sixes, mp.catches, mp.stumpings
		FROM match_performances mp
		JOIN matches m ON m.id = mp.match_id
		WHERE mp.player_id IN (`+placeholders(len(playerIDs))+`)
		ORDER BY m.date, mp.id`, args...)
	if err != nil {
		return nil, fmt.Errorf("match performances: %w", err)
	}
	defer rows.Close()

	var out []model.MatchPerformance
	for rows.Next() {
		var p model.MatchPerformance
		var runs, balls, outs, conceded, wkts sql.NullInt64
		var ovs sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.PlayerID, &p.SessionID,
			&runs, &balls, &outs, &ovs, &conceded, &wkts,
			&p.Fours, &p.Sixes, &p.Catches, &p.Stumpings); err != nil {
			return nil, err
		}
		p.RunsScored, p.BallsFaced, p.Dismissals = intPtr(runs), intPtr(balls), intPtr(outs)
		p.OversBowled = floatPtr(ovs)
		p.RunsConceded, p.Wickets = intPtr(conceded), intPtr(wkts)
		out = append(out, p)
	}
	return out, rows.Err()
}

// placeholders returns "?,?,?" for n > 0.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

// parseTimestamp accepts whatever the driver hands back for a DATETIME column.
func parseTimestamp(v interface{}) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		return parseTimestampText(x)
	case []byte:
		return parseTimestampText(string(x))
	}
	return time.Time{}
}

func parseTimestampText(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano, model.DayLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
