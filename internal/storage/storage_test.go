package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/pable/go-cricket-coach/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func day(s string) time.Time {
	d, err := time.Parse(model.DayLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// seedBasics inserts two players and three sessions out of date order.
func seedBasics(t *testing.T, db *DB) {
	t.Helper()
	players := []model.Player{
		{ID: "p1", Name: "Asha", Role: model.RoleBatter},
		{ID: "p2", Name: "Ben", Role: model.RoleBowler},
	}
	for _, p := range players {
		if _, err := db.InsertPlayer(p); err != nil {
			t.Fatalf("InsertPlayer: %v", err)
		}
	}
	sessions := []model.SessionRef{
		{ID: "s2", Date: day("2025-03-08"), Focus: model.FocusBowling},
		{ID: "s1", Date: day("2025-03-01"), Focus: model.FocusBatting},
		{ID: "s3", Date: day("2025-03-15"), Focus: model.FocusFielding},
	}
	for _, s := range sessions {
		if _, err := db.InsertSession(s); err != nil {
			t.Fatalf("InsertSession: %v", err)
		}
	}
}

func TestPlayerInsertAndGet(t *testing.T) {
	db := openMemDB(t)
	seedBasics(t, db)

	p, err := db.GetPlayer("p2")
	if err != nil {
		t.Fatalf("GetPlayer: %v", err)
	}
	if p.Name != "Ben" || p.Role != model.RoleBowler {
		t.Errorf("got %+v", p)
	}

	_, err = db.GetPlayer("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertPlayerGeneratesID(t *testing.T) {
	db := openMemDB(t)
	id, err := db.InsertPlayer(model.Player{Name: "Cal", Role: model.RoleKeeper})
	if err != nil {
		t.Fatalf("InsertPlayer: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}
	if _, err := db.GetPlayer(id); err != nil {
		t.Errorf("GetPlayer(%s): %v", id, err)
	}
}

func TestListAndCountPlayersByRole(t *testing.T) {
	db := openMemDB(t)
	seedBasics(t, db)

	all, err := db.ListPlayers("")
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Asha" {
		t.Errorf("ListPlayers = %+v", all)
	}
	bowlers, _ := db.ListPlayers("bowler")
	if len(bowlers) != 1 || bowlers[0].ID != "p2" {
		t.Errorf("bowlers = %+v", bowlers)
	}
	n, err := db.CountPlayers("batter")
	if err != nil || n != 1 {
		t.Errorf("CountPlayers(batter) = %d, %v", n, err)
	}
	n, _ = db.CountPlayers("")
	if n != 2 {
		t.Errorf("CountPlayers() = %d", n)
	}
}

func TestListSessionsMostRecentFirst(t *testing.T) {
	db := openMemDB(t)
	seedBasics(t, db)

	got, err := db.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(got) != 2 || got[0].ID != "s3" || got[1].ID != "s2" {
		t.Errorf("ListSessions(2) = %+v", got)
	}
	if !got[0].Date.Equal(day("2025-03-15")) || got[0].Focus != model.FocusFielding {
		t.Errorf("session fields not preserved: %+v", got[0])
	}

	all, _ := db.ListSessions(0)
	if len(all) != 3 {
		t.Errorf("ListSessions(0) returned %d sessions", len(all))
	}
}

func TestSessionsByIDsDateAscending(t *testing.T) {
	db := openMemDB(t)
	seedBasics(t, db)

	got, err := db.SessionsByIDs([]string{"s3", "s1", "missing"})
	if err != nil {
		t.Fatalf("SessionsByIDs: %v", err)
	}
	if len(got) != 2 || got[0].ID != "s1" || got[1].ID != "s3" {
		t.Errorf("SessionsByIDs = %+v", got)
	}
	none, err := db.SessionsByIDs(nil)
	if err != nil || none != nil {
		t.Errorf("SessionsByIDs(nil) = %v, %v", none, err)
	}
}

func TestStatsPreserveMissingFields(t *testing.T) {
	db := openMemDB(t)
	seedBasics(t, db)

	// Batting only: bowling columns stay NULL.
	bat := model.StatRecord{ID: "r1", PlayerID: "p1", SessionID: "s1",
		RunsScored: model.Int(40), BallsFaced: model.Int(30), Dismissals: model.Int(0)}
	bowl := model.StatRecord{ID: "r2", PlayerID: "p2", SessionID: "s2",
		OversBowled: model.Float(3.4), RunsConceded: model.Int(22), Wickets: model.Int(2)}
	for _, s := range []model.StatRecord{bat, bowl} {
		if _, err := db.InsertStat(s); err != nil {
			t.Fatalf("InsertStat: %v", err)
		}
	}

	got, err := db.StatsForPlayer("p1")
	if err != nil {
		t.Fatalf("StatsForPlayer: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	r := got[0]
	if r.RunsScored == nil || *r.RunsScored != 40 {
		t.Errorf("RunsScored = %v", r.RunsScored)
	}
	if r.Dismissals == nil || *r.Dismissals != 0 {
		t.Error("a recorded zero must survive as zero, not nil")
	}
	if r.OversBowled != nil || r.RunsConceded != nil || r.Wickets != nil {
		t.Errorf("unrecorded bowling fields should be nil: %+v", r)
	}

	got, _ = db.StatsForPlayer("p2")
	if len(got) != 1 || got[0].OversBowled == nil || *got[0].OversBowled != 3.4 {
		t.Errorf("overs not preserved: %+v", got)
	}
	if got[0].RunsScored != nil {
		t.Error("unrecorded batting field should be nil")
	}
}

func TestStatsForSessionsFiltersAndOrders(t *testing.T) {
	db := openMemDB(t)
	seedBasics(t, db)

	stats := []model.StatRecord{
		{ID: "a", PlayerID: "p1", SessionID: "s3", RunsScored: model.Int(10)},
		{ID: "b", PlayerID: "p1", SessionID: "s1", RunsScored: model.Int(20)},
		{ID: "c", PlayerID: "p2", SessionID: "s1", RunsScored: model.Int(5)},
		{ID: "d", PlayerID: "p2", SessionID: "s2", Wickets: model.Int(1)},
	}
	if err := db.InsertStats(stats); err != nil {
		t.Fatalf("InsertStats: %v", err)
	}

	got, err := db.StatsForSessions([]string{"s1", "s3"}, "")
	if err != nil {
		t.Fatalf("StatsForSessions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(got))
	}
	if got[len(got)-1].SessionID != "s3" {
		t.Errorf("rows should follow session date, last = %s", got[len(got)-1].SessionID)
	}

	mine, _ := db.StatsForSessions([]string{"s1", "s2", "s3"}, "p2")
	if len(mine) != 2 {
		t.Errorf("player filter returned %d rows", len(mine))
	}

	empty, err := db.StatsForSessions(nil, "")
	if err != nil || len(empty) != 0 {
		t.Errorf("empty scope = %v, %v", empty, err)
	}
}

func TestDrillRatingsResolveSessionAndType(t *testing.T) {
	db := openMemDB(t)
	seedBasics(t, db)

	if _, err := db.InsertDrill(model.Drill{ID: "d1", SessionID: "s3", Name: "Slip catching", Type: model.FocusFielding}); err != nil {
		t.Fatalf("InsertDrill: %v", err)
	}
	if err := db.InsertDrillResult(model.DrillRatingRecord{DrillID: "d1", Rating: model.Int(4)}); err != nil {
		t.Fatalf("InsertDrillResult: %v", err)
	}
	if err := db.InsertDrillResult(model.DrillRatingRecord{DrillID: "d1", Notes: "not rated"}); err != nil {
		t.Fatalf("InsertDrillResult: %v", err)
	}
	if err := db.InsertDrillResult(model.DrillRatingRecord{DrillID: "d1", Rating: model.Int(9)}); err == nil {
		t.Error("expected out-of-range rating to be rejected")
	}

	drills, err := db.DrillsForSessions([]string{"s3", "s1"})
	if err != nil || len(drills) != 1 || drills[0].Name != "Slip catching" {
		t.Errorf("DrillsForSessions = %+v, %v", drills, err)
	}

	got, err := db.DrillRatings([]string{"s3"})
	if err != nil {
		t.Fatalf("DrillRatings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	rated := 0
	for _, r := range got {
		if r.SessionID != "s3" || r.DrillType != model.FocusFielding {
			t.Errorf("unresolved record: %+v", r)
		}
		if r.Rating != nil {
			rated++
		}
	}
	if rated != 1 {
		t.Errorf("rated = %d, want 1", rated)
	}
}

func TestTeamsAndSquads(t *testing.T) {
	db := openMemDB(t)
	seedBasics(t, db)

	if _, err := db.InsertTeam(model.Team{ID: "t1", Name: "Colts"}); err != nil {
		t.Fatalf("InsertTeam: %v", err)
	}
	for _, pid := range []string{"p2", "p1", "p1"} {
		if err := db.AddSquadMember("t1", pid); err != nil {
			t.Fatalf("AddSquadMember: %v", err)
		}
	}
	squad, err := db.ListSquad("t1")
	if err != nil {
		t.Fatalf("ListSquad: %v", err)
	}
	if len(squad) != 2 || squad[0].Name != "Asha" {
		t.Errorf("squad = %+v", squad)
	}
	if _, err := db.GetTeam("t9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetTeam(t9) = %v", err)
	}
	teams, _ := db.ListTeams()
	if len(teams) != 1 {
		t.Errorf("ListTeams = %+v", teams)
	}
}

func TestMatchPerformances(t *testing.T) {
	db := openMemDB(t)
	seedBasics(t, db)

	matches := []model.Match{
		{ID: "m2", Opponent: "Rovers", Date: day("2025-04-12")},
		{ID: "m1", Opponent: "Tigers", Date: day("2025-04-05")},
	}
	for _, m := range matches {
		if _, err := db.InsertMatch(m); err != nil {
			t.Fatalf("InsertMatch: %v", err)
		}
	}
	perfs := []model.MatchPerformance{
		{StatRecord: model.StatRecord{ID: "x1", PlayerID: "p1", SessionID: "m2", RunsScored: model.Int(55), BallsFaced: model.Int(40)}, Fours: 6, Catches: 1},
		{StatRecord: model.StatRecord{ID: "x2", PlayerID: "p1", SessionID: "m1", RunsScored: model.Int(12)}},
		{StatRecord: model.StatRecord{ID: "x3", PlayerID: "p2", SessionID: "m1", OversBowled: model.Float(4), RunsConceded: model.Int(18), Wickets: model.Int(3)}},
	}
	for _, p := range perfs {
		if _, err := db.InsertMatchPerformance(p); err != nil {
			t.Fatalf("InsertMatchPerformance: %v", err)
		}
	}

	got, err := db.MatchPerformancesForPlayer("p1")
	if err != nil {
		t.Fatalf("MatchPerformancesForPlayer: %v", err)
	}
	if len(got) != 2 || got[0].SessionID != "m1" {
		t.Errorf("expected match-date order, got %+v", got)
	}
	if got[1].Fours != 6 || got[1].Catches != 1 || *got[1].RunsScored != 55 {
		t.Errorf("scorecard not preserved: %+v", got[1])
	}

	both, _ := db.MatchPerformancesForPlayers([]string{"p1", "p2"})
	if len(both) != 3 {
		t.Errorf("expected 3 lines, got %d", len(both))
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)
	seedBasics(t, db)

	cols, rows, err := db.QueryRaw("SELECT id, name FROM players ORDER BY id")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 2 || cols[1] != "name" {
		t.Errorf("cols = %v", cols)
	}
	if len(rows) != 2 || rows[0][0] != "p1" || rows[1][1] != "Ben" {
		t.Errorf("rows = %v", rows)
	}
	if _, _, err := db.QueryRaw("SELECT nope FROM nowhere"); err == nil {
		t.Error("expected error for bad query")
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := openMemDB(t)
	_, err := db.InsertStat(model.StatRecord{PlayerID: "ghost", SessionID: "ghost"})
	if err == nil {
		t.Error("expected foreign key violation for unknown player/session")
	}
}
