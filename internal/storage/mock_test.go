package storage

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/pable/go-cricket-coach/internal/model"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %s", err)
	}
	t.Cleanup(func() { conn.Close() })
	return New(conn), mock
}

func TestInsertPlayerWrapsError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT OR REPLACE INTO players").
		WithArgs("p1", "Asha", "batter", "", "", "", "").
		WillReturnError(errors.New("disk full"))

	_, err := db.InsertPlayer(model.Player{ID: "p1", Name: "Asha", Role: model.RoleBatter})
	if err == nil || err.Error() != "insert player Asha: disk full" {
		t.Errorf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

func TestInsertStatPassesNulls(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec("INSERT OR REPLACE INTO performance_stats").
		WithArgs("r1", "p1", "s1", 12, nil, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := db.InsertStat(model.StatRecord{ID: "r1", PlayerID: "p1", SessionID: "s1", RunsScored: model.Int(12)})
	if err != nil {
		t.Fatalf("InsertStat: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

func TestInsertStatsRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT OR REPLACE INTO performance_stats")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	err := db.InsertStats([]model.StatRecord{
		{ID: "a", PlayerID: "p1", SessionID: "s1"},
		{ID: "b", PlayerID: "p2", SessionID: "s1"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

func TestGetPlayerNoRowsIsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, name, role").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "role", "age_group", "batting_arm", "bowling_arm", "bowler_type"}))

	_, err := db.GetPlayer("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}

func TestStatsForSessionsQueryError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("FROM performance_stats ps").
		WithArgs("s1", "s2").
		WillReturnError(errors.New("locked"))

	_, err := db.StatsForSessions([]string{"s1", "s2"}, "")
	if err == nil || err.Error() != "stats for sessions: locked" {
		t.Errorf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %s", err)
	}
}
