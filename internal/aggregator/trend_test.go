package aggregator

import (
	"reflect"
	"testing"
	"time"

	"github.com/pable/go-cricket-coach/internal/model"
)

func day(s string) time.Time {
	d, err := time.Parse(model.DayLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func threeSessions() []model.SessionRef {
	return []model.SessionRef{
		{ID: "s3", Date: day("2025-03-10"), Focus: model.FocusBowling},
		{ID: "s1", Date: day("2025-03-01"), Focus: model.FocusBatting},
		{ID: "s2", Date: day("2025-03-05"), Focus: model.FocusBatting},
	}
}

func TestBuildTrend_SortedByDate(t *testing.T) {
	records := []model.StatRecord{
		batting("p1", "s3", 10, 10, 1),
		batting("p1", "s1", 20, 25, 0),
		batting("p2", "s1", 5, 10, 1),
		batting("p1", "s2", 40, 30, 2),
		batting("p1", "unknown", 99, 99, 0),
	}
	points := BuildTrend(records, SessionDates(threeSessions()))
	if len(points) != 3 {
		t.Fatalf("expected 3 trend points, got %d", len(points))
	}
	wantDates := []string{"2025-03-01", "2025-03-05", "2025-03-10"}
	for i, p := range points {
		if p.Date != wantDates[i] {
			t.Errorf("point %d: want %s, got %s", i, wantDates[i], p.Date)
		}
	}
	// 2025-03-01 bucket: 25 runs, 35 balls, 1 dismissal.
	first := points[0]
	if first.Totals.Runs != 25 || first.Totals.BallsFaced != 35 {
		t.Errorf("first bucket totals: %+v", first.Totals)
	}
	if first.Metrics.BattingAverage != 25 {
		t.Errorf("first bucket average: want 25, got %v", first.Metrics.BattingAverage)
	}
	if first.Metrics.StrikeRate != 71.43 {
		t.Errorf("first bucket strike rate: want 71.43, got %v", first.Metrics.StrikeRate)
	}
}

func TestBuildTrend_Idempotent(t *testing.T) {
	records := []model.StatRecord{
		batting("p1", "s1", 20, 25, 0),
		bowling("p1", "s2", 2.3, 20, 1),
		batting("p1", "s3", 10, 10, 1),
	}
	lookup := SessionDates(threeSessions())
	a := BuildTrend(records, lookup)
	b := BuildTrend(records, lookup)
	if !reflect.DeepEqual(a, b) {
		t.Error("BuildTrend should return identical output for identical input")
	}
}

func TestBuildTrend_Empty(t *testing.T) {
	points := BuildTrend(nil, SessionDates(nil))
	if points == nil || len(points) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", points)
	}
}

func TestBuildTrend_SameDayDifferentSessions(t *testing.T) {
	sessions := []model.SessionRef{
		{ID: "am", Date: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)},
		{ID: "pm", Date: time.Date(2025, 4, 1, 17, 0, 0, 0, time.UTC)},
	}
	records := []model.StatRecord{
		bowling("p1", "am", 2, 10, 1),
		bowling("p1", "pm", 2, 14, 2),
	}
	points := BuildTrend(records, SessionDates(sessions))
	if len(points) != 1 {
		t.Fatalf("expected one day bucket, got %d", len(points))
	}
	if points[0].Metrics.WicketsPerUnit != 1.5 {
		t.Errorf("WicketsPerUnit over two sessions: want 1.5, got %v", points[0].Metrics.WicketsPerUnit)
	}
	if points[0].Metrics.Economy != 6 {
		t.Errorf("Economy: want 6, got %v", points[0].Metrics.Economy)
	}
}

func TestBuildRatingTrend(t *testing.T) {
	ratings := []model.DrillRatingRecord{
		{DrillID: "d1", SessionID: "s1", Rating: model.Int(4)},
		{DrillID: "d2", SessionID: "s1", Rating: model.Int(5)},
		{DrillID: "d3", SessionID: "s2", Rating: nil},
		{DrillID: "d4", SessionID: "s3", Rating: model.Int(2)},
	}
	points := BuildRatingTrend(ratings, SessionDates(threeSessions()))
	if len(points) != 2 {
		t.Fatalf("expected 2 rating points, got %d", len(points))
	}
	if points[0].Date != "2025-03-01" || points[0].AvgRating != 4.5 || points[0].Count != 2 {
		t.Errorf("first rating point: %+v", points[0])
	}
	if points[1].Date != "2025-03-10" || points[1].AvgRating != 2 {
		t.Errorf("second rating point: %+v", points[1])
	}
}

func TestLatest(t *testing.T) {
	points := []TrendPoint{{Date: "a"}, {Date: "b"}, {Date: "c"}}
	got := Latest(points, 2)
	if len(got) != 2 || got[0].Date != "c" || got[1].Date != "b" {
		t.Errorf("Latest(2): got %+v", got)
	}
	if all := Latest(points, 0); len(all) != 3 || all[0].Date != "c" {
		t.Errorf("Latest(0): got %+v", all)
	}
	if points[0].Date != "a" {
		t.Error("Latest must not reorder its input")
	}
}

func TestSplitEarlyRecent(t *testing.T) {
	early, recent := SplitEarlyRecent([]int{1, 2, 3, 4, 5})
	if !reflect.DeepEqual(early, []int{1, 2}) || !reflect.DeepEqual(recent, []int{3, 4, 5}) {
		t.Errorf("split of 5: early=%v recent=%v", early, recent)
	}
	e, r := SplitEarlyRecent([]int{})
	if len(e) != 0 || len(r) != 0 {
		t.Errorf("split of empty: early=%v recent=%v", e, r)
	}
}

func TestCompareStrikeRate(t *testing.T) {
	if _, ok := CompareStrikeRate([]model.StatRecord{batting("p", "s1", 10, 10, 0)}); ok {
		t.Error("a single record should not produce a trend")
	}

	improving := []model.StatRecord{
		batting("p", "s1", 10, 20, 0),
		batting("p", "s2", 30, 20, 0),
	}
	c, ok := CompareStrikeRate(improving)
	if !ok {
		t.Fatal("expected a comparison")
	}
	if c.Direction != Improving || *c.Early != 50 || *c.Recent != 150 {
		t.Errorf("improving: got %+v (early=%v recent=%v)", c.Direction, *c.Early, *c.Recent)
	}

	declining := []model.StatRecord{improving[1], improving[0]}
	if c, _ := CompareStrikeRate(declining); c.Direction != Declining {
		t.Errorf("declining: got %s", c.Direction)
	}

	// Equal rates count as improving.
	flat := []model.StatRecord{batting("p", "s1", 10, 10, 0), batting("p", "s2", 20, 20, 0)}
	if c, _ := CompareStrikeRate(flat); c.Direction != Improving {
		t.Errorf("flat: got %s", c.Direction)
	}
}

func TestCompareStrikeRate_MissingDenominatorIsStable(t *testing.T) {
	records := []model.StatRecord{
		bowling("p", "s1", 4, 20, 1),
		batting("p", "s2", 30, 20, 0),
	}
	c, ok := CompareStrikeRate(records)
	if !ok {
		t.Fatal("expected a comparison")
	}
	if c.Direction != Stable || c.Early != nil || c.Recent == nil {
		t.Errorf("got %+v", c)
	}
}

func TestCompareEconomy(t *testing.T) {
	records := []model.StatRecord{
		bowling("p", "s1", 4, 40, 0),
		bowling("p", "s2", 4, 28, 0),
	}
	c, ok := CompareEconomy(records)
	if !ok {
		t.Fatal("expected a comparison")
	}
	if c.Direction != Improving || *c.Early != 10 || *c.Recent != 7 {
		t.Errorf("got %s early=%v recent=%v", c.Direction, *c.Early, *c.Recent)
	}

	worse := []model.StatRecord{records[1], records[0]}
	if c, _ := CompareEconomy(worse); c.Direction != Declining {
		t.Errorf("worse economy: got %s", c.Direction)
	}
}

func TestCompareRatings(t *testing.T) {
	if _, ok := CompareRatings([][]int{{3}}); ok {
		t.Error("one session of ratings should not produce a trend")
	}
	c, ok := CompareRatings([][]int{{2, 3}, {4}, {5, 4}})
	if !ok {
		t.Fatal("expected a comparison")
	}
	// early: {2,3} -> 2.5, recent: {4,5,4} -> 4.3
	if c.Direction != Improving || *c.Early != 2.5 || *c.Recent != 4.3 {
		t.Errorf("got %s early=%v recent=%v", c.Direction, *c.Early, *c.Recent)
	}
	if c, _ := CompareRatings([][]int{{}, {4}}); c.Direction != Stable {
		t.Errorf("unrated early half: got %s", c.Direction)
	}
}
