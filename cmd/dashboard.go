package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/config"
	"github.com/pable/go-cricket-coach/internal/model"
	"github.com/pable/go-cricket-coach/internal/report"
	"github.com/pable/go-cricket-coach/internal/storage"
	"github.com/pable/go-cricket-coach/internal/summary"
)

var (
	dashPlayer string
	dashRole   string
	dashRange  string
	dashTopN   int
	dashJSON   bool
)

// dashboardCmd prints the coaching overview.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the coaching overview",
	Long: `Show KPIs, recent sessions, top performers, performance and drill-rating
trends, sessions by focus and a coaching insight.

--range limits the overview to the 5 or 10 most recent sessions. --player
restricts stats to one player; --role restricts the player count and the
leaderboard to one role.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	f := dashboardCmd.Flags()
	f.StringVar(&dashPlayer, "player", "", "only count this player's stats")
	f.StringVar(&dashRole, "role", "", "only rank players with this role")
	f.StringVar(&dashRange, "range", "", "all, 5 or 10 most recent sessions (default from config)")
	f.IntVar(&dashTopN, "top", 0, "leaderboard size (default from config)")
	f.BoolVar(&dashJSON, "json", false, "print the dashboard as JSON")
}

// dashboardQuery selects what the dashboard aggregates.
type dashboardQuery struct {
	PlayerID string
	Role     string
	Range    int
	TopN     int
}

func runDashboard(cmd *cobra.Command, args []string) error {
	q, err := dashboardQueryFromFlags()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	v, err := loadDashboard(db, q)
	if err != nil {
		return err
	}
	if !cfg.Features.Insights {
		v.Insight = ""
	}
	if dashJSON {
		return writeJSON(os.Stdout, v)
	}
	report.PrintDashboard(os.Stdout, v)
	return nil
}

func dashboardQueryFromFlags() (dashboardQuery, error) {
	r := cfg.Range
	if dashRange != "" {
		r = dashRange
	}
	n, err := config.ParseRange(r)
	if err != nil {
		return dashboardQuery{}, err
	}
	role, err := parseRoleFilter(dashRole)
	if err != nil {
		return dashboardQuery{}, err
	}
	top := cfg.TopN
	if dashTopN > 0 {
		top = dashTopN
	}
	return dashboardQuery{PlayerID: dashPlayer, Role: role, Range: n, TopN: top}, nil
}

// loadDashboard fetches the in-scope rows and composes the overview.
func loadDashboard(db *storage.DB, q dashboardQuery) (summary.DashboardView, error) {
	sessions, err := db.ListSessions(q.Range)
	if err != nil {
		return summary.DashboardView{}, fmt.Errorf("list sessions: %w", err)
	}
	ids := sessionIDs(sessions)

	records, err := db.StatsForSessions(ids, q.PlayerID)
	if err != nil {
		return summary.DashboardView{}, err
	}
	ratings, err := db.DrillRatings(ids)
	if err != nil {
		return summary.DashboardView{}, fmt.Errorf("drill ratings: %w", err)
	}
	players, err := db.ListPlayers(q.Role)
	if err != nil {
		return summary.DashboardView{}, fmt.Errorf("list players: %w", err)
	}
	count, err := db.CountPlayers(q.Role)
	if err != nil {
		return summary.DashboardView{}, fmt.Errorf("count players: %w", err)
	}

	return summary.Dashboard(summary.DashboardInput{
		PlayerCount: count,
		Sessions:    sessions,
		Recent:      sessions,
		Records:     records,
		Players:     players,
		Ratings:     ratings,
		TopN:        q.TopN,
	}), nil
}

func sessionIDs(sessions []model.SessionRef) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}

// distinctSessionIDs returns the session ids of records in first-seen order.
func distinctSessionIDs(records []model.StatRecord) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range records {
		if !seen[r.SessionID] {
			seen[r.SessionID] = true
			ids = append(ids, r.SessionID)
		}
	}
	return ids
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
