package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the coaching database",
	Long: `Run an arbitrary SQL query against the coaching database and print results as a table.

Schema overview:
  players(id, name, role, age_group, batting_arm, bowling_arm, bowler_type)
  teams(id, name)
  team_squads(team_id, player_id)
  sessions(id, date TEXT 'YYYY-MM-DD', focus, age_group, duration_minutes, num_players, notes)
  drills(id, session_id, name, type, planned_duration_minutes)
  drill_results(id, drill_id, rating_1_5, notes)
  performance_stats(id, player_id, session_id, runs_scored, balls_faced, dismissals,
    overs_bowled, runs_conceded, wickets, created_at)
  matches(id, team_id, opponent, date, venue, result)
  match_performances(id, match_id, player_id, runs_scored, balls_faced, dismissals,
    overs_bowled, runs_conceded, wickets, fours, sixes, catches, stumpings)

Note: stat columns are NULL when not recorded, and overs_bowled is in cricket
notation (3.4 = 3 overs 4 balls), so do not SUM it directly.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintQueryResult(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}
