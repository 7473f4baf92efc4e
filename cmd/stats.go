package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/report"
	"github.com/pable/go-cricket-coach/internal/summary"
)

var (
	statsPlayer string
	statsLimit  int
	statsJSON   bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Recent team trend, or a player's recent stat lines",
	Long: `Without --player, show the squad's per-day figures for the most recent
session days, newest first. With --player, show that player's stat lines
newest first; fields never recorded are shown as —.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsPlayer, "player", "", "show one player's stat lines")
	statsCmd.Flags().IntVar(&statsLimit, "limit", summary.TeamTrendDays, "how many days or lines to show")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if statsPlayer != "" {
		records, err := db.StatsForPlayer(statsPlayer)
		if err != nil {
			return err
		}
		sessions, err := db.SessionsByIDs(distinctSessionIDs(records))
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		rows := summary.PlayerStatRows(records, sessions, statsLimit)
		if statsJSON {
			return writeJSON(os.Stdout, rows)
		}
		if len(rows) == 0 {
			fmt.Fprintf(os.Stdout, "No stats recorded for %s.\n", statsPlayer)
			return nil
		}
		report.PrintStatRows(os.Stdout, rows)
		return nil
	}

	sessions, err := db.ListSessions(0)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	records, err := db.StatsForSessions(sessionIDs(sessions), "")
	if err != nil {
		return err
	}
	points := summary.TeamTrend(records, sessions, statsLimit)
	if statsJSON {
		return writeJSON(os.Stdout, points)
	}
	if len(points) == 0 {
		fmt.Fprintln(os.Stdout, "No stats recorded yet.")
		return nil
	}
	report.PrintTrend(os.Stdout, points)
	return nil
}
