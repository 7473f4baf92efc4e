package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/aggregator"
	"github.com/pable/go-cricket-coach/internal/report"
	"github.com/pable/go-cricket-coach/internal/storage"
)

var (
	topBy   string
	topN    int
	topRole string
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank players on one metric",
	Long: `Rank players by batting average, strike rate, wickets, runs or economy
across every recorded session. Economy ranks lowest first and players who
never bowled are listed last.`,
	Args: cobra.NoArgs,
	RunE: runTop,
}

func init() {
	topCmd.Flags().StringVar(&topBy, "by", aggregator.ByBattingAverage.Name, "metric: "+strings.Join(leaderboardNames(), ", "))
	topCmd.Flags().IntVar(&topN, "n", 0, "how many players to show (default from config)")
	topCmd.Flags().StringVar(&topRole, "role", "", "only rank players with this role")
}

func runTop(cmd *cobra.Command, args []string) error {
	metric, ok := aggregator.Leaderboards[topBy]
	if !ok {
		return fmt.Errorf("unknown metric %q (want %s)", topBy, strings.Join(leaderboardNames(), ", "))
	}
	role, err := parseRoleFilter(topRole)
	if err != nil {
		return err
	}
	n := cfg.TopN
	if topN > 0 {
		n = topN
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := loadLeaderboard(db, metric, role, n)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No stats recorded yet.")
		return nil
	}
	report.PrintLeaderboard(os.Stdout, entries, metric)
	return nil
}

func loadLeaderboard(db *storage.DB, metric aggregator.Metric, role string, n int) ([]aggregator.RankedEntry, error) {
	sessions, err := db.ListSessions(0)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	records, err := db.StatsForSessions(sessionIDs(sessions), "")
	if err != nil {
		return nil, err
	}
	players, err := db.ListPlayers(role)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return aggregator.TopN(aggregator.Candidates(players, records), metric, n), nil
}

func leaderboardNames() []string {
	names := make([]string, 0, len(aggregator.Leaderboards))
	for name := range aggregator.Leaderboards {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
