package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/aggregator"
	"github.com/pable/go-cricket-coach/internal/report"
	"github.com/pable/go-cricket-coach/internal/storage"
	"github.com/pable/go-cricket-coach/internal/summary"
)

var trendCmd = &cobra.Command{
	Use:   "trend <player-id>",
	Short: "Per-day performance trend for a player",
	Long: `Show a player's per-day batting and bowling figures in date order, followed
by an early-vs-recent comparison of strike rate, economy and drill ratings.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	name, points, view, err := loadTrend(db, args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		fmt.Println("no sessions found")
		return nil
	}
	fmt.Fprintf(os.Stdout, "\n%s\n\n", name)
	report.PrintTrend(os.Stdout, points)
	fmt.Fprintln(os.Stdout)
	report.PrintTrends(os.Stdout, view.Trends)
	return nil
}

// loadTrend returns the player's name, per-day points and progress view.
func loadTrend(db *storage.DB, playerID string) (string, []aggregator.TrendPoint, summary.ExportView, error) {
	in, err := loadExportInput(db, playerID)
	if err != nil {
		return "", nil, summary.ExportView{}, err
	}
	points := aggregator.BuildTrend(in.Records, aggregator.SessionDates(in.Sessions))
	return in.Player.Name, points, summary.PlayerExport(in), nil
}
