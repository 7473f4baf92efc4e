package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/report"
	"github.com/pable/go-cricket-coach/internal/storage"
	"github.com/pable/go-cricket-coach/internal/summary"
)

var careerJSON bool

// careerCmd shows a player's match record, as opposed to practice sessions.
var careerCmd = &cobra.Command{
	Use:   "career <player-id>",
	Short: "Match career stats for a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runCareer,
}

func init() {
	careerCmd.Flags().BoolVar(&careerJSON, "json", false, "print as JSON")
}

func runCareer(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	name, v, err := loadCareer(db, args[0])
	if err != nil {
		return err
	}
	if careerJSON {
		return writeJSON(os.Stdout, v)
	}
	if v.Matches == 0 {
		fmt.Fprintf(os.Stdout, "No match performances recorded for %s.\n", name)
		return nil
	}
	report.PrintCareer(os.Stdout, name, v)
	return nil
}

func loadCareer(db *storage.DB, playerID string) (string, summary.CareerView, error) {
	p, err := db.GetPlayer(playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", summary.CareerView{}, fmt.Errorf("unknown player %q", playerID)
		}
		return "", summary.CareerView{}, fmt.Errorf("get player: %w", err)
	}
	perfs, err := db.MatchPerformancesForPlayer(playerID)
	if err != nil {
		return "", summary.CareerView{}, err
	}
	return p.Name, summary.PlayerCareer(perfs), nil
}
