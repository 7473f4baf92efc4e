package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/logging"
	"github.com/pable/go-cricket-coach/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed <fixture.yaml>",
	Short: "Load players, sessions, drills and matches from a YAML file",
	Long: `Load a YAML fixture into the database. Parents are written first, so a
fixture may reference players and teams it defines itself. Rows with an
existing id are replaced.

Example fixture:

  players:
    - {id: asha, name: Asha Patel, role: batter, age_group: U15}
  sessions:
    - id: s1
      date: 2025-03-01
      focus: batting
      duration_minutes: 90
      drills:
        - {name: Front-foot drives, type: batting, planned_minutes: 20, ratings: [4]}
      stats:
        - {player: asha, runs: 34, balls: 41, dismissals: 1}`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	path := args[0]
	fixture, err := seed.LoadFile(path)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := seed.Apply(db, fixture, logger)
	if err != nil {
		logging.Error(logger, "seed failed", err, logging.FieldPath, path)
		return fmt.Errorf("seed %s: %w", path, err)
	}
	logging.Info(logger, "seed complete", logging.FieldPath, path, logging.FieldCount, counts.Stats)

	fmt.Fprintf(os.Stdout, "Loaded %s:\n", path)
	fmt.Fprintf(os.Stdout, "  players       : %d\n", counts.Players)
	fmt.Fprintf(os.Stdout, "  teams         : %d\n", counts.Teams)
	fmt.Fprintf(os.Stdout, "  sessions      : %d\n", counts.Sessions)
	fmt.Fprintf(os.Stdout, "  drills        : %d (%d results)\n", counts.Drills, counts.Ratings)
	fmt.Fprintf(os.Stdout, "  stat rows     : %d\n", counts.Stats)
	fmt.Fprintf(os.Stdout, "  matches       : %d (%d scorecard lines)\n", counts.Matches, counts.Performances)
	return nil
}
