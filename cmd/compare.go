package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/logging"
	"github.com/pable/go-cricket-coach/internal/model"
	"github.com/pable/go-cricket-coach/internal/report"
	"github.com/pable/go-cricket-coach/internal/storage"
	"github.com/pable/go-cricket-coach/internal/summary"
)

var compareJSON bool

var compareCmd = &cobra.Command{
	Use:   "compare <team1> <team2>",
	Short: "Compare the match records of two squads",
	Long: `Aggregate the match scorecards of each team's squad and name the side
ahead on runs, wickets, batting average, strike rate, economy, catches and
highest score. Teams may be given by id or by name.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "print as JSON")
}

func runCompare(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	v, err := loadComparison(db, args[0], args[1])
	if err != nil {
		return err
	}
	if compareJSON {
		return writeJSON(os.Stdout, v)
	}
	report.PrintTeamComparison(os.Stdout, v)
	return nil
}

func loadComparison(db *storage.DB, ref1, ref2 string) (summary.ComparisonView, error) {
	a, err := loadTeamInput(db, ref1)
	if err != nil {
		return summary.ComparisonView{}, err
	}
	b, err := loadTeamInput(db, ref2)
	if err != nil {
		return summary.ComparisonView{}, err
	}
	return summary.CompareTeams(a, b), nil
}

func loadTeamInput(db *storage.DB, ref string) (summary.TeamInput, error) {
	team, err := resolveTeam(db, ref)
	if err != nil {
		return summary.TeamInput{}, err
	}
	squad, err := db.ListSquad(team.ID)
	if err != nil {
		return summary.TeamInput{}, fmt.Errorf("squad of %s: %w", team.Name, err)
	}
	ids := make([]string, len(squad))
	for i, p := range squad {
		ids[i] = p.ID
	}
	perfs, err := db.MatchPerformancesForPlayers(ids)
	if err != nil {
		return summary.TeamInput{}, err
	}
	logging.Debug(logger, "team loaded", logging.FieldTeam, team.ID, logging.FieldCount, len(perfs))
	return summary.TeamInput{Team: team, Squad: squad, Performances: perfs}, nil
}

// resolveTeam looks ref up as an id first, then as a case-insensitive name.
func resolveTeam(db *storage.DB, ref string) (model.Team, error) {
	t, err := db.GetTeam(ref)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return model.Team{}, fmt.Errorf("get team: %w", err)
	}
	teams, err := db.ListTeams()
	if err != nil {
		return model.Team{}, fmt.Errorf("list teams: %w", err)
	}
	for _, t := range teams {
		if strings.EqualFold(t.Name, ref) {
			return t, nil
		}
	}
	return model.Team{}, fmt.Errorf("unknown team %q", ref)
}
