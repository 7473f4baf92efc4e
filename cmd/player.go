package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/logging"
	"github.com/pable/go-cricket-coach/internal/model"
)

var (
	playerID         string
	playerName       string
	playerRole       string
	playerAgeGroup   string
	playerBats       string
	playerBowls      string
	playerBowlerType string
)

// playerCmd groups player maintenance subcommands.
var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Manage players",
}

var playerAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace a player",
	Args:  cobra.NoArgs,
	RunE:  runPlayerAdd,
}

func init() {
	f := playerAddCmd.Flags()
	f.StringVar(&playerID, "id", "", "player id (default: generated)")
	f.StringVar(&playerName, "name", "", "player name")
	f.StringVar(&playerRole, "role", string(model.RoleBatter), "batter, bowler, allrounder or keeper")
	f.StringVar(&playerAgeGroup, "age-group", "", "age group label, e.g. U15")
	f.StringVar(&playerBats, "bats", "", "batting arm: left or right")
	f.StringVar(&playerBowls, "bowls", "", "bowling arm: left or right")
	f.StringVar(&playerBowlerType, "bowler-type", "", "bowler type, e.g. off-spin")
	_ = playerAddCmd.MarkFlagRequired("name")

	playerCmd.AddCommand(playerAddCmd)
}

func runPlayerAdd(cmd *cobra.Command, args []string) error {
	role, err := parseRole(playerRole)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.InsertPlayer(model.Player{
		ID:         playerID,
		Name:       playerName,
		Role:       role,
		AgeGroup:   playerAgeGroup,
		BattingArm: playerBats,
		BowlingArm: playerBowls,
		BowlerType: playerBowlerType,
	})
	if err != nil {
		return err
	}
	logging.Info(logger, "player saved", logging.FieldPlayer, id)
	fmt.Fprintf(os.Stdout, "Saved player %s (%s)\n", playerName, id)
	return nil
}

// parseRole accepts one of the four role names.
func parseRole(r string) (model.Role, error) {
	switch model.Role(r) {
	case model.RoleBatter, model.RoleBowler, model.RoleAllRounder, model.RoleKeeper:
		return model.Role(r), nil
	}
	return "", fmt.Errorf("invalid role %q (want batter, bowler, allrounder or keeper)", r)
}

// parseRoleFilter is parseRole for list filters, where empty means all roles.
func parseRoleFilter(r string) (string, error) {
	if r == "" {
		return "", nil
	}
	role, err := parseRole(r)
	return string(role), err
}
