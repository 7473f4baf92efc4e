package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/report"
)

var (
	listRole  string
	listLimit int
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players",
	Args:  cobra.NoArgs,
	RunE:  runPlayers,
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List practice sessions, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func init() {
	playersCmd.Flags().StringVar(&listRole, "role", "", "only list one role")
	sessionsCmd.Flags().IntVar(&listLimit, "limit", 0, "show at most this many sessions (0 = all)")
}

func runPlayers(cmd *cobra.Command, args []string) error {
	role, err := parseRoleFilter(listRole)
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	players, err := db.ListPlayers(role)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	if len(players) == 0 {
		fmt.Fprintln(os.Stdout, "No players stored yet. Run 'crickstats player add' or 'crickstats seed <file.yaml>'.")
		return nil
	}
	report.PrintPlayers(os.Stdout, players)
	return nil
}

func runSessions(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := db.ListSessions(listLimit)
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stdout, "No sessions stored yet. Run 'crickstats session add' to record one.")
		return nil
	}
	report.PrintSessions(os.Stdout, sessions)
	return nil
}
