package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/report"
	"github.com/pable/go-cricket-coach/internal/storage"
	"github.com/pable/go-cricket-coach/internal/summary"
)

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one session's drills and stat lines",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	entry, names, err := loadSession(db, args[0])
	if err != nil {
		return err
	}
	if entry == nil {
		fmt.Fprintf(os.Stderr, "No session found with id %q\n", args[0])
		return nil
	}
	report.PrintSessionDetail(os.Stdout, *entry, names)
	return nil
}

// loadSession returns the session log entry for id, or nil when it does not
// exist, together with player names keyed by id.
func loadSession(db *storage.DB, id string) (*summary.SessionEntry, map[string]string, error) {
	ids := []string{id}
	sessions, err := db.SessionsByIDs(ids)
	if err != nil {
		return nil, nil, fmt.Errorf("query session: %w", err)
	}
	if len(sessions) == 0 {
		return nil, nil, nil
	}
	stats, err := db.StatsForSessions(ids, "")
	if err != nil {
		return nil, nil, err
	}
	drills, err := db.DrillsForSessions(ids)
	if err != nil {
		return nil, nil, fmt.Errorf("query drills: %w", err)
	}
	ratings, err := db.DrillRatings(ids)
	if err != nil {
		return nil, nil, fmt.Errorf("query drill ratings: %w", err)
	}
	players, err := db.ListPlayers("")
	if err != nil {
		return nil, nil, fmt.Errorf("list players: %w", err)
	}
	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}
	entry := summary.SessionLog(sessions, stats, drills, ratings)[0]
	return &entry, names, nil
}
