package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/logging"
	"github.com/pable/go-cricket-coach/internal/report"
	"github.com/pable/go-cricket-coach/internal/storage"
	"github.com/pable/go-cricket-coach/internal/summary"
)

var (
	exportFormat string
	exportOut    string
	exportRender bool
	exportStyle  string
	exportWidth  int
)

var exportCmd = &cobra.Command{
	Use:   "export <player-id>",
	Short: "Export a player progress report",
	Long: `Build a progress report for one player from every session they have stats
in: reporting period, batting and bowling figures, drill ratings, a
session-by-session log, early-vs-recent trends and takeaways.

--format md writes Markdown; --render styles it for the terminal instead of
writing raw Markdown. --format json writes the same report as JSON.

Example:
  crickstats export asha --format md --out asha.md
  crickstats export asha --render`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "output format: md or json")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
	exportCmd.Flags().BoolVar(&exportRender, "render", false, "render Markdown for the terminal")
	exportCmd.Flags().StringVar(&exportStyle, "style", "dark", "terminal style when rendering: dark, light or notty")
	exportCmd.Flags().IntVar(&exportWidth, "width", 100, "word-wrap width when rendering")
}

func runExport(_ *cobra.Command, args []string) error {
	if exportFormat != "md" && exportFormat != "json" {
		return fmt.Errorf("invalid --format %q (want md or json)", exportFormat)
	}
	if exportRender && exportFormat != "md" {
		return errors.New("--render only applies to --format md")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	in, err := loadExportInput(db, args[0])
	if err != nil {
		return err
	}
	in.Generated = time.Now()
	v := summary.PlayerExport(in)

	w := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if exportFormat == "json" {
		if err := writeJSON(w, v); err != nil {
			return err
		}
	} else {
		md := report.ExportMarkdown(v)
		if exportRender {
			md, err = report.RenderMarkdown(md, exportStyle, exportWidth)
			if err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, md); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if exportOut != "" {
		logging.Info(logger, "report written", logging.FieldPlayer, v.Player.ID, logging.FieldPath, exportOut)
		fmt.Fprintf(os.Stderr, "Wrote %s (%d sessions)\n", exportOut, v.SessionCount)
	}
	return nil
}

// loadExportInput gathers a player's stat rows and the sessions, drills and
// ratings those rows belong to.
func loadExportInput(db *storage.DB, playerID string) (summary.ExportInput, error) {
	player, err := db.GetPlayer(playerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return summary.ExportInput{}, fmt.Errorf("unknown player %q", playerID)
		}
		return summary.ExportInput{}, fmt.Errorf("get player: %w", err)
	}
	records, err := db.StatsForPlayer(playerID)
	if err != nil {
		return summary.ExportInput{}, err
	}

	ids := distinctSessionIDs(records)
	sessions, err := db.SessionsByIDs(ids)
	if err != nil {
		return summary.ExportInput{}, fmt.Errorf("query sessions: %w", err)
	}
	drills, err := db.DrillsForSessions(ids)
	if err != nil {
		return summary.ExportInput{}, fmt.Errorf("query drills: %w", err)
	}
	ratings, err := db.DrillRatings(ids)
	if err != nil {
		return summary.ExportInput{}, fmt.Errorf("query drill ratings: %w", err)
	}
	logging.Debug(logger, "export input loaded",
		logging.FieldPlayer, playerID, logging.FieldCount, len(records), "sessions", len(sessions))

	return summary.ExportInput{
		Player:   player,
		Records:  records,
		Sessions: sessions,
		Drills:   drills,
		Ratings:  ratings,
	}, nil
}
