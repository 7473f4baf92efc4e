package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/logging"
	"github.com/pable/go-cricket-coach/internal/model"
	"github.com/pable/go-cricket-coach/internal/overs"
	"github.com/pable/go-cricket-coach/internal/storage"
)

var (
	sessionDate     string
	sessionFocus    string
	sessionAgeGroup string
	sessionMinutes  int
	sessionPlayers  int
	sessionNotes    string

	statPlayer     string
	statSession    string
	statRuns       int
	statBalls      int
	statDismissals int
	statOvers      float64
	statConceded   int
	statWickets    int

	drillSession string
	drillName    string
	drillType    string
	drillMinutes int

	rateNotes string
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage practice sessions",
}

var sessionAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a practice session",
	Args:  cobra.NoArgs,
	RunE:  runSessionAdd,
}

var statCmd = &cobra.Command{
	Use:   "stat",
	Short: "Manage session stat lines",
}

var statAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record one player's stats for a session",
	Long: `Record one player's stats for a session. Only the flags given are stored;
omitted fields stay unrecorded rather than zero.

Overs use cricket notation: 3.4 is three overs and four balls.`,
	Args: cobra.NoArgs,
	RunE: runStatAdd,
}

var drillCmd = &cobra.Command{
	Use:   "drill",
	Short: "Manage session drills",
}

var drillAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a drill to a session",
	Args:  cobra.NoArgs,
	RunE:  runDrillAdd,
}

var rateCmd = &cobra.Command{
	Use:   "rate <drill-id> <1-5>",
	Short: "Rate how a drill went",
	Args:  cobra.ExactArgs(2),
	RunE:  runRate,
}

func init() {
	sf := sessionAddCmd.Flags()
	sf.StringVar(&sessionDate, "date", "", "session date YYYY-MM-DD (default: today)")
	sf.StringVar(&sessionFocus, "focus", string(model.FocusBatting), "batting, bowling, fielding or fitness")
	sf.StringVar(&sessionAgeGroup, "age-group", "", "age group label")
	sf.IntVar(&sessionMinutes, "minutes", 0, "duration in minutes")
	sf.IntVar(&sessionPlayers, "players", 0, "number of players attending")
	sf.StringVar(&sessionNotes, "notes", "", "free-text notes")
	sessionCmd.AddCommand(sessionAddCmd)

	tf := statAddCmd.Flags()
	tf.StringVar(&statPlayer, "player", "", "player id")
	tf.StringVar(&statSession, "session", "", "session id")
	tf.IntVar(&statRuns, "runs", 0, "runs scored")
	tf.IntVar(&statBalls, "balls", 0, "balls faced")
	tf.IntVar(&statDismissals, "dismissals", 0, "times dismissed")
	tf.Float64Var(&statOvers, "overs", 0, "overs bowled in cricket notation")
	tf.IntVar(&statConceded, "conceded", 0, "runs conceded")
	tf.IntVar(&statWickets, "wickets", 0, "wickets taken")
	_ = statAddCmd.MarkFlagRequired("player")
	_ = statAddCmd.MarkFlagRequired("session")
	statCmd.AddCommand(statAddCmd)

	df := drillAddCmd.Flags()
	df.StringVar(&drillSession, "session", "", "session id")
	df.StringVar(&drillName, "name", "", "drill name")
	df.StringVar(&drillType, "type", string(model.FocusBatting), "batting, bowling, fielding or fitness")
	df.IntVar(&drillMinutes, "minutes", 0, "planned duration in minutes")
	_ = drillAddCmd.MarkFlagRequired("session")
	_ = drillAddCmd.MarkFlagRequired("name")
	drillCmd.AddCommand(drillAddCmd)

	rateCmd.Flags().StringVar(&rateNotes, "notes", "", "coach notes for this result")
}

func runSessionAdd(cmd *cobra.Command, args []string) error {
	date := time.Now()
	if sessionDate != "" {
		d, err := time.Parse(model.DayLayout, sessionDate)
		if err != nil {
			return fmt.Errorf("invalid --date %q: want YYYY-MM-DD", sessionDate)
		}
		date = d
	}
	focus, err := parseFocus(sessionFocus)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.InsertSession(model.SessionRef{
		Date:            date,
		Focus:           focus,
		AgeGroup:        sessionAgeGroup,
		DurationMinutes: sessionMinutes,
		NumPlayers:      sessionPlayers,
		Notes:           sessionNotes,
	})
	if err != nil {
		return err
	}
	logging.Info(logger, "session saved", logging.FieldSession, id)
	fmt.Fprintf(os.Stdout, "Saved %s session on %s (%s)\n", focus, date.Format(model.DayLayout), id)
	return nil
}

func runStatAdd(cmd *cobra.Command, args []string) error {
	rec := model.StatRecord{
		PlayerID:     statPlayer,
		SessionID:    statSession,
		RunsScored:   optionalInt(cmd, "runs", statRuns),
		BallsFaced:   optionalInt(cmd, "balls", statBalls),
		Dismissals:   optionalInt(cmd, "dismissals", statDismissals),
		RunsConceded: optionalInt(cmd, "conceded", statConceded),
		Wickets:      optionalInt(cmd, "wickets", statWickets),
	}
	if cmd.Flags().Changed("overs") {
		rec.OversBowled = model.Float(statOvers)
		if !overs.IsWellFormed(statOvers) {
			logging.Warn(logger, "data quality",
				"detail", fmt.Sprintf("overs %v has a ball part of 6 or more; stored as given", statOvers),
				logging.FieldPlayer, statPlayer)
		}
	}
	if !rec.HasBatting() && !rec.HasBowling() {
		return errors.New("nothing to record: give at least one of --runs, --balls, --dismissals, --overs, --conceded, --wickets")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.GetPlayer(statPlayer); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("unknown player %q", statPlayer)
		}
		return err
	}
	id, err := db.InsertStat(rec)
	if err != nil {
		logging.Error(logger, "stat insert failed", err, logging.FieldPlayer, statPlayer, logging.FieldSession, statSession)
		return err
	}
	fmt.Fprintf(os.Stdout, "Saved stats for %s in session %s (%s)\n", statPlayer, statSession, id)
	return nil
}

func runDrillAdd(cmd *cobra.Command, args []string) error {
	typ, err := parseFocus(drillType)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.InsertDrill(model.Drill{
		SessionID:              drillSession,
		Name:                   drillName,
		Type:                   typ,
		PlannedDurationMinutes: drillMinutes,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Saved drill %q (%s)\n", drillName, id)
	return nil
}

func runRate(cmd *cobra.Command, args []string) error {
	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		return fmt.Errorf("invalid rating %q: want a whole number from 1 to 5", args[1])
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.InsertDrillResult(model.DrillRatingRecord{
		DrillID: args[0],
		Rating:  model.Int(rating),
		Notes:   rateNotes,
	}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Rated drill %s: %d/5\n", args[0], rating)
	return nil
}

// optionalInt returns a pointer to v only when the flag was given.
func optionalInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return model.Int(v)
}

func parseFocus(f string) (model.Focus, error) {
	switch model.Focus(f) {
	case model.FocusBatting, model.FocusBowling, model.FocusFielding, model.FocusFitness:
		return model.Focus(f), nil
	}
	return "", fmt.Errorf("invalid focus %q (want batting, bowling, fielding or fitness)", f)
}
