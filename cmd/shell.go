package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/aggregator"
	"github.com/pable/go-cricket-coach/internal/config"
	"github.com/pable/go-cricket-coach/internal/report"
	"github.com/pable/go-cricket-coach/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("crickstats shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("crickstats")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		tokens := strings.Fields(line)
		cmd, args := tokens[0], tokens[1:]

		switch cmd {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp()
		case "dashboard":
			shellDashboard(db, args)
		case "top":
			shellTop(db, args)
		case "players":
			shellPlayers(db)
		case "sessions":
			shellSessions(db)
		case "show":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: show <session-id>")
				continue
			}
			shellShow(db, args[0])
		case "trend":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: trend <player-id>")
				continue
			}
			shellTrend(db, args[0])
		case "career":
			if len(args) != 1 {
				cError.Fprintln(os.Stderr, "usage: career <player-id>")
				continue
			}
			shellCareer(db, args[0])
		case "compare":
			if len(args) != 2 {
				cError.Fprintln(os.Stderr, "usage: compare <team1> <team2>")
				continue
			}
			shellCompare(db, args[0], args[1])
		default:
			cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
		}
	}
	return nil
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"dashboard [all|5|10]", "coaching overview over a session range"},
		{"top [metric] [n]", "leaderboard: " + strings.Join(leaderboardNames(), ", ")},
		{"players", "list players"},
		{"sessions", "list sessions, most recent first"},
		{"show <session-id>", "one session's drills and stat lines"},
		{"trend <player-id>", "per-day trend and early-vs-recent form"},
		{"career <player-id>", "match career stats"},
		{"compare <team1> <team2>", "head-to-head of two squads"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-28s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}

func shellErr(err error) {
	cError.Fprintf(os.Stderr, "error: %v\n", err)
}

func shellDashboard(db *storage.DB, args []string) {
	q := dashboardQuery{TopN: cfg.TopN}
	r := cfg.Range
	if len(args) > 0 {
		r = args[0]
	}
	n, err := config.ParseRange(r)
	if err != nil {
		shellErr(err)
		return
	}
	q.Range = n
	v, err := loadDashboard(db, q)
	if err != nil {
		shellErr(err)
		return
	}
	if !cfg.Features.Insights {
		v.Insight = ""
	}
	report.PrintDashboard(os.Stdout, v)
}

func shellTop(db *storage.DB, args []string) {
	metric := aggregator.ByBattingAverage
	n := cfg.TopN
	if len(args) > 0 {
		m, ok := aggregator.Leaderboards[args[0]]
		if !ok {
			cWarn.Fprintf(os.Stderr, "unknown metric %q (want %s)\n", args[0], strings.Join(leaderboardNames(), ", "))
			return
		}
		metric = m
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil || v < 1 {
			cWarn.Fprintf(os.Stderr, "invalid count %q\n", args[1])
			return
		}
		n = v
	}
	entries, err := loadLeaderboard(db, metric, "", n)
	if err != nil {
		shellErr(err)
		return
	}
	if len(entries) == 0 {
		cMuted.Println("No stats recorded yet.")
		return
	}
	cHeader.Fprintf(os.Stdout, "--- Top %d by %s ---\n", n, metric.Name)
	report.PrintLeaderboard(os.Stdout, entries, metric)
}

func shellPlayers(db *storage.DB) {
	players, err := db.ListPlayers("")
	if err != nil {
		shellErr(err)
		return
	}
	if len(players) == 0 {
		cMuted.Println("No players stored yet.")
		return
	}
	report.PrintPlayers(os.Stdout, players)
}

func shellSessions(db *storage.DB) {
	sessions, err := db.ListSessions(0)
	if err != nil {
		shellErr(err)
		return
	}
	if len(sessions) == 0 {
		cMuted.Println("No sessions stored yet.")
		return
	}
	report.PrintSessions(os.Stdout, sessions)
}

func shellShow(db *storage.DB, id string) {
	entry, names, err := loadSession(db, id)
	if err != nil {
		shellErr(err)
		return
	}
	if entry == nil {
		cWarn.Fprintf(os.Stderr, "no session found with id %q\n", id)
		return
	}
	report.PrintSessionDetail(os.Stdout, *entry, names)
}

func shellTrend(db *storage.DB, playerID string) {
	name, points, view, err := loadTrend(db, playerID)
	if err != nil {
		shellErr(err)
		return
	}
	if len(points) == 0 {
		cMuted.Printf("No sessions recorded for %s.\n", name)
		return
	}
	cHeader.Fprintf(os.Stdout, "--- Trend: %s ---\n", name)
	report.PrintTrend(os.Stdout, points)
	fmt.Println()
	report.PrintTrends(os.Stdout, view.Trends)
}

func shellCareer(db *storage.DB, playerID string) {
	name, v, err := loadCareer(db, playerID)
	if err != nil {
		shellErr(err)
		return
	}
	if v.Matches == 0 {
		cMuted.Printf("No match performances recorded for %s.\n", name)
		return
	}
	report.PrintCareer(os.Stdout, name, v)
}

func shellCompare(db *storage.DB, a, b string) {
	v, err := loadComparison(db, a, b)
	if err != nil {
		shellErr(err)
		return
	}
	report.PrintTeamComparison(os.Stdout, v)
}
