package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-cricket-coach/internal/config"
	"github.com/pable/go-cricket-coach/internal/logging"
	"github.com/pable/go-cricket-coach/internal/storage"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "crickstats",
	Short: "Cricket coaching performance tool",
	Long: `Record practice sessions, drills and match scorecards, and turn them into
coaching dashboards, leaderboards, trends and player progress reports.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (default "+config.DefaultDBPath()+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "crickstats.yaml", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(drillCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(careerCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// loadSettings resolves config, letting explicit flags win over file and env.
func loadSettings(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("db") {
		c.DB = dbPath
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = logLevel
	}
	cfg = c
	dbPath = c.DB
	logger = logging.NewLogger(c.LogLevel, os.Stderr)
	return nil
}

// openDB opens the configured database, creating its directory first.
func openDB() (*storage.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		logging.Error(logger, "open storage failed", err, logging.FieldPath, dbPath)
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}
