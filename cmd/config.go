package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the settings this invocation resolved from flags, the config file,
.env and CRICKSTATS_* environment variables, including feature flags.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	fmt.Fprintf(os.Stdout, "  config file   : %s\n", configPath)
	fmt.Fprintf(os.Stdout, "  database      : %s\n", cfg.DB)
	fmt.Fprintf(os.Stdout, "  log level     : %s\n", cfg.LogLevel)
	fmt.Fprintf(os.Stdout, "  range         : %s\n", cfg.Range)
	fmt.Fprintf(os.Stdout, "  top n         : %d\n", cfg.TopN)
	fmt.Fprintln(os.Stdout, "\n  features:")
	fmt.Fprintf(os.Stdout, "    behavioral tracking : %s\n", onOff(cfg.Features.BehavioralTracking))
	fmt.Fprintf(os.Stdout, "    chat                : %s\n", onOff(cfg.Features.Chat))
	fmt.Fprintf(os.Stdout, "    personalization     : %s\n", onOff(cfg.Features.Personalization))
	fmt.Fprintf(os.Stdout, "    search fallback     : %s\n", onOff(cfg.Features.SearchFallback))
	fmt.Fprintf(os.Stdout, "    insights            : %s\n", onOff(cfg.Features.Insights))
	return nil
}
