package main

import (
	"fmt"
	"log/slog"

	"github.com/praetorian-inc/rulebridge/pkg/config"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string

	// appConfig holds the loaded configuration. Commands run directly in
	// tests see the defaults.
	appConfig = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "rulebridge",
	Short: "rulebridge - SonarQube rule sets and eslint-bridge analysis",
	Long: `rulebridge turns SonarQube quality profiles into Roslyn rule set files
and forwards JavaScript/TypeScript analysis to a running eslint-bridge,
storing the issues it reports.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadAppConfig loads and validates the configuration and installs the
// default logger. Logs go to stderr so stdout stays machine readable.
func loadAppConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	appConfig = cfg

	level := cfg.Logging.Level
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "error"
	}
	slog.SetDefault(config.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Format, level))
	return nil
}
