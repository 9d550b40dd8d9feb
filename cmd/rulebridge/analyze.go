package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/praetorian-inc/rulebridge"
	"github.com/praetorian-inc/rulebridge/pkg/enum"
	"github.com/praetorian-inc/rulebridge/pkg/rule"
	"github.com/praetorian-inc/rulebridge/pkg/store"
	"github.com/praetorian-inc/rulebridge/pkg/types"
	"github.com/spf13/cobra"
)

var (
	analyzeProfiles      []string
	analyzeBridgeURL     string
	analyzeStore         string
	analyzeWorkers       int
	analyzeMaxFileSize   int64
	analyzeIncludeHidden bool
	analyzeTSConfigs     []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <target>...",
	Short: "Analyze JavaScript/TypeScript sources through the eslint-bridge",
	Long: `Walk one or more directories, send every JavaScript and TypeScript file to a running
eslint-bridge and store the issues it reports.

Active rules and severities come from the quality profiles given with
--profile (repositories "javascript" and "typescript"). Files reachable
from several targets are analyzed once.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVar(&analyzeProfiles, "profile", nil, "Quality profile file(s) providing active rules")
	analyzeCmd.Flags().StringVar(&analyzeBridgeURL, "bridge-url", "", "eslint-bridge URL (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeStore, "store", "", "Store path (default from config)")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "Concurrent bridge requests per language (default from config)")
	analyzeCmd.Flags().Int64Var(&analyzeMaxFileSize, "max-file-size", -1, "Maximum file size to analyze in bytes (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	analyzeCmd.Flags().StringSliceVar(&analyzeTSConfigs, "tsconfig", nil, "tsconfig.json file(s) passed to the bridge")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	for _, target := range args {
		if _, err := os.Stat(target); err != nil {
			return fmt.Errorf("target does not exist: %s", target)
		}
	}

	profile, err := mergeProfiles(analyzeProfiles)
	if err != nil {
		return err
	}

	storePath := firstNonEmpty(analyzeStore, appConfig.Store.Path)
	s, err := store.New(store.Config{Path: storePath})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	workers := analyzeWorkers
	if workers <= 0 {
		workers = appConfig.Analysis.Workers
	}

	a, err := rulebridge.NewAnalyzer(
		rulebridge.WithBridgeURL(firstNonEmpty(analyzeBridgeURL, appConfig.Bridge.URL)),
		rulebridge.WithHTTPClient(&http.Client{Timeout: appConfig.Bridge.Timeout}),
		rulebridge.WithProfile(profile),
		rulebridge.WithTSConfigs(analyzeTSConfigs),
		rulebridge.WithWorkers(workers),
		rulebridge.WithLanguages(configuredLanguages()...),
		rulebridge.WithStore(s),
		rulebridge.WithLogger(slog.Default()),
	)
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	maxFileSize := analyzeMaxFileSize
	if maxFileSize < 0 {
		maxFileSize = appConfig.Analysis.MaxFileSize
	}

	enumerators := make([]enum.Enumerator, 0, len(args))
	for _, target := range args {
		enumerators = append(enumerators, enum.NewFilesystemEnumerator(enum.Config{
			Root:          target,
			IncludeHidden: analyzeIncludeHidden,
			MaxFileSize:   maxFileSize,
			Languages:     configuredLanguages(),
		}))
	}

	summary, err := a.Analyze(ctx, enum.NewCombinedEnumerator(enumerators...))
	if err != nil {
		return fmt.Errorf("analyzing: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Analysis complete: %d files, %d issues\n", summary.Files, summary.Issues)
	fmt.Fprintf(cmd.OutOrStdout(), "Results stored in: %s\n", storePath)
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

// mergeProfiles loads every profile file and concatenates their rules.
// With no files, no rules are enabled on the bridge side.
func mergeProfiles(paths []string) (*types.QualityProfile, error) {
	merged := &types.QualityProfile{Properties: map[string]string{}}
	loader := rule.NewLoader()
	for _, path := range paths {
		p, err := loader.LoadProfileFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading profile: %w", err)
		}
		merged.Rules = append(merged.Rules, p.Rules...)
		for k, v := range p.Properties {
			merged.Properties[k] = v
		}
	}
	return merged, nil
}

func configuredLanguages() []types.AnalysisLanguage {
	languages := make([]types.AnalysisLanguage, 0, len(appConfig.Analysis.Languages))
	for _, l := range appConfig.Analysis.Languages {
		languages = append(languages, types.AnalysisLanguage(l))
	}
	return languages
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
