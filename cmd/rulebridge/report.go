package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/praetorian-inc/rulebridge/pkg/sarif"
	"github.com/praetorian-inc/rulebridge/pkg/store"
	"github.com/praetorian-inc/rulebridge/pkg/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	reportStore  string
	reportFormat string
	reportColor  string
)

// styles holds color formatters for human report output
type styles struct {
	issueHeading *color.Color
	ruleKey      *color.Color
	heading      *color.Color
	metadata     *color.Color
	severity     map[types.Severity]*color.Color
}

// newStyles creates color formatters for report output
// enabled=false respects --color=never and NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		issueHeading: color.New(color.Bold, color.FgHiWhite),
		ruleKey:      color.New(color.FgHiGreen),
		heading:      color.New(color.Bold),
		metadata:     color.New(color.FgHiBlue),
		severity: map[types.Severity]*color.Color{
			types.SeverityBlocker:  color.New(color.Bold, color.FgHiRed),
			types.SeverityCritical: color.New(color.FgRed),
			types.SeverityMajor:    color.New(color.FgYellow),
			types.SeverityMinor:    color.New(color.FgCyan),
			types.SeverityInfo:     color.New(color.FgHiBlack),
			types.SeverityUnknown:  color.New(color.Reset),
		},
	}

	if !enabled {
		s.issueHeading.DisableColor()
		s.ruleKey.DisableColor()
		s.heading.DisableColor()
		s.metadata.DisableColor()
		for _, c := range s.severity {
			c.DisableColor()
		}
	}

	return s
}

func (s *styles) severityColor(sev types.Severity) *color.Color {
	if c, ok := s.severity[sev]; ok {
		return c
	}
	return s.severity[types.SeverityUnknown]
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report stored analysis issues",
	Long:  "Read analysis issues from the store and output them",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportStore, "store", "", "Store path (default from config)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "human", "Output format: human, json, sarif")
	reportCmd.Flags().StringVar(&reportColor, "color", "auto", "Color output: auto, always, never")
}

func runReport(cmd *cobra.Command, args []string) error {
	storePath := firstNonEmpty(reportStore, appConfig.Store.Path)

	if storePath == ":memory:" {
		return fmt.Errorf("cannot report from in-memory store")
	}
	if _, err := os.Stat(storePath); err != nil {
		return fmt.Errorf("store not found: %s", storePath)
	}

	s, err := store.New(store.Config{Path: storePath})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	issues, err := s.GetAllIssues()
	if err != nil {
		return fmt.Errorf("retrieving issues: %w", err)
	}

	switch reportFormat {
	case "json":
		return outputReportJSON(cmd, issues)
	case "human":
		return outputReportHuman(cmd, issues)
	case "sarif":
		return outputReportSARIF(cmd, issues)
	default:
		return fmt.Errorf("unknown output format: %s", reportFormat)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func outputReportJSON(cmd *cobra.Command, issues []*store.StoredIssue) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(issues)
}

func outputReportSARIF(cmd *cobra.Command, issues []*store.StoredIssue) error {
	report := sarif.NewReport()
	for _, issue := range issues {
		report.AddIssue(&issue.AnalysisIssue)
	}

	data, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("encoding SARIF: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// colorEnabled resolves the --color flag against the terminal and NO_COLOR.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
	}
}

func outputReportHuman(cmd *cobra.Command, issues []*store.StoredIssue) error {
	out := cmd.OutOrStdout()

	color.NoColor = !colorEnabled(reportColor)
	s := newStyles(!color.NoColor)

	total := len(issues)
	for i, issue := range issues {
		fmt.Fprintf(out, "%s (%s %s)\n",
			s.issueHeading.Sprintf("Issue %d/%d", i+1, total),
			s.heading.Sprint("rule"),
			s.ruleKey.Sprint(issue.RuleKey))

		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Severity:"), s.severityColor(issue.Severity).Sprint(issue.Severity))
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("File:"), s.metadata.Sprint(issue.FilePath))
		if issue.StartLine > 0 {
			fmt.Fprintf(out, "%s %d:%d-%d:%d\n",
				s.heading.Sprint("Lines:"),
				issue.StartLine, issue.StartLineOffset,
				issue.EndLine, issue.EndLineOffset)
		}
		fmt.Fprintf(out, "%s %s\n", s.heading.Sprint("Message:"), issue.Message)

		for _, flow := range issue.Flows {
			for _, loc := range flow.Locations {
				fmt.Fprintf(out, "    %s %d:%d %s\n",
					s.heading.Sprint("See:"),
					loc.StartLine, loc.StartLineOffset,
					loc.Message)
			}
		}

		fmt.Fprintf(out, "\n")
	}

	fmt.Fprintf(out, "%d issues\n", total)
	return nil
}
