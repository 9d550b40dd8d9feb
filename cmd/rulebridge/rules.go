package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/praetorian-inc/rulebridge/pkg/rule"
	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
	"github.com/praetorian-inc/rulebridge/pkg/types"
	"github.com/spf13/cobra"
)

var (
	rulesInclude string
	rulesExclude string
	outputFormat string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect quality profile rules",
	Long:  "Commands for listing and classifying the rules of a quality profile",
}

var rulesListCmd = &cobra.Command{
	Use:   "list <profile>",
	Short: "List the rules of a quality profile",
	Long:  "Display every rule of a quality profile with the rule set group it falls into",
	Args:  cobra.ExactArgs(1),
	RunE:  runRulesList,
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rulesListCmd.Flags().StringVar(&rulesInclude, "rules-include", "", "Include rules matching regex pattern (comma-separated)")
	rulesListCmd.Flags().StringVar(&rulesExclude, "rules-exclude", "", "Exclude rules matching regex pattern (comma-separated)")
	rulesListCmd.Flags().StringVar(&outputFormat, "format", "table", "Output format: table, json")
}

// ruleListing is one row of "rules list" output.
type ruleListing struct {
	Key        string         `json:"key"`
	Repository string         `json:"repository"`
	Active     bool           `json:"active"`
	Severity   types.Severity `json:"severity"`
	Category   string         `json:"category"`
	Prefix     string         `json:"prefix,omitempty"`
}

func runRulesList(cmd *cobra.Command, args []string) error {
	profile, err := rule.NewLoader().LoadProfileFile(args[0])
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	rules, err := rule.Filter(profile.Rules, rule.FilterConfig{
		Include: rule.ParsePatterns(rulesInclude),
		Exclude: rule.ParsePatterns(rulesExclude),
	})
	if err != nil {
		return fmt.Errorf("filtering rules: %w", err)
	}

	listings := make([]ruleListing, 0, len(rules))
	for _, r := range rules {
		c := ruleset.Classify(profile.Language, r)
		listings = append(listings, ruleListing{
			Key:        r.Key,
			Repository: r.RepositoryKey,
			Active:     r.IsActive,
			Severity:   r.Severity,
			Category:   c.Category.String(),
			Prefix:     c.PropertyPrefix,
		})
	}

	switch outputFormat {
	case "json":
		return outputRulesJSON(cmd, listings)
	case "table":
		return outputRulesTable(cmd, listings)
	default:
		return fmt.Errorf("unknown output format: %s", outputFormat)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func outputRulesJSON(cmd *cobra.Command, listings []ruleListing) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(listings)
}

func outputRulesTable(cmd *cobra.Command, listings []ruleListing) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Key\tRepository\tActive\tSeverity\tCategory\n")
	fmt.Fprintf(w, "---\t----------\t------\t--------\t--------\n")

	for _, l := range listings {
		category := l.Category
		if l.Prefix != "" {
			category += " (" + l.Prefix + ")"
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\n", l.Key, l.Repository, l.Active, l.Severity, category)
	}

	return nil
}
