package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/praetorian-inc/rulebridge/pkg/rule"
	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
	"github.com/praetorian-inc/rulebridge/pkg/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	generateInclude string
	generateExclude string
	generateOutput  string
	generateFormat  string
	generateSave    bool
	generateStore   string
)

var generateCmd = &cobra.Command{
	Use:   "generate <profile>",
	Short: "Generate a Roslyn rule set from a quality profile",
	Long: `Generate a Roslyn rule set from a SonarQube quality profile file.

Built-in and Roslyn SDK rules are grouped per analyzer; security plugin
rules and rules from unknown repositories are left out. The profile must
carry the analyzerId and ruleNamespace properties of every analyzer used.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateInclude, "rules-include", "", "Include rules whose repository:key matches a regex pattern (comma-separated)")
	generateCmd.Flags().StringVar(&generateExclude, "rules-exclude", "", "Exclude rules whose repository:key matches a regex pattern (comma-separated)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output file (default stdout)")
	generateCmd.Flags().StringVar(&generateFormat, "format", "xml", "Output format: xml, json, yaml")
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "Save the rule set in the store")
	generateCmd.Flags().StringVar(&generateStore, "store", "", "Store path (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	switch generateFormat {
	case "xml", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format: %s", generateFormat)
	}

	profile, err := rule.NewLoader().LoadProfileFile(args[0])
	if err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	rules, err := rule.Filter(profile.Rules, rule.FilterConfig{
		Include: rule.ParsePatterns(generateInclude),
		Exclude: rule.ParsePatterns(generateExclude),
	})
	if err != nil {
		return fmt.Errorf("filtering rules: %w", err)
	}

	generator := ruleset.NewGenerator(ruleset.WithLogger(slog.Default()))
	rs, err := generator.Generate(profile.Language, rules, profile.Properties)
	if err != nil {
		return fmt.Errorf("generating rule set: %w", err)
	}

	if generateSave {
		if err := saveRuleSet(profile.Language, rs); err != nil {
			return err
		}
	}

	if generateOutput == "" {
		return writeRuleSet(cmd.OutOrStdout(), rs, generateFormat)
	}

	if err := writeRuleSetFile(generateOutput, rs, generateFormat); err != nil {
		return err
	}

	slog.Info("rule set written", "path", generateOutput, "groups", len(rs.Groups), "rules", rs.RuleCount())
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func writeRuleSet(w io.Writer, rs *ruleset.RuleSet, format string) error {
	switch format {
	case "xml":
		return rs.WriteXML(w)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rs)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(rs); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func writeRuleSetFile(path string, rs *ruleset.RuleSet, format string) error {
	if format == "xml" {
		return rs.WriteFile(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := writeRuleSet(f, rs, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func saveRuleSet(language string, rs *ruleset.RuleSet) error {
	path := generateStore
	if path == "" {
		path = appConfig.Store.Path
	}

	s, err := store.New(store.Config{Path: path})
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer s.Close()

	if err := s.SaveRuleSet(language, rs); err != nil {
		return fmt.Errorf("saving rule set: %w", err)
	}
	return nil
}
