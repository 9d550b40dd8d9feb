package analyzer

import (
	"slices"
	"strings"

	"github.com/praetorian-inc/rulebridge/pkg/eslintbridge"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// ProfileRules extracts the active rules of repository from a quality
// profile. It returns the rule list to send with every bridge request and
// the severity lookup for the issue converter. Rule parameters become a
// single eslint configuration object.
func ProfileRules(profile *types.QualityProfile, repository string) ([]eslintbridge.RuleConfig, map[string]types.Severity) {
	rules := []eslintbridge.RuleConfig{}
	severities := make(map[string]types.Severity)
	if profile == nil {
		return rules, severities
	}

	for _, r := range profile.Rules {
		if !r.IsActive || r.RepositoryKey != repository {
			continue
		}
		configurations := []any{}
		if len(r.Parameters) > 0 {
			params := make(map[string]any, len(r.Parameters))
			for k, v := range r.Parameters {
				params[k] = v
			}
			configurations = append(configurations, params)
		}
		rules = append(rules, eslintbridge.RuleConfig{Key: r.Key, Configurations: configurations})
		if r.Severity != types.SeverityUnknown {
			severities[r.Key] = r.Severity
		}
	}

	slices.SortFunc(rules, func(a, b eslintbridge.RuleConfig) int {
		return strings.Compare(a.Key, b.Key)
	})
	return rules, severities
}
