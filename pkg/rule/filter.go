package rule

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// FilterConfig specifies include and exclude patterns for rule filtering.
// Patterns are matched against "repository:key" and use .NET regular
// expression syntax, the dialect rule authors on the server side write in.
type FilterConfig struct {
	Include []string // Regex patterns - only matching rules included
	Exclude []string // Regex patterns - matching rules excluded
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Filter applies include and exclude patterns to rules.
// Include is applied first, then exclude.
// Empty include means "include all".
// Returns error if any pattern is invalid regex.
func Filter(rules []types.SonarQubeRule, config FilterConfig) ([]types.SonarQubeRule, error) {
	if len(rules) == 0 {
		return rules, nil
	}

	includeRegexes, err := compileAll(config.Include)
	if err != nil {
		return nil, err
	}
	excludeRegexes, err := compileAll(config.Exclude)
	if err != nil {
		return nil, err
	}

	result := make([]types.SonarQubeRule, 0, len(rules))
	for _, r := range rules {
		key := r.FullKey()
		if len(includeRegexes) > 0 && !matchesAny(key, includeRegexes) {
			continue
		}
		if matchesAny(key, excludeRegexes) {
			continue
		}
		result = append(result, r)
	}

	return result, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func compileAll(patterns []string) ([]*regexp2.Regexp, error) {
	regexes := make([]*regexp2.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}

func matchesAny(key string, regexes []*regexp2.Regexp) bool {
	for _, re := range regexes {
		// MatchString only fails on timeout, which is not configured.
		if ok, _ := re.MatchString(key); ok {
			return true
		}
	}
	return false
}
