package rule

import (
	"fmt"

	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// ValidateProfile checks profile consistency and required fields.
func ValidateProfile(p *types.QualityProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}
	if p.Language == "" {
		return fmt.Errorf("profile language is required")
	}

	seen := make(map[string]bool)
	for i, r := range p.Rules {
		if err := ValidateRule(r); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
		key := r.FullKey()
		if seen[key] {
			return fmt.Errorf("profile %s contains duplicate rule: %s", p.Language, key)
		}
		seen[key] = true
	}

	return nil
}

// ValidateRule checks rule required fields.
func ValidateRule(r types.SonarQubeRule) error {
	if r.Key == "" {
		return fmt.Errorf("rule key is required")
	}
	if r.RepositoryKey == "" {
		return fmt.Errorf("rule %s: repository is required", r.Key)
	}
	return nil
}
