package ruleset

import (
	"strings"

	"github.com/praetorian-inc/rulebridge/pkg/types"
)

const (
	// RoslynRepositoryPrefix marks repositories populated by Roslyn SDK plugins.
	RoslynRepositoryPrefix = "roslyn."

	// SecurityRepositoryPrefix is followed by the language key.
	SecurityRepositoryPrefix = RoslynRepositoryPrefix + "sonaranalyzer.security."

	// SonarAnalyzerPrefix is followed by the language key to form the property
	// prefix of the built-in analyzer.
	SonarAnalyzerPrefix = "sonaranalyzer-"
)

// sonarRepositories are the repositories of the built-in C# and VB.NET analyzers.
var sonarRepositories = map[string]struct{}{
	"csharpsquid": {},
	"vbnet":       {},
}

// Category is the kind of repository a rule comes from.
type Category int

const (
	CategoryUnsupported Category = iota
	CategorySonarCore
	CategorySecurity
	CategoryThirdParty
)

func (c Category) String() string {
	switch c {
	case CategorySonarCore:
		return "sonar"
	case CategorySecurity:
		return "security"
	case CategoryThirdParty:
		return "third-party"
	default:
		return "unsupported"
	}
}

// Classification is the outcome of Classify. PropertyPrefix is set only for
// categories that end up in the rule set.
type Classification struct {
	Category       Category
	PropertyPrefix string
}

// Included reports whether the rule belongs in a generated rule set.
func (c Classification) Included() bool {
	return c.Category == CategorySonarCore || c.Category == CategoryThirdParty
}

// SecurityRepositoryKey returns the security plugin repository for language.
func SecurityRepositoryKey(language string) string {
	return SecurityRepositoryPrefix + language
}

// SonarPropertyPrefix returns the property prefix of the built-in analyzer.
func SonarPropertyPrefix(language string) string {
	return SonarAnalyzerPrefix + language
}

// Classify decides which group, if any, a rule belongs to.
//
// Rules from both built-in repositories share the prefix derived from
// language: profiles are fetched per language, so a VB.NET rule showing up
// in a C# profile is grouped as C#.
func Classify(language string, rule types.SonarQubeRule) Classification {
	repo := rule.RepositoryKey

	if _, ok := sonarRepositories[repo]; ok {
		return Classification{Category: CategorySonarCore, PropertyPrefix: SonarPropertyPrefix(language)}
	}

	if repo == SecurityRepositoryKey(language) {
		return Classification{Category: CategorySecurity}
	}

	if prefix, ok := strings.CutPrefix(repo, RoslynRepositoryPrefix); ok && prefix != "" {
		return Classification{Category: CategoryThirdParty, PropertyPrefix: prefix}
	}

	return Classification{Category: CategoryUnsupported}
}
