package ruleset

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/praetorian-inc/rulebridge/pkg/types"
)

const (
	analyzerIDSuffix    = ".analyzerId"
	ruleNamespaceSuffix = ".ruleNamespace"
)

// Generator builds rule sets from a quality profile. It holds no per-call
// state and is safe for concurrent use.
type Generator struct {
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug output about dropped rules.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g
}

var defaultGenerator = NewGenerator()

// Generate builds a rule set using a default Generator.
func Generate(language string, rules []types.SonarQubeRule, properties map[string]string) (*RuleSet, error) {
	return defaultGenerator.Generate(language, rules, properties)
}

// prefixGroup collects the rules that share a property prefix.
type prefixGroup struct {
	prefix string
	rules  []RuleEntry
}

// Generate builds the rule set for language from the server rules and
// properties.
//
// Built-in and Roslyn SDK rules are grouped per property prefix. Each group
// needs "<prefix>.analyzerId" and "<prefix>.ruleNamespace"; if either is
// missing a *ConfigurationError is returned and no rule set is produced.
// Security plugin rules and rules from unknown repositories are skipped.
// Groups are ordered by analyzer id, rules within a group by id.
func (g *Generator) Generate(language string, rules []types.SonarQubeRule, properties map[string]string) (*RuleSet, error) {
	if language == "" {
		return nil, &ArgumentError{Param: "language"}
	}
	if rules == nil {
		return nil, &ArgumentError{Param: "rules"}
	}
	if properties == nil {
		return nil, &ArgumentError{Param: "properties"}
	}

	var groups []*prefixGroup
	byPrefix := make(map[string]*prefixGroup)

	for _, rule := range rules {
		c := Classify(language, rule)
		if !c.Included() {
			g.logger.Debug("rule excluded from rule set",
				"repository", rule.RepositoryKey,
				"rule", rule.Key,
				"category", c.Category.String())
			continue
		}

		pg, ok := byPrefix[c.PropertyPrefix]
		if !ok {
			pg = &prefixGroup{prefix: c.PropertyPrefix}
			byPrefix[c.PropertyPrefix] = pg
			groups = append(groups, pg)
		}
		pg.rules = append(pg.rules, RuleEntry{ID: rule.Key, Action: actionFor(rule.IsActive)})
	}

	rs := newRuleSet()
	for _, pg := range groups {
		analyzerID, err := requiredProperty(properties, pg.prefix+analyzerIDSuffix)
		if err != nil {
			return nil, err
		}
		namespace, err := requiredProperty(properties, pg.prefix+ruleNamespaceSuffix)
		if err != nil {
			return nil, err
		}

		slices.SortStableFunc(pg.rules, func(a, b RuleEntry) int {
			return strings.Compare(a.ID, b.ID)
		})
		rs.Groups = append(rs.Groups, RuleGroup{
			AnalyzerID:    analyzerID,
			RuleNamespace: namespace,
			Rules:         pg.rules,
		})
	}

	// Two prefixes may resolve to the same analyzer id; both groups are kept
	// in first-seen order.
	slices.SortStableFunc(rs.Groups, func(a, b RuleGroup) int {
		return strings.Compare(a.AnalyzerID, b.AnalyzerID)
	})

	return rs, nil
}

func requiredProperty(properties map[string]string, key string) (string, error) {
	v, ok := properties[key]
	if !ok {
		return "", &ConfigurationError{Key: key}
	}
	return v, nil
}
