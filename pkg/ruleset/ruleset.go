package ruleset

// Fixed header attributes of every generated rule set.
const (
	DefaultName         = "Rules for SonarQube"
	DefaultDescription  = "This rule set was automatically generated from SonarQube"
	DefaultToolsVersion = "14.0"
)

// RuleEntry is a single rule and the action it is reported with.
type RuleEntry struct {
	ID     string `json:"id" yaml:"id" xml:"Id,attr"`
	Action Action `json:"action" yaml:"action" xml:"Action,attr"`
}

// RuleGroup holds the rules of one analyzer.
type RuleGroup struct {
	AnalyzerID    string      `json:"analyzerId" yaml:"analyzerId" xml:"AnalyzerId,attr"`
	RuleNamespace string      `json:"ruleNamespace" yaml:"ruleNamespace" xml:"RuleNamespace,attr"`
	Rules         []RuleEntry `json:"rules" yaml:"rules" xml:"Rule"`
}

// RuleSet is the configuration document consumed by the Roslyn analyzer host.
type RuleSet struct {
	Name         string      `json:"name" yaml:"name"`
	Description  string      `json:"description" yaml:"description"`
	ToolsVersion string      `json:"toolsVersion" yaml:"toolsVersion"`
	Groups       []RuleGroup `json:"groups" yaml:"groups"`
}

// newRuleSet returns an empty rule set carrying the fixed header.
func newRuleSet() *RuleSet {
	return &RuleSet{
		Name:         DefaultName,
		Description:  DefaultDescription,
		ToolsVersion: DefaultToolsVersion,
		Groups:       []RuleGroup{},
	}
}

// RuleCount returns the number of entries across all groups.
func (rs *RuleSet) RuleCount() int {
	n := 0
	for _, g := range rs.Groups {
		n += len(g.Rules)
	}
	return n
}

// Lookup returns the action for a rule id within the group of analyzerID.
func (rs *RuleSet) Lookup(analyzerID, ruleID string) (Action, bool) {
	for _, g := range rs.Groups {
		if g.AnalyzerID != analyzerID {
			continue
		}
		for _, r := range g.Rules {
			if r.ID == ruleID {
				return r.Action, true
			}
		}
	}
	return 0, false
}
