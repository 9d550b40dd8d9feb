package types

// SonarQubeRule is a rule known to the server together with its activation
// state in the quality profile.
type SonarQubeRule struct {
	Key           string            `json:"key" yaml:"key"`               // e.g., "S1481"
	RepositoryKey string            `json:"repository" yaml:"repository"` // e.g., "csharpsquid", "roslyn.wintellect"
	IsActive      bool              `json:"active" yaml:"active"`
	Severity      Severity          `json:"severity,omitempty" yaml:"severity,omitempty"`
	Parameters    map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// FullKey returns "repository:key", the form SonarQube uses in rule references.
func (r SonarQubeRule) FullKey() string {
	return r.RepositoryKey + ":" + r.Key
}

// QualityProfile is the per-language rule catalog plus the server properties
// needed to build a rule set from it.
type QualityProfile struct {
	Language   string
	Rules      []SonarQubeRule
	Properties map[string]string
}
