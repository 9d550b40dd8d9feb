package types

// IssueLocation is a message anchored to a text range (1-based lines,
// 0-based line offsets).
type IssueLocation struct {
	FilePath        string `json:"filePath"`
	Message         string `json:"message"`
	StartLine       int    `json:"startLine"`
	EndLine         int    `json:"endLine"`
	StartLineOffset int    `json:"startLineOffset"`
	EndLineOffset   int    `json:"endLineOffset"`
}

// IssueFlow is an ordered list of secondary locations.
type IssueFlow struct {
	Locations []IssueLocation `json:"locations"`
}

// AnalysisIssue is an issue reported by an analyzer in the host's model.
type AnalysisIssue struct {
	RuleKey  string   `json:"ruleKey"` // "repository:rule", e.g. "javascript:S1481"
	Severity Severity `json:"severity"`
	IssueLocation
	Flows []IssueFlow `json:"flows,omitempty"`
}
