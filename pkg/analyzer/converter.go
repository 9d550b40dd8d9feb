package analyzer

import (
	"github.com/praetorian-inc/rulebridge/pkg/eslintbridge"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// Rule repositories for issues raised through the bridge.
const (
	JavaScriptRepository = "javascript"
	TypeScriptRepository = "typescript"
)

// IssueConverter turns a bridge issue into a host issue.
type IssueConverter interface {
	Convert(filePath string, issue eslintbridge.Issue) types.AnalysisIssue
}

// EslintIssueConverter prefixes eslint rule ids with a repository and looks
// up severities by rule id.
type EslintIssueConverter struct {
	repository string
	severities map[string]types.Severity
}

// NewEslintIssueConverter creates a converter for repository. severities maps
// eslint rule ids to server severities; rules not listed are Major.
func NewEslintIssueConverter(repository string, severities map[string]types.Severity) *EslintIssueConverter {
	if severities == nil {
		severities = map[string]types.Severity{}
	}
	return &EslintIssueConverter{
		repository: repository,
		severities: severities,
	}
}

// Convert implements IssueConverter. Secondary locations become a single
// flow, in the order the bridge reported them.
func (c *EslintIssueConverter) Convert(filePath string, issue eslintbridge.Issue) types.AnalysisIssue {
	severity, ok := c.severities[issue.RuleID]
	if !ok {
		severity = types.SeverityMajor
	}

	out := types.AnalysisIssue{
		RuleKey:  c.repository + ":" + issue.RuleID,
		Severity: severity,
		IssueLocation: types.IssueLocation{
			FilePath:        filePath,
			Message:         issue.Message,
			StartLine:       issue.Line,
			EndLine:         issue.EndLine,
			StartLineOffset: issue.Column,
			EndLineOffset:   issue.EndColumn,
		},
	}

	if len(issue.SecondaryLocations) > 0 {
		locations := make([]types.IssueLocation, 0, len(issue.SecondaryLocations))
		for _, sl := range issue.SecondaryLocations {
			locations = append(locations, types.IssueLocation{
				FilePath:        filePath,
				Message:         sl.Message,
				StartLine:       sl.Line,
				EndLine:         sl.EndLine,
				StartLineOffset: sl.Column,
				EndLineOffset:   sl.EndColumn,
			})
		}
		out.Flows = []types.IssueFlow{{Locations: locations}}
	}

	return out
}
