package sarif

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI   = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version     = "2.1.0"
	ToolName    = "rulebridge"
	ToolVersion = "0.1.0"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule represents a rule that produced at least one result
type Rule struct {
	ID                   string            `json:"id"`
	DefaultConfiguration RuleConfiguration `json:"defaultConfiguration"`
}

// RuleConfiguration carries the default level of a rule
type RuleConfiguration struct {
	Level string `json:"level"`
}

// Result represents a single issue
type Result struct {
	RuleID           string     `json:"ruleId"`
	RuleIndex        int        `json:"ruleIndex"`
	Level            string     `json:"level"`
	Message          Message    `json:"message"`
	Locations        []Location `json:"locations"`
	RelatedLocations []Location `json:"relatedLocations,omitempty"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	ID               *int             `json:"id,omitempty"`
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
	Message          *Message         `json:"message,omitempty"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column range. Columns are 1-based.
type Region struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn"`
	EndLine     int `json:"endLine"`
	EndColumn   int `json:"endColumn"`
}

// NewReport creates a new SARIF report with initialized structure
func NewReport() *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: ToolVersion,
						Rules:   []Rule{},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// Level maps an issue severity to a SARIF result level.
func Level(s types.Severity) string {
	switch s {
	case types.SeverityBlocker, types.SeverityCritical:
		return "error"
	case types.SeverityMajor, types.SeverityUnknown:
		return "warning"
	default:
		return "note"
	}
}

// AddIssue adds an analysis issue to the report. The rule is registered on
// first use.
func (r *Report) AddIssue(issue *types.AnalysisIssue) {
	run := &r.Runs[0]
	level := Level(issue.Severity)

	index := r.ruleIndex(issue.RuleKey)
	if index < 0 {
		run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, Rule{
			ID:                   issue.RuleKey,
			DefaultConfiguration: RuleConfiguration{Level: level},
		})
		index = len(run.Tool.Driver.Rules) - 1
	}

	result := Result{
		RuleID:    issue.RuleKey,
		RuleIndex: index,
		Level:     level,
		Message:   Message{Text: issue.Message},
		Locations: []Location{{PhysicalLocation: physicalLocation(issue.IssueLocation, issue.FilePath)}},
	}

	// Flow locations without a file of their own belong to the primary file.
	var id int
	for _, flow := range issue.Flows {
		for _, loc := range flow.Locations {
			locID := id
			related := Location{
				ID:               &locID,
				PhysicalLocation: physicalLocation(loc, issue.FilePath),
			}
			if loc.Message != "" {
				related.Message = &Message{Text: loc.Message}
			}
			result.RelatedLocations = append(result.RelatedLocations, related)
			id++
		}
	}

	run.Results = append(run.Results, result)
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// ===== HELPERS =====

func (r *Report) ruleIndex(id string) int {
	for i, rule := range r.Runs[0].Tool.Driver.Rules {
		if rule.ID == id {
			return i
		}
	}
	return -1
}

func physicalLocation(loc types.IssueLocation, fallbackPath string) PhysicalLocation {
	path := loc.FilePath
	if path == "" {
		path = fallbackPath
	}
	return PhysicalLocation{
		ArtifactLocation: ArtifactLocation{URI: formatFileURI(path)},
		Region: Region{
			StartLine:   loc.StartLine,
			StartColumn: loc.StartLineOffset + 1,
			EndLine:     loc.EndLine,
			EndColumn:   loc.EndLineOffset + 1,
		},
	}
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
