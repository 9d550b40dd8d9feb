package eslintbridge

// RuleConfig enables an eslint rule with its configuration values.
type RuleConfig struct {
	Key            string `json:"key"`
	Configurations []any  `json:"configurations"`
}

// AnalysisRequest is the body of an analyze-js / analyze-ts call.
type AnalysisRequest struct {
	FilePath             string       `json:"filePath"`
	FileContent          *string      `json:"fileContent"` // nil: the bridge reads the file
	Rules                []RuleConfig `json:"rules"`
	IgnoreHeaderComments bool         `json:"ignoreHeaderComments"`
	TSConfigs            []string     `json:"tsConfigs,omitempty"`
}

// AnalysisResponse is returned by the bridge for a single file.
type AnalysisResponse struct {
	ParsingError *ParsingError `json:"parsingError,omitempty"`
	Issues       []Issue       `json:"issues"`
}

// Issue is a single eslint rule violation. Lines are 1-based, columns 0-based.
type Issue struct {
	Line               int             `json:"line"`
	Column             int             `json:"column"`
	EndLine            int             `json:"endLine"`
	EndColumn          int             `json:"endColumn"`
	Message            string          `json:"message"`
	RuleID             string          `json:"ruleId"`
	SecondaryLocations []IssueLocation `json:"secondaryLocations,omitempty"`
	Cost               *float64        `json:"cost,omitempty"`
}

// IssueLocation is a secondary location attached to an Issue.
type IssueLocation struct {
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
	Message   string `json:"message"`
}

// ParsingErrorCode classifies a file the bridge could not parse.
type ParsingErrorCode string

const (
	ParsingErrorParsing               ParsingErrorCode = "PARSING"
	ParsingErrorMissingTypeScript     ParsingErrorCode = "MISSING_TYPESCRIPT"
	ParsingErrorUnsupportedTypeScript ParsingErrorCode = "UNSUPPORTED_TYPESCRIPT"
	ParsingErrorFailingTypeScript     ParsingErrorCode = "FAILING_TYPESCRIPT"
	ParsingErrorGeneral               ParsingErrorCode = "GENERAL_ERROR"
)

// ParsingError is set on a response instead of issues when parsing failed.
type ParsingError struct {
	Message string           `json:"message"`
	Line    int              `json:"line"`
	Code    ParsingErrorCode `json:"code"`
}
