package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "generate" | "action_text" | "close"
	Payload json.RawMessage `json:"payload"`
}

// GeneratePayload is the payload for "generate" requests. A missing rules
// list or properties map is rejected the same way the library rejects nil.
type GeneratePayload struct {
	Language   string                `json:"language"`
	Rules      []types.SonarQubeRule `json:"rules"`
	Properties map[string]string     `json:"properties"`
	Format     string                `json:"format,omitempty"` // "json" (default) | "xml"
}

// GenerateResult is the data field for "generate" responses
type GenerateResult struct {
	RuleSet *ruleset.RuleSet `json:"ruleset,omitempty"`
	XML     string           `json:"xml,omitempty"`
}

// ActionTextPayload is the payload for "action_text" requests. Action is the
// raw enum value so out-of-range values can be reported.
type ActionTextPayload struct {
	Action int `json:"action"`
}

// ActionTextResult is the data field for "action_text" responses
type ActionTextResult struct {
	Text string `json:"text"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "generate" | "action_text" | "decode" | "unknown"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string `json:"version"`
}
