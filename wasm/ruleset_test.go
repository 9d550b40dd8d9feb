//go:build wasm

package main

import (
	"encoding/json"
	"strings"
	"testing"
)

const csharpPayload = `{"language":"cs","rules":[` +
	`{"key":"S2","repository":"csharpsquid","active":true},` +
	`{"key":"S1","repository":"csharpsquid","active":false}],` +
	`"properties":{"sonaranalyzer-cs.analyzerId":"SonarAnalyzer.CSharp","sonaranalyzer-cs.ruleNamespace":"SonarAnalyzer.CSharp"}`

// TestGenerateJSON tests the default JSON output
func TestGenerateJSON(t *testing.T) {
	result := generateJSON(csharpPayload + "}")

	if errMsg, hasError := result["error"]; hasError {
		t.Fatalf("Generate failed: %v", errMsg)
	}

	var rs struct {
		Groups []struct {
			AnalyzerID string `json:"analyzerId"`
			Rules      []struct {
				ID     string `json:"id"`
				Action string `json:"action"`
			} `json:"rules"`
		} `json:"groups"`
	}
	if err := json.Unmarshal([]byte(result["ruleset"].(string)), &rs); err != nil {
		t.Fatalf("Failed to parse rule set: %v", err)
	}

	if len(rs.Groups) != 1 || len(rs.Groups[0].Rules) != 2 {
		t.Fatalf("Expected 1 group with 2 rules, got %+v", rs.Groups)
	}
	if rs.Groups[0].Rules[0].ID != "S1" || rs.Groups[0].Rules[0].Action != "None" {
		t.Errorf("Expected S1 first with action None, got %+v", rs.Groups[0].Rules[0])
	}
	if rs.Groups[0].Rules[1].Action != "Warning" {
		t.Errorf("Expected S2 with action Warning, got %+v", rs.Groups[0].Rules[1])
	}
}

// TestGenerateXML tests the rule set document output
func TestGenerateXML(t *testing.T) {
	result := generateJSON(csharpPayload + `,"format":"xml"}`)

	xml, ok := result["xml"].(string)
	if !ok {
		t.Fatalf("Expected xml in result, got %v", result)
	}
	if !strings.Contains(xml, `AnalyzerId="SonarAnalyzer.CSharp"`) {
		t.Errorf("Expected analyzer group in XML, got %s", xml)
	}
}

// TestGenerateErrors tests error reporting
func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"invalid JSON", "not json", "invalid payload"},
		{"missing language", `{"rules":[],"properties":{}}`, "language"},
		{"missing property", `{"language":"cs","rules":[{"key":"S2","repository":"csharpsquid","active":true}],"properties":{}}`, "sonaranalyzer-cs.analyzerId"},
		{"bad format", csharpPayload + `,"format":"csv"}`, "unsupported format: csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := generateJSON(tt.payload)
			errMsg, ok := result["error"].(string)
			if !ok || !strings.Contains(errMsg, tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, result)
			}
		})
	}
}

// TestActionTextFor tests action spelling lookups
func TestActionTextFor(t *testing.T) {
	if got := actionTextFor(1); got["text"] != "Warning" {
		t.Errorf("Expected Warning, got %v", got)
	}
	if got := actionTextFor(42); got["error"] == nil {
		t.Errorf("Expected error for out-of-range action, got %v", got)
	}
}
