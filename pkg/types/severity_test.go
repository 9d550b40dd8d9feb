package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input    string
		expected Severity
	}{
		{"", SeverityUnknown},
		{"info", SeverityInfo},
		{"MINOR", SeverityMinor},
		{" Major ", SeverityMajor},
		{"CRITICAL", SeverityCritical},
		{"blocker", SeverityBlocker},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sev, err := ParseSeverity(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sev)
		})
	}
}

func TestParseSeverity_Unknown(t *testing.T) {
	_, err := ParseSeverity("urgent")
	assert.Error(t, err)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "MAJOR", SeverityMajor.String())
	assert.Equal(t, "Severity(42)", Severity(42).String())
}

func TestSeverity_JSON(t *testing.T) {
	rule := SonarQubeRule{Key: "S1", RepositoryKey: "csharpsquid", Severity: SeverityCritical}

	data, err := json.Marshal(rule)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"severity":"CRITICAL"`)

	var decoded SonarQubeRule
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, SeverityCritical, decoded.Severity)
}

func TestSonarQubeRule_FullKey(t *testing.T) {
	rule := SonarQubeRule{Key: "S101", RepositoryKey: "csharpsquid"}
	assert.Equal(t, "csharpsquid:S101", rule.FullKey())
}
