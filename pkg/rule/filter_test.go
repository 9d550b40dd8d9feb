package rule

import (
	"testing"

	"github.com/praetorian-inc/rulebridge/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRules() []types.SonarQubeRule {
	return []types.SonarQubeRule{
		{RepositoryKey: "csharpsquid", Key: "S101"},
		{RepositoryKey: "csharpsquid", Key: "S1481"},
		{RepositoryKey: "roslyn.wintellect", Key: "Wintellect003"},
		{RepositoryKey: "roslyn.sonaranalyzer.security.cs", Key: "S2083"},
	}
}

func fullKeys(rules []types.SonarQubeRule) []string {
	keys := make([]string, 0)
	for _, r := range rules {
		keys = append(keys, r.FullKey())
	}
	return keys
}

func TestParsePatterns(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string returns empty slice",
			input:    "",
			expected: []string{},
		},
		{
			name:     "single pattern",
			input:    "csharpsquid:.*",
			expected: []string{"csharpsquid:.*"},
		},
		{
			name:     "patterns with spaces are trimmed",
			input:    " csharpsquid:.* , roslyn\\..* ,, ",
			expected: []string{"csharpsquid:.*", "roslyn\\..*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParsePatterns(tt.input))
		})
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		config   FilterConfig
		expected []string
	}{
		{
			name:     "empty config returns all rules",
			config:   FilterConfig{},
			expected: []string{"csharpsquid:S101", "csharpsquid:S1481", "roslyn.wintellect:Wintellect003", "roslyn.sonaranalyzer.security.cs:S2083"},
		},
		{
			name:     "include one repository",
			config:   FilterConfig{Include: []string{"^csharpsquid:"}},
			expected: []string{"csharpsquid:S101", "csharpsquid:S1481"},
		},
		{
			name:     "exclude roslyn repositories",
			config:   FilterConfig{Exclude: []string{`^roslyn\.`}},
			expected: []string{"csharpsquid:S101", "csharpsquid:S1481"},
		},
		{
			name:     "include then exclude",
			config:   FilterConfig{Include: []string{"^csharpsquid:"}, Exclude: []string{"S1481$"}},
			expected: []string{"csharpsquid:S101"},
		},
		{
			name:     "negative lookahead",
			config:   FilterConfig{Include: []string{`^roslyn\.(?!sonaranalyzer\.security)`}},
			expected: []string{"roslyn.wintellect:Wintellect003"},
		},
		{
			name:     "include matches none",
			config:   FilterConfig{Include: []string{"^vbnet:"}},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, err := Filter(sampleRules(), tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, fullKeys(filtered))
		})
	}
}

func TestFilter_InvalidRegex(t *testing.T) {
	tests := []struct {
		name   string
		config FilterConfig
	}{
		{"invalid include regex", FilterConfig{Include: []string{"[invalid"}}},
		{"invalid exclude regex", FilterConfig{Exclude: []string{"(unclosed"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Filter(sampleRules(), tt.config)
			assert.Error(t, err)
		})
	}
}

func TestFilter_EmptyRules(t *testing.T) {
	filtered, err := Filter(nil, FilterConfig{Include: []string{"[invalid"}})
	require.NoError(t, err)
	assert.Empty(t, filtered)
}
