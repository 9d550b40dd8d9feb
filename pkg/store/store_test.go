package store

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
	"github.com/praetorian-inc/rulebridge/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New(Config{Path: ":memory:"})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &MemoryStore{}, s)

	s2, err := New(Config{Path: filepath.Join(t.TempDir(), "rulebridge.db")})
	require.NoError(t, err)
	defer s2.Close()
	assert.IsType(t, &SQLiteStore{}, s2)

	_, err = New(Config{})
	assert.Error(t, err)
}

func TestStore_Interface(t *testing.T) {
	var _ Store = (*SQLiteStore)(nil)
	var _ Store = (*MemoryStore)(nil)
}

// backends returns a fresh instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func sampleRuleSet(t *testing.T) *ruleset.RuleSet {
	t.Helper()
	rs, err := ruleset.Generate("cs", []types.SonarQubeRule{
		{Key: "S2", RepositoryKey: "csharpsquid", IsActive: true},
		{Key: "S1", RepositoryKey: "csharpsquid"},
	}, map[string]string{
		"sonaranalyzer-cs.analyzerId":    "SonarAnalyzer.CSharp",
		"sonaranalyzer-cs.ruleNamespace": "SonarAnalyzer.CSharp",
	})
	require.NoError(t, err)
	return rs
}

func sampleIssue(rule string, line int) types.AnalysisIssue {
	return types.AnalysisIssue{
		RuleKey:  rule,
		Severity: types.SeverityCritical,
		IssueLocation: types.IssueLocation{
			Message:         "message for " + rule,
			StartLine:       line,
			EndLine:         line + 1,
			StartLineOffset: 2,
			EndLineOffset:   6,
		},
		Flows: []types.IssueFlow{{Locations: []types.IssueLocation{{Message: "secondary", StartLine: 1, EndLine: 1}}}},
	}
}

func TestStore_RuleSets(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.GetRuleSet("cs")
			assert.True(t, errors.Is(err, ErrNotFound))

			rs := sampleRuleSet(t)
			require.NoError(t, s.SaveRuleSet("cs", rs))

			got, err := s.GetRuleSet("cs")
			require.NoError(t, err)
			assert.Equal(t, rs, got)

			// Saving again replaces.
			empty, err := ruleset.Generate("cs", []types.SonarQubeRule{}, map[string]string{})
			require.NoError(t, err)
			require.NoError(t, s.SaveRuleSet("cs", empty))

			got, err = s.GetRuleSet("cs")
			require.NoError(t, err)
			assert.Empty(t, got.Groups)
		})
	}
}

func TestStore_Issues(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.ReplaceIssues("b.js", []types.AnalysisIssue{sampleIssue("javascript:S2", 9)}))
			require.NoError(t, s.ReplaceIssues("a.js", []types.AnalysisIssue{
				sampleIssue("javascript:S3", 7),
				sampleIssue("javascript:S1", 3),
			}))

			issues, err := s.GetIssues("a.js")
			require.NoError(t, err)
			require.Len(t, issues, 2)
			assert.Equal(t, "javascript:S1", issues[0].RuleKey)
			assert.Equal(t, "a.js", issues[0].FilePath)
			assert.Equal(t, types.SeverityCritical, issues[0].Severity)
			assert.Equal(t, 3, issues[0].StartLine)
			assert.Equal(t, 4, issues[0].EndLine)
			assert.Equal(t, 2, issues[0].StartLineOffset)
			assert.Equal(t, 6, issues[0].EndLineOffset)
			require.Len(t, issues[0].Flows, 1)
			assert.Equal(t, "secondary", issues[0].Flows[0].Locations[0].Message)
			assert.NotEmpty(t, issues[0].ID)
			assert.NotEqual(t, issues[0].ID, issues[1].ID)

			all, err := s.GetAllIssues()
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []string{"a.js", "a.js", "b.js"}, []string{all[0].FilePath, all[1].FilePath, all[2].FilePath})

			// Re-analysis replaces the file's issues.
			require.NoError(t, s.ReplaceIssues("a.js", nil))
			issues, err = s.GetIssues("a.js")
			require.NoError(t, err)
			assert.Empty(t, issues)

			all, err = s.GetAllIssues()
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestStore_ConcurrentWrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					path := filepath.Join("src", string(rune('a'+i))+".js")
					assert.NoError(t, s.ReplaceIssues(path, []types.AnalysisIssue{sampleIssue("javascript:S1", i+1)}))
				}(i)
			}
			wg.Wait()

			all, err := s.GetAllIssues()
			require.NoError(t, err)
			assert.Len(t, all, 10)
		})
	}
}
