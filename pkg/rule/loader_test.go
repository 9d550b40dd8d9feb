package rule

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/praetorian-inc/rulebridge/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csharpProfile = `language: cs
rules:
  - key: S101
    repository: csharpsquid
    active: true
    severity: MINOR
  - key: S1481
    repository: vbnet
    active: false
    params:
      format: "^[A-Z]"
  - key: Wintellect003
    repository: roslyn.wintellect
    active: true
properties:
  sonaranalyzer-cs.analyzerId: SonarAnalyzer.CSharp
  sonaranalyzer-cs.ruleNamespace: SonarAnalyzer.CSharp
`

func TestLoadProfile_YAML(t *testing.T) {
	loader := NewLoader()

	profile, err := loader.LoadProfile([]byte(csharpProfile))
	require.NoError(t, err)

	assert.Equal(t, "cs", profile.Language)
	require.Len(t, profile.Rules, 3)

	assert.Equal(t, types.SonarQubeRule{
		Key:           "S101",
		RepositoryKey: "csharpsquid",
		IsActive:      true,
		Severity:      types.SeverityMinor,
		Parameters:    map[string]string{},
	}, profile.Rules[0])
	assert.Equal(t, "^[A-Z]", profile.Rules[1].Parameters["format"])
	assert.False(t, profile.Rules[1].IsActive)
	assert.Equal(t, "SonarAnalyzer.CSharp", profile.Properties["sonaranalyzer-cs.analyzerId"])
}

func TestLoadProfile_JSON(t *testing.T) {
	loader := NewLoader()

	data := `{"language":"vbnet","rules":[{"key":"S2","repository":"vbnet","active":true,"severity":"BLOCKER"}]}`
	profile, err := loader.LoadProfile([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, "vbnet", profile.Language)
	require.Len(t, profile.Rules, 1)
	assert.Equal(t, types.SeverityBlocker, profile.Rules[0].Severity)
	assert.NotNil(t, profile.Properties)
	assert.Empty(t, profile.Properties)
}

func TestLoadProfile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed yaml", "language: [cs"},
		{"missing language", "rules: []"},
		{"unknown severity", "language: cs\nrules:\n  - {key: S1, repository: csharpsquid, severity: urgent}\n"},
		{"missing repository", "language: cs\nrules:\n  - {key: S1}\n"},
		{"duplicate rule", "language: cs\nrules:\n  - {key: S1, repository: csharpsquid}\n  - {key: S1, repository: csharpsquid}\n"},
	}

	loader := NewLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.LoadProfile([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadProfile_EmptyRulesAreNotNil(t *testing.T) {
	profile, err := NewLoader().LoadProfile([]byte("language: cs\n"))
	require.NoError(t, err)
	assert.NotNil(t, profile.Rules)
	assert.NotNil(t, profile.Properties)
}

func TestLoadProfileFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cs.yml")
	require.NoError(t, os.WriteFile(path, []byte(csharpProfile), 0o644))

	profile, err := NewLoader().LoadProfileFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cs", profile.Language)

	_, err = NewLoader().LoadProfileFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoadProfiles(t *testing.T) {
	fsys := fstest.MapFS{
		"profiles/cs.yml":     {Data: []byte(csharpProfile)},
		"profiles/vbnet.json": {Data: []byte(`{"language":"vbnet","rules":[]}`)},
		"profiles/README.md":  {Data: []byte("ignored")},
		"other/ignored.yml":   {Data: []byte("not: loaded")},
	}

	profiles, err := NewLoaderWithFS(fsys).LoadProfiles("profiles")
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Len(t, profiles["cs"].Rules, 3)
	assert.Empty(t, profiles["vbnet"].Rules)
}

func TestLoadProfiles_DuplicateLanguage(t *testing.T) {
	fsys := fstest.MapFS{
		"profiles/a.yml": {Data: []byte("language: cs\n")},
		"profiles/b.yml": {Data: []byte("language: cs\n")},
	}

	_, err := NewLoaderWithFS(fsys).LoadProfiles("profiles")
	assert.ErrorContains(t, err, "duplicate profile")
}
