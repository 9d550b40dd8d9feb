package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/praetorian-inc/rulebridge/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const csharpProfile = `language: cs
rules:
  - key: S2
    repository: csharpsquid
    active: true
    severity: MAJOR
  - key: S1
    repository: csharpsquid
    active: false
  - key: SEC01
    repository: roslyn.sonaranalyzer.security.cs
    active: true
  - key: W003
    repository: roslyn.wintellect
    active: true
  - key: X1
    repository: unknown-repo
    active: true
properties:
  sonaranalyzer-cs.analyzerId: SonarAnalyzer.CSharp
  sonaranalyzer-cs.ruleNamespace: SonarAnalyzer.CSharp
  wintellect.analyzerId: Wintellect.Analyzers
  wintellect.ruleNamespace: Wintellect.Analyzers
`

// writeTestFile writes content under dir and returns its path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// newTestCmd returns a bare command whose output is captured in the
// returned buffer.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	return cmd, &buf
}

// resetConfig restores the default configuration after a test changes it.
func resetConfig(t *testing.T) {
	t.Helper()
	appConfig = config.DefaultConfig()
	t.Cleanup(func() { appConfig = config.DefaultConfig() })
}
