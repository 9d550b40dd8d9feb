package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/praetorian-inc/rulebridge/pkg/eslintbridge"
	"github.com/praetorian-inc/rulebridge/pkg/store"
	"github.com/praetorian-inc/rulebridge/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsProfile = `language: js
rules:
  - key: no-eval
    repository: javascript
    active: true
    severity: CRITICAL
  - key: no-any
    repository: typescript
    active: true
`

func resetAnalyzeFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		analyzeProfiles = nil
		analyzeBridgeURL, analyzeStore = "", ""
		analyzeWorkers = 0
		analyzeMaxFileSize = -1
		analyzeIncludeHidden = false
		analyzeTSConfigs = nil
	}
	reset()
	t.Cleanup(reset)
}

// fakeBridge records requests and reports one issue for files named bad.js.
type fakeBridge struct {
	mu       sync.Mutex
	requests map[string]eslintbridge.AnalysisRequest
}

func (b *fakeBridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req eslintbridge.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	b.requests[r.URL.Path+" "+filepath.Base(req.FilePath)] = req
	b.mu.Unlock()

	resp := eslintbridge.AnalysisResponse{Issues: []eslintbridge.Issue{}}
	if filepath.Base(req.FilePath) == "bad.js" {
		resp.Issues = append(resp.Issues, eslintbridge.Issue{
			Line: 1, Column: 0, EndLine: 1, EndColumn: 10,
			Message: "Remove this use of eval.", RuleID: "no-eval",
		})
	}
	json.NewEncoder(w).Encode(resp)
}

func TestRunAnalyze(t *testing.T) {
	resetAnalyzeFlags(t)
	resetConfig(t)

	bridge := &fakeBridge{requests: map[string]eslintbridge.AnalysisRequest{}}
	server := httptest.NewServer(bridge)
	defer server.Close()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeTestFile(t, src, "bad.js", "eval(input);")
	writeTestFile(t, src, "good.js", "let x = 1;")
	writeTestFile(t, src, "types.ts", "let y: number = 2;")
	writeTestFile(t, src, "Program.cs", "class Program {}")

	analyzeProfiles = []string{writeTestFile(t, dir, "js.yaml", jsProfile)}
	analyzeBridgeURL = server.URL
	analyzeStore = filepath.Join(dir, "rulebridge.db")

	cmd, buf := newTestCmd()
	err := runAnalyze(cmd, []string{src})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Analysis complete: 3 files, 1 issues")

	bridge.mu.Lock()
	assert.Len(t, bridge.requests, 3)
	jsReq := bridge.requests["/analyze-js bad.js"]
	tsReq := bridge.requests["/analyze-ts types.ts"]
	bridge.mu.Unlock()

	require.Len(t, jsReq.Rules, 1)
	assert.Equal(t, "no-eval", jsReq.Rules[0].Key)
	require.Len(t, tsReq.Rules, 1)
	assert.Equal(t, "no-any", tsReq.Rules[0].Key)

	s, err := store.New(store.Config{Path: analyzeStore})
	require.NoError(t, err)
	defer s.Close()

	issues, err := s.GetAllIssues()
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "javascript:no-eval", issues[0].RuleKey)
	assert.Equal(t, types.SeverityCritical, issues[0].Severity)
	assert.Equal(t, filepath.Join(src, "bad.js"), issues[0].FilePath)
}

func TestRunAnalyze_ClearsStaleIssues(t *testing.T) {
	resetAnalyzeFlags(t)
	resetConfig(t)

	server := httptest.NewServer(&fakeBridge{requests: map[string]eslintbridge.AnalysisRequest{}})
	defer server.Close()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	good := writeTestFile(t, src, "good.js", "let x = 1;")

	analyzeBridgeURL = server.URL
	analyzeStore = filepath.Join(dir, "rulebridge.db")

	// Seed an issue from an earlier run.
	s, err := store.New(store.Config{Path: analyzeStore})
	require.NoError(t, err)
	require.NoError(t, s.ReplaceIssues(good, []types.AnalysisIssue{{RuleKey: "javascript:old"}}))
	require.NoError(t, s.Close())

	cmd, _ := newTestCmd()
	require.NoError(t, runAnalyze(cmd, []string{src}))

	s, err = store.New(store.Config{Path: analyzeStore})
	require.NoError(t, err)
	defer s.Close()

	issues, err := s.GetIssues(good)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestRunAnalyze_BridgeDown(t *testing.T) {
	resetAnalyzeFlags(t)
	resetConfig(t)

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	dir := t.TempDir()
	writeTestFile(t, dir, "app.js", "let x = 1;")
	analyzeBridgeURL = server.URL
	analyzeStore = ":memory:"

	// Bridge failures are logged per file and do not fail the command.
	cmd, buf := newTestCmd()
	require.NoError(t, runAnalyze(cmd, []string{dir}))
	assert.Contains(t, buf.String(), "Analysis complete: 1 files, 0 issues")
}

func TestRunAnalyze_Errors(t *testing.T) {
	resetAnalyzeFlags(t)
	resetConfig(t)

	cmd, _ := newTestCmd()
	assert.ErrorContains(t, runAnalyze(cmd, []string{filepath.Join(t.TempDir(), "missing")}), "target does not exist")

	analyzeProfiles = []string{filepath.Join(t.TempDir(), "missing.yaml")}
	assert.ErrorContains(t, runAnalyze(cmd, []string{t.TempDir()}), "loading profile")
}

func TestRunAnalyze_OverlappingTargets(t *testing.T) {
	resetAnalyzeFlags(t)
	resetConfig(t)

	bridge := &fakeBridge{requests: map[string]eslintbridge.AnalysisRequest{}}
	server := httptest.NewServer(bridge)
	defer server.Close()

	dir := t.TempDir()
	writeTestFile(t, dir, "app.js", "let x = 1;")
	writeTestFile(t, dir, "lib/bad.js", "eval(input);")

	analyzeBridgeURL = server.URL
	analyzeStore = ":memory:"

	cmd, buf := newTestCmd()
	require.NoError(t, runAnalyze(cmd, []string{dir, filepath.Join(dir, "lib")}))
	assert.Contains(t, buf.String(), "Analysis complete: 2 files, 1 issues")
}
