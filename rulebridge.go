// Package rulebridge turns SonarQube quality profiles into Roslyn rule sets
// and runs JavaScript/TypeScript analysis through an eslint-bridge.
//
// # Rule sets
//
// Load a quality profile and generate the rule set document:
//
//	profile, err := rulebridge.LoadProfileFile("cs-profile.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rs, err := rulebridge.GenerateRuleSet(profile)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rs.WriteFile("SonarQube.ruleset")
//
// # Analysis
//
// Analyze a source tree against a running bridge and collect the issues:
//
//	a, err := rulebridge.NewAnalyzer(
//	    rulebridge.WithBridgeURL("http://localhost:7777"),
//	    rulebridge.WithProfile(jsProfile),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Close()
//
//	summary, err := a.AnalyzeDir(ctx, enum.Config{Root: "./src"})
//	issues, err := a.Store().GetAllIssues()
//
// Several roots can be analyzed in one pass with an enum.CombinedEnumerator
// passed to Analyze.
package rulebridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/praetorian-inc/rulebridge/pkg/analyzer"
	"github.com/praetorian-inc/rulebridge/pkg/enum"
	"github.com/praetorian-inc/rulebridge/pkg/eslintbridge"
	"github.com/praetorian-inc/rulebridge/pkg/rule"
	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
	"github.com/praetorian-inc/rulebridge/pkg/store"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// Re-export commonly used types for convenience.
type (
	// Rule is a server rule with its activation state.
	Rule = types.SonarQubeRule

	// QualityProfile is a per-language rule catalog with server properties.
	QualityProfile = types.QualityProfile

	// RuleSet is a generated Roslyn rule set document.
	RuleSet = ruleset.RuleSet

	// Issue is an analysis issue in the host model.
	Issue = types.AnalysisIssue

	// Severity is the server issue severity.
	Severity = types.Severity
)

// LoadProfileFile loads a quality profile from a YAML or JSON file.
func LoadProfileFile(path string) (*QualityProfile, error) {
	return rule.NewLoader().LoadProfileFile(path)
}

// GenerateRuleSet builds the rule set of a quality profile.
func GenerateRuleSet(profile *QualityProfile) (*RuleSet, error) {
	if profile == nil {
		return nil, &ruleset.ArgumentError{Param: "profile"}
	}
	return ruleset.Generate(profile.Language, profile.Rules, profile.Properties)
}

// Summary reports what an AnalyzeDir call did.
type Summary struct {
	Files  int // files handed to an analyzer
	Issues int // issues reported by the bridge
}

// Analyzer walks source trees and forwards files to the bridge.
type Analyzer struct {
	controller *analyzer.Controller
	clients    []eslintbridge.Client
	store      store.Store
	ownsStore  bool
	config     *analyzerConfig
	mu         sync.Mutex
}

// analyzerConfig holds analyzer configuration.
type analyzerConfig struct {
	bridgeURL  string
	httpClient *http.Client
	profile    *QualityProfile
	tsConfigs  []string
	workers    int
	languages  []types.AnalysisLanguage
	store      store.Store
	logger     *slog.Logger
}

// Option configures an Analyzer.
type Option func(*analyzerConfig)

// WithBridgeURL sets the address of the running bridge. Required.
func WithBridgeURL(url string) Option {
	return func(c *analyzerConfig) {
		c.bridgeURL = url
	}
}

// WithHTTPClient overrides the HTTP client used for bridge requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *analyzerConfig) {
		c.httpClient = client
	}
}

// WithProfile supplies the active rules and severities. Rules of the
// "javascript" and "typescript" repositories are used.
func WithProfile(profile *QualityProfile) Option {
	return func(c *analyzerConfig) {
		c.profile = profile
	}
}

// WithTSConfigs passes tsconfig.json files along with TypeScript requests.
func WithTSConfigs(paths []string) Option {
	return func(c *analyzerConfig) {
		c.tsConfigs = paths
	}
}

// WithWorkers bounds concurrent bridge requests per language. Default is 4.
func WithWorkers(workers int) Option {
	return func(c *analyzerConfig) {
		c.workers = workers
	}
}

// WithLanguages restricts analysis to these languages. Default is
// JavaScript and TypeScript.
func WithLanguages(languages ...types.AnalysisLanguage) Option {
	return func(c *analyzerConfig) {
		c.languages = languages
	}
}

// WithStore records issues in s. The caller keeps ownership of s.
// Default is a fresh in-memory store.
func WithStore(s store.Store) Option {
	return func(c *analyzerConfig) {
		c.store = s
	}
}

// WithLogger sets the logger for analysis failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *analyzerConfig) {
		c.logger = logger
	}
}

// NewAnalyzer creates an Analyzer with the given options.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	config := &analyzerConfig{
		workers:   4,
		languages: []types.AnalysisLanguage{types.LanguageJavascript, types.LanguageTypeScript},
	}

	for _, opt := range opts {
		opt(config)
	}

	if config.bridgeURL == "" {
		return nil, errors.New("bridge URL is required")
	}
	if config.logger == nil {
		config.logger = slog.Default()
	}

	a := &Analyzer{config: config, store: config.store}
	if a.store == nil {
		a.store = store.NewMemory()
		a.ownsStore = true
	}

	clientOpts := func(rules []eslintbridge.RuleConfig) []eslintbridge.HTTPOption {
		o := []eslintbridge.HTTPOption{eslintbridge.WithRules(rules)}
		if config.httpClient != nil {
			o = append(o, eslintbridge.WithHTTPClient(config.httpClient))
		}
		return o
	}

	jsRules, jsSeverities := analyzer.ProfileRules(config.profile, analyzer.JavaScriptRepository)
	jsClient := eslintbridge.NewHTTPClient(config.bridgeURL, clientOpts(jsRules)...)

	tsRules, tsSeverities := analyzer.ProfileRules(config.profile, analyzer.TypeScriptRepository)
	tsClient := eslintbridge.NewHTTPClient(config.bridgeURL,
		append(clientOpts(tsRules), eslintbridge.WithTSConfigs(config.tsConfigs))...)

	a.clients = []eslintbridge.Client{jsClient, tsClient}
	a.controller = analyzer.NewController(
		analyzer.NewJavaScriptAnalyzer(jsClient,
			analyzer.WithLogger(config.logger),
			analyzer.WithWorkers(config.workers),
			analyzer.WithConverter(analyzer.NewEslintIssueConverter(analyzer.JavaScriptRepository, jsSeverities))),
		analyzer.NewTypeScriptAnalyzer(tsClient,
			analyzer.WithLogger(config.logger),
			analyzer.WithWorkers(config.workers),
			analyzer.WithConverter(analyzer.NewEslintIssueConverter(analyzer.TypeScriptRepository, tsSeverities))),
	)

	return a, nil
}

// AnalyzeDir analyzes every eligible file under cfg.Root and waits for the
// bridge to answer. Calls on one Analyzer are serialized.
func (a *Analyzer) AnalyzeDir(ctx context.Context, cfg enum.Config) (*Summary, error) {
	if len(cfg.Languages) == 0 {
		cfg.Languages = a.config.languages
	}
	return a.Analyze(ctx, enum.NewFilesystemEnumerator(cfg))
}

// Analyze analyzes the files yielded by e. Files are analyzed again on every
// call; their earlier issues are dropped first. Files in languages the
// Analyzer was not configured for are skipped.
func (a *Analyzer) Analyze(ctx context.Context, e enum.Enumerator) (*Summary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	counter := &countingConsumer{next: store.NewConsumer(a.store, a.config.logger)}
	var files int
	var filesMu sync.Mutex

	err := e.Enumerate(ctx, func(path string, languages []types.AnalysisLanguage) error {
		languages = slices.DeleteFunc(slices.Clone(languages), func(l types.AnalysisLanguage) bool {
			return !types.ContainsLanguage(a.config.languages, l)
		})
		if !a.controller.IsAnalysisSupported(languages) {
			return nil
		}

		// Issues are only reported for files that have some; clear the
		// previous run's results first.
		if err := a.store.ReplaceIssues(path, nil); err != nil {
			return fmt.Errorf("clearing issues: %w", err)
		}

		a.controller.ExecuteAnalysis(ctx, path, "utf-8", languages, counter, &analyzer.Options{})

		filesMu.Lock()
		files++
		filesMu.Unlock()
		return nil
	})

	// Drain analyses already handed to the bridge, even on error.
	a.controller.Wait()

	if err != nil {
		return nil, err
	}
	return &Summary{Files: files, Issues: counter.issueCount()}, nil
}

// Store returns the store issues are recorded in.
func (a *Analyzer) Store() store.Store {
	return a.store
}

// Close releases the bridge clients and the store if the Analyzer created it.
func (a *Analyzer) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for _, c := range a.clients {
		errs = append(errs, c.Close())
	}
	if a.ownsStore {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}

// countingConsumer tallies issues on their way to the next consumer.
type countingConsumer struct {
	next analyzer.IssueConsumer

	mu     sync.Mutex
	issues int
}

func (c *countingConsumer) Accept(filePath string, issues []types.AnalysisIssue) {
	c.mu.Lock()
	c.issues += len(issues)
	c.mu.Unlock()
	c.next.Accept(filePath, issues)
}

func (c *countingConsumer) issueCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issues
}
