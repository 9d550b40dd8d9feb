package analyzer

import (
	"context"
	"log/slog"
	"sync"

	"github.com/praetorian-inc/rulebridge/pkg/eslintbridge"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

const (
	msgMissingTypeScript     = "TypeScript dependency was not found and it is required for analysis."
	msgUnsupportedTypeScript = "If it's not possible to upgrade the version of TypeScript used by the project, consider installing a supported TypeScript version just for the time of analysis."

	defaultWorkers = 4
)

// analyzeFunc is the bridge call for one language.
type analyzeFunc func(ctx context.Context, filePath string) (*eslintbridge.AnalysisResponse, error)

// bridgeAnalyzer runs bridge requests in the background with bounded
// concurrency.
type bridgeAnalyzer struct {
	language  types.AnalysisLanguage
	analyze   analyzeFunc
	converter IssueConverter
	logger    *slog.Logger
	sem       chan struct{} // semaphore for bounded concurrency
	wg        sync.WaitGroup
}

// BridgeOption configures the bridge-backed analyzers.
type BridgeOption func(*bridgeConfig)

type bridgeConfig struct {
	converter IssueConverter
	logger    *slog.Logger
	workers   int
}

// WithConverter overrides the issue converter.
func WithConverter(c IssueConverter) BridgeOption {
	return func(cfg *bridgeConfig) {
		cfg.converter = c
	}
}

// WithLogger sets the logger for analysis failures and parsing errors.
func WithLogger(logger *slog.Logger) BridgeOption {
	return func(cfg *bridgeConfig) {
		cfg.logger = logger
	}
}

// WithWorkers bounds the number of concurrent bridge requests. Default is 4.
func WithWorkers(n int) BridgeOption {
	return func(cfg *bridgeConfig) {
		cfg.workers = n
	}
}

func newBridgeAnalyzer(language types.AnalysisLanguage, repository string, fn analyzeFunc, opts []BridgeOption) *bridgeAnalyzer {
	cfg := bridgeConfig{workers: defaultWorkers}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.converter == nil {
		cfg.converter = NewEslintIssueConverter(repository, nil)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.workers <= 0 {
		cfg.workers = defaultWorkers
	}

	return &bridgeAnalyzer{
		language:  language,
		analyze:   fn,
		converter: cfg.converter,
		logger:    cfg.logger,
		sem:       make(chan struct{}, cfg.workers),
	}
}

func (a *bridgeAnalyzer) IsAnalysisSupported(languages []types.AnalysisLanguage) bool {
	return types.ContainsLanguage(languages, a.language)
}

func (a *bridgeAnalyzer) ExecuteAnalysis(ctx context.Context, path, charset string, languages []types.AnalysisLanguage, consumer IssueConsumer, opts *Options) {
	if !a.IsAnalysisSupported(languages) {
		a.logger.Debug("analysis requested for unsupported languages", "path", path, "languages", languages)
		return
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		select {
		case a.sem <- struct{}{}:
		case <-ctx.Done():
			return
		}
		defer func() { <-a.sem }()

		if ctx.Err() != nil {
			return
		}
		a.Analyze(ctx, path, consumer)
	}()
}

// Wait blocks until every analysis started by ExecuteAnalysis has finished.
func (a *bridgeAnalyzer) Wait() {
	a.wg.Wait()
}

// Analyze runs one analysis synchronously. Issues reach consumer only when
// the bridge reported at least one.
func (a *bridgeAnalyzer) Analyze(ctx context.Context, filePath string, consumer IssueConsumer) {
	resp, err := a.analyze(ctx, filePath)
	if err != nil {
		a.logger.Error("Failed to analyze file", "path", filePath, "err", err)
		return
	}
	if resp == nil {
		return
	}

	if resp.ParsingError != nil {
		a.logParsingError(filePath, resp.ParsingError)
		return
	}

	if len(resp.Issues) == 0 {
		return
	}

	issues := make([]types.AnalysisIssue, 0, len(resp.Issues))
	for _, issue := range resp.Issues {
		issues = append(issues, a.converter.Convert(filePath, issue))
	}
	consumer.Accept(filePath, issues)
}

func (a *bridgeAnalyzer) logParsingError(path string, pe *eslintbridge.ParsingError) {
	switch pe.Code {
	case eslintbridge.ParsingErrorMissingTypeScript:
		a.logger.Error(msgMissingTypeScript)
	case eslintbridge.ParsingErrorUnsupportedTypeScript:
		a.logger.Error(pe.Message)
		a.logger.Error(msgUnsupportedTypeScript)
	default:
		a.logger.Error("Failed to parse file",
			"path", path,
			"line", pe.Line,
			"code", string(pe.Code),
			"message", pe.Message)
	}
}
