// Package analyzer adapts out-of-process analysis engines to the host issue
// model.
//
// An Analyzer accepts a file and reports issues for it to an IssueConsumer.
// ExecuteAnalysis returns immediately; the work runs in the background and
// results arrive at the consumer later, or not at all if the file had none.
package analyzer

import (
	"context"

	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// IssueConsumer receives the issues found in a file.
type IssueConsumer interface {
	Accept(filePath string, issues []types.AnalysisIssue)
}

// IssueConsumerFunc adapts a function to IssueConsumer.
type IssueConsumerFunc func(filePath string, issues []types.AnalysisIssue)

// Accept implements IssueConsumer.
func (f IssueConsumerFunc) Accept(filePath string, issues []types.AnalysisIssue) {
	f(filePath, issues)
}

// Options carries per-request analysis settings.
type Options struct {
	// IsOnOpen is set when the analysis was triggered by opening the file.
	IsOnOpen bool
}

// Analyzer analyzes files of the languages it supports.
type Analyzer interface {
	IsAnalysisSupported(languages []types.AnalysisLanguage) bool

	// ExecuteAnalysis starts analysis of path and returns without waiting
	// for it to finish. Failures are logged, never returned.
	ExecuteAnalysis(ctx context.Context, path, charset string, languages []types.AnalysisLanguage, consumer IssueConsumer, opts *Options)
}

// Waiter is implemented by analyzers that run work in the background.
type Waiter interface {
	// Wait blocks until all started analyses have finished.
	Wait()
}
