package analyzer

import (
	"context"

	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// Controller dispatches a file to every registered analyzer that supports
// its languages.
type Controller struct {
	analyzers []Analyzer
}

// NewController creates a controller over analyzers.
func NewController(analyzers ...Analyzer) *Controller {
	return &Controller{analyzers: analyzers}
}

// IsAnalysisSupported reports whether any analyzer handles languages.
func (c *Controller) IsAnalysisSupported(languages []types.AnalysisLanguage) bool {
	for _, a := range c.analyzers {
		if a.IsAnalysisSupported(languages) {
			return true
		}
	}
	return false
}

// ExecuteAnalysis starts every supporting analyzer and returns the number
// started.
func (c *Controller) ExecuteAnalysis(ctx context.Context, path, charset string, languages []types.AnalysisLanguage, consumer IssueConsumer, opts *Options) int {
	started := 0
	for _, a := range c.analyzers {
		if !a.IsAnalysisSupported(languages) {
			continue
		}
		a.ExecuteAnalysis(ctx, path, charset, languages, consumer, opts)
		started++
	}
	return started
}

// Wait blocks until background work of every analyzer has finished.
func (c *Controller) Wait() {
	for _, a := range c.analyzers {
		if w, ok := a.(Waiter); ok {
			w.Wait()
		}
	}
}
