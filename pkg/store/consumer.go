package store

import (
	"log/slog"

	"github.com/praetorian-inc/rulebridge/pkg/analyzer"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// Consumer records analyzer results in a Store.
type Consumer struct {
	store  Store
	logger *slog.Logger
}

var _ analyzer.IssueConsumer = (*Consumer)(nil)

// NewConsumer creates a consumer writing to s. A nil logger uses slog.Default.
func NewConsumer(s Store, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{store: s, logger: logger}
}

// Accept implements analyzer.IssueConsumer. Store errors are logged since
// consumers cannot report failures back to the analyzer.
func (c *Consumer) Accept(filePath string, issues []types.AnalysisIssue) {
	if err := c.store.ReplaceIssues(filePath, issues); err != nil {
		c.logger.Error("failed to store issues", "path", filePath, "count", len(issues), "err", err)
		return
	}
	c.logger.Debug("issues stored", "path", filePath, "count", len(issues))
}
