package store

import (
	"errors"
	"fmt"

	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// StoredIssue is an analysis issue with the id it was stored under.
type StoredIssue struct {
	ID string `json:"id"`
	types.AnalysisIssue
}

// Store provides persistence for generated rule sets and analysis results.
// This interface abstracts the underlying storage implementation,
// allowing for different backends (SQLite, in-memory).
type Store interface {
	// SaveRuleSet stores the rule set generated for language, replacing any
	// earlier one.
	SaveRuleSet(language string, rs *ruleset.RuleSet) error

	// GetRuleSet returns the rule set for language or ErrNotFound.
	GetRuleSet(language string) (*ruleset.RuleSet, error)

	// ReplaceIssues stores the issues of a file, replacing those from any
	// earlier analysis of the same file.
	ReplaceIssues(filePath string, issues []types.AnalysisIssue) error

	// GetIssues retrieves the issues of a file.
	GetIssues(filePath string) ([]*StoredIssue, error)

	// GetAllIssues retrieves all issues ordered by file, line and offset.
	GetAllIssues() ([]*StoredIssue, error)

	// Close closes the database connection.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for in-memory store (useful for testing).
	Path string
}

// New creates a new Store. ":memory:" yields a MemoryStore, any other path
// a SQLite database.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
