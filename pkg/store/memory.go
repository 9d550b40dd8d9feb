package store

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
type MemoryStore struct {
	mu       sync.RWMutex
	rulesets map[string]*ruleset.RuleSet // keyed by language
	issues   map[string][]*StoredIssue   // keyed by file path
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		rulesets: make(map[string]*ruleset.RuleSet),
		issues:   make(map[string][]*StoredIssue),
	}
}

// SaveRuleSet stores a rule set.
func (m *MemoryStore) SaveRuleSet(language string, rs *ruleset.RuleSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rulesets[language] = rs
	return nil
}

// GetRuleSet returns the rule set stored for language.
func (m *MemoryStore) GetRuleSet(language string) (*ruleset.RuleSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rs, ok := m.rulesets[language]
	if !ok {
		return nil, fmt.Errorf("rule set for %s: %w", language, ErrNotFound)
	}
	return rs, nil
}

// ReplaceIssues stores the issues of a file.
func (m *MemoryStore) ReplaceIssues(filePath string, issues []types.AnalysisIssue) error {
	stored := make([]*StoredIssue, 0, len(issues))
	for _, issue := range issues {
		issue.FilePath = filePath
		stored = append(stored, &StoredIssue{ID: uuid.NewString(), AnalysisIssue: issue})
	}
	slices.SortStableFunc(stored, compareIssues)

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(stored) == 0 {
		delete(m.issues, filePath)
		return nil
	}
	m.issues[filePath] = stored
	return nil
}

// GetIssues retrieves the issues of a file.
func (m *MemoryStore) GetIssues(filePath string) ([]*StoredIssue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to avoid external modifications
	result := make([]*StoredIssue, len(m.issues[filePath]))
	copy(result, m.issues[filePath])
	return result, nil
}

// GetAllIssues retrieves all issues.
func (m *MemoryStore) GetAllIssues() ([]*StoredIssue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*StoredIssue, 0)
	for _, issues := range m.issues {
		result = append(result, issues...)
	}
	slices.SortStableFunc(result, compareIssues)
	return result, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

func compareIssues(a, b *StoredIssue) int {
	return cmp.Or(
		cmp.Compare(a.FilePath, b.FilePath),
		cmp.Compare(a.StartLine, b.StartLine),
		cmp.Compare(a.StartLineOffset, b.StartLineOffset),
		cmp.Compare(a.RuleKey, b.RuleKey),
	)
}
