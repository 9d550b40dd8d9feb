package enum

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// CombinedEnumerator runs multiple enumerators sequentially and deduplicates
// files by cleaned absolute path, so overlapping roots yield each file once.
type CombinedEnumerator struct {
	enumerators []Enumerator
}

// NewCombinedEnumerator creates a CombinedEnumerator that wraps the provided
// enumerators.
func NewCombinedEnumerator(enumerators ...Enumerator) *CombinedEnumerator {
	return &CombinedEnumerator{enumerators: enumerators}
}

// Enumerate runs each child enumerator in sequence, passing unseen files to
// callback.
func (c *CombinedEnumerator) Enumerate(ctx context.Context, callback FileFunc) error {
	var mu sync.Mutex
	seen := make(map[string]bool)

	for _, e := range c.enumerators {
		err := e.Enumerate(ctx, func(path string, languages []types.AnalysisLanguage) error {
			key := path
			if abs, err := filepath.Abs(path); err == nil {
				key = abs
			}

			mu.Lock()
			if seen[key] {
				mu.Unlock()
				return nil
			}
			seen[key] = true
			mu.Unlock()

			return callback(path, languages)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
