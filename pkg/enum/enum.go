package enum

import (
	"context"

	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// FileFunc receives a source file and the languages detected for it.
// It may be called concurrently.
type FileFunc func(path string, languages []types.AnalysisLanguage) error

// Enumerator discovers source files to analyze.
type Enumerator interface {
	// Enumerate yields every eligible file under the source.
	Enumerate(ctx context.Context, callback FileFunc) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// Languages restricts enumeration to files of these languages.
	// Empty means every language with a known extension.
	Languages []types.AnalysisLanguage

	// Workers is the number of files checked and handed to the callback in
	// parallel (0 = runtime.NumCPU()).
	Workers int
}
