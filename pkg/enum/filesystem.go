package enum

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/praetorian-inc/rulebridge/pkg/types"
	"golang.org/x/sync/errgroup"
)

// sniffSize is how much of a file is read to decide whether it is binary.
const sniffSize = 8192

// FilesystemEnumerator enumerates source files from a filesystem directory.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) *FilesystemEnumerator {
	return &FilesystemEnumerator{config: config}
}

// fileEntry holds metadata collected during the walk phase.
type fileEntry struct {
	path      string
	languages []types.AnalysisLanguage
}

// Enumerate walks the filesystem and yields source files.
// Phase 1: Walk directory tree and collect eligible file paths (fast, sequential).
// Phase 2: Drop binary files and invoke callback in parallel.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback FileFunc) error {
	// Load .gitignore patterns if present
	var ignore *gitignore.GitIgnore
	gitignorePath := filepath.Join(e.config.Root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
	}

	// Phase 1: Walk and collect eligible file paths
	var files []fileEntry
	err := filepath.Walk(e.config.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if ignore != nil && path != e.config.Root {
			relPath, err := filepath.Rel(e.config.Root, path)
			if err != nil {
				return err
			}
			if ignore.MatchesPath(relPath) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if info.IsDir() {
			if path != e.config.Root && !e.config.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 && !e.config.FollowSymlinks {
			return nil
		}

		if !e.config.IncludeHidden && isHidden(info.Name()) {
			return nil
		}

		if e.config.MaxFileSize > 0 && info.Size() > e.config.MaxFileSize {
			return nil
		}

		languages := e.languagesFor(path)
		if len(languages) == 0 {
			return nil
		}

		files = append(files, fileEntry{path: path, languages: languages})
		return nil
	})
	if err != nil {
		return err
	}

	// Phase 2: Check and hand off files in parallel
	numWorkers := e.config.Workers
	if numWorkers < 1 {
		numWorkers = runtime.NumCPU()
	}

	origCtx := ctx
	g, ctx := errgroup.WithContext(ctx)
	pathsCh := make(chan fileEntry, numWorkers*2)

	// Feed paths to workers
	g.Go(func() error {
		defer close(pathsCh)
		for _, f := range files {
			select {
			case pathsCh <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < numWorkers; i++ {
		g.Go(func() error {
			for f := range pathsCh {
				if err := e.processFile(ctx, f, callback); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// If the caller's context was cancelled but all goroutines finished
	// before noticing, propagate the cancellation.
	if origCtx.Err() != nil {
		return origCtx.Err()
	}
	return nil
}

// processFile sniffs a single file and invokes the callback for text files.
func (e *FilesystemEnumerator) processFile(ctx context.Context, f fileEntry, callback FileFunc) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	binary, err := sniffBinary(f.path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", f.path, err)
	}
	if binary {
		return nil
	}

	return callback(f.path, f.languages)
}

// languagesFor detects the file's languages and applies the language filter.
func (e *FilesystemEnumerator) languagesFor(path string) []types.AnalysisLanguage {
	detected := types.DetectLanguages(path)
	if len(e.config.Languages) == 0 {
		return detected
	}
	var kept []types.AnalysisLanguage
	for _, lang := range detected {
		if types.ContainsLanguage(e.config.Languages, lang) {
			kept = append(kept, lang)
		}
	}
	return kept
}

// sniffBinary reads the head of a file and reports whether it looks binary.
func sniffBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	return isBinary(buf[:n]), nil
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}

// isBinary detects if content is binary by checking first 8KB for null bytes.
func isBinary(content []byte) bool {
	checkSize := len(content)
	if checkSize > sniffSize {
		checkSize = sniffSize
	}
	return bytes.IndexByte(content[:checkSize], 0) != -1
}
