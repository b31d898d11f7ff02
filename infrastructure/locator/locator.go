// Package locator finds candidate files beneath a knowledge base root.
package locator

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/assistant-mcp/knowd/domain/knowledge"
)

// Result is the outcome of a directory walk. FilesVisited counts every
// regular file the walk saw, including files the accept filter
// rejected; hidden files and directories are never visited.
type Result struct {
	Candidates   []knowledge.FileCandidate
	FilesVisited int
}

// Walker enumerates files under a root directory. Hidden entries are
// skipped and symlinked directories are not followed; unreadable
// directories are logged and skipped.
type Walker struct {
	logger *slog.Logger
}

// NewWalker creates a Walker.
func NewWalker(logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{logger: logger}
}

// Validate checks that root exists and is a directory. Failures are
// reported as query errors so callers can surface a stable code.
func (w *Walker) Validate(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return knowledge.NewQueryError(knowledge.CodeDirectoryNotFound, fmt.Sprintf("directory does not exist: %s", root))
		}
		return fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return knowledge.NewQueryError(knowledge.CodeNotADirectory, fmt.Sprintf("not a directory: %s", root))
	}
	return nil
}

// Find walks the tree under root and collects candidates whose file
// name passes accept. A nil accept keeps every file. The walk drives an
// explicit directory worklist, so traversal depth never grows the call
// stack. When the context ends mid-walk, Find returns the candidates
// collected so far together with the context error.
func (w *Walker) Find(ctx context.Context, root string, accept func(name string) bool) (Result, error) {
	if err := w.Validate(root); err != nil {
		return Result{}, err
	}

	var result Result
	pending := []string{root}

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			w.logger.Warn("skipping unreadable directory",
				slog.String("path", dir),
				slog.String("error", err.Error()),
			)
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") {
				continue
			}
			path := filepath.Join(dir, name)

			if entry.IsDir() {
				pending = append(pending, path)
				continue
			}

			info, ok := w.statEntry(path, entry)
			if !ok {
				continue
			}

			result.FilesVisited++

			if accept != nil && !accept(name) {
				continue
			}

			relPath, relErr := filepath.Rel(root, path)
			if relErr != nil {
				relPath = name
			}
			result.Candidates = append(result.Candidates, knowledge.NewFileCandidate(path, relPath, info.Size(), info.ModTime()))
		}
	}
	return result, nil
}

// statEntry resolves the file info for a walk entry. Symlinks are
// followed so a link to a regular file counts as that file; anything
// that is not a regular file after resolution is skipped.
func (w *Walker) statEntry(path string, d fs.DirEntry) (fs.FileInfo, bool) {
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return nil, false
		}
		return info, true
	}
	if !d.Type().IsRegular() {
		return nil, false
	}

	info, err := d.Info()
	if err != nil {
		w.logger.Warn("skipping unreadable file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return info, true
}
