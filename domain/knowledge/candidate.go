package knowledge

import (
	"path/filepath"
	"strings"
	"time"
)

// FileCandidate is a file selected for scanning: its location plus the
// metadata reported alongside search results.
type FileCandidate struct {
	path    string
	relPath string
	name    string
	size    int64
	modTime time.Time
}

// NewFileCandidate creates a FileCandidate. The path is the absolute
// location on disk; relPath is the path relative to the search root and
// is what reports display.
func NewFileCandidate(path, relPath string, size int64, modTime time.Time) FileCandidate {
	return FileCandidate{
		path:    path,
		relPath: relPath,
		name:    filepath.Base(path),
		size:    size,
		modTime: modTime,
	}
}

// Path returns the absolute file path.
func (c FileCandidate) Path() string {
	return c.path
}

// RelPath returns the path relative to the search root, with forward
// slashes regardless of platform.
func (c FileCandidate) RelPath() string {
	return filepath.ToSlash(c.relPath)
}

// Name returns the base file name.
func (c FileCandidate) Name() string {
	return c.name
}

// Size returns the file size in bytes.
func (c FileCandidate) Size() int64 {
	return c.size
}

// ModTime returns the file modification time.
func (c FileCandidate) ModTime() time.Time {
	return c.modTime
}

// Ext returns the lowercase file extension including the leading dot,
// or the empty string when the name has none.
func (c FileCandidate) Ext() string {
	return strings.ToLower(filepath.Ext(c.name))
}
