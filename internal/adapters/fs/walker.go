package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker enumerates asset sources below a search root.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkAssets yields the logical names of all files below root, slash separated
// and relative to root. Hidden files and directories are skipped, as are
// entries matching one of the ignore patterns. Absolute ignore entries skip
// that exact directory, which keeps an output directory nested inside a
// search root out of the walk.
func (w *Walker) WalkAssets(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// A missing root simply yields nothing.
				return nil //nolint:nilerr // unreadable entries are skipped
			}

			if path != root && w.shouldSkip(path, d.Name(), ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil //nolint:nilerr // paths outside root cannot be named
			}

			if !yield(filepath.ToSlash(rel)) {
				return filepath.SkipAll
			}

			return nil
		})
	}
}

func (w *Walker) shouldSkip(path, name string, ignores []string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}

	for _, ignore := range ignores {
		if filepath.IsAbs(ignore) {
			if filepath.Clean(ignore) == path {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}

	return false
}
