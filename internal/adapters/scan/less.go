package scan

import (
	"path/filepath"
	"regexp"
	"time"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
)

// LessExt is the only import extension the less scanner follows.
const LessExt = ".less"

var _ ports.Scanner = (*Less)(nil)

// lessImport matches a quoted import terminated by a semicolon.
// Exotic forms such as import options are not recognised.
var lessImport = regexp.MustCompile(`@import\s*(?:"(.+)"|'(.+)')\s*;$`)

// Less scans less sheets, following imports that already carry the .less extension.
type Less struct {
	scanner importScanner
}

// NewLess creates a new Less scanner.
func NewLess() *Less {
	return &Less{scanner: importScanner{
		pattern: lessImport,
		follow: func(dir, ref string) (string, bool) {
			if filepath.Ext(ref) != LessExt {
				return "", false
			}
			return filepath.Join(dir, filepath.FromSlash(ref)), true
		},
	}}
}

// Scan records path first, followed by everything it imports.
func (l *Less) Scan(path string, modifiedAt time.Time, deps []domain.Dependency) ([]domain.Dependency, error) {
	return l.scanner.scan(path, modifiedAt, deps)
}
