package scan

import (
	"path/filepath"
	"regexp"
	"time"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
)

// StylusExt is the extension appended to extensionless stylus imports.
const StylusExt = ".styl"

var _ ports.Scanner = (*Stylus)(nil)

// stylusImport matches `@import "ref"` or `@import 'ref'` at the end of a line.
var stylusImport = regexp.MustCompile(`@import\s*(?:"(.+)"|'(.+)')$`)

// Stylus scans stylus sheets. Only extensionless imports are followed, since
// stylus passes any other import through as a plain CSS import.
type Stylus struct {
	scanner importScanner
}

// NewStylus creates a new Stylus scanner.
func NewStylus() *Stylus {
	return &Stylus{scanner: importScanner{
		pattern: stylusImport,
		follow: func(dir, ref string) (string, bool) {
			if filepath.Ext(ref) != "" {
				return "", false
			}
			return filepath.Join(dir, filepath.FromSlash(ref)) + StylusExt, true
		},
	}}
}

// Scan records path first, followed by everything it imports.
func (s *Stylus) Scan(path string, modifiedAt time.Time, deps []domain.Dependency) ([]domain.Dependency, error) {
	return s.scanner.scan(path, modifiedAt, deps)
}
