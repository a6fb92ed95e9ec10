// Package scan implements the per-dialect dependency scanners.
package scan

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/zerr"
)

// importScanner detects import directives line by line, without parsing the language.
type importScanner struct {
	pattern *regexp.Regexp
	// follow maps a matched reference to the file it names. It reports false
	// for references the dialect leaves to the browser.
	follow func(dir, ref string) (string, bool)
}

func (s *importScanner) scan(path string, modifiedAt time.Time, deps []domain.Dependency) ([]domain.Dependency, error) {
	if _, seen := domain.FindDependency(deps, path); seen {
		return deps, nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // paths come from the search path
	if err != nil {
		return deps, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", path)
	}
	deps = append(deps, domain.Dependency{Path: path, ModifiedAt: modifiedAt, Content: content})

	dir := filepath.Dir(path)
	for line := range strings.SplitSeq(string(content), "\n") {
		ref, ok := s.match(strings.TrimSpace(line))
		if !ok {
			continue
		}

		target, ok := s.follow(dir, ref)
		if !ok {
			continue
		}

		info, err := os.Stat(target)
		if err != nil || info.IsDir() {
			// Broken imports are left for the compiler to report.
			continue
		}

		deps, err = s.scan(target, info.ModTime(), deps)
		if err != nil {
			return deps, err
		}
	}

	return deps, nil
}

func (s *importScanner) match(line string) (string, bool) {
	m := s.pattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	return m[2], m[2] != ""
}
