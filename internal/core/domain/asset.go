// Package domain contains the core domain types of the asset pipeline.
package domain

import "time"

// Dependency is one file contributing to a compiled asset's freshness.
type Dependency struct {
	// Path is the absolute path of the file.
	Path string
	// ModifiedAt is the modification time observed when the file was scanned.
	ModifiedAt time.Time
	// Content holds the raw bytes when the scanner already read the file.
	// It is nil when a collaborator manages content itself.
	Content []byte
}

// Source is a located asset source file.
type Source struct {
	// Name is the logical asset name, e.g. "app.less".
	Name string
	// Path is the absolute path of the resolved file.
	Path string
	// ModifiedAt is the file's modification time.
	ModifiedAt time.Time
}

// Dependency returns the source as a dependency without content.
func (s Source) Dependency() Dependency {
	return Dependency{Path: s.Path, ModifiedAt: s.ModifiedAt}
}

// CacheEntry is the compiled record for one logical asset name.
// Entries are never mutated: a stale entry is replaced as a whole.
type CacheEntry struct {
	SourcePath   string
	CompiledPath string
	CompiledURL  string
	// Deps is exactly the dependency set observed by the compile that produced CompiledPath.
	Deps []Dependency
}

// LatestModification returns the most recent modification time across deps.
// It returns the zero time for an empty slice.
func LatestModification(deps []Dependency) time.Time {
	var latest time.Time
	for _, dep := range deps {
		if dep.ModifiedAt.After(latest) {
			latest = dep.ModifiedAt
		}
	}
	return latest
}

// FindDependency returns the dependency recorded for path, if any.
func FindDependency(deps []Dependency, path string) (Dependency, bool) {
	for _, dep := range deps {
		if dep.Path == path {
			return dep, true
		}
	}
	return Dependency{}, false
}
