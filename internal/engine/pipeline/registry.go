package pipeline

import (
	"path/filepath"

	"go.trai.ch/yaac/internal/core/ports"
)

// Registry selects the dialect for a source file by its extension.
// Extensions without an entry use the fallback dialect.
type Registry struct {
	dialects map[string]ports.Dialect
	fallback ports.Dialect
}

// NewRegistry creates a registry. Keys of dialects are extensions with their
// leading dot, e.g. ".less".
func NewRegistry(dialects map[string]ports.Dialect, fallback ports.Dialect) *Registry {
	return &Registry{dialects: dialects, fallback: fallback}
}

// Lookup returns the dialect responsible for path.
func (r *Registry) Lookup(path string) ports.Dialect {
	if d, ok := r.dialects[filepath.Ext(path)]; ok {
		return d
	}
	return r.fallback
}
