// Package cas implements the content-addressed output store for compiled assets.
package cas

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/yaac/internal/adapters/fs"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputStore = (*Store)(nil)

// Store writes compiled assets below their destination directory. The file
// names already carry the content digest, so a name is never rewritten with
// different bytes.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Put writes data to path, creating the parent directory first.
func (s *Store) Put(path string, data []byte) error {
	if err := fs.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	//nolint:gosec // Path is built from the configured destination and a digest
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
	}

	return nil
}

// WriteManifest records the URL of every resolved asset in dest/manifest.json.
func (s *Store) WriteManifest(dest string, entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	if err := fs.EnsureDir(dest); err != nil {
		return err
	}

	filename := domain.ManifestPath(dest)
	//nolint:gosec // Path is built from the configured destination
	if err := os.WriteFile(filename, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", filename)
	}

	return nil
}
