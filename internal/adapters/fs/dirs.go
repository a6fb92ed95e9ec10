package fs

import (
	"os"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/zerr"
)

// EnsureDir creates dir and its parents with domain.DirPerm.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "path", dir)
	}
	return nil
}

// RemoveAll deletes dir and everything below it. A missing dir is not an error.
func RemoveAll(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", dir)
	}
	return nil
}
