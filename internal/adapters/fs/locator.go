// Package fs provides file system adapters for locating and walking assets.
package fs

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceLocator = (*Locator)(nil)

// Locator implements ports.SourceLocator by probing search roots in order.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate returns the first regular file named name under roots.
// Only the final failure is reported; per-root stat errors are not aggregated.
func (l *Locator) Locate(name string, roots []string) (domain.Source, error) {
	if err := ValidateName(name); err != nil {
		return domain.Source{}, err
	}

	rel := filepath.FromSlash(name)
	for _, root := range roots {
		candidate := filepath.Join(root, rel)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}

		abs, err := filepath.Abs(candidate)
		if err != nil {
			return domain.Source{}, zerr.With(zerr.Wrap(err, domain.ErrAssetNotFound.Error()), "path", candidate)
		}

		return domain.Source{
			Name:       name,
			Path:       abs,
			ModifiedAt: info.ModTime(),
		}, nil
	}

	return domain.Source{}, zerr.With(domain.ErrAssetNotFound, "asset", name)
}

// ValidateName rejects names that cannot be joined safely with a search root.
func ValidateName(name string) error {
	if name == "" {
		return zerr.With(domain.ErrInvalidAssetName, "asset", name)
	}

	slashed := filepath.ToSlash(name)
	if filepath.IsAbs(name) || path.IsAbs(slashed) {
		return zerr.With(domain.ErrInvalidAssetName, "asset", name)
	}

	cleaned := path.Clean(slashed)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return zerr.With(domain.ErrInvalidAssetName, "asset", name)
	}

	return nil
}
