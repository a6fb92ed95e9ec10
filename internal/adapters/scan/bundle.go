package scan

import (
	"os"
	"time"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Scanner = (*Bundle)(nil)

// Chainer returns the files a bundle source requires, in link order.
type Chainer interface {
	Chain(path string) ([]string, error)
}

// Bundle scans bundle sources through their require chain. Content is left to
// the bundle compiler, so dependencies carry no bytes.
type Bundle struct {
	chainer Chainer
}

// NewBundle creates a new Bundle scanner.
func NewBundle(chainer Chainer) *Bundle {
	return &Bundle{chainer: chainer}
}

// Scan records the chain in link order and path last.
func (b *Bundle) Scan(path string, modifiedAt time.Time, deps []domain.Dependency) ([]domain.Dependency, error) {
	chain, err := b.chainer.Chain(path)
	if err != nil {
		return deps, err
	}

	for _, member := range chain {
		info, err := os.Stat(member)
		if err != nil {
			return deps, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", member)
		}
		deps = append(deps, domain.Dependency{Path: member, ModifiedAt: info.ModTime()})
	}

	return append(deps, domain.Dependency{Path: path, ModifiedAt: modifiedAt}), nil
}
