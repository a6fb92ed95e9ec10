// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/yaac/internal/core/domain"

// SourceLocator resolves logical asset names to files on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type SourceLocator interface {
	// Locate probes roots in order and returns the first file named name.
	// Earlier roots shadow later ones. It returns domain.ErrAssetNotFound when
	// no root contains the file.
	Locate(name string, roots []string) (domain.Source, error)
}
