package ports

import (
	"time"

	"go.trai.ch/yaac/internal/core/domain"
)

// Scanner discovers the files a source transitively depends on.
//
//go:generate go run go.uber.org/mock/mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type Scanner interface {
	// Scan appends the dependencies of path, including path itself, to deps and
	// returns the extended slice. Callers must treat the result as a set.
	Scan(path string, modifiedAt time.Time, deps []domain.Dependency) ([]domain.Dependency, error)
}
