package ports

import "go.trai.ch/yaac/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration for the given working directory.
	// Defaults rooted at cwd are returned when no configuration file exists.
	Load(cwd string) (*domain.Config, error)
}
