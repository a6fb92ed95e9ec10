package app

import "go.trai.ch/yaac/internal/core/ports"

// Components holds everything the CLI needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger) *Components {
	return &Components{
		App:    app,
		Logger: logger,
	}
}
