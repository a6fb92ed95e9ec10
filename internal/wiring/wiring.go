// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/yaac/internal/adapters/cas"
	_ "go.trai.ch/yaac/internal/adapters/config"
	_ "go.trai.ch/yaac/internal/adapters/fs"
	_ "go.trai.ch/yaac/internal/adapters/logger"
	_ "go.trai.ch/yaac/internal/adapters/metrics"
	_ "go.trai.ch/yaac/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/yaac/internal/app"
)
