package ports

import "go.trai.ch/yaac/internal/core/domain"

// ModeDetector reports the current deployment mode.
//
//go:generate go run go.uber.org/mock/mockgen -source=mode.go -destination=mocks/mock_mode.go -package=mocks
type ModeDetector interface {
	// Mode is consulted on every resolution and must not touch the filesystem.
	Mode() domain.DeploymentMode
}
