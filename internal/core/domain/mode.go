package domain

import "strings"

// DeploymentMode distinguishes production from development behaviour.
type DeploymentMode string

const (
	// ModeDevelopment checks every cached asset for staleness on each call.
	ModeDevelopment DeploymentMode = "development"
	// ModeProduction serves cached URLs without touching the filesystem.
	ModeProduction DeploymentMode = "production"
)

// ParseDeploymentMode maps an environment value to a mode.
// Only "production" (case-insensitive) selects production; anything else is development.
func ParseDeploymentMode(value string) DeploymentMode {
	if strings.EqualFold(strings.TrimSpace(value), string(ModeProduction)) {
		return ModeProduction
	}
	return ModeDevelopment
}

// IsProduction reports whether m is the production mode.
func (m DeploymentMode) IsProduction() bool {
	return m == ModeProduction
}
