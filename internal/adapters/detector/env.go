// Package detector inspects the process environment.
package detector

import (
	"os"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"golang.org/x/term"
)

// Interactive reports whether stderr is a terminal and no CI environment
// variable is set. Automatic log formatting picks pretty output only then.
func Interactive() bool {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	return isTTY && !isCI
}

var _ ports.ModeDetector = (*EnvMode)(nil)

// EnvMode reads the deployment mode from an environment variable.
// The variable is read on every call so a running process follows changes.
type EnvMode struct {
	name   string
	lookup func(string) string
}

// NewEnvMode returns a detector reading the variable called name.
func NewEnvMode(name string) *EnvMode {
	return &EnvMode{name: name, lookup: os.Getenv}
}

// Mode implements ports.ModeDetector.
func (d *EnvMode) Mode() domain.DeploymentMode {
	return domain.ParseDeploymentMode(d.lookup(d.name))
}

// FixedMode always reports the same mode.
type FixedMode domain.DeploymentMode

// Mode implements ports.ModeDetector.
func (m FixedMode) Mode() domain.DeploymentMode {
	return domain.DeploymentMode(m)
}
