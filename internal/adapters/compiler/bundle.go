package compiler

import (
	"context"

	"go.trai.ch/yaac/internal/core/ports"
)

var _ ports.Compiler = (*Bundle)(nil)

// Concatenator joins a bundle source with everything it requires.
type Concatenator interface {
	Concatenation(path string) ([]byte, error)
}

// Bundle compiles bundle sources by concatenating their require chain.
// The root content is ignored since the chain is read from disk.
type Bundle struct {
	graph Concatenator
}

// NewBundle creates a new Bundle compiler.
func NewBundle(graph Concatenator) *Bundle {
	return &Bundle{graph: graph}
}

// Compile implements ports.Compiler.
func (b *Bundle) Compile(_ context.Context, sourcePath string, _ []byte) ([]byte, error) {
	return b.graph.Concatenation(sourcePath)
}
