// Package compiler implements the built-in dialect compilers.
package compiler

import (
	"context"
	"os"

	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Copy)(nil)

// Copy is the pass-through compiler: the output is the source, byte for byte.
type Copy struct{}

// NewCopy creates a new Copy compiler.
func NewCopy() *Copy {
	return &Copy{}
}

// Compile returns content when the scanner supplied it and the file's bytes otherwise.
func (c *Copy) Compile(_ context.Context, sourcePath string, content []byte) ([]byte, error) {
	return sourceContent(sourcePath, content)
}

func sourceContent(sourcePath string, content []byte) ([]byte, error) {
	if content != nil {
		return content, nil
	}
	data, err := os.ReadFile(sourcePath) //nolint:gosec // paths come from the search path
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceReadFailed.Error()), "path", sourcePath)
	}
	return data, nil
}
