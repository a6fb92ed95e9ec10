package compiler

import (
	"bytes"
	"context"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Compiler = (*Markdown)(nil)

// Markdown renders markdown documents to HTML fragments with GitHub flavoured extensions.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a new Markdown compiler.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Compile implements ports.Compiler.
func (m *Markdown) Compile(_ context.Context, sourcePath string, content []byte) ([]byte, error) {
	content, err := sourceContent(sourcePath, content)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := m.md.Convert(content, &buf); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "path", sourcePath)
	}
	return buf.Bytes(), nil
}
