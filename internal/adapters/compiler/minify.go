package compiler

import (
	"context"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/js"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
)

// Media types understood by Minify.
const (
	MediaTypeCSS = "text/css"
	MediaTypeJS  = "application/javascript"
)

var _ ports.Compiler = (*Minify)(nil)

// Minify minifies the output of another compiler while enabled reports true.
// enabled is consulted on every compile so a deployment mode switch applies
// to the next compile.
type Minify struct {
	next      ports.Compiler
	mediaType string
	enabled   func() bool
	m         *minify.M
}

// NewMinify wraps next. mediaType selects the minifier.
func NewMinify(next ports.Compiler, mediaType string, enabled func() bool) *Minify {
	m := minify.New()
	m.AddFunc(MediaTypeCSS, css.Minify)
	m.AddFunc(MediaTypeJS, js.Minify)

	return &Minify{
		next:      next,
		mediaType: mediaType,
		enabled:   enabled,
		m:         m,
	}
}

// Compile implements ports.Compiler.
func (c *Minify) Compile(ctx context.Context, sourcePath string, content []byte) ([]byte, error) {
	out, err := c.next.Compile(ctx, sourcePath, content)
	if err != nil || !c.enabled() {
		return out, err
	}

	minified, err := c.m.Bytes(c.mediaType, out)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrMinifyFailed.Error()), "path", sourcePath)
	}
	return minified, nil
}
