// Package dialect assembles the built-in scanner and compiler pairs per dialect name.
package dialect

import (
	"strings"

	"go.trai.ch/yaac/internal/adapters/bundle"
	"go.trai.ch/yaac/internal/adapters/compiler"
	"go.trai.ch/yaac/internal/adapters/scan"
	"go.trai.ch/yaac/internal/core/domain"
	"go.trai.ch/yaac/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builtin returns the dialect registered under name.
func Builtin(name string) (ports.Dialect, error) {
	switch name {
	case domain.DialectBundle:
		graph := bundle.NewGraph()
		return ports.Dialect{
			Name:      name,
			Scanner:   scan.NewBundle(graph),
			Compiler:  compiler.NewBundle(graph),
			OutputExt: ".js",
		}, nil
	case domain.DialectLess:
		return ports.Dialect{
			Name:      name,
			Scanner:   scan.NewLess(),
			Compiler:  compiler.NewLess(),
			OutputExt: ".css",
		}, nil
	case domain.DialectStylus:
		return ports.Dialect{
			Name:      name,
			Scanner:   scan.NewStylus(),
			Compiler:  compiler.NewStylus(),
			OutputExt: ".css",
		}, nil
	case domain.DialectMarkdown:
		return ports.Dialect{
			Name:      name,
			Compiler:  compiler.NewMarkdown(),
			OutputExt: ".html",
		}, nil
	case domain.DialectCopy:
		return Passthrough(), nil
	default:
		return ports.Dialect{}, zerr.With(domain.ErrUnknownDialect, "dialect", name)
	}
}

// Passthrough returns the dialect used for extensions without a compiler:
// no dependency discovery and a byte-for-byte copy keeping the extension.
func Passthrough() ports.Dialect {
	return ports.Dialect{
		Name:     domain.DialectCopy,
		Compiler: compiler.NewCopy(),
	}
}

// Option configures Build.
type Option func(*options)

type options struct {
	minify func() bool
}

// WithMinify minifies script and stylesheet output whenever enabled reports true.
func WithMinify(enabled func() bool) Option {
	return func(o *options) {
		o.minify = enabled
	}
}

// minifiedMediaTypes maps output extensions to the minifier applied to them.
var minifiedMediaTypes = map[string]string{
	".js":  compiler.MediaTypeJS,
	".css": compiler.MediaTypeCSS,
}

// Build resolves an extension to dialect-name mapping into dialects.
func Build(compilers map[string]string, opts ...Option) (map[string]ports.Dialect, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	dialects := make(map[string]ports.Dialect, len(compilers))
	for ext, name := range compilers {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return nil, zerr.With(domain.ErrInvalidExtension, "extension", ext)
		}
		d, err := Builtin(name)
		if err != nil {
			return nil, zerr.With(err, "extension", ext)
		}
		if mediaType, ok := minifiedMediaTypes[d.OutputExt]; ok && o.minify != nil {
			d.Compiler = compiler.NewMinify(d.Compiler, mediaType, o.minify)
		}
		dialects[ext] = d
	}
	return dialects, nil
}
