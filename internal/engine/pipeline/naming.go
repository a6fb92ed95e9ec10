package pipeline

import (
	"path"
	"path/filepath"
	"strings"
)

// OutputName derives the content-addressed file name of a compiled asset:
// the logical name minus its extension, the digest, then outputExt. An empty
// outputExt keeps the source extension.
func OutputName(name, digest, outputExt string) string {
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if outputExt == "" {
		outputExt = ext
	}
	return stem + "." + digest + outputExt
}

// OutputPath places an output name below dest.
func OutputPath(dest, outputName string) string {
	return filepath.Join(dest, filepath.FromSlash(outputName))
}

// OutputURL prepends the URL prefix to an output name.
func OutputURL(prefix, outputName string) string {
	return prefix + outputName
}
